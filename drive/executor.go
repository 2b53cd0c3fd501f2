package drive

import (
	"context"
	"time"

	"github.com/sheetkit/sheetdrive/internal/instrumentation"
	"github.com/sheetkit/sheetdrive/internal/logging"
)

// execute runs one prepared remote call. Every remote call in this
// package is routed through here so that timeout tolerance is applied
// uniformly.
//
// Only errors classified as timeouts are retried; any other error
// propagates unchanged, preserving the API's own error taxonomy. Once
// the retry budget is exhausted the last timeout is wrapped in a
// *RequestError. There is no backoff between attempts.
func execute[T any](ctx context.Context, c *Client, op string, call func() (T, error)) (T, error) {
	var zero T
	start := time.Now()

	for attempt := 1; ; attempt++ {
		result, err := call()
		if err == nil {
			c.metrics.RecordOperation(ctx, op, instrumentation.StatusSuccess, time.Since(start))
			return result, nil
		}
		if !isTimeout(err) {
			c.metrics.RecordOperation(ctx, op, instrumentation.StatusError, time.Since(start))
			return zero, err
		}
		if attempt >= c.retries {
			c.metrics.RecordOperation(ctx, op, instrumentation.StatusTimeout, time.Since(start))
			return zero, &RequestError{Op: op, Attempts: attempt, Err: err}
		}

		c.logger.Warn("request timed out, retrying",
			logging.Operation(op),
			logging.Attempt(attempt),
			logging.Err(err))
		c.metrics.RecordRetry(ctx, op)
	}
}

// executeVoid is execute for calls that return no payload.
func executeVoid(ctx context.Context, c *Client, op string, call func() error) error {
	_, err := execute(ctx, c, op, func() (struct{}, error) {
		return struct{}{}, call()
	})
	return err
}
