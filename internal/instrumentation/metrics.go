package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys - using constants for consistency and DRY
const (
	attrOperation = "operation"
	attrStatus    = "status"
	attrFormat    = "format"
)

// Status values recorded on metrics.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusTimeout = "timeout"
)

// Metrics provides methods for recording observability metrics for the
// Drive wrapper. A nil *Metrics is valid and records nothing, so callers
// never need to guard call sites.
type Metrics struct {
	apiOperationsTotal   metric.Int64Counter
	apiOperationDuration metric.Float64Histogram
	apiRetriesTotal      metric.Int64Counter
	exportBytesTotal     metric.Int64Counter
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.apiOperationsTotal, err = meter.Int64Counter(
		"drive_api_operations_total",
		metric.WithDescription("Total number of Drive API operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive_api_operations_total counter: %w", err)
	}

	m.apiOperationDuration, err = meter.Float64Histogram(
		"drive_api_operation_duration_seconds",
		metric.WithDescription("Drive API operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive_api_operation_duration_seconds histogram: %w", err)
	}

	m.apiRetriesTotal, err = meter.Int64Counter(
		"drive_api_retries_total",
		metric.WithDescription("Total number of Drive API retries after a timeout"),
		metric.WithUnit("{retry}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive_api_retries_total counter: %w", err)
	}

	m.exportBytesTotal, err = meter.Int64Counter(
		"drive_export_bytes_total",
		metric.WithDescription("Total number of bytes downloaded by document exports"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive_export_bytes_total counter: %w", err)
	}

	return m, nil
}

// RecordOperation records one Drive API operation with its status and duration.
//
// Parameters:
//   - operation: remote endpoint name (files.list, permissions.create, ...)
//   - status: "success", "error" or "timeout"
//   - duration: time taken across all attempts
func (m *Metrics) RecordOperation(ctx context.Context, operation, status string, duration time.Duration) {
	if m == nil || m.apiOperationsTotal == nil || m.apiOperationDuration == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	}

	m.apiOperationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.apiOperationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordRetry records one retry of a timed-out Drive API operation.
func (m *Metrics) RecordRetry(ctx context.Context, operation string) {
	if m == nil || m.apiRetriesTotal == nil {
		return
	}

	m.apiRetriesTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrOperation, operation),
	))
}

// RecordExportBytes records bytes written to disk by a document export.
func (m *Metrics) RecordExportBytes(ctx context.Context, format string, n int64) {
	if m == nil || m.exportBytesTotal == nil {
		return
	}

	m.exportBytesTotal.Add(ctx, n, metric.WithAttributes(
		attribute.String(attrFormat, format),
	))
}
