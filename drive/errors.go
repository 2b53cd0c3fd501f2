package drive

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned when caller-supplied permission
// parameters violate a local validation rule. No remote call has been
// issued when this error is returned.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrCannotRemoveOwner is returned by DeletePermission when the API
// rejects the deletion because the permission belongs to the file owner.
var ErrCannotRemoveOwner = errors.New("the owner of a file cannot be removed")

// RequestError is returned when a remote call kept timing out until the
// retry budget was exhausted. The last underlying error is available
// through Unwrap.
type RequestError struct {
	Op       string
	Attempts int
	Err      error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: timed out after %d attempts: %v", e.Op, e.Attempts, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func invalidArgf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
