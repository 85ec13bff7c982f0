package gfx

import (
	"errors"
	"fmt"
)

// ErrNotReady reports that a resource cannot be bound yet because its asset has not
// finished loading. It is recoverable: the affected draw is skipped for this frame.
var ErrNotReady = errors.New("gfx: resource not ready")

// ErrBindFailure is matched (via errors.Is) by every BindError.
var ErrBindFailure = errors.New("gfx: bind failure")

// BindError reports a bind that the device rejected for a reason other than readiness.
// It is fatal for the current render pass.
type BindError struct {
	// Resource names the resource that failed to bind (e.g. "program \"lit\"").
	Resource string
	// Err is the underlying cause, may be nil.
	Err error
}

// NewBindError creates a BindError for the named resource.
//
// Parameters:
//   - resource: a human-readable name for the resource
//   - err: the underlying cause
//
// Returns:
//   - *BindError: the error
func NewBindError(resource string, err error) *BindError {
	return &BindError{Resource: resource, Err: err}
}

func (e *BindError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("gfx: failed to bind %s", e.Resource)
	}
	return fmt.Sprintf("gfx: failed to bind %s: %v", e.Resource, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrBindFailure) true for any BindError.
func (e *BindError) Is(target error) bool {
	return target == ErrBindFailure
}
