package qc

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks a single-resource lookup miss. Batch retrieval
	// paths degrade a miss to omission instead of returning this.
	ErrNotFound = errors.New("not found")

	// ErrInvariantViolation marks corrupted state: more than one row
	// where at most one may exist. Fatal to the request, never recovered.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrStoreUnavailable marks a connection or transaction failure.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError rejects a malformed request before any store access.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
