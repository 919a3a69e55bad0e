package contenttypes

import (
	"errors"
	"fmt"
)

// ErrNotFinished indicates the document did not reach the writer's terminal
// state on Close.
var ErrNotFinished = errors.New("content types document did not close correctly")

// ErrClosed indicates a declaration was added after Close.
var ErrClosed = errors.New("content types writer already closed")

// StructuralError reports that the underlying element writer was driven out
// of protocol order or left in a non-terminal state. It indicates a logic
// defect, not a recoverable condition; the Writer is unusable afterwards.
type StructuralError struct {
	Op  string
	Err error
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("content types: %s: %v", e.Op, e.Err)
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}

// IsStructuralError checks if an error is a structural error.
func IsStructuralError(err error) bool {
	var se *StructuralError
	return errors.As(err, &se)
}

// InvariantViolation reports an attempt to re-register an extension default
// with a conflicting content type. The Writer routes conflicts to the
// override path before registering, so this is unreachable through
// AddContentType and signals a programming error when seen.
type InvariantViolation struct {
	Extension string
	Existing  string
	Proposed  string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("content types: extension %q already registered as %q, refusing %q",
		e.Extension, e.Existing, e.Proposed)
}

// IsInvariantViolation checks if an error is an invariant violation.
func IsInvariantViolation(err error) bool {
	var iv *InvariantViolation
	return errors.As(err, &iv)
}
