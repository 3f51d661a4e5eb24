package catalog

import (
	"errors"
	"fmt"
)

var ErrInternal = errors.New("internal error")

// ValidationError reports a rejected id or order. Value names the offending
// input as the caller sent it.
type ValidationError struct {
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return e.Reason
	}
	return fmt.Sprintf("%s: %v", e.Reason, e.Value)
}

func invalid(value any, reason string) *ValidationError {
	return &ValidationError{Value: value, Reason: reason}
}

func outOfRange(id, n int) *ValidationError {
	return invalid(id, fmt.Sprintf("id must be an integer between 1 and %d", n))
}
