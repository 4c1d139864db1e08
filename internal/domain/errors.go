package domain

import (
	"errors"
	"fmt"
)

// InvalidInputError reports a contract violation detected at the engine
// boundary. It is returned before any projection work starts; a calculation
// never fails halfway through on bad input.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

// NewInvalidInput creates an InvalidInputError for the given field
func NewInvalidInput(field, reason string) error {
	return &InvalidInputError{Field: field, Reason: reason}
}

// IsInvalidInput reports whether err is (or wraps) an InvalidInputError
func IsInvalidInput(err error) bool {
	var ie *InvalidInputError
	return errors.As(err, &ie)
}
