package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the referenced entity does not exist.
var ErrNotFound = errors.New("store: entity not found")

// ValidationError describes invalid operator input. It blocks submission
// before any network call is made.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("store: invalid %s: %s", e.Field, e.Reason)
}

func newValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var validation *ValidationError
	return errors.As(err, &validation)
}
