package booking

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned for an unknown booking id.
var ErrNotFound = errors.New("booking not found")

// ErrAlreadyCancelled is returned when cancelling a booking that is already
// cancelled.
var ErrAlreadyCancelled = errors.New("booking already cancelled")

// ValidationError reports a missing or malformed input field. It is
// user-correctable and maps to a 400 at the HTTP layer.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid booking request: %s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for one field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
