package payment

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned for an unknown payment id or external payment id.
var ErrNotFound = errors.New("payment not found")

// ErrInvalidState is returned when an operation is illegal for the payment's
// current status, e.g. refunding a payment that never succeeded.
var ErrInvalidState = errors.New("operation not allowed in current payment state")

// ErrAmountUnavailable is returned when no amount was given and the booking's
// amount is missing or non-positive.
var ErrAmountUnavailable = errors.New("could not determine payment amount")

// ErrBadSignature is returned when a production webhook fails signature
// verification.
var ErrBadSignature = errors.New("invalid webhook signature")

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid payment request: %s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for one field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
