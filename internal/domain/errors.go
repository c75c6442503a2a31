package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidEmail is returned when an email address is malformed.
	// It wraps ErrValidation like the other field-level sentinels.
	ErrInvalidEmail = NewValidationError("email", "format is invalid", nil)

	// ErrUnauthorized is returned when the caller's identity could not be
	// established.
	ErrUnauthorized = errors.New("unauthorized operation")

	// ErrForbidden is returned when the caller is authenticated but does
	// not own the resource the operation targets.
	ErrForbidden = errors.New("forbidden operation")
)

// ValidationError carries the field that failed validation alongside a
// human-readable reason. It wraps a sentinel error so callers can still
// classify it with errors.Is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError for the given field.
// If err is nil, ErrValidation is used as the wrapped sentinel.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{Field: field, Message: message, Err: err}
}
