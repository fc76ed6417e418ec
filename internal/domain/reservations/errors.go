package reservations

import (
	"errors"
	"fmt"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("forbidden")
	ErrConfiguration = errors.New("configuration error")
	ErrConflict      = errors.New("conflict")

	// Los repos devuelven estos.
	ErrVersionConflict = fmt.Errorf("reservation was modified concurrently: %w", ErrConflict)
	ErrDuplicateStatus = fmt.Errorf("status name already exists: %w", ErrConflict)
)

// FieldError agrega el campo afectado a una de las categorías de arriba.
type FieldError struct {
	Kind    error
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *FieldError) Unwrap() error { return e.Kind }

func invalid(field, msg string) error {
	return &FieldError{Kind: ErrValidation, Field: field, Message: msg}
}

func notFound(field, msg string) error {
	return &FieldError{Kind: ErrNotFound, Field: field, Message: msg}
}

func forbidden(field, msg string) error {
	return &FieldError{Kind: ErrForbidden, Field: field, Message: msg}
}

func misconfigured(status string) error {
	return fmt.Errorf("%w: status %q is not configured", ErrConfiguration, status)
}
