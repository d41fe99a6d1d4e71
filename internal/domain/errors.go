package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks a missing entity; repositories wrap it with the
	// entity name and id.
	ErrNotFound = errors.New("not found")

	// ErrSeatTaken is returned when the storage-level unique constraint on
	// (flight, row, seat) rejects a ticket that passed bounds validation.
	ErrSeatTaken = errors.New("seat is already taken")

	ErrEmailTaken = errors.New("email is already registered")
)

// ValidationError reports a single failed invariant on a named field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err carries a ValidationError anywhere in its
// chain.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
