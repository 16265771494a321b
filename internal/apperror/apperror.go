// Package apperror defines the domain errors shared by the store, the services
// and the HTTP layer. Handlers translate them into status codes in one place
// (see handler.writeError); nothing below the HTTP layer knows about HTTP.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("Validation Error")
	ErrConstraint = errors.New("constraint violation")
)

type AppError struct {
	Err     error  // actual error
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound is the "absent" outcome of a lookup by id.
func NotFound(resource string, id int64) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %d", resource, id),
	}
}

// NotFoundMessage is NotFound with a caller-chosen message, used where the
// API promises a specific wording ("Planet not found").
func NotFoundMessage(message string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: message,
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// ConstraintViolation reports a uniqueness, foreign-key or check constraint
// rejected by the store. cause is kept for logging; clients only see message.
func ConstraintViolation(message string, cause error) *AppError {
	return &AppError{
		Err:     fmt.Errorf("%w: %w", ErrConstraint, cause),
		Message: message,
	}
}
