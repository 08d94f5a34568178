package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrAlreadyInvoiced indicates a time entry is already attached to a different invoice.
var ErrAlreadyInvoiced = errors.New("time entry already invoiced")

// ErrCrossMatter indicates time entries from a different matter were supplied.
var ErrCrossMatter = errors.New("time entries belong to a different matter")

// ErrInvalidTransition indicates an illegal invoice status change was requested.
var ErrInvalidTransition = errors.New("invalid invoice status transition")

// ErrMissingDueDate indicates reminder generation was requested for an invoice without a due date.
var ErrMissingDueDate = errors.New("invoice has no due date")

// ErrForbidden indicates the acting user is not allowed to perform the operation.
var ErrForbidden = errors.New("forbidden")

// AppError wraps infrastructure failures with a status code and a message,
// keeping the underlying cause available for errors.Is/As.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an error that satisfies errors.Is(err, ErrNotFound)
// while carrying entity-specific context.
func NewNotFoundError(message string) error {
	return fmt.Errorf("%s: %w", message, ErrNotFound)
}
