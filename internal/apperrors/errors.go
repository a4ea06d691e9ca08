package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found, or that
// it exists but is not owned by the calling user. The two cases are
// indistinguishable to callers on purpose.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// AppError wraps an underlying error with an HTTP-ish status code and a
// caller-safe message.
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

// NewAppError creates a generic AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates a 404 AppError wrapping ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewValidationFailedError creates a 400 AppError wrapping ErrValidation.
func NewValidationFailedError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}

// NewConflictError creates a 409 AppError wrapping ErrDuplicate.
func NewConflictError(message string) *AppError {
	return &AppError{Code: 409, Message: message, Err: ErrDuplicate}
}

// DuplicateLinkError signals that a bank transaction is already reconciled to
// a ledger entry. It carries the existing entry's ID so callers can navigate
// to it instead of retrying.
type DuplicateLinkError struct {
	BankTransactionID string
	ExistingEntryID   string
}

func (e *DuplicateLinkError) Error() string {
	return fmt.Sprintf("bank transaction %s is already linked to ledger entry %s", e.BankTransactionID, e.ExistingEntryID)
}

func (e *DuplicateLinkError) Unwrap() error {
	return ErrDuplicate
}
