package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrCrossTenant indicates that a resource exists but belongs to a different company.
// This is a caller bug and is never silently filtered.
var ErrCrossTenant = errors.New("resource belongs to a different company")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInactiveAccount indicates an attempt to post to a deactivated account.
var ErrInactiveAccount = errors.New("account is inactive")

// ErrInvalidAmount indicates a negative amount, a zero/zero debit-credit pair,
// a both-sided entry, or a non-positive exchange rate.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrInvalidRange indicates a reporting period whose start date is after its end date.
var ErrInvalidRange = errors.New("invalid date range")

// ErrAlreadyReconciled indicates that a statement line or ledger entry already
// has an active reconciliation.
var ErrAlreadyReconciled = errors.New("already reconciled")

// ErrAmountMismatch indicates a reconciliation amount that does not equal both sides.
var ErrAmountMismatch = errors.New("reconciliation amount mismatch")

// ErrNoCashAccounts indicates that no account is flagged cash-like for the company.
var ErrNoCashAccounts = errors.New("no cash-like accounts configured")

// ErrForbidden indicates the actor is not allowed to perform the operation.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code alongside the underlying error.
// Repositories use it for storage-level failures that are not part of the
// domain error taxonomy.
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

// NewAppError creates an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
