package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the request conflicts with the current state of
// the resource, e.g. deactivating an account with a non-zero balance.
var ErrConflict = errors.New("resource conflict")

// ErrIdempotencyConflict indicates a posting reused an idempotency key with a
// different entry set than the one originally recorded under that key.
var ErrIdempotencyConflict = errors.New("idempotency key already used with different entries")

// ErrStorage indicates a failure at the persistence boundary. The whole
// operation was rolled back; the caller may safely retry with the same
// idempotency key.
var ErrStorage = errors.New("storage error")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// UnbalancedError reports that a posting's debit and credit legs do not sum
// to zero. Residual is debits minus credits at minor-unit precision.
type UnbalancedError struct {
	Residual decimal.Decimal
}

func (e *UnbalancedError) Error() string {
	return fmt.Sprintf("posting entries do not balance: residual %s", e.Residual.StringFixed(2))
}

// NewUnbalancedError builds an UnbalancedError from the signed residual.
func NewUnbalancedError(residual decimal.Decimal) *UnbalancedError {
	return &UnbalancedError{Residual: residual}
}

// AppError wraps a lower-level failure with an HTTP-ish status code and a
// message safe to log. Repositories use it for storage failures.
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

// Is treats every 5xx AppError as an ErrStorage, so callers can match the
// taxonomy without knowing the repository's wrapping depth.
func (e *AppError) Is(target error) bool {
	return target == ErrStorage && e.Code >= 500
}

// NewAppError creates an AppError with the given code, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError wrapping ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
