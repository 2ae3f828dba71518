package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInvalidPeriod indicates an inverted, empty or non-contiguous settlement period.
var ErrInvalidPeriod = errors.New("invalid settlement period")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrStorage indicates that the underlying store failed to complete an operation.
var ErrStorage = errors.New("storage error")

// ErrMigration indicates that schema evolution could not complete. It is fatal at open time.
var ErrMigration = errors.New("migration error")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
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

// NewAppError builds an AppError. A nil cause is allowed.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewStorageError wraps a driver error so that errors.Is(err, ErrStorage) holds
// while the original cause stays reachable.
func NewStorageError(message string, err error) *AppError {
	return NewAppError(500, message, errors.Join(ErrStorage, err))
}
