package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller may not act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrInternal is returned when an unexpected failure should not leak details to the caller.
var ErrInternal = errors.New("internal error")

// ErrStateConflict indicates that the report lifecycle forbids the requested operation.
var ErrStateConflict = errors.New("operation not permitted in current state")

// ErrReportCompleted is returned when a completed report is edited, cleared, auto-filled or deleted.
// Revert the report to draft first.
var ErrReportCompleted = fmt.Errorf("%w: report is completed and cannot be modified", ErrStateConflict)

// ErrReportDraft is returned when a draft report is exported.
var ErrReportDraft = fmt.Errorf("%w: report is draft and cannot be exported", ErrStateConflict)

// ErrConversionUnavailable indicates that no usable exchange rate exists for a currency pair.
var ErrConversionUnavailable = errors.New("currency conversion unavailable")

// AppError carries an HTTP-ish status code and message alongside the underlying cause.
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

// NewAppError wraps err with a code and message.
func NewAppError(code int, message string, err error) *AppError {
	if err == nil && code >= http.StatusInternalServerError {
		err = ErrInternal
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an AppError matching ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// NewValidationError returns an AppError matching ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}
