package apperror

import (
	"errors"
	"net/http"
)

// Stable error codes returned to clients in the response envelope.
const (
	KindBadRequest      = "bad_request"
	KindUnauthenticated = "unauthenticated"
	KindForbidden       = "forbidden"
	KindValidation      = "validation_failed"
	KindNotFound        = "not_found"
	KindConflict        = "conflict"
	KindTooManyRequests = "too_many_requests"
	KindInternal        = "internal_error"
)

type AppError struct {
	Code    int               `json:"-"`
	Kind    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
	Err     error             `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the caller may safely repeat the request.
func (e *AppError) Retryable() bool {
	return e.Kind == KindConflict || e.Kind == KindTooManyRequests
}

func New(code int, kind, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, KindBadRequest, message, nil)
}

// Unauthorized is an authentication failure. The message must stay generic.
func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, KindUnauthenticated, message, nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, KindForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, KindNotFound, message, nil)
}

func Conflict(message string) *AppError {
	return New(http.StatusConflict, KindConflict, message, nil)
}

func TooManyRequests(message string) *AppError {
	return New(http.StatusTooManyRequests, KindTooManyRequests, message, nil)
}

// Validation carries field-level messages keyed by the request field name.
func Validation(message string, details map[string]string) *AppError {
	e := New(http.StatusUnprocessableEntity, KindValidation, message, nil)
	e.Details = details
	return e
}

// Field is shorthand for a validation failure on a single field.
func Field(field, message string) *AppError {
	return Validation(message, map[string]string{field: message})
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, KindInternal, "Internal Server Error", err)
}

// KindOf returns the stable code of err, or KindInternal for unclassified errors.
func KindOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
