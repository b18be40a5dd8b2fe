// Package apperr provides typed errors that carry an HTTP-facing code.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

// Code identifies the category of an application error
type Code string

const (
	CodeBadRequest       Code = "BAD_REQUEST"
	CodeValidationFailed Code = "VALIDATION_FAILED"
	CodeUnauthorized     Code = "UNAUTHORIZED"
	CodeForbidden        Code = "FORBIDDEN"
	CodeNotFound         Code = "NOT_FOUND"
	CodeConflict         Code = "CONFLICT"
	CodeTooManyRequests  Code = "TOO_MANY_REQUESTS"
	CodeInternal         Code = "INTERNAL_ERROR"
)

// AppError represents an application error with structured information
type AppError struct {
	Code    Code   `json:"code"`
	Message string `json:"error"`
	Details string `json:"details,omitempty"`
	Cause   error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// StatusCode returns the HTTP status for the error code
func (e *AppError) StatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidationFailed:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// WithCause attaches the underlying error
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func newError(code Code, message, details string) *AppError {
	return &AppError{Code: code, Message: message, Details: details}
}

func BadRequest(message string) *AppError { return newError(CodeBadRequest, message, "") }

func Validation(details string) *AppError {
	return newError(CodeValidationFailed, "Validation failed", details)
}

func Unauthorized(message string) *AppError {
	if message == "" {
		message = "Authentication required"
	}
	return newError(CodeUnauthorized, message, "")
}

func Forbidden(message string) *AppError {
	if message == "" {
		message = "Access forbidden"
	}
	return newError(CodeForbidden, message, "")
}

// NotFound builds "<Resource> not found"
func NotFound(resource string) *AppError {
	return newError(CodeNotFound, resource+" not found", "")
}

func Conflict(message string) *AppError { return newError(CodeConflict, message, "") }

func TooManyRequests(message string) *AppError {
	return newError(CodeTooManyRequests, message, "")
}

func Internal(message string) *AppError {
	if message == "" {
		message = "Server error"
	}
	return newError(CodeInternal, message, "")
}

// From converts any error into an AppError. Record-not-found becomes
// NotFound and a unique violation becomes Conflict for the given
// resource; anything unrecognised is Internal.
func From(err error, resource string) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(resource).WithCause(err)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		if resource == "" {
			resource = "Resource"
		}
		return Conflict(resource + " already exists").WithCause(err)
	}
	return Internal("").WithCause(err)
}

// IsNotFound reports whether err is, or wraps, a not-found error
func IsNotFound(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == CodeNotFound
	}
	return errors.Is(err, gorm.ErrRecordNotFound)
}
