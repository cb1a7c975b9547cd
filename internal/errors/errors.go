package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error // underlying error for wrapping
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with domain error context
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

// Error kinds. Data-access errors are classified into exactly one of these at
// the boundary closest to the database call; handlers map them to HTTP status
// codes uniformly.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeInternal     = "INTERNAL_ERROR"
)

// Predefined domain errors
var (
	// Authentication errors
	ErrUnauthorized        = NewDomainError(CodeUnauthorized, "authentication failed")
	ErrInvalidToken        = NewDomainError(CodeUnauthorized, "invalid or expired token")
	ErrInvalidRefreshToken = NewDomainError(CodeUnauthorized, "invalid refresh token")

	// Authorization errors
	ErrForbidden = NewDomainError(CodeForbidden, "not permitted to access this resource")

	// Client input errors
	ErrInvalidInput = NewDomainError(CodeValidation, "invalid input")

	// Record errors
	ErrNotFound = NewDomainError(CodeNotFound, "record not found")
	ErrConflict = NewDomainError(CodeConflict, "record already exists")

	// System errors
	ErrInternal = NewDomainError(CodeInternal, "internal server error")
)

// Validation creates a VALIDATION_ERROR with a specific message.
func Validation(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// NotFound creates a NOT_FOUND with a specific message.
func NotFound(message string) *DomainError {
	return NewDomainError(CodeNotFound, message)
}

// Conflict creates a CONFLICT with a specific message.
func Conflict(message string) *DomainError {
	return NewDomainError(CodeConflict, message)
}

// Internal creates an INTERNAL_ERROR with a specific message.
func Internal(message string) *DomainError {
	return NewDomainError(CodeInternal, message)
}

// IsDomainError checks if an error is a domain error
func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// GetDomainError extracts the domain error from an error
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// IsCode reports whether err is a DomainError carrying the given code.
func IsCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// ToHTTPStatus maps domain errors to HTTP status codes
// This should only be used in the handler/presentation layer
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErrorToHTTPStatus(domainErr)
	}

	// Default to internal server error for unknown errors
	return http.StatusInternalServerError
}

// domainErrorToHTTPStatus maps specific domain errors to HTTP status codes
func domainErrorToHTTPStatus(err *DomainError) int {
	switch err.Code {
	case CodeValidation:
		return http.StatusUnprocessableEntity

	case CodeUnauthorized:
		return http.StatusUnauthorized

	case CodeForbidden:
		return http.StatusForbidden

	case CodeNotFound:
		return http.StatusNotFound

	case CodeConflict:
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// GetErrorMessage safely extracts error message
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}

	return err.Error()
}
