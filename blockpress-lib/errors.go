// ABOUTME: Error types and handling for the Blockpress library
// ABOUTME: Provides structured errors with context for library operations

package blockpress

import (
	"errors"
	"fmt"

	coreerrors "blockpress-api/core/errors"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeValidation indicates invalid input, including bad references
	ErrorTypeValidation ErrorType = "validation"

	// ErrorTypeNotFound indicates a resource was not found
	ErrorTypeNotFound ErrorType = "not_found"

	// ErrorTypeSource indicates the document API failed or was unreachable
	ErrorTypeSource ErrorType = "source"

	// ErrorTypeTooDeep indicates a document nests deeper than allowed
	ErrorTypeTooDeep ErrorType = "too_deep"

	// ErrorTypeInternal indicates an internal error
	ErrorTypeInternal ErrorType = "internal"

	// ErrorTypeConfiguration indicates a configuration error
	ErrorTypeConfiguration ErrorType = "configuration"
)

// Error represents a structured error from the library
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new error with the given type and message
func NewError(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Context: make(map[string]interface{}),
	}
}

// WithCause adds a cause to the error
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// wrapError classifies a core error. The core error stays reachable
// through errors.As.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var srcErr *coreerrors.SourceUnavailableError
	switch {
	case coreerrors.IsInvalidReference(err), coreerrors.IsValidation(err):
		return NewError(ErrorTypeValidation, "invalid request").WithCause(err)
	case coreerrors.IsNotFound(err):
		return NewError(ErrorTypeNotFound, "resource not found").WithCause(err)
	case coreerrors.IsDepthExceeded(err):
		return NewError(ErrorTypeTooDeep, "document nests too deeply").WithCause(err)
	case errors.As(err, &srcErr):
		return NewError(ErrorTypeSource, "document source unavailable").
			WithCause(err).
			WithContext("status_code", srcErr.StatusCode).
			WithContext("retry_after", srcErr.RetryAfter.String())
	default:
		return NewError(ErrorTypeInternal, "unexpected error").WithCause(err)
	}
}

func isType(err error, t ErrorType) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == t
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool { return isType(err, ErrorTypeValidation) }

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool { return isType(err, ErrorTypeNotFound) }

// IsSourceError checks if an error came from the document API
func IsSourceError(err error) bool { return isType(err, ErrorTypeSource) }

// IsTooDeepError checks if a document exceeded the depth bound
func IsTooDeepError(err error) bool { return isType(err, ErrorTypeTooDeep) }
