// ABOUTME: Custom error types for the core business logic
// ABOUTME: Provides structured errors for better error handling and API responses

package errors

import (
	"errors"
	"fmt"
	"time"
)

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// SourceUnavailableError means the external document API could not be
// reached or answered with a non-success status. StatusCode is 0 for
// transport failures.
type SourceUnavailableError struct {
	API        string
	StatusCode int
	Message    string
	// RetryAfter is the delay the source asked for, if any
	RetryAfter time.Duration
	Cause      error
}

// Error implements the error interface
func (e *SourceUnavailableError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("source %s unavailable: %s", e.API, e.Message)
	}
	return fmt.Sprintf("source %s unavailable: %d - %s", e.API, e.StatusCode, e.Message)
}

// Unwrap returns the underlying cause
func (e *SourceUnavailableError) Unwrap() error {
	return e.Cause
}

// InvalidReferenceError means a document id or URL cannot be normalized
type InvalidReferenceError struct {
	Reference string
	Reason    string
}

// Error implements the error interface
func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid document reference %q: %s", e.Reference, e.Reason)
}

// DepthExceededError means a tree descended deeper than the configured bound
type DepthExceededError struct {
	BlockID  string
	MaxDepth int
}

// Error implements the error interface
func (e *DepthExceededError) Error() string {
	return fmt.Sprintf("block tree exceeds maximum depth %d at block %s", e.MaxDepth, e.BlockID)
}

// PartialDataError describes a failed secondary fetch whose result was
// replaced by a default. It is logged, never returned to callers.
type PartialDataError struct {
	Operation string
	Target    string
	Cause     error
}

// Error implements the error interface
func (e *PartialDataError) Error() string {
	return fmt.Sprintf("degraded %s for %s: %v", e.Operation, e.Target, e.Cause)
}

// Unwrap returns the underlying cause
func (e *PartialDataError) Unwrap() error {
	return e.Cause
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsSourceUnavailable checks if an error is a SourceUnavailableError
func IsSourceUnavailable(err error) bool {
	var sourceErr *SourceUnavailableError
	return errors.As(err, &sourceErr)
}

// IsInvalidReference checks if an error is an InvalidReferenceError
func IsInvalidReference(err error) bool {
	var refErr *InvalidReferenceError
	return errors.As(err, &refErr)
}

// IsDepthExceeded checks if an error is a DepthExceededError
func IsDepthExceeded(err error) bool {
	var depthErr *DepthExceededError
	return errors.As(err, &depthErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
