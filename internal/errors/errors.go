// Package errors provides the error types shared by the music and chat clients.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrNoScale       = errors.New("no scale selected")
	ErrInvalidLength = errors.New("length must be a positive integer")
	ErrEmptyMessage  = errors.New("message is empty")
	ErrBusy          = errors.New("a request is already in progress")
	ErrInvalidAudio  = errors.New("response is not a WAV file")
	ErrEmptyAudio    = errors.New("response body is empty")
	ErrNoReply       = errors.New("chat response is not valid JSON")
	ErrNotConfigured = errors.New("backend not configured")
)

// ValidationError is returned when form input is rejected before any request is made
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Err: err}
}

// APIError represents a failed call to a remote endpoint
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API error [%d] at %s: %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("API error at %s: %s", e.Endpoint, e.Message)
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, endpoint, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Message:    message,
	}
}

// IsValidation reports whether err (or anything it wraps) is a ValidationError
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsAPI reports whether err (or anything it wraps) is an APIError
func IsAPI(err error) bool {
	var a *APIError
	return errors.As(err, &a)
}

// StatusCode extracts the HTTP status of a wrapped APIError, or 0
func StatusCode(err error) int {
	var a *APIError
	if errors.As(err, &a) {
		return a.StatusCode
	}
	return 0
}
