package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCategory classifies errors for handling decisions.
type ErrorCategory string

const (
	ErrCatValidation ErrorCategory = "validation" // Invalid options, rejected before polling starts
	ErrCatTimeout    ErrorCategory = "timeout"    // Resources did not settle in time
	ErrCatCanceled   ErrorCategory = "canceled"   // Caller canceled the run
	ErrCatInternal   ErrorCategory = "internal"   // Unexpected internal error
)

// DomainError represents a structured error from the domain layer.
type DomainError struct {
	Category ErrorCategory
	Code     string
	Message  string
	Cause    error
	Details  map[string]interface{}
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Category, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches a target.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Category == t.Category && e.Code == t.Code
}

// WithCause wraps an underlying error.
func (e *DomainError) WithCause(cause error) *DomainError {
	e.Cause = cause
	return e
}

// WithDetail adds contextual information.
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ErrValidation creates a validation error.
func ErrValidation(code, message string) *DomainError {
	return &DomainError{
		Category: ErrCatValidation,
		Code:     code,
		Message:  message,
	}
}

// ErrTimeout creates a timeout error carrying the resources still being
// waited for when the timer fired.
func ErrTimeout(waitingFor []string) *DomainError {
	msg := "timed out waiting for resources to settle"
	if len(waitingFor) > 0 {
		msg = "timed out waiting for: " + strings.Join(waitingFor, ", ")
	}
	return &DomainError{
		Category: ErrCatTimeout,
		Code:     CodeTimeout,
		Message:  msg,
		Details: map[string]interface{}{
			DetailWaitingFor: append([]string(nil), waitingFor...),
		},
	}
}

// ErrCanceled creates an error for a run stopped by its caller.
func ErrCanceled(cause error) *DomainError {
	return &DomainError{
		Category: ErrCatCanceled,
		Code:     CodeCanceled,
		Message:  "wait canceled",
		Cause:    cause,
	}
}

// GetCategory extracts the error category.
func GetCategory(err error) ErrorCategory {
	var domErr *DomainError
	if errors.As(err, &domErr) {
		return domErr.Category
	}
	return ErrCatInternal
}

// IsCategory checks if an error belongs to a category.
func IsCategory(err error, cat ErrorCategory) bool {
	return GetCategory(err) == cat
}

// IsValidation reports whether err is a configuration error.
func IsValidation(err error) bool {
	return err != nil && IsCategory(err, ErrCatValidation)
}

// IsTimeout reports whether err is a timeout error.
func IsTimeout(err error) bool {
	return err != nil && IsCategory(err, ErrCatTimeout)
}

// WaitingFor returns the not-ready resources recorded on a timeout error.
func WaitingFor(err error) []string {
	var domErr *DomainError
	if !errors.As(err, &domErr) || domErr.Details == nil {
		return nil
	}
	waiting, _ := domErr.Details[DetailWaitingFor].([]string)
	return waiting
}

// Predefined error codes
const (
	CodeTimeout  = "TIMEOUT"
	CodeCanceled = "CANCELED"

	// Validation error codes
	CodeInvalidOptions   = "INVALID_OPTIONS"
	CodeMissingResources = "MISSING_RESOURCES"
	CodeInvalidResource  = "INVALID_RESOURCE"
	CodeInvalidDuration  = "INVALID_DURATION"
	CodeInvalidConfig    = "INVALID_CONFIG"
)

// DetailWaitingFor is the Details key holding the not-ready resource set.
const DetailWaitingFor = "waiting_for"
