package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Registration errors
	ErrInvalidPhase        ErrorCode = "INVALID_PHASE"
	ErrLateRegistration    ErrorCode = "LATE_REGISTRATION"
	ErrAlreadyBuilt        ErrorCode = "ALREADY_BUILT"
	ErrCallbackFailed      ErrorCode = "CALLBACK_FAILED"
	ErrMissingCollaborator ErrorCode = "MISSING_COLLABORATOR"

	// Record errors
	ErrReservedField ErrorCode = "RESERVED_FIELD"
	ErrImmutable     ErrorCode = "IMMUTABLE"

	// Exchange errors
	ErrDescriptorMissing ErrorCode = "DESCRIPTOR_MISSING"
	ErrLatePublish       ErrorCode = "LATE_PUBLISH"

	// Configuration errors
	ErrConfigLoad      ErrorCode = "CONFIG_LOAD"
	ErrConfigParse     ErrorCode = "CONFIG_PARSE"
	ErrSettingsInvalid ErrorCode = "SETTINGS_INVALID"
)

// HookhubError represents a structured error with code and details
type HookhubError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *HookhubError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *HookhubError) Unwrap() error {
	return e.Wrapped
}

// Is matches any HookhubError carrying the same code
func (e *HookhubError) Is(target error) bool {
	var targetErr *HookhubError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new HookhubError with the given code and message
func New(code ErrorCode, message string) *HookhubError {
	return &HookhubError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new HookhubError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *HookhubError {
	return &HookhubError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a HookhubError
func Wrap(err error, code ErrorCode, message string) *HookhubError {
	if err == nil {
		return nil
	}
	return &HookhubError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *HookhubError {
	if err == nil {
		return nil
	}
	return &HookhubError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *HookhubError) WithDetail(key string, value interface{}) *HookhubError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *HookhubError) WithDetails(details map[string]interface{}) *HookhubError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var hhErr *HookhubError
	if errors.As(err, &hhErr) {
		return hhErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a HookhubError
func GetErrorCode(err error) ErrorCode {
	var hhErr *HookhubError
	if errors.As(err, &hhErr) {
		return hhErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a HookhubError
func GetErrorDetails(err error) map[string]interface{} {
	var hhErr *HookhubError
	if errors.As(err, &hhErr) {
		return hhErr.Details
	}
	return nil
}

// FromPanic converts a recovered panic value into an ErrCallbackFailed error.
// Panics raised with an error value keep it as the wrapped cause.
func FromPanic(recovered interface{}) *HookhubError {
	if recovered == nil {
		return nil
	}
	if err, ok := recovered.(error); ok {
		return Wrap(err, ErrCallbackFailed, "callback panicked").WithDetail("panic", true)
	}
	return Newf(ErrCallbackFailed, "callback panicked: %v", recovered).WithDetail("panic", true)
}
