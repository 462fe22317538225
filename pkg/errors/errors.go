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
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Template errors
	ErrTemplateSyntax   ErrorCode = "TEMPLATE_SYNTAX"
	ErrUnknownDirective ErrorCode = "UNKNOWN_DIRECTIVE"
	ErrUndefinedSetting ErrorCode = "UNDEFINED_SETTING"
	ErrEvaluation       ErrorCode = "EVALUATION"

	// Signing errors
	ErrSigning ErrorCode = "SIGNING"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileWrite    ErrorCode = "FILE_WRITE"

	// Client launch errors
	ErrLaunch ErrorCode = "LAUNCH"
)

// RdpgenError represents a structured error with code and details
type RdpgenError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *RdpgenError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *RdpgenError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *RdpgenError) Is(target error) bool {
	var targetErr *RdpgenError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new RdpgenError with the given code and message
func New(code ErrorCode, message string) *RdpgenError {
	return &RdpgenError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new RdpgenError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *RdpgenError {
	return &RdpgenError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a RdpgenError
func Wrap(err error, code ErrorCode, message string) *RdpgenError {
	if err == nil {
		return nil
	}
	return &RdpgenError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *RdpgenError {
	if err == nil {
		return nil
	}
	return &RdpgenError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *RdpgenError) WithDetail(key string, value interface{}) *RdpgenError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *RdpgenError) WithDetails(details map[string]interface{}) *RdpgenError {
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
	var rdpErr *RdpgenError
	if errors.As(err, &rdpErr) {
		return rdpErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a RdpgenError
func GetErrorCode(err error) ErrorCode {
	var rdpErr *RdpgenError
	if errors.As(err, &rdpErr) {
		return rdpErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a RdpgenError
func GetErrorDetails(err error) map[string]interface{} {
	var rdpErr *RdpgenError
	if errors.As(err, &rdpErr) {
		return rdpErr.Details
	}
	return nil
}
