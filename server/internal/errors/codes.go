// Package errors defines structured error codes for reply generation.
package errors

import (
	"fmt"
)

// ErrorCode classifies a reply generation failure.
type ErrorCode string

const (
	// ErrCodeModelUnavailable indicates the live model is not configured or reachable.
	ErrCodeModelUnavailable ErrorCode = "MODEL_UNAVAILABLE"
	// ErrCodeModelEmptyReply indicates the model returned no choices.
	ErrCodeModelEmptyReply ErrorCode = "MODEL_EMPTY_REPLY"
	// ErrCodeInvalidArgument indicates invalid input parameters.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeContextCanceled indicates the operation was canceled.
	ErrCodeContextCanceled ErrorCode = "CONTEXT_CANCELED"
	// ErrCodeTimeout indicates the operation timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// ChatError is a structured error carrying a reply generation error code.
type ChatError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ChatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ChatError) Unwrap() error {
	return e.Cause
}

// ModelUnavailable creates a model unavailable error.
func ModelUnavailable(msg string) *ChatError {
	return &ChatError{Code: ErrCodeModelUnavailable, Message: msg}
}

// ModelEmptyReply creates an empty reply error.
func ModelEmptyReply() *ChatError {
	return &ChatError{Code: ErrCodeModelEmptyReply, Message: "model returned no choices"}
}

// InvalidArgument creates an invalid argument error.
func InvalidArgument(msg string) *ChatError {
	return &ChatError{Code: ErrCodeInvalidArgument, Message: msg}
}

// ContextCanceled creates a context canceled error.
func ContextCanceled(cause error) *ChatError {
	return &ChatError{Code: ErrCodeContextCanceled, Message: "operation canceled", Cause: cause}
}

// Timeout creates a timeout error.
func Timeout(msg string, cause error) *ChatError {
	return &ChatError{Code: ErrCodeTimeout, Message: msg, Cause: cause}
}

// Wrap wraps an existing error with a code.
func Wrap(cause error, code ErrorCode, msg string) *ChatError {
	return &ChatError{Code: code, Message: msg, Cause: cause}
}

// IsCode checks if an error carries a specific code.
func IsCode(err error, code ErrorCode) bool {
	if chatErr, ok := err.(*ChatError); ok {
		return chatErr.Code == code
	}
	return false
}

// GetCodeFromError extracts the error code from any error, falling back to
// the provided default for unclassified errors.
func GetCodeFromError(err error, defaultCode ErrorCode) ErrorCode {
	if chatErr, ok := err.(*ChatError); ok {
		return chatErr.Code
	}
	return defaultCode
}
