// Package errors provides coded errors shared by the domain, storage, and
// service layers. The transport layer maps a Code to a response status.
//
//	err := errors.NotFoundf("character %d not found", id)
//	if errors.IsNotFound(err) { ... }
//
// Wrap keeps the code of a wrapped *Error, so context can be added at each
// layer without losing the classification.
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Error is a classified error with a caller-facing message.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates an error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap annotates err with message. The code of an existing *Error is kept;
// context deadline errors become CodeDeadlineExceeded and anything else
// becomes CodeInternal.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var existing *Error
	if errors.As(err, &existing) {
		return &Error{Code: existing.Code, Message: message, Cause: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Code: CodeDeadlineExceeded, Message: message, Cause: err}
	}
	return &Error{Code: CodeInternal, Message: message, Cause: err}
}

// Wrapf wraps err with a formatted message.
func Wrapf(err error, format string, args ...any) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps err and forces the given code.
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Cause: err}
}

// InvalidArgument creates a validation error.
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// InvalidArgumentf creates a validation error with a formatted message.
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// NotFound creates a not found error.
func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

// NotFoundf creates a not found error with a formatted message.
func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// AlreadyExistsf creates a duplicate error with a formatted message.
func AlreadyExistsf(format string, args ...any) *Error {
	return Newf(CodeAlreadyExists, format, args...)
}

// FailedPrecondition creates a business rule violation.
func FailedPrecondition(message string) *Error {
	return New(CodeFailedPrecondition, message)
}

// FailedPreconditionf creates a business rule violation with a formatted message.
func FailedPreconditionf(format string, args ...any) *Error {
	return Newf(CodeFailedPrecondition, format, args...)
}

// Internal creates an internal error.
func Internal(message string) *Error {
	return New(CodeInternal, message)
}

// GetCode extracts the code from err. A nil error is CodeOK and an
// unclassified error is CodeInternal.
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}
	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Code
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return CodeDeadlineExceeded
	}
	return CodeInternal
}

// GetMessage returns the outermost caller-facing message of err.
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Message
	}
	return err.Error()
}

// IsNotFound reports whether err is a not found error.
func IsNotFound(err error) bool { return GetCode(err) == CodeNotFound }

// IsInvalidArgument reports whether err is a validation error.
func IsInvalidArgument(err error) bool { return GetCode(err) == CodeInvalidArgument }

// IsAlreadyExists reports whether err is a duplicate error.
func IsAlreadyExists(err error) bool { return GetCode(err) == CodeAlreadyExists }

// IsFailedPrecondition reports whether err is a business rule violation.
func IsFailedPrecondition(err error) bool { return GetCode(err) == CodeFailedPrecondition }

// IsDeadlineExceeded reports whether err is a timeout.
func IsDeadlineExceeded(err error) bool { return GetCode(err) == CodeDeadlineExceeded }

// IsInternal reports whether err is an internal error.
func IsInternal(err error) bool { return GetCode(err) == CodeInternal }

// As is errors.As for callers that import this package under its default name.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Is is errors.Is for callers that import this package under its default name.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
