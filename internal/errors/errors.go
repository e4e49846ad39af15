// Package errors provides the error taxonomy shared by the scanner, tree
// builder, metadata extractor, watcher and command layer.
//
// Usage:
//
//	// In media/watcher code - return typed errors
//	if os.IsNotExist(err) {
//	    return errors.NotFound("path does not exist: %s", root)
//	}
//
//	// In handlers - the code picks the status
//	if err != nil {
//	    writeJSONError(w, err) // {"code": "INVALID_ARGUMENT", "error": "..."}, 400
//	    return
//	}
//
//	// Elsewhere - check with errors.Is
//	if errors.Is(err, errors.ErrNotFound) {
//	    ...
//	}
//
//	// Or switch on the code
//	switch errors.CodeOf(err) {
//	case errors.CodeDecode:
//	    ...
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
	New    = errors.New
)

// Code is a machine-readable error code surfaced to the UI layer.
type Code string

// Error codes.
const (
	CodeNotFound        Code = "NOT_FOUND"
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeIO              Code = "IO_ERROR"
	CodeDecode          Code = "DECODE_ERROR"
	CodeWatch           Code = "WATCH_ERROR"
	CodeWorker          Code = "WORKER_ERROR"
	CodeCanceled        Code = "CANCELED"
	CodeUnknown         Code = "UNKNOWN"
)

// HTTPStatus returns the HTTP status code used when the error crosses the
// HTTP boundary.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeDecode:
		return http.StatusUnprocessableEntity
	case CodeCanceled:
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error with a code, a message and an optional cause.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"error"`
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// Sentinel errors for use with errors.Is().
var (
	ErrNotFound        = &Error{Code: CodeNotFound, Message: "not found"}
	ErrInvalidArgument = &Error{Code: CodeInvalidArgument, Message: "invalid argument"}
	ErrIO              = &Error{Code: CodeIO, Message: "i/o error"}
	ErrDecode          = &Error{Code: CodeDecode, Message: "decode error"}
	ErrWatch           = &Error{Code: CodeWatch, Message: "watch error"}
	ErrWorker          = &Error{Code: CodeWorker, Message: "worker error"}
	ErrCanceled        = &Error{Code: CodeCanceled, Message: "canceled"}
)

// NotFound creates a not found error with a formatted message.
func NotFound(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// InvalidArgument creates an invalid argument error with a formatted message.
func InvalidArgument(format string, args ...any) *Error {
	return &Error{Code: CodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// IO wraps a filesystem error.
func IO(err error, format string, args ...any) *Error {
	return &Error{Code: CodeIO, Message: fmt.Sprintf(format, args...), cause: err}
}

// Decode wraps an image decoding error.
func Decode(err error, format string, args ...any) *Error {
	return &Error{Code: CodeDecode, Message: fmt.Sprintf(format, args...), cause: err}
}

// Watch wraps a failure to establish or replace a watch subscription.
func Watch(err error, format string, args ...any) *Error {
	return &Error{Code: CodeWatch, Message: fmt.Sprintf(format, args...), cause: err}
}

// Worker creates an error for a failed background task.
func Worker(format string, args ...any) *Error {
	return &Error{Code: CodeWorker, Message: fmt.Sprintf(format, args...)}
}

// Canceled wraps a context error for a caller that stopped waiting.
func Canceled(err error) *Error {
	return &Error{Code: CodeCanceled, Message: "operation canceled", cause: err}
}

// CodeOf returns the code of the first *Error in err's chain, or CodeUnknown.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}
