// Package errors provides structured error types for bowerassets.
//
// Every error that crosses a package boundary carries a machine-readable
// [Code] so that callers (the CLI, the HTTP server) can tell a missing
// manifest apart from a dependency cache that was never generated.
//
// # Error Codes
//
//   - INVALID_*: configuration or manifest data that cannot be used
//   - *_NOT_FOUND: a manifest, bundle or formula does not exist
//   - RESOLUTION_NOT_READY: the dependency cache for a bundle is missing
//   - INTERNAL_ERROR: unexpected failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeManifestNotFound, "manifest %s does not exist", path)
//	if errors.Is(err, errors.ErrCodeManifestNotFound) {
//	    // stop the build
//	}
//
//	err = errors.Wrap(errors.ErrCodeResolutionNotReady, cause, "run install first")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidPackage  Code = "INVALID_PACKAGE"
	ErrCodeInvalidManifest Code = "INVALID_MANIFEST"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeManifestNotFound Code = "MANIFEST_NOT_FOUND"
	ErrCodeBundleNotFound   Code = "BUNDLE_NOT_FOUND"
	ErrCodeFormulaNotFound  Code = "FORMULA_NOT_FOUND"

	// Resolution errors
	ErrCodeResolutionNotReady Code = "RESOLUTION_NOT_READY"
	ErrCodeInstallFailed      Code = "INSTALL_FAILED"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether the outermost *Error in err's chain has the given code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
