// Package errors provides structured error types for kleinian.
//
// Every failure the numeric core can produce carries a machine-readable [Code]
// so that batch callers (lattice sweeps, animations, the HTTP API) can count,
// skip or report it without string matching.
//
// # Error Codes
//
// Math failures:
//   - DIVIDE_BY_ZERO: a computed denominator is exactly zero
//   - SINGULAR_MATRIX: the determinant is zero where invertibility is required
//   - INVALID_PARAMETERS: a recipe's inputs do not admit a valid transformation
//   - UNIMPLEMENTED: a recognized but unsupported case
//
// Input failures:
//   - INVALID_INPUT, INVALID_FORMAT, INVALID_PATH, FILE_NOT_FOUND
//
// # Usage
//
//	err := errors.New(errors.ErrCodeDivideByZero, "c*z + d = 0 at z = %v", z)
//	if errors.Is(err, errors.ErrCodeDivideByZero) {
//	    // treat as point at infinity
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFileNotFound, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Math errors
	ErrCodeDivideByZero      Code = "DIVIDE_BY_ZERO"
	ErrCodeSingularMatrix    Code = "SINGULAR_MATRIX"
	ErrCodeInvalidParameters Code = "INVALID_PARAMETERS"
	ErrCodeUnimplemented     Code = "UNIMPLEMENTED"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// Coder is implemented by error types that carry their own code without
// being an *Error, such as group.ParameterError.
type Coder interface {
	error
	Code() Code
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

// Is reports whether any error in err's chain has the given code.
// Both *Error values and [Coder] implementations are considered, so a
// recipe failure matches INVALID_PARAMETERS as well as the DIVIDE_BY_ZERO
// cause it wraps.
func Is(err error, code Code) bool {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if c, ok := codeOf(e); ok && c == code {
			return true
		}
	}
	return false
}

// GetCode extracts the outermost error code from an error, if available.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if c, ok := codeOf(e); ok {
			return c
		}
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

func codeOf(err error) (Code, bool) {
	switch e := err.(type) {
	case *Error:
		return e.Code, true
	case Coder:
		return e.Code(), true
	}
	return "", false
}
