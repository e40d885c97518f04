// Package errors provides structured error values shared by the kubenum
// collector, analyzers and CLI.
//
// Every error that crosses a package boundary carries an ErrorCode so the CLI
// can report failures consistently:
//
//	snap, err := snapshot.Load(path)
//	if err != nil {
//	    return errors.Wrap(errors.ErrCodeNotFound, "failed to load snapshot", err)
//	}
//
// Callers inspect the code with CodeOf or errors.As.
package errors

import (
	stderrors "errors"
	"fmt"
	"maps"
)

// ErrorCode classifies a StructuredError.
type ErrorCode string

const (
	// ErrCodeInvalidRequest indicates bad user input (flags, arguments, file format).
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"

	// ErrCodeNotFound indicates a missing input such as a snapshot file.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeInvalidSnapshot indicates a snapshot that lacks an expected field
	// or carries undecodable data.
	ErrCodeInvalidSnapshot ErrorCode = "INVALID_SNAPSHOT"

	// ErrCodeUnavailable indicates the cluster API could not be reached or
	// returned an error.
	ErrCodeUnavailable ErrorCode = "UNAVAILABLE"

	// ErrCodeTimeout indicates the dump deadline expired.
	ErrCodeTimeout ErrorCode = "TIMEOUT"

	// ErrCodeInternal is used for everything else.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// StructuredError is an error with a code, a human readable message,
// an optional cause and optional key/value context.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// New creates a StructuredError without a cause.
func New(code ErrorCode, message string) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
	}
}

// NewWithContext creates a StructuredError without a cause but with context.
func NewWithContext(code ErrorCode, message string, context map[string]any) *StructuredError {
	return WrapWithContext(code, message, nil, context)
}

// Wrap creates a StructuredError around cause.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithContext creates a StructuredError around cause with additional context.
// The context map is copied.
func WrapWithContext(code ErrorCode, message string, cause error, context map[string]any) *StructuredError {
	e := Wrap(code, message, cause)
	if len(context) > 0 {
		e.Context = maps.Clone(context)
	}
	return e
}

// CodeOf returns the code of the first StructuredError in err's chain,
// or ErrCodeInternal when there is none.
func CodeOf(err error) ErrorCode {
	var se *StructuredError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return ErrCodeInternal
}

// IsCode reports whether err's chain carries a StructuredError with code.
func IsCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}
