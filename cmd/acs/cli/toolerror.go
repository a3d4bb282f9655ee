// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ErrorCategory classifies command errors so scripts can tell bad
// input from missing data from broken packages by exit status alone.
type ErrorCategory string

const (
	// CategoryValidation: the caller provided invalid input, such as a
	// missing argument or an unparseable flag value.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound: a referenced package, version, resource or
	// entry does not exist.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryConflict: the operation conflicts with existing state,
	// such as a duplicate resource URI or an existing output file.
	CategoryConflict ErrorCategory = "conflict"

	// CategoryInternal: an unexpected failure, including I/O errors
	// and packages that do not parse.
	CategoryInternal ErrorCategory = "internal"
)

// ToolError is a categorized command error. It wraps the underlying
// error so errors.Is and errors.As see the full chain. An optional hint
// is appended to the message.
type ToolError struct {
	Category ErrorCategory
	Err      error
	Hint     string
}

func (e *ToolError) Error() string {
	if e.Hint == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + "\n\n" + e.Hint
}

func (e *ToolError) Unwrap() error { return e.Err }

// WithHint sets a follow-up suggestion and returns the receiver.
func (e *ToolError) WithHint(hint string) *ToolError {
	e.Hint = hint
	return e
}

// Validation creates a validation error.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error.
func NotFound(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Conflict creates a conflict error.
func Conflict(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryConflict, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}
