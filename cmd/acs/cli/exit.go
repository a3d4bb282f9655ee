// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
)

// ExitError signals a non-zero exit status without an error message.
// The command has already written its own output; "diff" uses it to
// report that two packages differ.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit status.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// Exit statuses by error category.
const (
	ExitFailure    = 1
	ExitValidation = 2
	ExitNotFound   = 3
	ExitConflict   = 4
)

// ExitCodeFor maps an error returned by a command to a process exit
// status.
func ExitCodeFor(err error) int {
	var toolError *ToolError
	if !errors.As(err, &toolError) {
		return ExitFailure
	}
	switch toolError.Category {
	case CategoryValidation:
		return ExitValidation
	case CategoryNotFound:
		return ExitNotFound
	case CategoryConflict:
		return ExitConflict
	default:
		return ExitFailure
	}
}
