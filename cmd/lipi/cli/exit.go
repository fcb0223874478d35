// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
)

// ExitError signals a non-zero exit code without printing an extra
// error message. When a command handler returns an ExitError, the CLI
// framework exits with the specified code without printing the error
// string: the command is expected to have already written its own
// output.
//
// "lipi view" uses this after printing a decode failure report.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. The main function checks for this
// interface on returned errors to distinguish "handled non-zero exit"
// from "unexpected error to display".
func (e *ExitError) ExitCode() int {
	return e.Code
}

// Exit statuses for errors that are printed by main.
const (
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitStatus returns the process exit status for err: 0 for nil, the
// requested code for an [ExitError], [ExitUsage] for validation
// errors, and [ExitFailure] for everything else.
func ExitStatus(err error) int {
	if err == nil {
		return 0
	}
	var exitError *ExitError
	if errors.As(err, &exitError) {
		return exitError.Code
	}
	var toolError *ToolError
	if errors.As(err, &toolError) && toolError.Category == CategoryValidation {
		return ExitUsage
	}
	return ExitFailure
}
