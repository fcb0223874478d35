// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger creates a structured logger for CLI command operations.
// When w is a terminal, uses slog.TextHandler for human-readable output.
// When w is piped or redirected (CI, scripts, tests), uses
// slog.JSONHandler for machine-parseable output.
//
// verbose lowers the level from info to debug. Callers scope the logger
// with command-specific context via With():
//
//	logger := cli.NewCommandLogger(os.Stderr, verbose).With(
//	    "command", "stat",
//	    "input", path,
//	)
func NewCommandLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	options := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if IsTerminal(w) {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler)
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
