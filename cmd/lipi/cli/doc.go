// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the lipi tool.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a [pflag.FlagSet] factory, and a
// Run function. Commands are assembled into a tree by the inspect package
// and dispatched via [Command.Execute], which handles flag parsing,
// subcommand routing, and structured help output with examples.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3). This is implemented in
// suggest.go.
//
// Errors returned by commands carry their exit status: [ExitError] for
// commands that already wrote their own diagnostics, and [ToolError]
// for categorized failures. [ExitStatus] maps any error to the process
// exit code.
//
// [NewCommandLogger] builds the slog logger shared by all commands.
package cli
