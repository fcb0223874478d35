// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the lipi command.
//
// Configuration is loaded from a single file specified by either the
// LIPI_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There are no fallbacks, no ~/.config discovery,
// and no automatic file search. Without either, [Default] applies.
//
// The file format follows the extension: .yaml and .yml files are
// YAML, .json and .jsonc files are JSON extended with comments and
// trailing commas. Unknown keys are rejected in both formats so a
// misspelled setting fails loudly instead of being ignored.
//
// Key exports:
//
//   - [Config] -- master struct with Decode, Output and Input sections
//   - [Default] -- returns a Config with the built-in defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//   - [Config.Validate] -- reports every invalid field by its dotted name
//
// This package depends on no other lipi packages.
package config
