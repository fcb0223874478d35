// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for lipi packages.
//
// [Hex] turns a whitespace-separated hex fixture ("03 11 28 02") into
// bytes, so wire-format tests read like the byte dumps they check.
// [RequireBytes] compares two byte slices and, on mismatch, reports
// both as hex along with the offset of the first differing byte.
//
// [WriteFile] writes a fixture into a per-test temporary directory
// and returns its path, for tests that exercise file input.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no lipi-internal dependencies.
package testutil
