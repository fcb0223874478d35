// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
)

// TB is the subset of testing.TB the helpers need.
type TB interface {
	Helper()
	Fatalf(format string, args ...any)
}

// Hex decodes a hex fixture, ignoring whitespace. A malformed fixture
// fails the test.
//
//	data := testutil.Hex(t, "03 11 28 02 68 69")
func Hex(t TB, fixture string) []byte {
	t.Helper()
	compact := strings.Join(strings.Fields(fixture), "")
	data, err := hex.DecodeString(compact)
	if err != nil {
		t.Fatalf("invalid hex fixture %q: %v", fixture, err)
	}
	return data
}

// RequireBytes fails the test if got differs from want.
//
//	testutil.RequireBytes(t, encoded, testutil.Hex(t, "01 11"), "encoding %s", name)
func RequireBytes(t TB, got, want []byte, msgAndArgs ...any) {
	t.Helper()
	if bytes.Equal(got, want) {
		return
	}
	offset := 0
	for offset < len(got) && offset < len(want) && got[offset] == want[offset] {
		offset++
	}
	t.Fatalf("%s: bytes differ at offset %d\n got: % x\nwant: % x",
		formatMessage(msgAndArgs), offset, got, want)
}

// formatMessage formats optional message arguments into a string.
// Accepts either a single string or a format string followed by args.
func formatMessage(msgAndArgs []any) string {
	if len(msgAndArgs) == 0 {
		return "(no message)"
	}
	if len(msgAndArgs) == 1 {
		if s, ok := msgAndArgs[0].(string); ok {
			return s
		}
		return fmt.Sprintf("%v", msgAndArgs[0])
	}
	if format, ok := msgAndArgs[0].(string); ok {
		return fmt.Sprintf(format, msgAndArgs[1:]...)
	}
	return fmt.Sprintf("%v", msgAndArgs)
}
