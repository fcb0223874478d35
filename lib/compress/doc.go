// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package compress wraps lipi messages in standard compression frames
// and unwraps them again.
//
// Two framings are supported: zstd (RFC 8878) and the LZ4 frame
// format. Both begin with a four-byte magic number, so [Detect] can
// recognize compressed input without a flag:
//
//	zstd  28 b5 2f fd
//	lz4   04 22 4d 18
//
// A bare lipi message could in principle start with the same bytes
// (a struct of 40 or 4 fields whose first header happens to match),
// so callers that must never guess pass [None] explicitly.
//
// [Decompress] bounds its output. Compressed input that expands past
// the limit fails with [ErrTooLarge] instead of exhausting memory.
package compress
