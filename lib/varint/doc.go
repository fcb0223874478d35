// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package varint implements unsigned LEB128 variable-length integers
// and the zig-zag mapping between signed and unsigned 64-bit integers.
//
// LEB128 stores seven bits per byte, least-significant group first.
// The high bit of every byte except the last is the continuation bit.
// A uint64 never needs more than [MaxLen] bytes; a tenth byte may
// contribute only the single remaining bit, and [Uvarint] rejects any
// encoding that would carry more with [ErrOverflow] rather than
// silently truncating.
//
// Zig-zag interleaves negative and positive values (0, -1, 1, -2, 2,
// ...) so that small magnitudes of either sign encode to short
// varints. [ZigZag] and [UnZigZag] form a bijection over the full
// int64/uint64 range, including math.MinInt64 and math.MaxInt64.
//
// This package has no dependencies outside the standard library and
// never allocates.
package varint
