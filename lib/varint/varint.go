// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package varint

import (
	"errors"
	"math/bits"
)

// MaxLen is the longest LEB128 encoding of a uint64.
const MaxLen = 10

var (
	// ErrOverflow reports an encoding whose value does not fit in 64
	// bits: a tenth byte carrying more than the one remaining bit.
	ErrOverflow = errors.New("varint: value overflows 64 bits")

	// ErrTruncated reports input that ends while the continuation bit
	// of the last byte is still set.
	ErrTruncated = errors.New("varint: truncated encoding")
)

// AppendUvarint appends the LEB128 encoding of value to buf and
// returns the extended slice.
func AppendUvarint(buf []byte, value uint64) []byte {
	for value > 0x7f {
		buf = append(buf, byte(value)|0x80)
		value >>= 7
	}
	return append(buf, byte(value))
}

// Uvarint decodes a LEB128 value from the start of data. It returns
// the value and the number of bytes consumed. On failure the count is
// zero and the error is [ErrTruncated] or [ErrOverflow].
func Uvarint(data []byte) (uint64, int, error) {
	var result uint64
	var shift uint
	for index, b := range data {
		if shift == 63 && b >= 2 {
			return 0, 0, ErrOverflow
		}
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, index + 1, nil
		}
		shift += 7
	}
	return 0, 0, ErrTruncated
}

// Len returns the number of bytes AppendUvarint emits for value:
// ceil(bits(value)/7), with zero taking one byte.
func Len(value uint64) int {
	significant := bits.Len64(value | 1)
	return (significant + 6) / 7
}

// ZigZag maps a signed integer onto the unsigned range so that values
// near zero of either sign stay small.
func ZigZag(value int64) uint64 {
	return uint64((value << 1) ^ (value >> 63))
}

// UnZigZag inverts [ZigZag].
func UnZigZag(value uint64) int64 {
	return int64(value>>1) ^ -int64(value&1)
}
