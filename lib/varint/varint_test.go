// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package varint

import (
	"bytes"
	"errors"
	"math"
	"math/rand/v2"
	"testing"
)

// boundaryValues covers every power of two and three, the values
// around each byte-length transition, and the integer-width limits.
func boundaryValues() []uint64 {
	var values []uint64
	for n := uint64(0); n < 1000; n++ {
		values = append(values, n)
	}
	for exponent := 0; exponent < 64; exponent++ {
		power := uint64(1) << exponent
		values = append(values, power, power-1, power+1)
	}
	for power := uint64(1); power <= math.MaxUint64/3; power *= 3 {
		values = append(values, power)
	}
	values = append(values,
		math.MaxUint64, math.MaxUint64-1,
		math.MaxInt64, math.MaxInt64+1, math.MaxInt64-1,
		math.MaxUint32, math.MaxUint32+1, math.MaxUint32-1,
		math.MaxInt32, math.MaxInt32+1, math.MaxInt32-1,
	)
	return values
}

func TestUvarintRoundtrip(t *testing.T) {
	for _, value := range boundaryValues() {
		encoded := AppendUvarint(nil, value)
		if len(encoded) != Len(value) {
			t.Errorf("len(AppendUvarint(%d)) = %d, want %d", value, len(encoded), Len(value))
		}
		if len(encoded) > MaxLen {
			t.Errorf("AppendUvarint(%d) used %d bytes, limit is %d", value, len(encoded), MaxLen)
		}
		decoded, consumed, err := Uvarint(encoded)
		if err != nil {
			t.Fatalf("Uvarint(%x): %v", encoded, err)
		}
		if decoded != value || consumed != len(encoded) {
			t.Errorf("Uvarint(%x) = (%d, %d), want (%d, %d)", encoded, decoded, consumed, value, len(encoded))
		}
	}
}

func TestUvarintRandom(t *testing.T) {
	random := rand.New(rand.NewPCG(1, 2))
	for range 10000 {
		value := random.Uint64() >> random.UintN(64)
		decoded, _, err := Uvarint(AppendUvarint(nil, value))
		if err != nil || decoded != value {
			t.Fatalf("roundtrip %d: got %d, err %v", value, decoded, err)
		}
	}
}

func TestLen(t *testing.T) {
	tests := []struct {
		value uint64
		want  int
	}{
		{0, 1},
		{1, 1},
		{127, 1},
		{128, 2},
		{16383, 2},
		{16384, 3},
		{math.MaxUint32, 5},
		{math.MaxUint64, 10},
	}
	for _, tt := range tests {
		if got := Len(tt.value); got != tt.want {
			t.Errorf("Len(%d) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestUvarintDecodeKnown(t *testing.T) {
	value, consumed, err := Uvarint([]byte{0x00})
	if err != nil || value != 0 || consumed != 1 {
		t.Errorf("Uvarint(00) = (%d, %d, %v), want (0, 1, nil)", value, consumed, err)
	}

	maximum := []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}
	value, consumed, err = Uvarint(maximum)
	if err != nil || value != math.MaxUint64 || consumed != 10 {
		t.Errorf("Uvarint(max) = (%d, %d, %v), want (MaxUint64, 10, nil)", value, consumed, err)
	}
	if !bytes.Equal(AppendUvarint(nil, math.MaxUint64), maximum) {
		t.Errorf("AppendUvarint(MaxUint64) = %x, want %x", AppendUvarint(nil, math.MaxUint64), maximum)
	}

	// Trailing bytes after the terminating group are not consumed.
	value, consumed, err = Uvarint([]byte{0xac, 0x02, 0xff})
	if err != nil || value != 300 || consumed != 2 {
		t.Errorf("Uvarint(ac 02 ff) = (%d, %d, %v), want (300, 2, nil)", value, consumed, err)
	}
}

func TestUvarintErrors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  error
	}{
		{"empty", nil, ErrTruncated},
		{"continuation at end", []byte{0x80}, ErrTruncated},
		{"long continuation at end", []byte{0xff, 0xff, 0xff}, ErrTruncated},
		{"tenth byte too large", []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x02}, ErrOverflow},
		{"eleven bytes", []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x00}, ErrOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, consumed, err := Uvarint(tt.input)
			if !errors.Is(err, tt.want) {
				t.Errorf("Uvarint(%x) error = %v, want %v", tt.input, err, tt.want)
			}
			if consumed != 0 {
				t.Errorf("Uvarint(%x) consumed %d bytes on error", tt.input, consumed)
			}
		})
	}
}

func TestZigZagKnown(t *testing.T) {
	tests := []struct {
		signed   int64
		unsigned uint64
	}{
		{0, 0},
		{-1, 1},
		{1, 2},
		{-2, 3},
		{2, 4},
		{math.MaxInt64, math.MaxUint64 - 1},
		{math.MinInt64, math.MaxUint64},
	}
	for _, tt := range tests {
		if got := ZigZag(tt.signed); got != tt.unsigned {
			t.Errorf("ZigZag(%d) = %d, want %d", tt.signed, got, tt.unsigned)
		}
		if got := UnZigZag(tt.unsigned); got != tt.signed {
			t.Errorf("UnZigZag(%d) = %d, want %d", tt.unsigned, got, tt.signed)
		}
	}
}

func TestZigZagBijection(t *testing.T) {
	random := rand.New(rand.NewPCG(3, 4))
	samples := []int64{math.MinInt64, math.MinInt64 + 1, -1, 0, 1, math.MaxInt64 - 1, math.MaxInt64}
	for range 10000 {
		samples = append(samples, int64(random.Uint64()))
	}
	for _, value := range samples {
		if got := UnZigZag(ZigZag(value)); got != value {
			t.Fatalf("UnZigZag(ZigZag(%d)) = %d", value, got)
		}
	}
}
