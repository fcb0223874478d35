// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lipi

import (
	"encoding/binary"
	"errors"

	"github.com/bureau-foundation/lipi/lib/varint"
)

// Cursor is an advancing read position over a borrowed byte slice.
// Every read either succeeds and advances, or fails with
// [*UnexpectedEOFError] (or [ErrInvalidVarint]) and leaves the
// position where it was. Slices returned by a Cursor alias the
// underlying buffer.
//
// A Cursor is not safe for concurrent use; independent cursors over
// the same read-only buffer are.
type Cursor struct {
	data   []byte
	offset int
}

// NewCursor returns a cursor positioned at the start of data.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Offset returns the number of bytes consumed so far.
func (c *Cursor) Offset() int { return c.offset }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.data) - c.offset }

// Rest returns the unread bytes without consuming them.
func (c *Cursor) Rest() []byte { return c.data[c.offset:] }

func (c *Cursor) need(count int) error {
	if remaining := c.Remaining(); count > remaining {
		return &UnexpectedEOFError{Needed: count - remaining}
	}
	return nil
}

// ReadByte consumes one byte.
func (c *Cursor) ReadByte() (byte, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	b := c.data[c.offset]
	c.offset++
	return b, nil
}

// ReadSlice consumes length bytes and returns them without copying.
func (c *Cursor) ReadSlice(length int) ([]byte, error) {
	if length < 0 {
		return nil, &UnexpectedEOFError{Needed: length}
	}
	if err := c.need(length); err != nil {
		return nil, err
	}
	slice := c.data[c.offset : c.offset+length : c.offset+length]
	c.offset += length
	return slice, nil
}

// ReadFixed4 consumes exactly four bytes.
func (c *Cursor) ReadFixed4() ([4]byte, error) {
	var out [4]byte
	slice, err := c.ReadSlice(4)
	if err != nil {
		return out, err
	}
	copy(out[:], slice)
	return out, nil
}

// ReadFixed8 consumes exactly eight bytes.
func (c *Cursor) ReadFixed8() ([8]byte, error) {
	var out [8]byte
	slice, err := c.ReadSlice(8)
	if err != nil {
		return out, err
	}
	copy(out[:], slice)
	return out, nil
}

// ReadUint32LE consumes a little-endian uint32.
func (c *Cursor) ReadUint32LE() (uint32, error) {
	fixed, err := c.ReadFixed4()
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(fixed[:]), nil
}

// ReadUint64LE consumes a little-endian uint64.
func (c *Cursor) ReadUint64LE() (uint64, error) {
	fixed, err := c.ReadFixed8()
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(fixed[:]), nil
}

// ReadUvarint consumes a LEB128 integer.
func (c *Cursor) ReadUvarint() (uint64, error) {
	value, consumed, err := varint.Uvarint(c.Rest())
	switch {
	case errors.Is(err, varint.ErrTruncated):
		return 0, &UnexpectedEOFError{Needed: 1}
	case err != nil:
		return 0, ErrInvalidVarint
	}
	c.offset += consumed
	return value, nil
}

// ReadLength consumes a LEB128 length and checks that it fits an int.
func (c *Cursor) ReadLength() (int, error) {
	start := c.offset
	value, err := c.ReadUvarint()
	if err != nil {
		return 0, err
	}
	if value > uint64(maxInt) {
		c.offset = start
		return 0, &LengthRangeError{Length: value}
	}
	return int(value), nil
}

const maxInt = int(^uint(0) >> 1)
