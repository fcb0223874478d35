// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lipi

import "github.com/bureau-foundation/lipi/lib/varint"

// extendedID is the high-nibble sentinel announcing that the id
// continues as a varint holding id-15.
const extendedID = 0x0f

// AppendHeader appends the header for (id, tag) to buf. Ids below 15
// share the single header byte with the tag; larger ids write the
// 0xF sentinel followed by varint(id-15).
func AppendHeader(buf []byte, id uint32, tag Tag) []byte {
	if id < extendedID {
		return append(buf, byte(id)<<4|byte(tag&0x0f))
	}
	buf = append(buf, extendedID<<4|byte(tag&0x0f))
	return varint.AppendUvarint(buf, uint64(id-extendedID))
}

// HeaderLen returns the encoded size of a header with the given id.
func HeaderLen(id uint32) int {
	if id < extendedID {
		return 1
	}
	return 1 + varint.Len(uint64(id-extendedID))
}

// ReadHeader consumes a header and returns its id and tag. A
// truncated or malformed extension varint fails the read and leaves
// the cursor where it was.
func (c *Cursor) ReadHeader() (uint64, Tag, error) {
	start := c.offset
	b, err := c.ReadByte()
	if err != nil {
		return 0, 0, err
	}
	tag := Tag(b & 0x0f)
	id := uint64(b >> 4)
	if id == extendedID {
		extension, err := c.ReadUvarint()
		if err != nil {
			c.offset = start
			return 0, 0, err
		}
		if extension > ^uint64(0)-extendedID {
			c.offset = start
			return 0, 0, ErrInvalidVarint
		}
		id = extension + extendedID
	}
	return id, tag, nil
}

// readKey reads a header whose id must fit a 16-bit key.
func (c *Cursor) readKey() (uint16, Tag, error) {
	start := c.offset
	id, tag, err := c.ReadHeader()
	if err != nil {
		return 0, 0, err
	}
	if id > 0xffff {
		c.offset = start
		return 0, 0, &KeyRangeError{ID: id}
	}
	return uint16(id), tag, nil
}
