// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package lipi implements lipi, a compact self-describing binary
// encoding. A message can be decoded into a generic value tree without
// a schema; typed Go records convert from that tree by small integer
// field keys.
//
// # Wire format
//
// Every field starts with a header byte: the field id in the high
// nibble and a 4-bit [Tag] in the low nibble. Ids of 15 and above set
// the high nibble to 0xF and follow the byte with varint(id - 15).
// Variable-length integers are unsigned LEB128; signed integers are
// zig-zag mapped first. f32 and f64 are little-endian IEEE 754.
//
//	bool     no payload: the tag itself is False (0) or True (1)
//	u8, i8   one byte
//	uint     varint
//	int      varint(zigzag(n))
//	str      varint(len) + UTF-8 bytes
//	struct   varint(count) + count fields
//	union    one field
//	list     header(len, element tag) + len bare payloads
//	table    varint(columns) + varint(rows) +
//	         per column: header(key, element tag) + rows bare payloads
//
// Boolean lists pack their elements into ceil(len/8) bytes, least
// significant bit first, and carry the element tag True. Tags 13-15 are
// reserved: their payload is varint(len) + opaque bytes, so old decoders
// carry future types through as [Unknown].
//
// A complete message is one struct body. Struct bodies are always
// count-prefixed; there is no terminator byte.
//
// The message {1: true, 2: "hi", 3: [1u8, 2, 3]} encodes as
//
//	03 11 28 02 68 69 3b 32 01 02 03
//
// # Decoding
//
// [Parse] decodes a message into [Entries]. Duplicate keys are kept;
// [Entries.Get] returns the first. Nesting of structs, unions, lists
// and tables is limited to [DefaultMaxDepth] levels unless
// [ParseOptions] says otherwise; deeper input fails with
// [*MaxDepthError]. Wire keys wider than 16 bits fail with
// [*KeyRangeError].
//
// Typed decoding goes through [Convert], [Get], [DecodeStruct] and
// [Unmarshal]. Go structs declare keys with field tags:
//
//	type Point struct {
//		X     int32   `lipi:"1"`
//		Y     int32   `lipi:"2"`
//		Label *string `lipi:"3"`
//		Tags  []string `lipi:"4,omitempty"`
//	}
//
// Pointer and omitempty fields are optional; a missing key leaves them
// at their zero value. Any other tagged field is required, and a
// missing key fails with [*RequiredFieldError]. Numeric fields accept
// smaller wire types: an f64 field accepts u8, i8, f32, f64, a uint
// that fits 32 bits and an int that fits 32 bits. [DecodeField]
// documents the full table.
//
// [FieldReader] walks a struct body field by field without building a
// tree, for hand-written decoders.
//
// # Buffer lifetime
//
// Decoded trees alias the input buffer: [Str] values, [U8List],
// [I8List], [BoolList] views and [Unknown] payloads point into it
// without copying. The caller must keep the buffer alive and unchanged
// for as long as the tree is in use. Values converted into ordinary Go
// types (string, []byte, records) are copies and carry no such
// restriction.
//
// # Encoding
//
// [Encoder] writes payloads and header-prefixed fields to an
// [io.Writer]. [Marshal] encodes Go values with the same mapping
// [Convert] reads, and [Encode] writes a value tree. Types can take
// over their own encoding with [Marshaler] and decoding with
// [Unmarshaler].
//
// All decoding is synchronous and allocation-bounded by the input: a
// list or table that claims more elements than the remaining bytes
// could hold fails before anything is allocated.
package lipi
