// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lipi

import "fmt"

// Tag is the 4-bit wire type carried in the low nibble of every
// header byte. These values are protocol constants.
type Tag uint8

const (
	TagFalse  Tag = 0
	TagTrue   Tag = 1
	TagU8     Tag = 2
	TagI8     Tag = 3
	TagF32    Tag = 4
	TagF64    Tag = 5
	TagUInt   Tag = 6
	TagInt    Tag = 7
	TagStr    Tag = 8
	TagStruct Tag = 9
	TagUnion  Tag = 10
	TagList   Tag = 11
	TagTable  Tag = 12

	// Reserved for future types. Old decoders carry their payload as
	// an opaque length-prefixed blob.
	TagUnknownI   Tag = 13
	TagUnknownII  Tag = 14
	TagUnknownIII Tag = 15
)

var tagNames = [16]string{
	"false", "true", "u8", "i8", "f32", "f64", "uint", "int",
	"str", "struct", "union", "list", "table",
	"unknown I", "unknown II", "unknown III",
}

// String returns the tag's name, e.g. "uint" or "struct".
func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return fmt.Sprintf("tag(%d)", uint8(t))
}

// IsUnknown reports whether t is one of the three reserved
// forward-compatibility tags.
func (t Tag) IsUnknown() bool {
	return t >= TagUnknownI && t <= TagUnknownIII
}

// IsBool reports whether t carries a boolean in the tag itself.
func (t Tag) IsBool() bool {
	return t == TagFalse || t == TagTrue
}

// Valid reports whether t fits the 4-bit tag space.
func (t Tag) Valid() bool {
	return t <= TagUnknownIII
}

func boolTag(value bool) Tag {
	if value {
		return TagTrue
	}
	return TagFalse
}
