// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lipi

import "math"

// Value is one node of a decoded tree. The set of implementations is
// closed: [Bool], [U8], [I8], [F32], [F64], [UInt], [Int], [Str],
// [Entries] (struct), [Entry] (union), [Table], [Unknown], and the
// [List] variants. Consumers dispatch with an exhaustive type switch.
type Value interface {
	// Tag returns the wire tag this value is written with.
	Tag() Tag
	isValue()
}

type (
	Bool bool
	U8   uint8
	I8   int8
	F32  float32
	F64  float64
	UInt uint64
	Int  int64

	// Str aliases the decoded input buffer when produced by the
	// parser; see the package documentation for the lifetime rule.
	Str string
)

func (v Bool) Tag() Tag { return boolTag(bool(v)) }
func (U8) Tag() Tag     { return TagU8 }
func (I8) Tag() Tag     { return TagI8 }
func (F32) Tag() Tag    { return TagF32 }
func (F64) Tag() Tag    { return TagF64 }
func (UInt) Tag() Tag   { return TagUInt }
func (Int) Tag() Tag    { return TagInt }
func (Str) Tag() Tag    { return TagStr }

func (Bool) isValue() {}
func (U8) isValue()   {}
func (I8) isValue()   {}
func (F32) isValue()  {}
func (F64) isValue()  {}
func (UInt) isValue() {}
func (Int) isValue()  {}
func (Str) isValue()  {}

// Unknown is the opaque payload of a reserved tag (13, 14 or 15).
// Bytes aliases the input buffer.
type Unknown struct {
	Code  Tag
	Bytes []byte
}

func (v Unknown) Tag() Tag { return v.Code }
func (Unknown) isValue()   {}

// TypeName returns a short human-readable name for v's runtime type,
// used in diagnostics: "bool", "u8", "str", "[uint]", "table".
func TypeName(v Value) string {
	switch value := v.(type) {
	case nil:
		return "nothing"
	case Bool:
		return "bool"
	case List:
		return "[" + elemName(value) + "]"
	default:
		return v.Tag().String()
	}
}

func elemName(list List) string {
	switch list.(type) {
	case BoolList:
		return "bool"
	case ListList:
		return "list"
	default:
		return list.ElemTag().String()
	}
}

// Equal reports whether a and b are the same tree. Floats compare
// bitwise, so NaN payloads and signed zeros are distinguished; boolean
// lists ignore slack bits.
func Equal(a, b Value) bool {
	switch left := a.(type) {
	case nil:
		return b == nil
	case Bool, U8, I8, UInt, Int, Str:
		return a == b
	case F32:
		right, ok := b.(F32)
		return ok && math.Float32bits(float32(left)) == math.Float32bits(float32(right))
	case F64:
		right, ok := b.(F64)
		return ok && math.Float64bits(float64(left)) == math.Float64bits(float64(right))
	case Unknown:
		right, ok := b.(Unknown)
		return ok && left.Code == right.Code && string(left.Bytes) == string(right.Bytes)
	case Entries:
		right, ok := b.(Entries)
		return ok && left.Equal(right)
	case Entry:
		right, ok := b.(Entry)
		return ok && left.Key == right.Key && Equal(left.Value, right.Value)
	case Table:
		right, ok := b.(Table)
		return ok && left.Equal(right)
	case List:
		right, ok := b.(List)
		return ok && listEqual(left, right)
	}
	return false
}

func listEqual(a, b List) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.ElemTag() != b.ElemTag() || a.Len() != b.Len() {
		return false
	}
	if left, ok := a.(BoolList); ok {
		right, ok := b.(BoolList)
		return ok && left.Bits.Equal(right.Bits)
	}
	for index := 0; index < a.Len(); index++ {
		if !Equal(a.Index(index), b.Index(index)) {
			return false
		}
	}
	return true
}
