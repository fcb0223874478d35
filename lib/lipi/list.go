// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lipi

import "github.com/bureau-foundation/lipi/lib/bitset"

// List is a homogeneous sequence. Every List is also a [Value] with
// tag [TagList]; ElemTag names the element type written in the list
// header.
type List interface {
	Value
	ElemTag() Tag
	Len() int
	// Index returns element i as a standalone Value.
	Index(i int) Value
}

type (
	// BoolList is a packed boolean list. Decoded lists are views over
	// the input buffer.
	BoolList struct{ Bits bitset.BitSet }

	// U8List and I8List alias the input buffer when decoded.
	U8List []byte
	I8List []int8

	F32List    []float32
	F64List    []float64
	UIntList   []uint64
	IntList    []int64
	StrList    []string
	StructList []Entries
	UnionList  []Entry
	ListList   []List
	TableList  []Table

	// UnknownList holds the opaque elements of a list whose element
	// tag is reserved.
	UnknownList struct {
		Code  Tag
		Items [][]byte
	}
)

// NewBoolList packs values into a BoolList.
func NewBoolList(values []bool) BoolList {
	return BoolList{Bits: bitset.FromBools(values)}
}

func (BoolList) Tag() Tag    { return TagList }
func (U8List) Tag() Tag      { return TagList }
func (I8List) Tag() Tag      { return TagList }
func (F32List) Tag() Tag     { return TagList }
func (F64List) Tag() Tag     { return TagList }
func (UIntList) Tag() Tag    { return TagList }
func (IntList) Tag() Tag     { return TagList }
func (StrList) Tag() Tag     { return TagList }
func (StructList) Tag() Tag  { return TagList }
func (UnionList) Tag() Tag   { return TagList }
func (ListList) Tag() Tag    { return TagList }
func (TableList) Tag() Tag   { return TagList }
func (UnknownList) Tag() Tag { return TagList }

func (BoolList) isValue()    {}
func (U8List) isValue()      {}
func (I8List) isValue()      {}
func (F32List) isValue()     {}
func (F64List) isValue()     {}
func (UIntList) isValue()    {}
func (IntList) isValue()     {}
func (StrList) isValue()     {}
func (StructList) isValue()  {}
func (UnionList) isValue()   {}
func (ListList) isValue()    {}
func (TableList) isValue()   {}
func (UnknownList) isValue() {}

func (BoolList) ElemTag() Tag      { return TagTrue }
func (U8List) ElemTag() Tag        { return TagU8 }
func (I8List) ElemTag() Tag        { return TagI8 }
func (F32List) ElemTag() Tag       { return TagF32 }
func (F64List) ElemTag() Tag       { return TagF64 }
func (UIntList) ElemTag() Tag      { return TagUInt }
func (IntList) ElemTag() Tag       { return TagInt }
func (StrList) ElemTag() Tag       { return TagStr }
func (StructList) ElemTag() Tag    { return TagStruct }
func (UnionList) ElemTag() Tag     { return TagUnion }
func (ListList) ElemTag() Tag      { return TagList }
func (TableList) ElemTag() Tag     { return TagTable }
func (l UnknownList) ElemTag() Tag { return l.Code }

func (l BoolList) Len() int    { return l.Bits.Len() }
func (l U8List) Len() int      { return len(l) }
func (l I8List) Len() int      { return len(l) }
func (l F32List) Len() int     { return len(l) }
func (l F64List) Len() int     { return len(l) }
func (l UIntList) Len() int    { return len(l) }
func (l IntList) Len() int     { return len(l) }
func (l StrList) Len() int     { return len(l) }
func (l StructList) Len() int  { return len(l) }
func (l UnionList) Len() int   { return len(l) }
func (l ListList) Len() int    { return len(l) }
func (l TableList) Len() int   { return len(l) }
func (l UnknownList) Len() int { return len(l.Items) }

func (l BoolList) Index(i int) Value    { return Bool(l.Bits.Has(i)) }
func (l U8List) Index(i int) Value      { return U8(l[i]) }
func (l I8List) Index(i int) Value      { return I8(l[i]) }
func (l F32List) Index(i int) Value     { return F32(l[i]) }
func (l F64List) Index(i int) Value     { return F64(l[i]) }
func (l UIntList) Index(i int) Value    { return UInt(l[i]) }
func (l IntList) Index(i int) Value     { return Int(l[i]) }
func (l StrList) Index(i int) Value     { return Str(l[i]) }
func (l StructList) Index(i int) Value  { return l[i] }
func (l UnionList) Index(i int) Value   { return l[i] }
func (l ListList) Index(i int) Value    { return l[i] }
func (l TableList) Index(i int) Value   { return l[i] }
func (l UnknownList) Index(i int) Value { return Unknown{Code: l.Code, Bytes: l.Items[i]} }
