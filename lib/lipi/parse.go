// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lipi

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"
	"unsafe"

	"github.com/bureau-foundation/lipi/lib/bitset"
	"github.com/bureau-foundation/lipi/lib/varint"
)

// DefaultMaxDepth bounds container nesting (struct, union, list,
// table) during parsing. The top-level struct counts as depth 1.
const DefaultMaxDepth = 128

// TrailingDataError reports bytes left over after a complete message.
type TrailingDataError struct {
	Offset    int
	Remaining int
}

func (e *TrailingDataError) Error() string {
	return fmt.Sprintf("lipi: %d unexpected trailing bytes at offset %d", e.Remaining, e.Offset)
}

// ParseOptions configures the parser. The zero value uses
// [DefaultMaxDepth].
type ParseOptions struct {
	// MaxDepth is the deepest container nesting accepted. Values
	// <= 0 select DefaultMaxDepth.
	MaxDepth int
}

// Parse decodes a complete message: one count-prefixed struct body
// spanning all of data. The returned tree aliases data.
func Parse(data []byte) (Entries, error) {
	return ParseOptions{}.Parse(data)
}

// ParseStruct decodes one struct body at the cursor's position. Bytes
// after the body are left unread.
func ParseStruct(cursor *Cursor) (Entries, error) {
	return ParseOptions{}.ParseStruct(cursor)
}

// Parse is [Parse] with these options.
func (o ParseOptions) Parse(data []byte) (Entries, error) {
	cursor := NewCursor(data)
	entries, err := o.ParseStruct(cursor)
	if err != nil {
		return nil, err
	}
	if cursor.Remaining() > 0 {
		return nil, &TrailingDataError{Offset: cursor.Offset(), Remaining: cursor.Remaining()}
	}
	return entries, nil
}

// ParseStruct is [ParseStruct] with these options.
func (o ParseOptions) ParseStruct(cursor *Cursor) (Entries, error) {
	return o.parser(cursor).entries()
}

// ParseValue decodes the payload of a value whose header carried tag.
func (o ParseOptions) ParseValue(tag Tag, cursor *Cursor) (Value, error) {
	return o.parser(cursor).value(tag)
}

func (o ParseOptions) parser(cursor *Cursor) *parser {
	limit := o.MaxDepth
	if limit <= 0 {
		limit = DefaultMaxDepth
	}
	return &parser{cursor: cursor, maxDepth: limit}
}

// parser is a recursive-descent decoder. It never backtracks; depth
// counts the containers currently open.
type parser struct {
	cursor   *Cursor
	depth    int
	maxDepth int
}

func (p *parser) enter() error {
	if p.depth >= p.maxDepth {
		return &MaxDepthError{Limit: p.maxDepth}
	}
	p.depth++
	return nil
}

func (p *parser) leave() { p.depth-- }

// nested marks the parser as already inside one struct body, for
// callers that consumed the body's count themselves.
func (p *parser) nested() *parser {
	p.depth = 1
	return p
}

// count reads a length and rejects it early when even one byte per
// element would run past the input.
func (p *parser) count() (int, error) {
	length, err := p.cursor.ReadLength()
	if err != nil {
		return 0, err
	}
	if err := p.cursor.need(length); err != nil {
		return 0, err
	}
	return length, nil
}

func (p *parser) entries() (Entries, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	count, err := p.count()
	if err != nil {
		return nil, err
	}
	entries := make(Entries, 0, count)
	for range count {
		key, tag, err := p.cursor.readKey()
		if err != nil {
			return nil, err
		}
		value, err := p.value(tag)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Key: key, Value: value})
	}
	return entries, nil
}

func (p *parser) value(tag Tag) (Value, error) {
	switch tag {
	case TagFalse:
		return Bool(false), nil
	case TagTrue:
		return Bool(true), nil
	case TagU8:
		b, err := p.cursor.ReadByte()
		return U8(b), err
	case TagI8:
		b, err := p.cursor.ReadByte()
		return I8(int8(b)), err
	case TagF32:
		bits, err := p.cursor.ReadUint32LE()
		return F32(math.Float32frombits(bits)), err
	case TagF64:
		bits, err := p.cursor.ReadUint64LE()
		return F64(math.Float64frombits(bits)), err
	case TagUInt:
		value, err := p.cursor.ReadUvarint()
		return UInt(value), err
	case TagInt:
		value, err := p.cursor.ReadUvarint()
		return Int(varint.UnZigZag(value)), err
	case TagStr:
		value, err := p.str()
		return Str(value), err
	case TagStruct:
		return p.entries()
	case TagUnion:
		return p.union()
	case TagList:
		return p.list()
	case TagTable:
		return p.table()
	case TagUnknownI, TagUnknownII, TagUnknownIII:
		blob, err := p.blob()
		return Unknown{Code: tag, Bytes: blob}, err
	default:
		return nil, &UnknownTypeCodeError{Code: uint8(tag)}
	}
}

func (p *parser) blob() ([]byte, error) {
	length, err := p.cursor.ReadLength()
	if err != nil {
		return nil, err
	}
	return p.cursor.ReadSlice(length)
}

// str returns a string sharing memory with the input buffer.
func (p *parser) str() (string, error) {
	raw, err := p.blob()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(raw) {
		return "", ErrInvalidUTF8
	}
	if len(raw) == 0 {
		return "", nil
	}
	return unsafe.String(unsafe.SliceData(raw), len(raw)), nil
}

func (p *parser) union() (Entry, error) {
	if err := p.enter(); err != nil {
		return Entry{}, err
	}
	defer p.leave()

	key, tag, err := p.cursor.readKey()
	if err != nil {
		return Entry{}, err
	}
	value, err := p.value(tag)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Key: key, Value: value}, nil
}

func (p *parser) list() (List, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	start := p.cursor.Offset()
	length, tag, err := p.cursor.ReadHeader()
	if err != nil {
		return nil, err
	}
	if length > uint64(maxInt) {
		p.cursor.offset = start
		return nil, &LengthRangeError{Length: length}
	}
	return p.elements(int(length), tag)
}

func (p *parser) table() (Table, error) {
	if err := p.enter(); err != nil {
		return Table{}, err
	}
	defer p.leave()

	columns, err := p.count()
	if err != nil {
		return Table{}, err
	}
	rows, err := p.cursor.ReadLength()
	if err != nil {
		return Table{}, err
	}
	table := Table{Rows: rows, Columns: make([]Column, 0, columns)}
	for range columns {
		key, tag, err := p.cursor.readKey()
		if err != nil {
			return Table{}, err
		}
		list, err := p.elements(rows, tag)
		if err != nil {
			return Table{}, err
		}
		table.Columns = append(table.Columns, Column{Key: key, List: list})
	}
	return table, nil
}

// elements parses length bare payloads of the given tag: the body of a
// list after its header, or one table column.
func (p *parser) elements(length int, tag Tag) (List, error) {
	if tag.IsBool() {
		packed, err := p.cursor.ReadSlice(bitset.PackedLen(length))
		if err != nil {
			return nil, err
		}
		return BoolList{Bits: bitset.View(length, packed)}, nil
	}
	if err := p.cursor.need(length); err != nil {
		return nil, err
	}

	switch tag {
	case TagU8:
		raw, err := p.cursor.ReadSlice(length)
		return U8List(raw), err
	case TagI8:
		raw, err := p.cursor.ReadSlice(length)
		if err != nil {
			return nil, err
		}
		if length == 0 {
			return I8List{}, nil
		}
		return I8List(unsafe.Slice((*int8)(unsafe.Pointer(unsafe.SliceData(raw))), length)), nil
	case TagF32:
		raw, err := p.cursor.ReadSlice(length * 4)
		if err != nil {
			return nil, err
		}
		values := make(F32List, length)
		for index := range values {
			values[index] = math.Float32frombits(binary.LittleEndian.Uint32(raw[index*4:]))
		}
		return values, nil
	case TagF64:
		raw, err := p.cursor.ReadSlice(length * 8)
		if err != nil {
			return nil, err
		}
		values := make(F64List, length)
		for index := range values {
			values[index] = math.Float64frombits(binary.LittleEndian.Uint64(raw[index*8:]))
		}
		return values, nil
	case TagUInt:
		return collect[UIntList](length, p.cursor.ReadUvarint)
	case TagInt:
		return collect[IntList](length, func() (int64, error) {
			value, err := p.cursor.ReadUvarint()
			return varint.UnZigZag(value), err
		})
	case TagStr:
		return collect[StrList](length, p.str)
	case TagStruct:
		return collect[StructList](length, p.entries)
	case TagUnion:
		return collect[UnionList](length, p.union)
	case TagList:
		return collect[ListList](length, p.list)
	case TagTable:
		return collect[TableList](length, p.table)
	case TagUnknownI, TagUnknownII, TagUnknownIII:
		items, err := collect[[][]byte](length, p.blob)
		if err != nil {
			return nil, err
		}
		return UnknownList{Code: tag, Items: items}, nil
	default:
		return nil, &UnknownTypeCodeError{Code: uint8(tag)}
	}
}

func collect[S ~[]E, E any](length int, next func() (E, error)) (S, error) {
	out := make(S, 0, length)
	for range length {
		element, err := next()
		if err != nil {
			return nil, err
		}
		out = append(out, element)
	}
	return out, nil
}
