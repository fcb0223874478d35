// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lipi

import (
	"bytes"
	"io"
	"math"

	"github.com/bureau-foundation/lipi/lib/bitset"
	"github.com/bureau-foundation/lipi/lib/varint"
)

// flushThreshold is the buffered size at which an Encoder hands its
// bytes to the sink.
const flushThreshold = 32 << 10

// maxHeaderLength is the largest list length a header can carry.
const maxHeaderLength = math.MaxUint32

// Encoder writes lipi payloads to a sink. Writes are buffered; call
// Flush when done. Output already flushed before an error is not
// rolled back.
//
// The first sink error is sticky: every later call returns it.
type Encoder struct {
	w   io.Writer
	buf []byte
	err error
}

// NewEncoder returns an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w, buf: make([]byte, 0, 512)}
}

// Flush writes any buffered bytes to the sink.
func (e *Encoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	if len(e.buf) == 0 {
		return nil
	}
	_, e.err = e.w.Write(e.buf)
	e.buf = e.buf[:0]
	return e.err
}

func (e *Encoder) spill() error {
	if e.err != nil {
		return e.err
	}
	if len(e.buf) >= flushThreshold {
		return e.Flush()
	}
	return nil
}

// WriteHeader writes one header byte (plus extension).
func (e *Encoder) WriteHeader(id uint32, tag Tag) error {
	e.buf = AppendHeader(e.buf, id, tag)
	return e.spill()
}

// WriteUvarint writes a bare LEB128 integer.
func (e *Encoder) WriteUvarint(value uint64) error {
	e.buf = varint.AppendUvarint(e.buf, value)
	return e.spill()
}

// WriteStructHeader starts a struct body of count fields. The caller
// must follow it with exactly count field writes.
func (e *Encoder) WriteStructHeader(count int) error {
	return e.WriteUvarint(uint64(count))
}

// WriteListHeader starts a list of length elements of tag. The caller
// follows it with bare payloads (or packed bits for booleans).
func (e *Encoder) WriteListHeader(length int, tag Tag) error {
	if length < 0 || uint64(length) > maxHeaderLength {
		return &LengthOverflowError{Length: length}
	}
	return e.WriteHeader(uint32(length), tag)
}

func (e *Encoder) writeBytes(data []byte) error {
	if e.err != nil {
		return e.err
	}
	if len(e.buf)+len(data) > flushThreshold {
		if err := e.Flush(); err != nil {
			return err
		}
		if len(data) >= flushThreshold {
			_, e.err = e.w.Write(data)
			return e.err
		}
	}
	e.buf = append(e.buf, data...)
	return nil
}

func (e *Encoder) writeBlob(data []byte) error {
	e.buf = varint.AppendUvarint(e.buf, uint64(len(data)))
	return e.writeBytes(data)
}

func (e *Encoder) writeString(s string) error {
	e.buf = varint.AppendUvarint(e.buf, uint64(len(s)))
	if len(s) < flushThreshold {
		e.buf = append(e.buf, s...)
		return e.spill()
	}
	return e.writeBytes([]byte(s))
}

func (e *Encoder) appendFloat32(f float32) {
	bits := math.Float32bits(f)
	e.buf = append(e.buf, byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24))
}

func (e *Encoder) appendFloat64(f float64) {
	bits := math.Float64bits(f)
	e.buf = append(e.buf,
		byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24),
		byte(bits>>32), byte(bits>>40), byte(bits>>48), byte(bits>>56))
}

// WriteValue writes the payload of a value tree node. Booleans write
// nothing: their value lives in the header tag.
func (e *Encoder) WriteValue(v Value) error {
	switch value := v.(type) {
	case Bool:
		return e.err
	case U8:
		e.buf = append(e.buf, byte(value))
	case I8:
		e.buf = append(e.buf, byte(value))
	case F32:
		e.appendFloat32(float32(value))
	case F64:
		e.appendFloat64(float64(value))
	case UInt:
		e.buf = varint.AppendUvarint(e.buf, uint64(value))
	case Int:
		e.buf = varint.AppendUvarint(e.buf, varint.ZigZag(int64(value)))
	case Str:
		return e.writeString(string(value))
	case Unknown:
		return e.writeBlob(value.Bytes)
	case Entries:
		return e.writeEntries(value)
	case Entry:
		return e.Field(value.Key, value.Value)
	case Table:
		return e.writeTable(value)
	case List:
		if err := e.WriteListHeader(value.Len(), value.ElemTag()); err != nil {
			return err
		}
		return e.writeElements(value)
	case nil:
		return &InvalidTypeError{Found: "nothing", Expected: "value"}
	}
	return e.spill()
}

// Field writes a header-prefixed value: the field form used inside
// struct bodies and unions.
func (e *Encoder) Field(key uint16, v Value) error {
	if v == nil {
		return withKey(key, &InvalidTypeError{Found: "nothing", Expected: "value"})
	}
	if err := e.WriteHeader(uint32(key), v.Tag()); err != nil {
		return err
	}
	return e.WriteValue(v)
}

func (e *Encoder) writeEntries(entries Entries) error {
	if err := e.WriteStructHeader(len(entries)); err != nil {
		return err
	}
	for _, entry := range entries {
		if err := e.Field(entry.Key, entry.Value); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) writeTable(table Table) error {
	for _, column := range table.Columns {
		if column.List == nil || column.List.Len() != table.Rows {
			length := 0
			if column.List != nil {
				length = column.List.Len()
			}
			return &ColumnLengthError{Key: column.Key, Length: length, Rows: table.Rows}
		}
	}
	e.buf = varint.AppendUvarint(e.buf, uint64(len(table.Columns)))
	e.buf = varint.AppendUvarint(e.buf, uint64(table.Rows))
	for _, column := range table.Columns {
		if err := e.WriteHeader(uint32(column.Key), column.List.ElemTag()); err != nil {
			return err
		}
		if err := e.writeElements(column.List); err != nil {
			return err
		}
	}
	return nil
}

// writeElements writes a list's bare payloads, without its header.
func (e *Encoder) writeElements(list List) error {
	switch values := list.(type) {
	case BoolList:
		packed := values.Bits.Bytes()
		if len(packed) != bitset.PackedLen(values.Len()) {
			packed = bitset.FromBools(values.Bits.Bools()).Bytes()
		}
		// Slack bits past Len are written as zero; a decoded view may
		// carry them set.
		if slack := values.Len() % 8; slack != 0 {
			last := len(packed) - 1
			if err := e.writeBytes(packed[:last]); err != nil {
				return err
			}
			return e.writeBytes([]byte{packed[last] & (1<<slack - 1)})
		}
		return e.writeBytes(packed)
	case U8List:
		return e.writeBytes(values)
	case I8List:
		for _, value := range values {
			e.buf = append(e.buf, byte(value))
		}
	case F32List:
		for _, value := range values {
			e.appendFloat32(value)
			if err := e.spill(); err != nil {
				return err
			}
		}
	case F64List:
		for _, value := range values {
			e.appendFloat64(value)
			if err := e.spill(); err != nil {
				return err
			}
		}
	case UIntList:
		for _, value := range values {
			e.buf = varint.AppendUvarint(e.buf, value)
			if err := e.spill(); err != nil {
				return err
			}
		}
	case IntList:
		for _, value := range values {
			e.buf = varint.AppendUvarint(e.buf, varint.ZigZag(value))
			if err := e.spill(); err != nil {
				return err
			}
		}
	case StrList:
		for _, value := range values {
			if err := e.writeString(value); err != nil {
				return err
			}
		}
	case UnknownList:
		for _, item := range values.Items {
			if err := e.writeBlob(item); err != nil {
				return err
			}
		}
	default:
		for index := range list.Len() {
			if err := e.WriteValue(list.Index(index)); err != nil {
				return err
			}
		}
	}
	return e.spill()
}

// BoolField writes a boolean field: one header byte, no payload.
func (e *Encoder) BoolField(key uint16, value bool) error {
	return e.WriteHeader(uint32(key), boolTag(value))
}

// U8Field writes a u8 field.
func (e *Encoder) U8Field(key uint16, value uint8) error {
	return e.Field(key, U8(value))
}

// I8Field writes an i8 field.
func (e *Encoder) I8Field(key uint16, value int8) error {
	return e.Field(key, I8(value))
}

// UintField writes an unsigned varint field.
func (e *Encoder) UintField(key uint16, value uint64) error {
	return e.Field(key, UInt(value))
}

// IntField writes a zig-zag varint field.
func (e *Encoder) IntField(key uint16, value int64) error {
	return e.Field(key, Int(value))
}

// Float32Field writes an f32 field.
func (e *Encoder) Float32Field(key uint16, value float32) error {
	return e.Field(key, F32(value))
}

// Float64Field writes an f64 field.
func (e *Encoder) Float64Field(key uint16, value float64) error {
	return e.Field(key, F64(value))
}

// StringField writes a string field.
func (e *Encoder) StringField(key uint16, value string) error {
	return e.Field(key, Str(value))
}

// BytesField writes a u8 list field.
func (e *Encoder) BytesField(key uint16, value []byte) error {
	return e.Field(key, U8List(value))
}

// BoolsField writes a packed boolean list field.
func (e *Encoder) BoolsField(key uint16, value []bool) error {
	return e.Field(key, NewBoolList(value))
}

// Encode writes the payload of an arbitrary Go value, using the same
// mapping as [Marshal].
func (e *Encoder) Encode(v any) error {
	return e.encodeAny(v)
}

// Encode returns the complete message for a value tree.
func Encode(entries Entries) ([]byte, error) {
	var out bytes.Buffer
	encoder := NewEncoder(&out)
	if err := encoder.WriteValue(entries); err != nil {
		return nil, err
	}
	if err := encoder.Flush(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
