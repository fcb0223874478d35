// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lipi

import (
	"bytes"
	"cmp"
	"reflect"
	"slices"

	"github.com/bureau-foundation/lipi/lib/bitset"
	"github.com/bureau-foundation/lipi/lib/varint"
)

// Marshal returns the message encoding of v, which must map to a
// struct: a Go struct with lipi-tagged fields, an [Entries] tree, or a
// [Marshaler] whose tag is [TagStruct].
//
// Go types map as follows: bool to the tag nibble; uint8 and int8 to
// u8 and i8; wider integers to uint and int varints; float32 and
// float64 to f32 and f64; string to str; slices and arrays to lists
// ([]bool packed, []byte raw); maps to a two-column table with
// sorted keys in column 0 and values in column 1; pointers and
// interfaces to their target. [Value] trees encode as themselves.
func Marshal(v any) ([]byte, error) {
	value := reflect.ValueOf(v)
	tag, err := tagOf(value)
	if err != nil {
		return nil, err
	}
	if tag != TagStruct {
		return nil, &InvalidTypeError{Found: tag.String(), Expected: "struct"}
	}

	var out bytes.Buffer
	encoder := NewEncoder(&out)
	if err := encoder.encodeValue(value); err != nil {
		return nil, err
	}
	if err := encoder.Flush(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func (e *Encoder) encodeAny(v any) error {
	return e.encodeValue(reflect.ValueOf(v))
}

// EncodeField writes v as a header-prefixed field, using the mapping
// of [Marshal].
func (e *Encoder) EncodeField(key uint16, v any) error {
	value := reflect.ValueOf(v)
	tag, err := tagOf(value)
	if err != nil {
		return withKey(key, err)
	}
	if err := e.WriteHeader(uint32(key), tag); err != nil {
		return err
	}
	if err := e.encodeValue(value); err != nil {
		return withKey(key, err)
	}
	return nil
}

// tagOf returns the wire tag for one Go value.
func tagOf(value reflect.Value) (Tag, error) {
	if !value.IsValid() {
		return 0, &InvalidTypeError{Found: "nothing", Expected: "value"}
	}
	t := value.Type()
	switch {
	case t.Implements(marshalerType):
		if isNil(value) {
			return 0, &InvalidTypeError{Found: "nothing", Expected: t.String()}
		}
		return value.Interface().(Marshaler).LipiTag(), nil
	case value.CanAddr() && reflect.PointerTo(t).Implements(marshalerType):
		return value.Addr().Interface().(Marshaler).LipiTag(), nil
	case t.Implements(valueType):
		if isNil(value) && t.Kind() == reflect.Interface {
			return 0, &InvalidTypeError{Found: "nothing", Expected: t.String()}
		}
		return value.Interface().(Value).Tag(), nil
	}
	switch t.Kind() {
	case reflect.Bool:
		return boolTag(value.Bool()), nil
	case reflect.Pointer, reflect.Interface:
		if value.IsNil() {
			return 0, &InvalidTypeError{Found: "nothing", Expected: t.String()}
		}
		return tagOf(value.Elem())
	}
	return typeTag(t)
}

func isNil(value reflect.Value) bool {
	switch value.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return value.IsNil()
	}
	return false
}

// typeTag returns the static wire tag for values of type t: the
// element tag written in list headers and table column headers.
func typeTag(t reflect.Type) (Tag, error) {
	if t.Implements(marshalerType) || reflect.PointerTo(t).Implements(marshalerType) {
		probe := reflect.New(t)
		if t.Kind() == reflect.Pointer {
			probe = reflect.New(t.Elem())
		}
		return probe.Interface().(Marshaler).LipiTag(), nil
	}

	switch {
	case t.Kind() == reflect.Bool:
		return TagTrue, nil
	case t == reflect.TypeFor[Unknown](), t == reflect.TypeFor[UnknownList]():
		// The reserved code lives in the value, not the type.
		return 0, &UnsupportedTypeError{Type: t}
	case t.Kind() != reflect.Interface && t.Implements(valueType):
		return reflect.Zero(t).Interface().(Value).Tag(), nil
	}

	switch t.Kind() {
	case reflect.Uint8:
		return TagU8, nil
	case reflect.Int8:
		return TagI8, nil
	case reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint, reflect.Uintptr:
		return TagUInt, nil
	case reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		return TagInt, nil
	case reflect.Float32:
		return TagF32, nil
	case reflect.Float64:
		return TagF64, nil
	case reflect.String:
		return TagStr, nil
	case reflect.Map:
		return TagTable, nil
	case reflect.Slice, reflect.Array:
		return TagList, nil
	case reflect.Pointer:
		return typeTag(t.Elem())
	case reflect.Struct:
		return TagStruct, nil
	}
	return 0, &UnsupportedTypeError{Type: t}
}

// encodeValue writes the payload of one Go value.
func (e *Encoder) encodeValue(value reflect.Value) error {
	if !value.IsValid() {
		return &InvalidTypeError{Found: "nothing", Expected: "value"}
	}
	t := value.Type()
	switch {
	case t.Implements(marshalerType):
		if isNil(value) {
			return &InvalidTypeError{Found: "nothing", Expected: t.String()}
		}
		return value.Interface().(Marshaler).MarshalLipi(e)
	case value.CanAddr() && reflect.PointerTo(t).Implements(marshalerType):
		return value.Addr().Interface().(Marshaler).MarshalLipi(e)
	case t.Implements(valueType):
		if isNil(value) && t.Kind() == reflect.Interface {
			return &InvalidTypeError{Found: "nothing", Expected: t.String()}
		}
		return e.WriteValue(value.Interface().(Value))
	}

	switch t.Kind() {
	case reflect.Bool:
		return e.err
	case reflect.Uint8:
		e.buf = append(e.buf, byte(value.Uint()))
	case reflect.Int8:
		e.buf = append(e.buf, byte(value.Int()))
	case reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint, reflect.Uintptr:
		e.buf = varint.AppendUvarint(e.buf, value.Uint())
	case reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		e.buf = varint.AppendUvarint(e.buf, varint.ZigZag(value.Int()))
	case reflect.Float32:
		e.appendFloat32(float32(value.Float()))
	case reflect.Float64:
		e.appendFloat64(value.Float())
	case reflect.String:
		return e.writeString(value.String())
	case reflect.Pointer, reflect.Interface:
		if value.IsNil() {
			return &InvalidTypeError{Found: "nothing", Expected: t.String()}
		}
		return e.encodeValue(value.Elem())
	case reflect.Struct:
		return e.encodeRecord(value)
	case reflect.Map:
		return e.encodeMap(value)
	case reflect.Slice, reflect.Array:
		return e.encodeList(value)
	default:
		return &UnsupportedTypeError{Type: t}
	}
	return e.spill()
}

func (e *Encoder) encodeRecord(value reflect.Value) error {
	table, err := recordFor(value.Type())
	if err != nil {
		return err
	}
	present := make([]*recordField, 0, len(table.fields))
	for index := range table.fields {
		field := &table.fields[index]
		if !field.omitted(value.Field(field.index)) {
			present = append(present, field)
		}
	}

	if err := e.WriteStructHeader(len(present)); err != nil {
		return err
	}
	for _, field := range present {
		fieldValue := value.Field(field.index)
		tag, err := tagOf(fieldValue)
		if err != nil {
			return withKey(field.key, err)
		}
		if err := e.WriteHeader(uint32(field.key), tag); err != nil {
			return err
		}
		if err := e.encodeValue(fieldValue); err != nil {
			return withKey(field.key, err)
		}
	}
	return nil
}

func (e *Encoder) encodeList(value reflect.Value) error {
	elemType := value.Type().Elem()
	tag, err := typeTag(elemType)
	if err != nil {
		return err
	}
	length := value.Len()
	if err := e.WriteListHeader(length, tag); err != nil {
		return err
	}
	if value.Kind() == reflect.Slice && elemType.Kind() == reflect.Uint8 && tag == TagU8 {
		return e.writeBytes(value.Bytes())
	}
	return e.encodeElements(length, value.Index, elemType, tag)
}

// encodeElements writes length bare payloads of one element type.
func (e *Encoder) encodeElements(length int, at func(int) reflect.Value, elemType reflect.Type, tag Tag) error {
	if elemType.Kind() == reflect.Bool && tag == TagTrue {
		bits := bitset.New(length)
		for index := range length {
			if at(index).Bool() {
				_, _ = bits.Insert(index)
			}
		}
		return e.writeBytes(bits.Bytes())
	}
	for index := range length {
		element := at(index)
		found, err := tagOf(element)
		if err != nil {
			return err
		}
		if found != tag {
			return &InvalidTypeError{Found: found.String(), Expected: tag.String()}
		}
		if err := e.encodeValue(element); err != nil {
			return err
		}
	}
	return e.spill()
}

// encodeMap writes a Go map as a two-column table: keys in column 0,
// values in column 1, rows in ascending key order.
func (e *Encoder) encodeMap(value reflect.Value) error {
	t := value.Type()
	compare, err := keyComparer(t.Key())
	if err != nil {
		return err
	}
	keyTag, err := typeTag(t.Key())
	if err != nil {
		return err
	}
	valueTag, err := typeTag(t.Elem())
	if err != nil {
		return err
	}

	keys := value.MapKeys()
	slices.SortFunc(keys, compare)
	values := make([]reflect.Value, len(keys))
	for index, key := range keys {
		values[index] = value.MapIndex(key)
	}

	e.buf = varint.AppendUvarint(e.buf, 2)
	e.buf = varint.AppendUvarint(e.buf, uint64(len(keys)))
	if err := e.WriteHeader(0, keyTag); err != nil {
		return err
	}
	at := func(index int) reflect.Value { return keys[index] }
	if err := e.encodeElements(len(keys), at, t.Key(), keyTag); err != nil {
		return err
	}
	if err := e.WriteHeader(1, valueTag); err != nil {
		return err
	}
	at = func(index int) reflect.Value { return values[index] }
	return e.encodeElements(len(values), at, t.Elem(), valueTag)
}

func keyComparer(t reflect.Type) (func(a, b reflect.Value) int, error) {
	switch t.Kind() {
	case reflect.String:
		return func(a, b reflect.Value) int { return cmp.Compare(a.String(), b.String()) }, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(a, b reflect.Value) int { return cmp.Compare(a.Int(), b.Int()) }, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(a, b reflect.Value) int { return cmp.Compare(a.Uint(), b.Uint()) }, nil
	case reflect.Float32, reflect.Float64:
		return func(a, b reflect.Value) int { return cmp.Compare(a.Float(), b.Float()) }, nil
	case reflect.Bool:
		return func(a, b reflect.Value) int {
			switch {
			case a.Bool() == b.Bool():
				return 0
			case b.Bool():
				return -1
			}
			return 1
		}, nil
	}
	return nil, &UnsupportedTypeError{Type: t}
}
