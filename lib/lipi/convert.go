// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lipi

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Convert converts a decoded value to T. Scalars follow the widening
// table of [DecodeField]; structs are decoded through their lipi
// field tags; slices and arrays convert element-wise from a list; maps
// convert from a table of exactly two columns (keys, values). Targets
// of a [Value] type receive the node itself, still aliasing the input
// buffer. Strings and byte slices in other targets are copied.
//
// Errors are [*ConvertError] values wrapping the cause.
func Convert[T any](v Value) (T, error) {
	var out T
	err := convertInto(v, reflect.ValueOf(&out).Elem())
	return out, asConvertError(err)
}

// Get looks up key and converts its value to T. A missing key yields
// the zero value when T is a pointer type and a [*RequiredFieldError]
// otherwise. Errors carry the key.
func Get[T any](entries Entries, key uint16) (T, error) {
	var out T
	value, ok := entries.Get(key)
	target := reflect.ValueOf(&out).Elem()
	if !ok {
		if target.Kind() == reflect.Pointer {
			return out, nil
		}
		return out, withKey(key, &RequiredFieldError{Name: "key " + strconv.Itoa(int(key))})
	}
	if err := convertInto(value, target); err != nil {
		return out, withKey(key, err)
	}
	return out, nil
}

// DecodeStruct converts a struct body into the value target points
// to. Tagged fields absent from entries are zeroed when optional and
// reported with [*RequiredFieldError] otherwise; untagged fields are
// zeroed; entries with keys the type does not declare are ignored.
func DecodeStruct(entries Entries, target any) error {
	return convertAny(entries, target)
}

// Unmarshal parses a complete message and decodes it into target.
func Unmarshal(data []byte, target any) error {
	return ParseOptions{}.Unmarshal(data, target)
}

// Unmarshal is [Unmarshal] with these options.
func (o ParseOptions) Unmarshal(data []byte, target any) error {
	entries, err := o.Parse(data)
	if err != nil {
		return err
	}
	return DecodeStruct(entries, target)
}

func convertAny(value Value, target any) error {
	pointer := reflect.ValueOf(target)
	if pointer.Kind() != reflect.Pointer || pointer.IsNil() {
		return fmt.Errorf("lipi: decode target must be a non-nil pointer, got %T", target)
	}
	return asConvertError(convertInto(value, pointer.Elem()))
}

func asConvertError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*ConvertError); ok {
		return err
	}
	return &ConvertError{Err: err}
}

// convertInto stores value into the settable target.
func convertInto(value Value, target reflect.Value) error {
	t := target.Type()
	if target.CanAddr() && reflect.PointerTo(t).Implements(unmarshalerType) {
		return target.Addr().Interface().(Unmarshaler).UnmarshalLipi(value)
	}
	if value == nil {
		return invalidValue(nil, t)
	}

	dynamic := reflect.TypeOf(value)
	if t.Kind() == reflect.Interface {
		if !dynamic.Implements(t) {
			return invalidValue(value, t)
		}
		target.Set(reflect.ValueOf(value))
		return nil
	}
	if dynamic == t {
		target.Set(reflect.ValueOf(value))
		return nil
	}
	if t.Implements(valueType) {
		// Value node types other than scalars only take themselves.
		switch t.Kind() {
		case reflect.Struct, reflect.Slice, reflect.Map:
			return invalidValue(value, t)
		}
	}

	switch t.Kind() {
	case reflect.Bool, reflect.String, reflect.Float32, reflect.Float64,
		reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint, reflect.Uintptr,
		reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		if err := setScalar(target, value); err != nil {
			return err
		}
		if t.Kind() == reflect.String {
			target.SetString(strings.Clone(target.String()))
		}
		return nil
	case reflect.Pointer:
		element := reflect.New(t.Elem())
		if err := convertInto(value, element.Elem()); err != nil {
			return err
		}
		target.Set(element)
		return nil
	case reflect.Struct:
		entries, ok := value.(Entries)
		if !ok {
			return invalidValue(value, t)
		}
		return decodeRecord(entries, target)
	case reflect.Slice:
		return convertSlice(value, target)
	case reflect.Array:
		return convertArray(value, target)
	case reflect.Map:
		return convertMap(value, target)
	}
	return &UnsupportedTypeError{Type: t}
}

func decodeRecord(entries Entries, target reflect.Value) error {
	table, err := recordFor(target.Type())
	if err != nil {
		return err
	}
	target.SetZero()
	for index := range table.fields {
		field := &table.fields[index]
		value, ok := entries.Get(field.key)
		if !ok {
			if field.optional {
				continue
			}
			return withKey(field.key, &RequiredFieldError{Name: field.name})
		}
		if err := convertInto(value, target.Field(field.index)); err != nil {
			return withKey(field.key, err)
		}
	}
	return nil
}

func convertSlice(value Value, target reflect.Value) error {
	t := target.Type()
	list, ok := value.(List)
	if !ok {
		return invalidValue(value, t)
	}
	if raw, ok := list.(U8List); ok && t.Elem().Kind() == reflect.Uint8 {
		out := reflect.MakeSlice(t, len(raw), len(raw))
		reflect.Copy(out, reflect.ValueOf([]byte(raw)))
		target.Set(out)
		return nil
	}
	out := reflect.MakeSlice(t, list.Len(), list.Len())
	for index := range list.Len() {
		if err := convertInto(list.Index(index), out.Index(index)); err != nil {
			return err
		}
	}
	target.Set(out)
	return nil
}

func convertArray(value Value, target reflect.Value) error {
	t := target.Type()
	list, ok := value.(List)
	if !ok {
		return invalidValue(value, t)
	}
	if list.Len() != t.Len() {
		return &InvalidTypeError{
			Found:    fmt.Sprintf("%s of length %d", TypeName(value), list.Len()),
			Expected: t.String(),
		}
	}
	for index := range list.Len() {
		if err := convertInto(list.Index(index), target.Index(index)); err != nil {
			return err
		}
	}
	return nil
}

func convertMap(value Value, target reflect.Value) error {
	t := target.Type()
	table, ok := value.(Table)
	if !ok {
		return invalidValue(value, t)
	}
	if len(table.Columns) != 2 {
		return &InvalidTypeError{
			Found:    fmt.Sprintf("table with %d columns", len(table.Columns)),
			Expected: t.String(),
		}
	}
	keys, values := table.Columns[0].List, table.Columns[1].List
	if keys == nil || values == nil || keys.Len() != values.Len() {
		return &InvalidTypeError{Found: "table with unequal columns", Expected: t.String()}
	}

	out := reflect.MakeMapWithSize(t, keys.Len())
	for index := range keys.Len() {
		key := reflect.New(t.Key()).Elem()
		if err := convertInto(keys.Index(index), key); err != nil {
			return err
		}
		element := reflect.New(t.Elem()).Elem()
		if err := convertInto(values.Index(index), element); err != nil {
			return err
		}
		out.SetMapIndex(key, element)
	}
	target.Set(out)
	return nil
}
