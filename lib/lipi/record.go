// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lipi

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// Marshaler is implemented by types that write their own payload.
// LipiTag must not depend on the receiver's contents, except for
// boolean-shaped types, because list headers ask a zero value for
// the element tag.
type Marshaler interface {
	LipiTag() Tag
	MarshalLipi(*Encoder) error
}

// Unmarshaler is implemented by types that convert themselves from a
// decoded value tree.
type Unmarshaler interface {
	UnmarshalLipi(Value) error
}

var (
	marshalerType   = reflect.TypeFor[Marshaler]()
	unmarshalerType = reflect.TypeFor[Unmarshaler]()
	valueType       = reflect.TypeFor[Value]()
)

// recordField is one keyed field of a Go struct type.
type recordField struct {
	name      string
	index     int
	key       uint16
	omitEmpty bool
	// optional fields may be absent on the wire: pointers and
	// omitempty fields.
	optional bool
}

// record is the field table for one Go struct type, in declaration
// order. Encode writes fields in this order.
type record struct {
	fields []recordField
}

type recordResult struct {
	record *record
	err    error
}

// records caches reflect.Type -> recordResult.
var records sync.Map

// recordFor returns the cached field table of struct type t, building
// it on first use.
func recordFor(t reflect.Type) (*record, error) {
	if cached, ok := records.Load(t); ok {
		result := cached.(recordResult)
		return result.record, result.err
	}
	built, err := buildRecord(t)
	actual, _ := records.LoadOrStore(t, recordResult{record: built, err: err})
	result := actual.(recordResult)
	return result.record, result.err
}

// buildRecord reads `lipi:"<key>[,omitempty]"` tags. Fields without a
// tag, or tagged "-", are not part of the record.
func buildRecord(t reflect.Type) (*record, error) {
	seen := make(map[uint16]string)
	result := &record{}
	for index := range t.NumField() {
		field := t.Field(index)
		tagValue, ok := field.Tag.Lookup("lipi")
		if !ok || tagValue == "-" {
			continue
		}
		if !field.IsExported() {
			return nil, fmt.Errorf("lipi: %s.%s: keyed field is not exported", t, field.Name)
		}

		keyText, options, _ := strings.Cut(tagValue, ",")
		key, err := strconv.ParseUint(keyText, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("lipi: %s.%s: invalid key %q: %w", t, field.Name, keyText, err)
		}

		entry := recordField{name: field.Name, index: index, key: uint16(key)}
		for option := range strings.SplitSeq(options, ",") {
			switch option {
			case "":
			case "omitempty":
				entry.omitEmpty = true
			default:
				return nil, fmt.Errorf("lipi: %s.%s: unknown tag option %q", t, field.Name, option)
			}
		}
		entry.optional = entry.omitEmpty || field.Type.Kind() == reflect.Pointer

		if first, duplicate := seen[entry.key]; duplicate {
			return nil, &DuplicateKeyError{Type: t, Key: entry.key, First: first, Second: field.Name}
		}
		seen[entry.key] = field.Name
		result.fields = append(result.fields, entry)
	}
	return result, nil
}

// omitted reports whether the field is left off the wire for this
// value.
func (f *recordField) omitted(value reflect.Value) bool {
	if !f.optional {
		return false
	}
	if value.Kind() == reflect.Pointer && value.IsNil() {
		return true
	}
	return f.omitEmpty && value.IsZero()
}
