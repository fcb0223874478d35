// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lipi

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/bureau-foundation/lipi/lib/varint"
)

// ErrInvalidVarint reports a malformed or overflowing LEB128 integer.
// It wraps [varint.ErrOverflow], so errors.Is matches either.
var ErrInvalidVarint = fmt.Errorf("lipi: invalid variable-length integer: %w", varint.ErrOverflow)

// ErrInvalidUTF8 reports a string payload that is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("lipi: string is not valid UTF-8")

// UnexpectedEOFError reports input that ended before a read could be
// satisfied.
type UnexpectedEOFError struct {
	// Needed is the number of additional bytes the read required.
	Needed int
}

func (e *UnexpectedEOFError) Error() string {
	return fmt.Sprintf("lipi: unexpected end of input: needed %d more bytes", e.Needed)
}

// InvalidBooleanError reports a byte that is neither 0 nor 1 where a
// boolean was expected.
type InvalidBooleanError struct {
	Byte byte
}

func (e *InvalidBooleanError) Error() string {
	return fmt.Sprintf("lipi: invalid boolean value: %d", e.Byte)
}

// InvalidTypeError reports a value whose runtime type cannot satisfy
// the requested target. Found is the wire type name (e.g. "u8",
// "[string]") and Expected names the target (a tag name or a Go type).
type InvalidTypeError struct {
	Found    string
	Expected string
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("lipi: expected `%s`, found `%s`", e.Expected, e.Found)
}

func invalidTag(found, expected Tag) error {
	return &InvalidTypeError{Found: found.String(), Expected: expected.String()}
}

func invalidValue(found Value, expected reflect.Type) error {
	return &InvalidTypeError{Found: TypeName(found), Expected: expected.String()}
}

// UnknownTypeCodeError reports a tag code outside the 16-value space.
type UnknownTypeCodeError struct {
	Code uint8
}

func (e *UnknownTypeCodeError) Error() string {
	return fmt.Sprintf("lipi: unknown type code %d", e.Code)
}

// RequiredFieldError reports a required record field whose key is
// absent from the decoded struct.
type RequiredFieldError struct {
	Name string
}

func (e *RequiredFieldError) Error() string {
	return fmt.Sprintf("lipi: required field `%s` is missing", e.Name)
}

// ConvertError annotates a conversion failure with the struct key it
// occurred under. Nested struct decodes stack these, so the message
// reads outermost key first: "key 5: key 2: ...".
type ConvertError struct {
	Key    uint16
	HasKey bool
	Err    error
}

func (e *ConvertError) Error() string {
	var keys []string
	var current error = e
	for {
		convertErr, ok := current.(*ConvertError)
		if !ok {
			break
		}
		if convertErr.HasKey {
			keys = append(keys, fmt.Sprintf("key %d", convertErr.Key))
		}
		current = convertErr.Err
	}
	message := "conversion failed"
	if current != nil {
		message = strings.TrimPrefix(current.Error(), "lipi: ")
	}
	if len(keys) == 0 {
		return "lipi: " + message
	}
	return "lipi: conversion error for " + strings.Join(keys, ": ") + ": " + message
}

func (e *ConvertError) Unwrap() error { return e.Err }

func withKey(key uint16, err error) error {
	return &ConvertError{Key: key, HasKey: true, Err: err}
}

// RangeError reports a numeric value that does not fit the narrower
// type it was converted to.
type RangeError struct {
	Value  string
	Target string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("lipi: value %s out of range for %s", e.Value, e.Target)
}

// KeyRangeError reports a wire id that does not fit a 16-bit struct
// or column key.
type KeyRangeError struct {
	ID uint64
}

func (e *KeyRangeError) Error() string {
	return fmt.Sprintf("lipi: key %d exceeds 16 bits", e.ID)
}

// MaxDepthError reports input nested deeper than the parser allows.
type MaxDepthError struct {
	Limit int
}

func (e *MaxDepthError) Error() string {
	return fmt.Sprintf("lipi: nesting exceeds maximum depth %d", e.Limit)
}

// LengthRangeError reports a decoded length or count that does not
// fit an int.
type LengthRangeError struct {
	Length uint64
}

func (e *LengthRangeError) Error() string {
	return fmt.Sprintf("lipi: length %d exceeds the addressable range", e.Length)
}

// LengthOverflowError reports a container length that does not fit
// the 32-bit header width on encode.
type LengthOverflowError struct {
	Length int
}

func (e *LengthOverflowError) Error() string {
	return fmt.Sprintf("lipi: length %d exceeds the header width", e.Length)
}

// ColumnLengthError reports a table column whose length differs from
// the table's row count on encode.
type ColumnLengthError struct {
	Key    uint16
	Length int
	Rows   int
}

func (e *ColumnLengthError) Error() string {
	return fmt.Sprintf("lipi: table column %d has %d values, table has %d rows", e.Key, e.Length, e.Rows)
}

// UnsupportedTypeError reports a Go type with no lipi mapping.
type UnsupportedTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return "lipi: unsupported type " + e.Type.String()
}

// DuplicateKeyError reports two fields of one Go struct type declaring
// the same key.
type DuplicateKeyError struct {
	Type   reflect.Type
	Key    uint16
	First  string
	Second string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("lipi: %s: duplicate key %d on fields %s and %s", e.Type, e.Key, e.First, e.Second)
}
