// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lipi

import (
	"errors"
	"testing"

	"github.com/bureau-foundation/lipi/lib/testutil"
)

func TestFieldReader(t *testing.T) {
	data := testutil.Hex(t, "04 11 28 02 68 69 3b 32 01 02 03 46 2c")
	cursor := NewCursor(data)
	fields, err := NewFieldReader(cursor)
	if err != nil {
		t.Fatal(err)
	}

	var (
		flag  bool
		name  string
		ratio float64
	)
	var seen []uint16
	for {
		ok, err := fields.Next()
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			break
		}
		seen = append(seen, fields.Key())
		switch fields.Key() {
		case 1:
			flag, err = ReadField[bool](fields)
		case 2:
			name, err = ReadField[string](fields)
		case 4:
			ratio, err = ReadField[float64](fields)
		}
		if err != nil {
			t.Fatalf("key %d: %v", fields.Key(), err)
		}
	}

	if !flag || name != "hi" || ratio != 44 {
		t.Errorf("decoded flag=%v name=%q ratio=%v, want true \"hi\" 44", flag, name, ratio)
	}
	if len(seen) != 4 || fields.Remaining() != 0 {
		t.Errorf("visited keys %v, %d remaining", seen, fields.Remaining())
	}
	if cursor.Remaining() != 0 {
		t.Errorf("%d bytes left unread; the unvisited list was not skipped", cursor.Remaining())
	}
}

func TestFieldReaderInto(t *testing.T) {
	cursor := NewCursor(testutil.Hex(t, "01 3b 32 01 02 03"))
	fields, err := NewFieldReader(cursor)
	if err != nil {
		t.Fatal(err)
	}
	if ok, err := fields.Next(); !ok || err != nil {
		t.Fatalf("Next = (%v, %v)", ok, err)
	}
	if fields.Tag() != TagList {
		t.Errorf("Tag = %v, want list", fields.Tag())
	}
	var values []uint32
	if err := ReadFieldInto(fields, &values); err != nil {
		t.Fatal(err)
	}
	if len(values) != 3 || values[2] != 3 {
		t.Errorf("values = %v, want [1 2 3]", values)
	}
}

func TestFieldReaderErrorCarriesKey(t *testing.T) {
	fields, err := NewFieldReader(NewCursor(testutil.Hex(t, "01 78 01 ff")))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fields.Next(); err != nil {
		t.Fatal(err)
	}
	_, err = ReadField[string](fields)
	var convertErr *ConvertError
	if !errors.As(err, &convertErr) || convertErr.Key != 7 || !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("ReadField error = %v, want invalid UTF-8 under key 7", err)
	}
}

func TestFieldReaderTypeMismatchSkipsPayload(t *testing.T) {
	fields, err := NewFieldReader(NewCursor(testutil.Hex(t, "02 18 02 68 69 26 07")))
	if err != nil {
		t.Fatal(err)
	}
	if ok, err := fields.Next(); !ok || err != nil {
		t.Fatalf("Next = (%v, %v)", ok, err)
	}
	_, err = ReadField[uint64](fields)
	var typeErr *InvalidTypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("ReadField[uint64] on a string error = %v, want InvalidTypeError", err)
	}

	ok, err := fields.Next()
	if !ok || err != nil {
		t.Fatalf("Next after mismatch = (%v, %v)", ok, err)
	}
	if fields.Key() != 2 || fields.Tag() != TagUInt {
		t.Fatalf("Next after mismatch at key %d tag %v, want key 2 tag uint", fields.Key(), fields.Tag())
	}
	value, err := ReadField[uint64](fields)
	if err != nil || value != 7 {
		t.Errorf("ReadField[uint64] = (%d, %v), want 7", value, err)
	}
	if ok, err := fields.Next(); ok || err != nil {
		t.Errorf("final Next = (%v, %v), want end of struct", ok, err)
	}
}

func TestDecodeValue(t *testing.T) {
	cursor := NewCursor(testutil.Hex(t, "01 02 ac 02 05 00 00 c0 3f"))
	flag, err := DecodeValue[bool](cursor)
	if err != nil || !flag {
		t.Fatalf("DecodeValue[bool] = (%v, %v)", flag, err)
	}

	_, err = DecodeValue[bool](cursor)
	var boolErr *InvalidBooleanError
	if !errors.As(err, &boolErr) || boolErr.Byte != 2 {
		t.Fatalf("DecodeValue[bool](02) error = %v, want InvalidBooleanError{2}", err)
	}
	if cursor.Offset() != 1 {
		t.Fatalf("failed boolean read moved the cursor to %d", cursor.Offset())
	}
	if _, err := cursor.ReadByte(); err != nil {
		t.Fatal(err)
	}

	port, err := DecodeValue[uint16](cursor)
	if err != nil || port != 300 {
		t.Errorf("DecodeValue[uint16] = (%v, %v), want 300", port, err)
	}
	delta, err := DecodeValue[int32](cursor)
	if err != nil || delta != -3 {
		t.Errorf("DecodeValue[int32] = (%v, %v), want -3", delta, err)
	}
	ratio, err := DecodeValue[float32](cursor)
	if err != nil || ratio != 1.5 {
		t.Errorf("DecodeValue[float32] = (%v, %v), want 1.5", ratio, err)
	}
}
