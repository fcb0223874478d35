// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lipi

import (
	"math"
	"testing"
)

func TestTypeName(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{nil, "nothing"},
		{Bool(false), "bool"},
		{Bool(true), "bool"},
		{U8(1), "u8"},
		{Str(""), "str"},
		{Entries{}, "struct"},
		{Entry{}, "union"},
		{Table{}, "table"},
		{UIntList{}, "[uint]"},
		{NewBoolList(nil), "[bool]"},
		{ListList{}, "[list]"},
		{Unknown{Code: TagUnknownII}, "unknown II"},
	}
	for _, test := range tests {
		if got := TypeName(test.value); got != test.want {
			t.Errorf("TypeName(%#v) = %q, want %q", test.value, got, test.want)
		}
	}
}

func TestEqualFloatsBitwise(t *testing.T) {
	nan := F64(math.NaN())
	if !Equal(nan, nan) {
		t.Error("identical NaN values compare unequal")
	}
	if Equal(F64(0), F64(math.Copysign(0, -1))) {
		t.Error("+0 and -0 compare equal")
	}
	if Equal(F32(1), F64(1)) {
		t.Error("f32 and f64 compare equal")
	}
}

func TestEqualContainers(t *testing.T) {
	a := Entries{{Key: 1, Value: StrList{"x"}}, {Key: 2, Value: NewBoolList([]bool{true})}}
	b := Entries{{Key: 1, Value: StrList{"x"}}, {Key: 2, Value: NewBoolList([]bool{true})}}
	if !Equal(a, b) {
		t.Error("equal trees compare unequal")
	}
	b[0].Value = StrList{"y"}
	if Equal(a, b) {
		t.Error("different trees compare equal")
	}
	if Equal(U8List{1}, I8List{1}) {
		t.Error("u8 and i8 lists compare equal")
	}
}

func TestEqualNilColumns(t *testing.T) {
	empty := Table{Columns: []Column{{Key: 0}}}
	if !Equal(empty, Table{Columns: []Column{{Key: 0}}}) {
		t.Error("tables with nil columns compare unequal")
	}
	filled := Table{Columns: []Column{{Key: 0, List: UIntList{}}}}
	if Equal(empty, filled) || Equal(filled, empty) {
		t.Error("nil column compares equal to an empty list")
	}
}

func TestEntriesAddAndGet(t *testing.T) {
	var entries Entries
	entries = entries.Add(3, UInt(1)).Add(3, UInt(2))
	if value, ok := entries.Get(3); !ok || value != UInt(1) {
		t.Errorf("Get(3) = (%v, %v), want first match", value, ok)
	}
	if _, ok := entries.Get(4); ok {
		t.Error("Get(4) found a missing key")
	}
	table := Table{Rows: 0, Columns: []Column{{Key: 1, List: StrList{}}}}
	if _, ok := table.Column(1); !ok {
		t.Error("Column(1) not found")
	}
}
