// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lipi

import (
	"math"
	"strings"
	"testing"
)

func TestSprint(t *testing.T) {
	entries := Entries{
		{Key: 1, Value: Bool(true)},
		{Key: 2, Value: Str("hi")},
		{Key: 3, Value: U8List{1, 2, 3}},
		{Key: 4, Value: Entries{
			{Key: 1, Value: UInt(5)},
			{Key: 2, Value: F32List{1.5, 2}},
		}},
		{Key: 5, Value: F64(0.25)},
		{Key: 6, Value: I8(-4)},
		{Key: 7, Value: Table{Rows: 1, Columns: []Column{{Key: 0, List: StrList{"a"}}}}},
		{Key: 8, Value: Entry{Key: 3, Value: Int(-7)}},
		{Key: 9, Value: Unknown{Code: TagUnknownI, Bytes: []byte{0xab}}},
		{Key: 10, Value: Entries{}},
		{Key: 11, Value: StructList{{{Key: 1, Value: U8(2)}}}},
		{Key: 12, Value: NewBoolList([]bool{true, false})},
	}
	want := strings.Join([]string{
		`1: true`,
		`2: "hi"`,
		`3: (1 2 3)`,
		`4: {`,
		`    1: 5u`,
		`    2: [1.5f, 2.0f]`,
		`}`,
		`5: 0.25`,
		`6: -4`,
		`7: table {`,
		`    0: ["a"]`,
		`}`,
		`8: union 3: -7`,
		`9: unknown I <ab>`,
		`10: {}`,
		`11: [`,
		`    {`,
		`        1: 2u`,
		`    }`,
		`]`,
		`12: [true, false]`,
		``,
	}, "\n")
	if got := entries.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestPrinterStyle(t *testing.T) {
	printer := Printer{
		Style: func(class Class, text string) string {
			if class == ClassKey {
				return "<" + text + ">"
			}
			return text
		},
		Indent: "\t",
	}
	var out strings.Builder
	if err := printer.Fprint(&out, Entries{{Key: 1, Value: Entries{{Key: 2, Value: UInt(3)}}}}); err != nil {
		t.Fatal(err)
	}
	want := "<1>: {\n\t<2>: 3u\n}\n"
	if out.String() != want {
		t.Errorf("Fprint = %q, want %q", out.String(), want)
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		value float64
		bits  int
		want  string
	}{
		{1, 64, "1.0"},
		{0.1, 64, "0.1"},
		{1e21, 64, "1e+21"},
		{math.Inf(-1), 64, "-Inf"},
		{float64(float32(0.1)), 32, "0.1"},
	}
	for _, test := range tests {
		if got := formatFloat(test.value, test.bits); got != test.want {
			t.Errorf("formatFloat(%v, %d) = %q, want %q", test.value, test.bits, got, test.want)
		}
	}
}
