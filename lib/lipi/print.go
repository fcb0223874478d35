// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lipi

import (
	"encoding/hex"
	"io"
	"math"
	"strconv"
	"strings"
)

// Class identifies the role of a printed token, for styling.
type Class int

const (
	ClassKey Class = iota
	ClassNumber
	ClassString
	ClassBool
	ClassType
	ClassPunct
)

// Printer renders value trees as indented text:
//
//	1: true
//	2: "hi"
//	3: (1 2 3)
//	4: {
//	    1: 5u
//	    2: [1.5f, 2.0f]
//	}
//
// Unsigned numbers carry a "u" suffix and f32 values an "f" suffix;
// u8 lists print compactly in parentheses.
type Printer struct {
	// Style decorates each token. Nil prints plain text.
	Style func(Class, string) string
	// Indent is the per-level indentation. Empty means four spaces.
	Indent string
}

// Fprint writes v with the default printer. A struct body prints as
// one "key: value" line per entry; any other value prints on one line.
func Fprint(w io.Writer, v Value) error {
	return Printer{}.Fprint(w, v)
}

// Sprint returns v rendered with the default printer.
func Sprint(v Value) string {
	var out strings.Builder
	Printer{}.print(&out, v)
	return out.String()
}

// String renders the body with one "key: value" line per entry.
func (e Entries) String() string { return Sprint(e) }

// Fprint writes v to w.
func (p Printer) Fprint(w io.Writer, v Value) error {
	var out strings.Builder
	p.print(&out, v)
	_, err := io.WriteString(w, out.String())
	return err
}

func (p Printer) print(out *strings.Builder, v Value) {
	state := printState{Printer: p, out: out}
	if state.Indent == "" {
		state.Indent = "    "
	}
	if entries, ok := v.(Entries); ok {
		state.body(entries, 0)
		return
	}
	state.value(v, 0)
	out.WriteByte('\n')
}

type printState struct {
	Printer
	out *strings.Builder
}

func (s *printState) token(class Class, text string) {
	if s.Style != nil {
		text = s.Style(class, text)
	}
	s.out.WriteString(text)
}

func (s *printState) indent(level int) {
	for range level {
		s.out.WriteString(s.Indent)
	}
}

func (s *printState) body(entries Entries, level int) {
	for _, entry := range entries {
		s.indent(level)
		s.keyed(entry.Key, entry.Value, level)
		s.out.WriteByte('\n')
	}
}

func (s *printState) keyed(key uint16, v Value, level int) {
	s.token(ClassKey, strconv.FormatUint(uint64(key), 10))
	s.token(ClassPunct, ":")
	s.out.WriteByte(' ')
	s.value(v, level)
}

// block prints an open/close delimited multi-line container.
func (s *printState) block(open, close string, level int, empty bool, lines func()) {
	s.token(ClassPunct, open)
	if empty {
		s.token(ClassPunct, close)
		return
	}
	s.out.WriteByte('\n')
	lines()
	s.indent(level)
	s.token(ClassPunct, close)
}

func (s *printState) value(v Value, level int) {
	switch value := v.(type) {
	case nil:
		s.token(ClassType, "nothing")
	case Bool:
		s.token(ClassBool, strconv.FormatBool(bool(value)))
	case U8:
		s.token(ClassNumber, strconv.FormatUint(uint64(value), 10)+"u")
	case I8:
		s.token(ClassNumber, strconv.FormatInt(int64(value), 10))
	case UInt:
		s.token(ClassNumber, strconv.FormatUint(uint64(value), 10)+"u")
	case Int:
		s.token(ClassNumber, strconv.FormatInt(int64(value), 10))
	case F32:
		s.token(ClassNumber, formatFloat(float64(value), 32)+"f")
	case F64:
		s.token(ClassNumber, formatFloat(float64(value), 64))
	case Str:
		s.token(ClassString, strconv.Quote(string(value)))
	case Unknown:
		s.unknown(value.Code, value.Bytes)
	case Entries:
		s.block("{", "}", level, len(value) == 0, func() { s.body(value, level+1) })
	case Entry:
		s.token(ClassType, "union")
		s.out.WriteByte(' ')
		s.keyed(value.Key, value.Value, level)
	case Table:
		s.token(ClassType, "table")
		s.out.WriteByte(' ')
		s.block("{", "}", level, len(value.Columns) == 0, func() {
			for _, column := range value.Columns {
				s.indent(level + 1)
				s.keyed(column.Key, column.List, level+1)
				s.out.WriteByte('\n')
			}
		})
	case U8List:
		s.token(ClassPunct, "(")
		for index, b := range value {
			if index > 0 {
				s.out.WriteByte(' ')
			}
			s.token(ClassNumber, strconv.Itoa(int(b)))
		}
		s.token(ClassPunct, ")")
	case StructList, UnionList, ListList, TableList:
		list := value.(List)
		s.block("[", "]", level, list.Len() == 0, func() {
			for index := range list.Len() {
				s.indent(level + 1)
				s.value(list.Index(index), level+1)
				s.out.WriteByte('\n')
			}
		})
	case List:
		s.token(ClassPunct, "[")
		for index := range value.Len() {
			if index > 0 {
				s.token(ClassPunct, ",")
				s.out.WriteByte(' ')
			}
			s.value(value.Index(index), level)
		}
		s.token(ClassPunct, "]")
	}
}

func (s *printState) unknown(code Tag, data []byte) {
	s.token(ClassType, code.String())
	s.out.WriteByte(' ')
	s.token(ClassPunct, "<")
	s.token(ClassString, hex.EncodeToString(data))
	s.token(ClassPunct, ">")
}

// formatFloat prints the shortest representation that round-trips,
// keeping a decimal point on integral values ("2.0", not "2").
func formatFloat(f float64, bits int) string {
	text := strconv.FormatFloat(f, 'g', -1, bits)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return text
	}
	if !strings.ContainsAny(text, ".e") {
		text += ".0"
	}
	return text
}
