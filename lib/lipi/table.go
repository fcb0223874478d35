// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lipi

// Column is one keyed column of a [Table].
type Column struct {
	Key  uint16
	List List
}

// Table is a columnar collection: every column holds exactly Rows
// elements. The parser guarantees this for decoded tables; tables
// built by hand with mismatched columns are rejected by the encoder
// with [*ColumnLengthError].
type Table struct {
	Rows    int
	Columns []Column
}

func (Table) Tag() Tag { return TagTable }
func (Table) isValue() {}

// Column returns the first column with key.
func (t Table) Column(key uint16) (List, bool) {
	for _, column := range t.Columns {
		if column.Key == key {
			return column.List, true
		}
	}
	return nil, false
}

// Equal reports whether both tables have the same row count and the
// same columns in the same order.
func (t Table) Equal(other Table) bool {
	if t.Rows != other.Rows || len(t.Columns) != len(other.Columns) {
		return false
	}
	for index := range t.Columns {
		if t.Columns[index].Key != other.Columns[index].Key {
			return false
		}
		if !listEqual(t.Columns[index].List, other.Columns[index].List) {
			return false
		}
	}
	return true
}
