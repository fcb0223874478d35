// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lipi

// Entry is one keyed item of a struct body. As a standalone [Value]
// it is a union: a single keyed payload.
type Entry struct {
	Key   uint16
	Value Value
}

func (Entry) Tag() Tag { return TagUnion }
func (Entry) isValue() {}

// Entries is a struct body: keyed values in wire order. Duplicate keys
// are kept as decoded; lookups return the first match.
type Entries []Entry

func (Entries) Tag() Tag { return TagStruct }
func (Entries) isValue() {}

// Get returns the value of the first entry with key.
func (e Entries) Get(key uint16) (Value, bool) {
	for _, entry := range e {
		if entry.Key == key {
			return entry.Value, true
		}
	}
	return nil, false
}

// Add appends an entry and returns the extended body.
func (e Entries) Add(key uint16, value Value) Entries {
	return append(e, Entry{Key: key, Value: value})
}

// Equal reports whether both bodies hold the same entries in the same
// order.
func (e Entries) Equal(other Entries) bool {
	if len(e) != len(other) {
		return false
	}
	for index := range e {
		if e[index].Key != other[index].Key || !Equal(e[index].Value, other[index].Value) {
			return false
		}
	}
	return true
}
