// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bitset

import "fmt"

// SlotError reports an insert or remove whose storage byte lies
// outside the allocated slots.
type SlotError struct {
	// Slot is the byte index the operation tried to reach.
	Slot int
	// Slots is the number of storage bytes available.
	Slots int
}

func (e *SlotError) Error() string {
	return fmt.Sprintf("bitset: slot %d out of range (%d slots)", e.Slot, e.Slots)
}

// BitSet is a packed boolean array. The zero value is an empty set.
type BitSet struct {
	length int
	slots  []byte
}

// PackedLen returns the number of storage bytes needed for length
// booleans.
func PackedLen(length int) int {
	if length%8 != 0 {
		return length/8 + 1
	}
	return length / 8
}

// New returns an owned, all-false set of the given logical length.
func New(length int) BitSet {
	return BitSet{length: length, slots: make([]byte, PackedLen(length))}
}

// View returns a set over packed without copying it. Only the first
// PackedLen(length) bytes of packed are used; a shorter packed slice
// simply limits the addressable storage.
func View(length int, packed []byte) BitSet {
	if need := PackedLen(length); len(packed) > need {
		packed = packed[:need]
	}
	return BitSet{length: length, slots: packed}
}

// FromBools packs values into a new owned set.
func FromBools(values []bool) BitSet {
	set := New(len(values))
	for index, value := range values {
		if value {
			set.slots[index/8] |= 1 << (index % 8)
		}
	}
	return set
}

// Len returns the logical number of booleans.
func (s BitSet) Len() int { return s.length }

// Bytes returns the packed storage. For views this aliases the
// original buffer.
func (s BitSet) Bytes() []byte { return s.slots }

// Has reports whether bit index is set. Indices outside allocated
// storage report false.
func (s BitSet) Has(index int) bool {
	if index < 0 {
		return false
	}
	slot := index / 8
	if slot >= len(s.slots) {
		return false
	}
	return s.slots[slot]&(1<<(index%8)) != 0
}

// Insert sets bit index and returns its previous value.
func (s BitSet) Insert(index int) (bool, error) {
	slot, mask, err := s.locate(index)
	if err != nil {
		return false, err
	}
	previous := s.slots[slot]&mask != 0
	s.slots[slot] |= mask
	return previous, nil
}

// Remove clears bit index and returns its previous value.
func (s BitSet) Remove(index int) (bool, error) {
	slot, mask, err := s.locate(index)
	if err != nil {
		return false, err
	}
	previous := s.slots[slot]&mask != 0
	s.slots[slot] &^= mask
	return previous, nil
}

func (s BitSet) locate(index int) (int, byte, error) {
	slot := index / 8
	if index < 0 || slot >= len(s.slots) {
		if index < 0 {
			slot = -1
		}
		return 0, 0, &SlotError{Slot: slot, Slots: len(s.slots)}
	}
	return slot, 1 << (index % 8), nil
}

// Clear sets every storage bit to false.
func (s BitSet) Clear() {
	clear(s.slots)
}

// IsEmpty reports whether no storage bit is set.
func (s BitSet) IsEmpty() bool {
	for _, slot := range s.slots {
		if slot != 0 {
			return false
		}
	}
	return true
}

// Bools unpacks the first Len() bits into a new slice.
func (s BitSet) Bools() []bool {
	values := make([]bool, s.length)
	for index := range values {
		values[index] = s.Has(index)
	}
	return values
}

// Equal reports whether both sets have the same length and the same
// value at every logical index. Slack bits are ignored.
func (s BitSet) Equal(other BitSet) bool {
	if s.length != other.length {
		return false
	}
	for index := 0; index < s.length; index++ {
		if s.Has(index) != other.Has(index) {
			return false
		}
	}
	return true
}
