// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bitset provides a packed boolean array: a logical length
// plus ceil(length/8) bytes of storage, least-significant bit first
// within each byte. This is the wire representation of lipi boolean
// lists.
//
// A [BitSet] either owns its storage ([New], [FromBools]) or is a
// zero-copy view over an existing packed region ([View]). Views alias
// the caller's bytes: the decoder builds one directly over the input
// buffer, so the buffer must outlive the set and must not be modified
// while the set is in use.
//
// Reads past the logical length are not errors. [BitSet.Has] returns
// false for any index outside allocated storage and reports whatever
// the slack bits hold inside it (zero for sets built by this package).
// Writes outside allocated storage return a [*SlotError] carrying the
// offending slot index and leave every byte untouched.
package bitset
