// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec transcodes decoded lipi value trees into interchange
// formats: JSON, YAML, CBOR and MessagePack.
//
// [Native] converts a tree into plain Go data. Struct bodies, unions
// and tables become an [Object]: an ordered list of integer-keyed
// members that each encoder renders as a map while keeping wire
// order. Text formats (JSON, YAML) write keys as decimal strings;
// binary formats (CBOR, MessagePack) write them as unsigned integers.
//
//   - struct      Object of its entries
//   - union       Object with one member
//   - table       Object of columns, each an array of rows
//   - u8 list     byte string (base64 in JSON)
//   - other list  array
//   - unknown     Opaque{code, bytes}
//
// Duplicate struct keys are kept in JSON, YAML and MessagePack output.
// CBOR output uses Core Deterministic Encoding (RFC 8949 §4.2), which
// forbids duplicate map keys, so only the first occurrence of a key is
// written, matching [lipi.Entries.Get].
//
//	data, err := codec.CBOR(entries)
//	err = codec.WriteJSON(os.Stdout, entries, true)
//
// Conversion copies strings and bytes out of the tree, so the result
// does not alias the decoded input buffer.
package codec
