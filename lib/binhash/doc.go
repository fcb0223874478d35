// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package binhash computes content digests of encoded lipi messages.
//
// Digests are BLAKE3 keyed hashes under a fixed domain key, so the
// same bytes hashed for another purpose never collide with a message
// digest. Two messages have the same digest exactly when their encoded
// bytes are identical. Comparing the digest of a message before and
// after a re-encode tells whether normalization changed anything.
//
// The API surface is small:
//
//   - [Sum] hashes an in-memory message
//   - [HashReader] and [HashFile] stream their input with constant
//     memory usage
//   - [FormatDigest] and [ParseDigest] convert between a [Digest] and
//     its canonical hex string
//
// This package has no dependencies on other lipi packages.
package binhash
