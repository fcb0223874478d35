// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package inspect implements the lipi command tree: decoding messages
// from the command line and rendering them for people and other tools.
//
// Subcommands:
//
//   - view: pretty-print the decoded struct tree, styled on terminals.
//   - json, yaml: transcode to JSON or YAML with string keys.
//   - cbor, msgpack: transcode to CBOR or MessagePack with integer keys.
//   - diag: CBOR diagnostic notation of the transcoded tree.
//   - stat: size, digest, field count, nesting depth, tag histogram.
//   - normalize: parse and re-encode canonically, optionally compressed.
//
// With no subcommand, lipi runs the action named by output.format in
// the configuration file (view by default).
//
// Every command reads one message from a trailing FILE argument or
// stdin. With --hex the input is hex text (whitespace ignored). zstd
// and LZ4 frames are recognized by their magic numbers and
// decompressed before parsing; --decompress forces a choice.
//
// A message that fails to parse produces a report naming the byte
// offset where decoding stopped, the bytes remaining, and the error,
// and the command exits with status 1.
package inspect
