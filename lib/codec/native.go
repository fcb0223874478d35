// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"strings"

	"github.com/bureau-foundation/lipi/lib/lipi"
)

// Member is one keyed member of an [Object].
type Member struct {
	Key   uint16
	Value any
}

// Object is an integer-keyed map that keeps member order.
type Object []Member

// Opaque carries the payload of a reserved tag.
type Opaque struct {
	Code  uint8  `json:"code" yaml:"code" cbor:"code" msgpack:"code"`
	Bytes []byte `json:"bytes" yaml:"bytes" cbor:"bytes" msgpack:"bytes"`
}

// Native converts a value tree into plain Go data: bool, uint8, int8,
// float32, float64, uint64, int64, string, []byte, []any, [Object] and
// [Opaque].
func Native(v lipi.Value) any {
	switch value := v.(type) {
	case nil:
		return nil
	case lipi.Bool:
		return bool(value)
	case lipi.U8:
		return uint8(value)
	case lipi.I8:
		return int8(value)
	case lipi.F32:
		return float32(value)
	case lipi.F64:
		return float64(value)
	case lipi.UInt:
		return uint64(value)
	case lipi.Int:
		return int64(value)
	case lipi.Str:
		return strings.Clone(string(value))
	case lipi.Unknown:
		return Opaque{Code: uint8(value.Code), Bytes: bytes.Clone(value.Bytes)}
	case lipi.Entries:
		object := make(Object, len(value))
		for index, entry := range value {
			object[index] = Member{Key: entry.Key, Value: Native(entry.Value)}
		}
		return object
	case lipi.Entry:
		return Object{{Key: value.Key, Value: Native(value.Value)}}
	case lipi.Table:
		object := make(Object, len(value.Columns))
		for index, column := range value.Columns {
			object[index] = Member{Key: column.Key, Value: Native(column.List)}
		}
		return object
	case lipi.U8List:
		return bytes.Clone(value)
	case lipi.List:
		items := make([]any, value.Len())
		for index := range items {
			items[index] = Native(value.Index(index))
		}
		return items
	}
	return nil
}
