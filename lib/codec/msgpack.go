// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"

	"github.com/bureau-foundation/lipi/lib/lipi"
	"github.com/vmihailenco/msgpack/v5"
)

// Msgpack transcodes a value tree to MessagePack with integer map
// keys. Integers use their smallest encoding.
func Msgpack(v lipi.Value) ([]byte, error) {
	var out bytes.Buffer
	encoder := msgpack.NewEncoder(&out)
	encoder.UseCompactInts(true)
	if err := encoder.Encode(Native(v)); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
