// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"github.com/bureau-foundation/lipi/lib/lipi"
	"github.com/fxamacker/cbor/v2"
)

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items. Same logical data always
// produces identical bytes.
var encMode cbor.EncMode

func init() {
	var err error
	encOptions := cbor.CoreDetEncOptions()
	// Floats keep the width they were decoded with; f32 values are not
	// narrowed to float16 even when exact.
	encOptions.ShortestFloat = cbor.ShortestFloatNone
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}
}

// CBOR transcodes a value tree to CBOR with integer map keys.
func CBOR(v lipi.Value) ([]byte, error) {
	return encMode.Marshal(Native(v))
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) of the
// tree's CBOR encoding.
func Diagnose(v lipi.Value) (string, error) {
	data, err := CBOR(v)
	if err != nil {
		return "", err
	}
	return cbor.Diagnose(data)
}
