// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"encoding/json"
	"io"

	"github.com/bureau-foundation/lipi/lib/lipi"
)

// JSON transcodes a value tree to JSON, indented when indent is set.
func JSON(v lipi.Value, indent bool) ([]byte, error) {
	if indent {
		return json.MarshalIndent(Native(v), "", "  ")
	}
	return json.Marshal(Native(v))
}

// WriteJSON writes the JSON form of v followed by a newline.
func WriteJSON(w io.Writer, v lipi.Value, indent bool) error {
	data, err := JSON(v, indent)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
