// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"io"

	"github.com/bureau-foundation/lipi/lib/lipi"
	"gopkg.in/yaml.v3"
)

// WriteYAML writes the YAML form of v with two-space indentation.
func WriteYAML(w io.Writer, v lipi.Value) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(Native(v)); err != nil {
		return err
	}
	return encoder.Close()
}
