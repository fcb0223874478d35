// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"unicode"

	"github.com/bureau-foundation/lipi/cmd/lipi/cli"
	"github.com/bureau-foundation/lipi/lib/compress"
)

// input is one message as read from the command line.
type input struct {
	// source is the file path, or "stdin".
	source string
	// size is the byte count before decompression.
	size int
	// algorithm is the compression that was removed, if any.
	algorithm compress.Algorithm
	// data is the message itself.
	data []byte
}

// readInput resolves the message from a FILE argument ("-" or absent
// means stdin), decodes hex text when configured, and strips zstd or
// LZ4 framing.
func (s *session) readInput(args []string) (*input, error) {
	if len(args) > 1 {
		return nil, cli.Validation("expected at most one FILE argument, got %d", len(args))
	}

	var (
		data   []byte
		source = "stdin"
		err    error
	)
	if len(args) == 1 && args[0] != "-" {
		source = args[0]
		data, err = os.ReadFile(source)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, cli.NotFound("read %s: %w", source, err)
		}
	} else {
		data, err = io.ReadAll(s.streams.In)
	}
	if err != nil {
		return nil, cli.Internal("read %s: %w", source, err)
	}

	if s.config.Input.Hex {
		data, err = decodeHexInput(data)
		if err != nil {
			return nil, cli.Validation("%s: %w", source, err)
		}
	}
	if len(data) == 0 {
		return nil, cli.Validation("empty input: expected a lipi message on %s", source)
	}

	message := &input{source: source, size: len(data)}
	if s.decompress == nil {
		message.data, message.algorithm, err = compress.Unwrap(data, compress.DefaultLimit)
	} else {
		message.algorithm = *s.decompress
		message.data, err = compress.Decompress(data, message.algorithm, compress.DefaultLimit)
	}
	if err != nil {
		return nil, cli.Validation("%s: %w", source, err)
	}

	s.logger.Debug("read input",
		"source", source,
		"bytes", message.size,
		"compression", message.algorithm.String(),
		"message_bytes", len(message.data),
	)
	return message, nil
}

// decodeHexInput strips whitespace from hex-encoded input and decodes
// it to binary bytes. Whitespace between hex digit pairs is allowed
// (e.g., "03 11 28" or "031128").
func decodeHexInput(data []byte) ([]byte, error) {
	cleaned := bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, data)

	if len(cleaned) == 0 {
		return nil, fmt.Errorf("empty input after stripping whitespace from hex")
	}

	decoded := make([]byte, hex.DecodedLen(len(cleaned)))
	count, err := hex.Decode(decoded, cleaned)
	if err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return decoded[:count], nil
}
