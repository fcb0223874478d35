// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package compress

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Algorithm identifies a compression framing.
type Algorithm uint8

const (
	// None is uncompressed data.
	None Algorithm = iota

	// Zstd is a zstd frame at the default level. Better ratios for
	// string-heavy messages.
	Zstd

	// LZ4 is an LZ4 frame. Faster to decode, lower ratio.
	LZ4
)

// DefaultLimit is the decompressed size limit used by the CLI.
const DefaultLimit = 1 << 30

// ErrTooLarge reports decompressed output beyond the caller's limit.
var ErrTooLarge = errors.New("compress: decompressed data exceeds size limit")

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// String returns the algorithm's name.
func (a Algorithm) String() string {
	switch a {
	case None:
		return "none"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(a))
	}
}

// ParseAlgorithm parses an algorithm name as printed by String.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "none":
		return None, nil
	case "zstd":
		return Zstd, nil
	case "lz4":
		return LZ4, nil
	default:
		return None, fmt.Errorf("unknown compression %q (want none, zstd or lz4)", name)
	}
}

// Detect identifies the framing of data by its magic number.
func Detect(data []byte) Algorithm {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return Zstd
	case bytes.HasPrefix(data, lz4Magic):
		return LZ4
	default:
		return None
	}
}

// zstdEncoder is reused across calls; EncodeAll is safe for
// concurrent use.
var zstdEncoder *zstd.Encoder

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
	)
	if err != nil {
		panic("compress: zstd encoder initialization failed: " + err.Error())
	}
}

// Compress frames data with the given algorithm. For None it returns
// data unchanged (no copy).
func Compress(data []byte, algorithm Algorithm) ([]byte, error) {
	switch algorithm {
	case None:
		return data, nil
	case Zstd:
		return zstdEncoder.EncodeAll(data, make([]byte, 0, len(data)/2+len(zstdMagic))), nil
	case LZ4:
		var out bytes.Buffer
		writer := lz4.NewWriter(&out)
		if _, err := writer.Write(data); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		return out.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported compression: %s", algorithm)
	}
}

// Decompress unwraps a frame of the given algorithm, failing with
// [ErrTooLarge] if the output would exceed limit bytes. For None it
// returns data unchanged.
func Decompress(data []byte, algorithm Algorithm, limit int64) ([]byte, error) {
	switch algorithm {
	case None:
		return data, nil
	case Zstd:
		decoder, err := zstd.NewReader(bytes.NewReader(data), zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		defer decoder.Close()
		return readLimited(decoder, limit, "zstd")
	case LZ4:
		return readLimited(lz4.NewReader(bytes.NewReader(data)), limit, "lz4")
	default:
		return nil, fmt.Errorf("unsupported compression: %s", algorithm)
	}
}

func readLimited(reader io.Reader, limit int64, name string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(reader, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%s decompress: %w", name, err)
	}
	if int64(len(data)) > limit {
		return nil, ErrTooLarge
	}
	return data, nil
}

// Unwrap detects the framing of data and decompresses it. It returns
// the payload and the detected algorithm. Both magic numbers are also
// valid message prefixes, so a detected frame that fails to decompress
// is returned unchanged as [None]. Only [ErrTooLarge] is reported.
func Unwrap(data []byte, limit int64) ([]byte, Algorithm, error) {
	algorithm := Detect(data)
	payload, err := Decompress(data, algorithm, limit)
	if errors.Is(err, ErrTooLarge) {
		return nil, algorithm, err
	}
	if err != nil {
		return data, None, nil
	}
	return payload, algorithm, nil
}
