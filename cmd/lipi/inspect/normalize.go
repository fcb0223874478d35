// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/lipi/cmd/lipi/cli"
	"github.com/bureau-foundation/lipi/lib/binhash"
	"github.com/bureau-foundation/lipi/lib/compress"
	"github.com/bureau-foundation/lipi/lib/lipi"
)

func normalizeCommand(streams Streams) *cli.Command {
	var (
		opts        options
		compression string
		outputPath  string
	)

	return &cli.Command{
		Name:    "normalize",
		Summary: "Re-encode a message canonically",
		Description: `Decode a lipi message and encode the decoded tree again.

The result uses the shortest header and integer encodings and writes
boolean list elements with the true tag. Field order and duplicate
keys are preserved, so a message produced by a conforming encoder
normalizes to itself.

With --compress, the output is framed with zstd or LZ4. Input framing
is always removed first.`,
		Usage: "lipi normalize [flags] [FILE]",
		Examples: []cli.Example{
			{
				Description: "Normalize and compress a message",
				Command:     "lipi normalize --compress zstd -o message.lipi.zst message.lipi",
			},
			{
				Description: "Turn a hex dump into a binary message",
				Command:     "echo '03 11 28 02 68 69 3b 32 01 02 03' | lipi normalize --hex > message.lipi",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := opts.newFlagSet("normalize")
			flagSet.StringVar(&compression, "compress", "none", "output compression: none, zstd or lz4")
			flagSet.StringVarP(&outputPath, "output", "o", "", "write to this file instead of stdout")
			return flagSet
		},
		Run: func(args []string) error {
			algorithm, err := compress.ParseAlgorithm(compression)
			if err != nil {
				return cli.Validation("--compress: %w", err)
			}
			s, err := opts.resolve(streams, "normalize")
			if err != nil {
				return err
			}
			return s.runNormalize(args, algorithm, outputPath)
		},
	}
}

func (s *session) runNormalize(args []string, algorithm compress.Algorithm, outputPath string) error {
	message, entries, err := s.load(args)
	if err != nil {
		return err
	}

	encoded, err := lipi.Encode(entries)
	if err != nil {
		return cli.Internal("re-encode: %w", err)
	}
	s.logger.Debug("normalized message",
		"source", message.source,
		"bytes", len(message.data),
		"normalized_bytes", len(encoded),
		"changed", binhash.Sum(encoded) != binhash.Sum(message.data),
	)

	output, err := compress.Compress(encoded, algorithm)
	if err != nil {
		return cli.Internal("%w", err)
	}

	if outputPath == "" {
		_, err = s.streams.Out.Write(output)
		return err
	}
	if err := os.WriteFile(outputPath, output, 0o644); err != nil {
		return cli.Internal("write %s: %w", outputPath, err)
	}
	fmt.Fprintf(s.streams.Err, "wrote %d bytes to %s\n", len(output), outputPath)
	return nil
}
