// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"bytes"
	"fmt"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/lipi/cmd/lipi/cli"
	"github.com/bureau-foundation/lipi/lib/codec"
	"github.com/bureau-foundation/lipi/lib/lipi"
)

func jsonCommand(streams Streams) *cli.Command {
	var (
		opts    options
		compact bool
	)

	return &cli.Command{
		Name:    "json",
		Summary: "Transcode a message to JSON",
		Description: `Decode a lipi message and write the equivalent JSON to stdout.

Structs become objects keyed by the decimal field key, in wire order.
Unions become single-member objects. Tables become objects of column
arrays. u8 lists become base64 strings; unknown-tag payloads become
{"code": N, "bytes": "<base64>"}.

By default, output is pretty-printed with 2-space indentation and
syntax-highlighted on terminals. Use -c for compact single-line output.`,
		Usage: "lipi json [flags] [FILE]",
		Examples: []cli.Example{
			{
				Description: "Decode a message to pretty JSON",
				Command:     "lipi json message.lipi",
			},
			{
				Description: "Pipe compact JSON into jq",
				Command:     "lipi json -c message.lipi | jq '.\"2\"'",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := opts.newFlagSet("json")
			flagSet.BoolVarP(&compact, "compact", "c", false, "compact output (no indentation)")
			return flagSet
		},
		Run: func(args []string) error {
			s, err := opts.resolve(streams, "json")
			if err != nil {
				return err
			}
			return s.runJSON(args, compact)
		},
	}
}

func (s *session) runJSON(args []string, compact bool) error {
	_, entries, err := s.load(args)
	if err != nil {
		return err
	}
	data, err := codec.JSON(entries, !compact)
	if err != nil {
		return cli.Internal("encode JSON: %w", err)
	}
	return s.writeText(append(data, '\n'), "json")
}

func yamlCommand(streams Streams) *cli.Command {
	var opts options

	return &cli.Command{
		Name:    "yaml",
		Summary: "Transcode a message to YAML",
		Description: `Decode a lipi message and write the equivalent YAML to stdout.

Struct keys are integers and keep their wire order; otherwise the
mapping matches "lipi json".`,
		Usage: "lipi yaml [flags] [FILE]",
		Flags: func() *pflag.FlagSet { return opts.newFlagSet("yaml") },
		Run: func(args []string) error {
			s, err := opts.resolve(streams, "yaml")
			if err != nil {
				return err
			}
			return s.runYAML(args)
		},
	}
}

func (s *session) runYAML(args []string) error {
	_, entries, err := s.load(args)
	if err != nil {
		return err
	}
	var buffer bytes.Buffer
	if err := codec.WriteYAML(&buffer, entries); err != nil {
		return cli.Internal("encode YAML: %w", err)
	}
	return s.writeText(buffer.Bytes(), "yaml")
}

// writeText writes rendered text to stdout, highlighted for language
// when output is styled.
func (s *session) writeText(data []byte, language string) error {
	if s.colorize() {
		if err := quick.Highlight(s.streams.Out, string(data), language, "terminal256", "monokai"); err == nil {
			return nil
		}
	}
	_, err := s.streams.Out.Write(data)
	return err
}

func cborCommand(streams Streams) *cli.Command {
	return binaryCommand(streams, "cbor", "Transcode a message to CBOR",
		`Decode a lipi message and write the equivalent CBOR to stdout.

Structs become maps with unsigned integer keys, encoded with Core
Deterministic Encoding. When a struct repeats a key, the first
occurrence wins. Floats keep their decoded width. Use "lipi diag" to
read the result.`,
		codec.CBOR)
}

func msgpackCommand(streams Streams) *cli.Command {
	return binaryCommand(streams, "msgpack", "Transcode a message to MessagePack",
		`Decode a lipi message and write the equivalent MessagePack to stdout.

Structs become maps with integer keys in wire order. Integers use the
smallest MessagePack representation that holds them.`,
		codec.Msgpack)
}

// binaryCommand builds a command that writes a binary transcoding of
// the message to stdout.
func binaryCommand(streams Streams, name, summary, description string, transcode func(lipi.Value) ([]byte, error)) *cli.Command {
	var opts options

	return &cli.Command{
		Name:        name,
		Summary:     summary,
		Description: description,
		Usage:       fmt.Sprintf("lipi %s [flags] [FILE] > out.%s", name, name),
		Flags:       func() *pflag.FlagSet { return opts.newFlagSet(name) },
		Run: func(args []string) error {
			s, err := opts.resolve(streams, name)
			if err != nil {
				return err
			}
			_, entries, err := s.load(args)
			if err != nil {
				return err
			}
			data, err := transcode(entries)
			if err != nil {
				return cli.Internal("encode %s: %w", name, err)
			}
			s.logger.Debug("transcoded message", "format", name, "bytes", len(data))
			_, err = s.streams.Out.Write(data)
			return err
		},
	}
}

func diagCommand(streams Streams) *cli.Command {
	var opts options

	return &cli.Command{
		Name:    "diag",
		Summary: "Show the message in CBOR diagnostic notation",
		Description: `Decode a lipi message, transcode it to CBOR, and write RFC 8949
Extended Diagnostic Notation (EDN) to stdout.

Unlike JSON output, diagnostic notation keeps integer map keys and
distinguishes floats from integers:

  {1: true, 2: "hi", 3: [1, 2, 3]}`,
		Usage: "lipi diag [flags] [FILE]",
		Flags: func() *pflag.FlagSet { return opts.newFlagSet("diag") },
		Run: func(args []string) error {
			s, err := opts.resolve(streams, "diag")
			if err != nil {
				return err
			}
			_, entries, err := s.load(args)
			if err != nil {
				return err
			}
			notation, err := codec.Diagnose(entries)
			if err != nil {
				return cli.Internal("diagnose: %w", err)
			}
			_, err = fmt.Fprintln(s.streams.Out, notation)
			return err
		},
	}
}
