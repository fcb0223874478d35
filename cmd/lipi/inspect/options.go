// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/lipi/cmd/lipi/cli"
	"github.com/bureau-foundation/lipi/lib/compress"
	"github.com/bureau-foundation/lipi/lib/config"
	"github.com/bureau-foundation/lipi/lib/lipi"
)

// Streams are the standard streams a command reads and writes.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StandardStreams returns the process's stdin, stdout and stderr.
func StandardStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

const decompressAuto = "auto"

// options holds the flags every command accepts. Values from the
// configuration file apply unless the flag was given explicitly.
type options struct {
	configPath string
	maxDepth   int
	color      string
	hex        bool
	decompress string
	verbose    bool

	flags *pflag.FlagSet
}

func (o *options) register(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&o.configPath, "config", "", "configuration file (default $"+config.EnvironmentVariable+")")
	flagSet.IntVar(&o.maxDepth, "max-depth", lipi.DefaultMaxDepth, "maximum container nesting accepted by the decoder")
	flagSet.StringVar(&o.color, "color", string(config.ColorAuto), "styled output: auto, always or never")
	flagSet.BoolVarP(&o.hex, "hex", "x", false, "treat input as hex text (whitespace ignored)")
	flagSet.StringVar(&o.decompress, "decompress", decompressAuto, "input compression: auto, none, zstd or lz4")
	flagSet.BoolVarP(&o.verbose, "verbose", "v", false, "log debug details to stderr")
	o.flags = flagSet
}

// newFlagSet returns a flag set for command carrying the shared flags.
func (o *options) newFlagSet(command string) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(command, pflag.ContinueOnError)
	flagSet.SortFlags = false
	o.register(flagSet)
	return flagSet
}

func (o *options) changed(name string) bool {
	return o.flags != nil && o.flags.Changed(name)
}

// session is one command invocation with its settings resolved.
type session struct {
	streams Streams
	config  *config.Config
	logger  *slog.Logger

	// decompress is nil for detection by magic number.
	decompress *compress.Algorithm
}

// resolve loads the configuration and layers explicit flags over it.
func (o *options) resolve(streams Streams, command string) (*session, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFile(o.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, cli.Validation("%w", err)
	}

	if o.changed("max-depth") {
		if o.maxDepth <= 0 {
			return nil, cli.Validation("--max-depth must be positive, got %d", o.maxDepth)
		}
		cfg.Decode.MaxDepth = o.maxDepth
	}
	if o.changed("color") {
		color, err := config.ParseColor(o.color)
		if err != nil {
			return nil, cli.Validation("--color: %w", err)
		}
		cfg.Output.Color = color
	}
	if o.changed("hex") {
		cfg.Input.Hex = o.hex
	}

	s := &session{
		streams: streams,
		config:  cfg,
		logger:  cli.NewCommandLogger(streams.Err, o.verbose).With("command", command),
	}
	if o.decompress != decompressAuto {
		algorithm, err := compress.ParseAlgorithm(o.decompress)
		if err != nil {
			return nil, cli.Validation("--decompress: %w", err)
		}
		s.decompress = &algorithm
	}
	return s, nil
}

// colorize reports whether output to stdout should be styled.
func (s *session) colorize() bool {
	switch s.config.Output.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return cli.IsTerminal(s.streams.Out)
	}
}

func (s *session) parseOptions() lipi.ParseOptions {
	return lipi.ParseOptions{MaxDepth: s.config.Decode.MaxDepth}
}
