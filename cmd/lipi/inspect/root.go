// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/lipi/cmd/lipi/cli"
	"github.com/bureau-foundation/lipi/lib/config"
	"github.com/bureau-foundation/lipi/lib/version"
)

// Root returns the "lipi" command tree bound to streams.
func Root(streams Streams) *cli.Command {
	var (
		opts        options
		showVersion bool
	)

	root := &cli.Command{
		Name:    "lipi",
		Summary: "Inspect lipi binary messages",
		Description: `Inspect lipi binary messages: compact, self-describing structs of
integer-keyed fields.

With no command, lipi decodes the message in FILE (or stdin) and runs
the action named by output.format in the configuration file: view by
default, or json or yaml.

Configuration is read from --config or $LIPI_CONFIG; there is no
implicit config file. Flags override configuration values.`,
		Usage:      "lipi [command] [flags] [FILE]",
		HelpOutput: streams.Err,
		Subcommands: []*cli.Command{
			viewCommand(streams),
			jsonCommand(streams),
			yamlCommand(streams),
			cborCommand(streams),
			msgpackCommand(streams),
			diagCommand(streams),
			statCommand(streams),
			normalizeCommand(streams),
		},
		Examples: []cli.Example{
			{
				Description: "Print a message",
				Command:     "lipi message.lipi",
			},
			{
				Description: "Decode a hex dump from a log line",
				Command:     "echo '03 11 28 02 68 69 3b 32 01 02 03' | lipi --hex",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := opts.newFlagSet("lipi")
			flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")
			return flagSet
		},
	}

	root.Run = func(args []string) error {
		if showVersion {
			return printVersion(streams, opts.verbose)
		}
		if err := unknownCommand(root, args); err != nil {
			return err
		}

		s, err := opts.resolve(streams, "lipi")
		if err != nil {
			return err
		}
		switch s.config.Output.Format {
		case config.FormatJSON:
			return s.runJSON(args, false)
		case config.FormatYAML:
			return s.runYAML(args)
		default:
			return s.runView(args)
		}
	}

	return root
}

// unknownCommand turns a lone argument that is neither a file nor a
// command, but close to one, into a suggestion.
func unknownCommand(root *cli.Command, args []string) error {
	if len(args) != 1 || args[0] == "-" {
		return nil
	}
	if _, err := os.Stat(args[0]); !errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	suggestion := cli.SuggestCommand(args[0], root.Subcommands)
	if suggestion == "" {
		return nil
	}
	return cli.Validation("unknown command or file %q (did you mean %q?)\n\nRun 'lipi --help' for usage.",
		args[0], suggestion)
}

func printVersion(streams Streams, verbose bool) error {
	if !verbose {
		_, err := fmt.Fprintf(streams.Out, "lipi %s\n", version.Info())
		return err
	}
	fmt.Fprintf(streams.Out, "lipi %s\n", version.Full())
	digest, path, err := version.SelfDigest()
	if err != nil {
		return cli.Internal("%w", err)
	}
	_, err = fmt.Fprintf(streams.Out, "  Binary: %s\n  BLAKE3: %s\n", path, digest)
	return err
}
