// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/lipi/cmd/lipi/cli"
	"github.com/bureau-foundation/lipi/lib/lipi"
)

func viewCommand(streams Streams) *cli.Command {
	var opts options

	return &cli.Command{
		Name:    "view",
		Summary: "Pretty-print a message as an indented tree",
		Description: `Decode a lipi message and print its struct tree, one "key: value"
line per field. Nested structs, unions and tables print as indented
blocks; numeric lists print compactly.

Unsigned integers carry a "u" suffix and f32 values an "f" suffix so
the wire type of every number is visible. u8 lists print in
parentheses: (1 2 3).

Output is colored when stdout is a terminal; --color overrides.`,
		Usage: "lipi view [flags] [FILE]",
		Examples: []cli.Example{
			{
				Description: "Print a message file",
				Command:     "lipi view message.lipi",
			},
			{
				Description: "Print a hex dump pasted from a log",
				Command:     "echo '03 11 28 02 68 69 3b 32 01 02 03' | lipi view --hex",
			},
		},
		Flags: func() *pflag.FlagSet { return opts.newFlagSet("view") },
		Run: func(args []string) error {
			s, err := opts.resolve(streams, "view")
			if err != nil {
				return err
			}
			return s.runView(args)
		},
	}
}

func (s *session) runView(args []string) error {
	_, entries, err := s.load(args)
	if err != nil {
		return err
	}
	printer := lipi.Printer{}
	if s.colorize() {
		printer.Style = treeStyle()
	}
	return printer.Fprint(s.streams.Out, entries)
}

// treeStyle returns a token styler for ANSI terminals. The profile is
// fixed so --color=always styles output that is not a terminal.
func treeStyle() func(lipi.Class, string) string {
	renderer := lipgloss.NewRenderer(io.Discard, termenv.WithProfile(termenv.ANSI256))
	renderer.SetColorProfile(termenv.ANSI256)

	styles := map[lipi.Class]lipgloss.Style{
		lipi.ClassKey:    renderer.NewStyle().Foreground(lipgloss.Color("75")).Bold(true),
		lipi.ClassNumber: renderer.NewStyle().Foreground(lipgloss.Color("141")),
		lipi.ClassString: renderer.NewStyle().Foreground(lipgloss.Color("114")),
		lipi.ClassBool:   renderer.NewStyle().Foreground(lipgloss.Color("215")),
		lipi.ClassType:   renderer.NewStyle().Foreground(lipgloss.Color("179")).Italic(true),
		lipi.ClassPunct:  renderer.NewStyle().Foreground(lipgloss.Color("244")),
	}
	return func(class lipi.Class, text string) string {
		style, ok := styles[class]
		if !ok {
			return text
		}
		return style.Render(text)
	}
}
