// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/lipi/cmd/lipi/cli"
	"github.com/bureau-foundation/lipi/lib/binhash"
	"github.com/bureau-foundation/lipi/lib/lipi"
)

// Statistics summarizes one message.
type Statistics struct {
	Source string `json:"source"`
	// InputBytes is the size as read, before decompression.
	InputBytes  int    `json:"input_bytes"`
	Compression string `json:"compression"`
	// Bytes is the size of the message itself.
	Bytes  int    `json:"bytes"`
	Digest string `json:"digest"`
	// Fields counts the top-level struct entries.
	Fields int `json:"fields"`
	// Values counts every value node, list elements included.
	Values int `json:"values"`
	// Depth is the deepest container nesting; the top-level struct
	// is depth 1.
	Depth int `json:"depth"`
	// Tags counts value nodes by wire tag name.
	Tags map[string]int `json:"tags"`
}

func statCommand(streams Streams) *cli.Command {
	var (
		opts       options
		jsonOutput bool
	)

	return &cli.Command{
		Name:    "stat",
		Summary: "Summarize a message's size, digest and shape",
		Description: `Decode a lipi message and print a summary: input and message size,
the compression that was removed, the BLAKE3 digest of the message
bytes, the number of top-level fields, the total number of values,
the deepest container nesting, and a histogram of wire tags.

The digest identifies the encoded bytes: two messages share a digest
exactly when they are byte-identical. Compare digests before and after
"lipi normalize" to see whether re-encoding changed anything.`,
		Usage: "lipi stat [flags] [FILE]",
		Examples: []cli.Example{
			{
				Description: "Summarize a compressed message",
				Command:     "lipi stat message.lipi.zst",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := opts.newFlagSet("stat")
			flagSet.BoolVar(&jsonOutput, "json", false, "print the summary as JSON")
			return flagSet
		},
		Run: func(args []string) error {
			s, err := opts.resolve(streams, "stat")
			if err != nil {
				return err
			}
			message, entries, err := s.load(args)
			if err != nil {
				return err
			}
			statistics := collectStatistics(message, entries)
			if jsonOutput {
				encoder := json.NewEncoder(s.streams.Out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(statistics)
			}
			return statistics.write(s.streams.Out)
		},
	}
}

func collectStatistics(message *input, entries lipi.Entries) *Statistics {
	statistics := &Statistics{
		Source:      message.source,
		InputBytes:  message.size,
		Compression: message.algorithm.String(),
		Bytes:       len(message.data),
		Digest:      binhash.Sum(message.data).String(),
		Fields:      len(entries),
		Depth:       1,
		Tags:        make(map[string]int),
	}
	for _, entry := range entries {
		statistics.visit(entry.Value, 2)
	}
	return statistics
}

// visit counts v and its children. depth is the nesting v occupies if
// it is a container.
func (s *Statistics) visit(v lipi.Value, depth int) {
	s.Values++
	s.Tags[v.Tag().String()]++

	switch value := v.(type) {
	case lipi.Entries:
		s.container(depth)
		for _, entry := range value {
			s.visit(entry.Value, depth+1)
		}
	case lipi.Entry:
		s.container(depth)
		s.visit(value.Value, depth+1)
	case lipi.Table:
		s.container(depth)
		for _, column := range value.Columns {
			s.elements(column.List, depth+1)
		}
	case lipi.List:
		s.container(depth)
		s.elements(value, depth+1)
	}
}

func (s *Statistics) elements(list lipi.List, depth int) {
	for index := range list.Len() {
		s.visit(list.Index(index), depth)
	}
}

func (s *Statistics) container(depth int) {
	s.Depth = max(s.Depth, depth)
}

func (s *Statistics) write(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 2, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "source:\t%s\n", s.Source)
	if s.Compression != "none" {
		fmt.Fprintf(tw, "input:\t%d bytes (%s)\n", s.InputBytes, s.Compression)
	}
	fmt.Fprintf(tw, "size:\t%d bytes\n", s.Bytes)
	fmt.Fprintf(tw, "blake3:\t%s\n", s.Digest)
	fmt.Fprintf(tw, "fields:\t%d\n", s.Fields)
	fmt.Fprintf(tw, "values:\t%d\n", s.Values)
	fmt.Fprintf(tw, "depth:\t%d\n", s.Depth)
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(s.Tags) == 0 {
		return nil
	}
	names := make([]string, 0, len(s.Tags))
	for name := range s.Tags {
		names = append(names, name)
	}
	// Most frequent first, then by name.
	sort.Slice(names, func(i, j int) bool {
		if s.Tags[names[i]] != s.Tags[names[j]] {
			return s.Tags[names[i]] > s.Tags[names[j]]
		}
		return names[i] < names[j]
	})

	fmt.Fprintln(w, "tags:")
	tw = tabwriter.NewWriter(w, 2, 0, 2, ' ', tabwriter.AlignRight)
	for _, name := range names {
		fmt.Fprintf(tw, "  %s\t%d\t\n", name, s.Tags[name])
	}
	return tw.Flush()
}
