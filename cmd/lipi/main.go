// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Command lipi decodes, inspects, transcodes and normalizes lipi
// binary messages. Run "lipi --help" for usage.
package main

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/lipi/cmd/lipi/cli"
	"github.com/bureau-foundation/lipi/cmd/lipi/inspect"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		// Commands that print their own report (like a failed decode)
		// return an ExitError with the desired exit code. Don't print
		// a redundant "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(cli.ExitStatus(err))
	}
}

func run(args []string) error {
	return inspect.Root(inspect.StandardStreams()).Execute(args)
}
