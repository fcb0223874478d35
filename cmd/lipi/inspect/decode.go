// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"errors"
	"fmt"
	"time"

	"github.com/bureau-foundation/lipi/cmd/lipi/cli"
	"github.com/bureau-foundation/lipi/lib/lipi"
)

// DecodeError reports where parsing of a message stopped.
type DecodeError struct {
	// Offset is the byte position of the read that failed.
	Offset int
	// Remaining is the number of bytes from Offset to the end.
	Remaining int
	Err       error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode failed at byte %d (0x%x) with %d bytes remaining: %v",
		e.Offset, e.Offset, e.Remaining, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// decode parses a complete message. Trailing bytes after the top-level
// struct are an error.
func (s *session) decode(message *input) (lipi.Entries, error) {
	start := time.Now()
	cursor := lipi.NewCursor(message.data)
	entries, err := s.parseOptions().ParseStruct(cursor)
	if err == nil && cursor.Remaining() > 0 {
		err = &lipi.TrailingDataError{Offset: cursor.Offset(), Remaining: cursor.Remaining()}
	}
	if err != nil {
		return nil, &DecodeError{Offset: cursor.Offset(), Remaining: cursor.Remaining(), Err: err}
	}
	s.logger.Debug("decoded message",
		"source", message.source,
		"fields", len(entries),
		"duration", time.Since(start),
	)
	return entries, nil
}

// load reads and decodes the message named by args.
func (s *session) load(args []string) (*input, lipi.Entries, error) {
	message, err := s.readInput(args)
	if err != nil {
		return nil, nil, err
	}
	entries, err := s.decode(message)
	if err != nil {
		return nil, nil, s.report(message, err)
	}
	return message, entries, nil
}

// report writes the failure report for a decode error to stderr and
// converts it to a handled exit. Other errors pass through.
func (s *session) report(message *input, err error) error {
	var decodeError *DecodeError
	if !errors.As(err, &decodeError) {
		return err
	}
	s.logger.Debug("decode failed", "source", message.source, "offset", decodeError.Offset)
	fmt.Fprintf(s.streams.Err, "error: %s is not a valid lipi message\n", message.source)
	fmt.Fprintf(s.streams.Err, "  offset:    %d (0x%x)\n", decodeError.Offset, decodeError.Offset)
	fmt.Fprintf(s.streams.Err, "  remaining: %d bytes\n", decodeError.Remaining)
	fmt.Fprintf(s.streams.Err, "  cause:     %v\n", decodeError.Err)
	return &cli.ExitError{Code: cli.ExitFailure}
}
