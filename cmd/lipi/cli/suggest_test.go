// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"abc", "abd", 1}, // substitution
		{"abc", "ab", 1},  // deletion
		{"ab", "abc", 1},  // insertion
		{"abc", "bac", 2}, // transposition (counted as 2 edits)
		{"kitten", "sitting", 3},
		{"normalise", "normalize", 1},
		{"msgpak", "msgpack", 1},
		{"veiw", "view", 2},
	}

	for _, test := range tests {
		t.Run(test.a+"->"+test.b, func(t *testing.T) {
			got := levenshtein(test.a, test.b)
			if got != test.want {
				t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
			}
			if reverse := levenshtein(test.b, test.a); reverse != got {
				t.Errorf("levenshtein(%q, %q) = %d, but reverse = %d", test.a, test.b, got, reverse)
			}
		})
	}
}

func TestSuggestCommand(t *testing.T) {
	commands := []*Command{
		{Name: "view"},
		{Name: "json"},
		{Name: "yaml"},
		{Name: "msgpack"},
		{Name: "normalize"},
	}

	tests := []struct {
		input string
		want  string
	}{
		{"veiw", "view"},           // transposition
		{"jsn", "json"},            // missing letter
		{"msgpak", "msgpack"},      // missing letter
		{"normalise", "normalize"}, // spelling
		{"zzzzzzzzz", ""},          // nothing close
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			got := SuggestCommand(test.input, commands)
			if got != test.want {
				t.Errorf("SuggestCommand(%q) = %q, want %q", test.input, got, test.want)
			}
		})
	}
}

func TestSuggestFlag(t *testing.T) {
	makeFlagSet := func() *pflag.FlagSet {
		flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flagSet.Int("max-depth", 128, "")
		flagSet.String("color", "auto", "")
		flagSet.BoolP("verbose", "v", false, "")
		flagSet.Bool("compact", false, "")
		return flagSet
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "close typo with double dash",
			args: []string{"--max-dpeth"},
			want: "--max-depth",
		},
		{
			name: "british spelling",
			args: []string{"--colour"},
			want: "--color",
		},
		{
			name: "known shorthand skipped",
			args: []string{"-v", "--compcat"},
			want: "--compact",
		},
		{
			name: "nothing close",
			args: []string{"--zzzzzzzzz"},
			want: "",
		},
		{
			name: "no flags",
			args: []string{"positional"},
			want: "",
		},
		{
			name: "flag with equals",
			args: []string{"--colr=never"},
			want: "--color",
		},
		{
			name: "after terminator",
			args: []string{"--", "--colr"},
			want: "",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := suggestFlag(test.args, makeFlagSet())
			if got != test.want {
				t.Errorf("suggestFlag(%v) = %q, want %q", test.args, got, test.want)
			}
		})
	}
}
