// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Decode.MaxDepth != DefaultMaxDepth {
		t.Errorf("expected max_depth=%d, got %d", DefaultMaxDepth, cfg.Decode.MaxDepth)
	}
	if cfg.Output.Color != ColorAuto {
		t.Errorf("expected color=auto, got %s", cfg.Output.Color)
	}
	if cfg.Output.Format != FormatView {
		t.Errorf("expected format=view, got %s", cfg.Output.Format)
	}
	if cfg.Input.Hex {
		t.Error("expected hex=false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoad_WithoutEnvironmentUsesDefaults(t *testing.T) {
	t.Setenv(EnvironmentVariable, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("Load() = %+v, want defaults", *cfg)
	}
}

func TestLoad_WithEnvironment(t *testing.T) {
	path := writeConfig(t, "lipi.yaml", `
decode:
  max_depth: 16
output:
  color: never
`)
	t.Setenv(EnvironmentVariable, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Decode.MaxDepth != 16 {
		t.Errorf("expected max_depth=16, got %d", cfg.Decode.MaxDepth)
	}
	if cfg.Output.Color != ColorNever {
		t.Errorf("expected color=never, got %s", cfg.Output.Color)
	}
	// Unset fields keep their defaults.
	if cfg.Output.Format != FormatView {
		t.Errorf("expected format=view, got %s", cfg.Output.Format)
	}
}

func TestLoadFile_JSONC(t *testing.T) {
	path := writeConfig(t, "lipi.jsonc", `{
	// Inspect hex dumps pasted from logs.
	"input": {"hex": true},
	"output": {
		"format": "json", /* machine readable */
	},
}`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if !cfg.Input.Hex {
		t.Error("expected hex=true")
	}
	if cfg.Output.Format != FormatJSON {
		t.Errorf("expected format=json, got %s", cfg.Output.Format)
	}
	if cfg.Decode.MaxDepth != DefaultMaxDepth {
		t.Errorf("expected default max_depth, got %d", cfg.Decode.MaxDepth)
	}
}

func TestLoadFile_EmptyYAML(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, "empty.yml", ""))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("LoadFile(empty) = %+v, want defaults", *cfg)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		contains []string
	}{
		{
			name:     "unknown yaml key",
			file:     "lipi.yaml",
			content:  "decode:\n  max_dept: 3\n",
			contains: []string{"max_dept"},
		},
		{
			name:     "unknown json key",
			file:     "lipi.json",
			content:  `{"output": {"colour": "never"}}`,
			contains: []string{"colour"},
		},
		{
			name:     "unsupported extension",
			file:     "lipi.toml",
			content:  "",
			contains: []string{`".toml"`},
		},
		{
			name: "every invalid field is named",
			file: "lipi.yaml",
			content: `
decode:
  max_depth: 0
output:
  color: sometimes
  format: xml
`,
			contains: []string{"decode.max_depth", "output.color", "output.format"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := writeConfig(t, test.file, test.content)
			_, err := LoadFile(path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			for _, fragment := range test.contains {
				if !strings.Contains(err.Error(), fragment) {
					t.Errorf("error %q does not mention %q", err, fragment)
				}
			}
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParseColor(t *testing.T) {
	for _, value := range []string{"auto", "always", "never"} {
		if color, err := ParseColor(value); err != nil || string(color) != value {
			t.Errorf("ParseColor(%q) = (%q, %v)", value, color, err)
		}
	}
	if _, err := ParseColor("rainbow"); err == nil {
		t.Error("ParseColor(rainbow) succeeded")
	}
}
