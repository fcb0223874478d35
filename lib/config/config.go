// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the variable consulted by [Load].
const EnvironmentVariable = "LIPI_CONFIG"

// DefaultMaxDepth mirrors the decoder's built-in nesting limit.
const DefaultMaxDepth = 128

// Color selects when output is styled.
type Color string

const (
	// ColorAuto styles output only when stdout is a terminal.
	ColorAuto Color = "auto"
	// ColorAlways styles output unconditionally.
	ColorAlways Color = "always"
	// ColorNever disables styling.
	ColorNever Color = "never"
)

// Format selects what the top-level command does when no subcommand
// is named.
type Format string

const (
	FormatView Format = "view"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Config is the master configuration for the lipi command.
type Config struct {
	Decode DecodeConfig `yaml:"decode" json:"decode"`
	Output OutputConfig `yaml:"output" json:"output"`
	Input  InputConfig  `yaml:"input" json:"input"`
}

// DecodeConfig configures message parsing.
type DecodeConfig struct {
	// MaxDepth limits container nesting. Must be positive.
	// Default: 128
	MaxDepth int `yaml:"max_depth" json:"max_depth"`
}

// OutputConfig configures rendering.
type OutputConfig struct {
	// Color is one of auto, always, never.
	// Default: auto
	Color Color `yaml:"color" json:"color"`

	// Format is the default action: view, json or yaml.
	// Default: view
	Format Format `yaml:"format" json:"format"`
}

// InputConfig configures how input bytes are read.
type InputConfig struct {
	// Hex treats input as whitespace-tolerant hexadecimal text.
	// Default: false
	Hex bool `yaml:"hex" json:"hex"`
}

// Default returns the built-in configuration. Values present in a
// loaded file override these field by field.
func Default() *Config {
	return &Config{
		Decode: DecodeConfig{MaxDepth: DefaultMaxDepth},
		Output: OutputConfig{Color: ColorAuto, Format: FormatView},
	}
}

// Load loads configuration from the LIPI_CONFIG environment variable.
// When the variable is unset, Load returns [Default].
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads and validates configuration from a specific file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := cfg.decode(filepath.Ext(path), data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// decode merges data in the format named by extension into c.
func (c *Config) decode(extension string, data []byte) error {
	switch strings.ToLower(extension) {
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		// An empty document is an empty configuration.
		if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("parsing YAML config: %w", err)
		}
		return nil
	case ".json", ".jsonc":
		decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(c); err != nil {
			return fmt.Errorf("parsing JSON config: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported config file extension %q (want .yaml, .yml, .json or .jsonc)", extension)
	}
}

// Validate checks the configuration and reports every invalid field.
func (c *Config) Validate() error {
	var errs []error

	if c.Decode.MaxDepth <= 0 {
		errs = append(errs, fmt.Errorf("decode.max_depth must be positive, got %d", c.Decode.MaxDepth))
	}

	colors := []Color{ColorAuto, ColorAlways, ColorNever}
	if !slices.Contains(colors, c.Output.Color) {
		errs = append(errs, fmt.Errorf("output.color must be one of %v, got %q", colors, c.Output.Color))
	}

	formats := []Format{FormatView, FormatJSON, FormatYAML}
	if !slices.Contains(formats, c.Output.Format) {
		errs = append(errs, fmt.Errorf("output.format must be one of %v, got %q", formats, c.Output.Format))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// ParseColor validates a --color flag value.
func ParseColor(value string) (Color, error) {
	color := Color(value)
	switch color {
	case ColorAuto, ColorAlways, ColorNever:
		return color, nil
	}
	return "", fmt.Errorf("invalid color %q (want auto, always or never)", value)
}
