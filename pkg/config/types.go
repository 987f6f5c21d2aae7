// Package config provides optional configuration loading for loggrep.
package config

import "regexp"

// Config is the root configuration structure loaded from YAML.
// Everything is optional; flags override config values.
type Config struct {
	// Color is the default color mode: always, never, or auto.
	Color string `yaml:"color,omitempty"`

	// BeforeContext and AfterContext are default context widths,
	// used when the corresponding flags are not given.
	BeforeContext int `yaml:"before_context,omitempty"`
	AfterContext  int `yaml:"after_context,omitempty"`

	// Formats are user-defined timestamp grammars, tried before the
	// built-ins in the order given.
	Formats []FormatConfig `yaml:"formats,omitempty"`
}

// FormatConfig defines a user-supplied timestamp grammar.
type FormatConfig struct {
	// Name is a human-readable identifier for the format.
	Name string `yaml:"name"`

	// Pattern is a regex that captures the timestamp portion of a line.
	// Must contain at least one capture group.
	Pattern string `yaml:"pattern"`

	// Layout is the Go time layout string for parsing the capture.
	// See https://pkg.go.dev/time#pkg-constants for format.
	Layout string `yaml:"layout"`

	// NeedsYear marks formats whose timestamps carry no year.
	NeedsYear bool `yaml:"needs_year,omitempty"`

	// compiledPattern is the pre-compiled regex (populated during validation).
	compiledPattern *regexp.Regexp
}

// CompiledPattern returns the pre-compiled regex pattern.
func (f *FormatConfig) CompiledPattern() *regexp.Regexp {
	return f.compiledPattern
}
