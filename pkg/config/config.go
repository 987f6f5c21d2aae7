package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"loggrep/pkg/timestamp"
)

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors and compiles format patterns.
func Validate(cfg *Config) error {
	switch cfg.Color {
	case "", ColorAlways, ColorNever, ColorAuto:
	default:
		return fmt.Errorf("color: invalid mode %q (must be always, never, or auto)", cfg.Color)
	}

	if cfg.BeforeContext < 0 {
		return fmt.Errorf("before_context: must be non-negative, got %d", cfg.BeforeContext)
	}
	if cfg.AfterContext < 0 {
		return fmt.Errorf("after_context: must be non-negative, got %d", cfg.AfterContext)
	}

	for i := range cfg.Formats {
		if err := validateFormat(&cfg.Formats[i]); err != nil {
			return fmt.Errorf("formats[%d] (%s): %w", i, cfg.Formats[i].Name, err)
		}
	}

	return nil
}

func validateFormat(f *FormatConfig) error {
	if f.Name == "" {
		return errors.New("name is required")
	}

	if f.Pattern == "" {
		return errors.New("pattern is required")
	}

	re, err := regexp.Compile(f.Pattern)
	if err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}

	if re.NumSubexp() < 1 {
		return errors.New("pattern must have at least one capture group for the timestamp")
	}

	f.compiledPattern = re

	if f.Layout == "" {
		return errors.New("layout is required")
	}

	return nil
}

// Grammars converts the user-defined formats into timestamp grammars,
// in config order. Validate must have been called first.
func (c *Config) Grammars() []*timestamp.Grammar {
	grammars := make([]*timestamp.Grammar, 0, len(c.Formats))
	for i := range c.Formats {
		f := &c.Formats[i]
		grammars = append(grammars, &timestamp.Grammar{
			Name:       f.Name,
			Pattern:    f.compiledPattern,
			PatternStr: f.Pattern,
			Layout:     f.Layout,
			NeedsYear:  f.NeedsYear,
		})
	}
	return grammars
}
