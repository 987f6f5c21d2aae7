package config

import "os"

// Color modes.
const (
	ColorAlways = "always"
	ColorNever  = "never"
	ColorAuto   = "auto"
)

// Environment variable names.
const (
	EnvConfig = "LOGGREP_CONFIG"
	EnvColor  = "LOGGREP_COLOR"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Color: ColorAuto,
	}
}

// DefaultPath returns the config path from the environment, or "" if unset.
func DefaultPath() string {
	return os.Getenv(EnvConfig)
}

// FromEnvironment returns the default configuration with environment
// overrides applied, for runs without a config file.
func FromEnvironment() *Config {
	cfg := DefaultConfig()
	cfg.applyEnvironmentOverrides()
	return cfg
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if color := os.Getenv(EnvColor); color != "" {
		c.Color = color
	}
}
