// Package config loads orgp settings from the user's config directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// Output formats understood by the parse command.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config holds orgp settings.
type Config struct {
	Format   string `yaml:"format"`    // "json" | "yaml"
	LogLevel string `yaml:"log_level"` // charm/log level name
	Timezone string `yaml:"timezone"`  // IANA zone for clock timestamps; "Local" by default
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Format:   FormatJSON,
		LogLevel: "warn",
		Timezone: "Local",
	}
}

// ConfigPath returns the path to the config file.
// Can be overridden for testing
var ConfigPath = func() string {
	return filepath.Join(xdg.ConfigHome, "orgp", "config.yaml")
}

// Load reads the config file, falling back to defaults when it is absent.
// Fields missing from the file keep their default values.
func Load() (*Config, error) {
	return LoadFile(ConfigPath())
}

// LoadFile reads configuration from path.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Format {
	case FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("invalid format '%s': must be one of: json, yaml", c.Format)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level '%s': %w", c.LogLevel, err)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone '%s': %w", c.Timezone, err)
	}
	return loc, nil
}
