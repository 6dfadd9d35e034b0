// Package config provides configuration loading and management for
// cubemap-mcp. It handles loading configuration from YAML files and provides
// default values.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/cubemap-net-mcp/internal/cubemap"
	"github.com/ironsheep/cubemap-net-mcp/internal/imaging"
)

// EnvConfigPath names the environment variable that points at a config file.
const EnvConfigPath = "CUBEMAP_MCP_CONFIG"

// Config represents the application configuration loaded from YAML
type Config struct {
	// Tolerances used while measuring a net
	Tolerances struct {
		// PointAlignment is how far apart, in pixels, two scans of the same
		// boundary may land
		PointAlignment int `yaml:"pointAlignment"`

		// SpacingConsistency is the largest allowed spread between the
		// widest and narrowest cell interval along one axis
		SpacingConsistency int `yaml:"spacingConsistency"`

		// BackgroundMajority is the number of the eight samples that must
		// agree on the background color
		BackgroundMajority int `yaml:"backgroundMajority"`
	} `yaml:"tolerances"`

	// Output parameters
	Output struct {
		// FaceSize resizes every face to FaceSize x FaceSize; 0 keeps the
		// measured side length
		FaceSize int `yaml:"faceSize"`

		// Filter is the resampling filter used when resizing
		Filter string `yaml:"filter"`
	} `yaml:"output"`

	// Log parameters
	Log struct {
		// Level is one of debug, info, warn or error
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	opts := cubemap.DefaultOptions()
	cfg.Tolerances.PointAlignment = opts.PointAlignment
	cfg.Tolerances.SpacingConsistency = opts.SpacingConsistency
	cfg.Tolerances.BackgroundMajority = opts.BackgroundMajority

	cfg.Output.FaceSize = 0
	cfg.Output.Filter = "lanczos"

	cfg.Log.Level = "info"

	return cfg
}

// LoadConfig loads configuration from a YAML file.
// If the file doesn't exist, it returns the default configuration.
// Keys absent from the file keep their defaults.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return cfg, nil
}

// LoadFromEnv loads the file named by CUBEMAP_MCP_CONFIG, or returns the
// defaults when the variable is unset.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadConfig(path)
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}

// Validate reports every invalid setting in cfg.
func (c *Config) Validate() error {
	var errs []error
	if c.Tolerances.PointAlignment < 0 {
		errs = append(errs, fmt.Errorf("tolerances.pointAlignment must not be negative, got %d", c.Tolerances.PointAlignment))
	}
	if c.Tolerances.SpacingConsistency < 0 {
		errs = append(errs, fmt.Errorf("tolerances.spacingConsistency must not be negative, got %d", c.Tolerances.SpacingConsistency))
	}
	if m := c.Tolerances.BackgroundMajority; m <= 0 || m > 8 {
		errs = append(errs, fmt.Errorf("tolerances.backgroundMajority must be in 1..8, got %d", m))
	}
	if err := imaging.ValidateFaceSize(c.Output.FaceSize); err != nil {
		errs = append(errs, fmt.Errorf("output.faceSize: %w", err))
	}
	if _, err := imaging.ParseFilter(c.Output.Filter); err != nil {
		errs = append(errs, fmt.Errorf("output.filter: %w", err))
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errors.Join(errs...)
}

// Options converts the tolerances section to cubemap options.
func (c *Config) Options() cubemap.Options {
	return cubemap.Options{
		PointAlignment:     c.Tolerances.PointAlignment,
		SpacingConsistency: c.Tolerances.SpacingConsistency,
		BackgroundMajority: c.Tolerances.BackgroundMajority,
	}
}

// SlogLevel returns the configured log level, falling back to info.
func (c *Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown level %q", s)
}
