// Package config provides configuration file support for the fslease CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fslease-project/fslease/pkg/fsutil"
	"github.com/fslease-project/fslease/pkg/model"
)

// Config represents the fslease configuration.
type Config struct {
	Lease   LeaseConfig   `yaml:"lease"`
	Logging LoggingConfig `yaml:"logging"`
}

// LeaseConfig configures default lock timing used by CLI commands.
type LeaseConfig struct {
	Duration string `yaml:"duration"`
	Timeout  string `yaml:"timeout"`
	Retry    string `yaml:"retry"`
	Refresh  bool   `yaml:"refresh"`
}

// LoggingConfig holds the stored logging settings. The CLI does not apply
// them; its log level comes from the --log-level flag.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json, text
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Lease: LeaseConfig{
			Duration: "5m",
			Timeout:  "30s",
			Retry:    "500ms",
			Refresh:  false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Path returns the config file location, honoring FSLEASE_CONFIG.
func Path() (string, error) {
	if p := os.Getenv("FSLEASE_CONFIG"); p != "" {
		return p, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, "fslease", "config.yaml"), nil
}

// Load loads configuration from the config file.
// Returns default config if the file doesn't exist.
func Load() (*Config, error) {
	cfg := Default()
	cfgPath, err := Path()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(cfgPath)
	if os.IsNotExist(err) {
		return cfg, nil // No config file is OK, use defaults
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to the config file.
func Save(cfg *Config) error {
	cfgPath, err := Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfgPath), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return fsutil.AtomicWrite(cfgPath, data, 0644)
}

// Set updates a configuration value by key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "lease.duration":
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid duration: %q", value)
		}
		c.Lease.Duration = value
	case "lease.timeout":
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid duration: %q", value)
		}
		c.Lease.Timeout = value
	case "lease.retry":
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid duration: %q", value)
		}
		c.Lease.Retry = value
	case "lease.refresh":
		switch value {
		case "true":
			c.Lease.Refresh = true
		case "false":
			c.Lease.Refresh = false
		default:
			return fmt.Errorf("invalid boolean: %q", value)
		}
	case "logging.level":
		c.Logging.Level = value
	case "logging.format":
		if value != "json" && value != "text" {
			return fmt.Errorf("invalid format: %q (must be json or text)", value)
		}
		c.Logging.Format = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

// Get returns a configuration value by key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "lease.duration":
		return c.Lease.Duration, nil
	case "lease.timeout":
		return c.Lease.Timeout, nil
	case "lease.retry":
		return c.Lease.Retry, nil
	case "lease.refresh":
		return fmt.Sprintf("%v", c.Lease.Refresh), nil
	case "logging.level":
		return c.Logging.Level, nil
	case "logging.format":
		return c.Logging.Format, nil
	default:
		return "", fmt.Errorf("unknown config key: %s", key)
	}
}

// Policy converts the lease section into timing parameters, falling back to
// defaults for unparseable durations.
func (c *Config) Policy() model.Policy {
	def := Default().Lease
	return model.Policy{
		LeaseDuration: parseDuration(c.Lease.Duration, def.Duration),
		Timeout:       parseDuration(c.Lease.Timeout, def.Timeout),
		Retry:         parseDuration(c.Lease.Retry, def.Retry),
		Refresh:       c.Lease.Refresh,
	}
}

func parseDuration(s, fallback string) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	d, _ := time.ParseDuration(fallback)
	return d
}
