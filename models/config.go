// Package models defines the shared data structures and configuration for
// the scraper: input index, output record shapes, subjects, and runtime
// settings.
package models

import (
	"fmt"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// DefaultUserAgent is the fixed client-identification header sent with
// every page fetch.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Config holds runtime settings shared by all three scrape commands.
// Values come from an optional YAML file; CLI flags override per run.
type Config struct {
	UserAgent      string  `yaml:"user_agent"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
	DelaySeconds   float64 `yaml:"delay_seconds"`
	LogDir         string  `yaml:"log_dir"`
	DBPath         string  `yaml:"db_path"`
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() Config {
	return Config{
		UserAgent:      DefaultUserAgent,
		TimeoutSeconds: 30,
		DelaySeconds:   1.5,
		LogDir:         ".",
		DBPath:         "wanikani_scraper.db",
	}
}

// LoadConfig reads a YAML config file over the defaults. An empty path
// returns the defaults unchanged; a missing or unparsable file is an error
// so a typoed --config never silently falls back.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.UserAgent, validation.Required),
		validation.Field(&c.TimeoutSeconds, validation.Required, validation.Min(1), validation.Max(300)),
		validation.Field(&c.DelaySeconds, validation.Min(0.0), validation.Max(60.0)),
		validation.Field(&c.LogDir, validation.Required),
		validation.Field(&c.DBPath, validation.Required),
	)
}

// Timeout is the per-request HTTP timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Delay is the fixed inter-item sleep.
func (c Config) Delay() time.Duration {
	return time.Duration(c.DelaySeconds * float64(time.Second))
}
