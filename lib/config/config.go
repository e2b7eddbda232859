// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/cronkit/lib/cron"
)

// EnvironmentVariable names the variable Load reads the config path from.
const EnvironmentVariable = "CRONKIT_CONFIG"

// Formats lists the accepted values of Config.Format.
var Formats = []string{"text", "json", "cbor"}

// Config is the cronkit CLI configuration.
type Config struct {
	// Dialect is the name of the built-in dialect used when a command
	// does not name one. Matched case-insensitively.
	// Default: unix
	Dialect string `yaml:"dialect"`

	// TimeZone is an IANA zone name, "UTC", or "Local". Executions are
	// computed on the wall clock of this zone.
	// Default: Local
	TimeZone string `yaml:"time_zone"`

	// LookaheadYears bounds how far NextExecution and LastExecution
	// search before reporting no execution.
	// Default: 8
	LookaheadYears int `yaml:"lookahead_years"`

	// Format is the output format: text, json, or cbor.
	// Default: text
	Format string `yaml:"format"`

	// Schedules is the path of the schedule set read by commands that
	// operate on named schedules. Empty means none is configured.
	Schedules string `yaml:"schedules"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Dialect:        "unix",
		TimeZone:       "Local",
		LookaheadYears: 8,
		Format:         "text",
	}
}

// Load loads configuration from the file named by CRONKIT_CONFIG.
// It fails if the variable is not set; use Resolve to fall back to
// Default.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your cronkit.yaml config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// Resolve returns the configuration a command should run with: the file
// at path when path is non-empty, otherwise the file named by
// CRONKIT_CONFIG when that is set, otherwise Default.
func Resolve(path string) (*Config, error) {
	if path != "" {
		return LoadFile(path)
	}
	if os.Getenv(EnvironmentVariable) != "" {
		return Load()
	}
	return Default(), nil
}

// LoadFile loads configuration from a specific file path. Values not
// present in the file keep their defaults. ${VAR} and ${VAR:-default}
// patterns in time_zone and schedules are expanded after loading.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.expandVariables()
	return cfg, nil
}

func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.TimeZone = expandVars(c.TimeZone, vars)
	c.Schedules = expandVars(c.Schedules, vars)
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Definition returns the built-in dialect named by Dialect.
func (c *Config) Definition() (*cron.Definition, error) {
	return cron.Lookup(c.Dialect)
}

// Location resolves TimeZone. An empty TimeZone is UTC, matching
// time.LoadLocation.
func (c *Config) Location() (*time.Location, error) {
	location, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("time_zone %q: %w", c.TimeZone, err)
	}
	return location, nil
}

// Validate checks the configuration for errors, reporting all of them.
func (c *Config) Validate() error {
	var errs []error

	if _, err := c.Definition(); err != nil {
		errs = append(errs, fmt.Errorf("dialect: %w", err))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	if c.LookaheadYears < 1 {
		errs = append(errs, fmt.Errorf("lookahead_years must be at least 1, got %d", c.LookaheadYears))
	}
	if !slices.Contains(Formats, c.Format) {
		errs = append(errs, fmt.Errorf("format must be one of: %v", Formats))
	}

	return errors.Join(errs...)
}
