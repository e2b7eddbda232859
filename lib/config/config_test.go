// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cronkit.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	want := &Config{Dialect: "unix", TimeZone: "Local", LookaheadYears: 8, Format: "text"}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Default() (-want +got):\n%s", diff)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoad_RequiresEnvironmentVariable(t *testing.T) {
	t.Setenv(EnvironmentVariable, "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when CRONKIT_CONFIG not set, got nil")
	}
	if !strings.HasPrefix(err.Error(), "CRONKIT_CONFIG environment variable not set") {
		t.Errorf("unexpected error message %q", err.Error())
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
dialect: quartz
time_zone: Europe/Berlin
lookahead_years: 20
format: json
schedules: /etc/cronkit/schedules.jsonc
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	want := &Config{
		Dialect:        "quartz",
		TimeZone:       "Europe/Berlin",
		LookaheadYears: 20,
		Format:         "json",
		Schedules:      "/etc/cronkit/schedules.jsonc",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("LoadFile (-want +got):\n%s", diff)
	}

	definition, err := cfg.Definition()
	if err != nil || definition.Name() != "quartz" {
		t.Errorf("Definition() = %v, %v", definition, err)
	}
	location, err := cfg.Location()
	if err != nil || location.String() != "Europe/Berlin" {
		t.Errorf("Location() = %v, %v", location, err)
	}
}

func TestLoadFilePartialKeepsDefaults(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, "dialect: spring\n"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Dialect != "spring" || cfg.TimeZone != "Local" || cfg.LookaheadYears != 8 || cfg.Format != "text" {
		t.Errorf("LoadFile = %+v", cfg)
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for a missing file")
	}
	if _, err := LoadFile(writeConfig(t, "dialect: [unterminated\n")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestResolve(t *testing.T) {
	fromEnvironment := writeConfig(t, "dialect: cron4j\n")
	fromFlag := writeConfig(t, "dialect: quartz\n")

	t.Setenv(EnvironmentVariable, "")
	cfg, err := Resolve("")
	if err != nil || cfg.Dialect != "unix" {
		t.Errorf("Resolve without file = %+v, %v; want defaults", cfg, err)
	}

	t.Setenv(EnvironmentVariable, fromEnvironment)
	cfg, err = Resolve("")
	if err != nil || cfg.Dialect != "cron4j" {
		t.Errorf("Resolve from %s = %+v, %v", EnvironmentVariable, cfg, err)
	}

	cfg, err = Resolve(fromFlag)
	if err != nil || cfg.Dialect != "quartz" {
		t.Errorf("Resolve with flag = %+v, %v; flag should win", cfg, err)
	}
}

func TestLoadFileExpandsVariables(t *testing.T) {
	t.Setenv("CRONKIT_TEST_ZONE", "Asia/Tokyo")
	t.Setenv("HOME", "/home/operator")

	cfg, err := LoadFile(writeConfig(t, `
time_zone: ${CRONKIT_TEST_ZONE:-UTC}
schedules: ${HOME}/schedules.jsonc
`))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.TimeZone != "Asia/Tokyo" {
		t.Errorf("TimeZone = %q", cfg.TimeZone)
	}
	if cfg.Schedules != "/home/operator/schedules.jsonc" {
		t.Errorf("Schedules = %q", cfg.Schedules)
	}
}

func TestExpandVars(t *testing.T) {
	tests := []struct {
		input    string
		vars     map[string]string
		expected string
	}{
		{
			input:    "${HOME}/schedules.jsonc",
			vars:     map[string]string{"HOME": "/home/user"},
			expected: "/home/user/schedules.jsonc",
		},
		{
			input:    "${CRONKIT_TEST_MISSING:-UTC}",
			vars:     map[string]string{},
			expected: "UTC",
		},
		{
			input:    "${PRESENT:-UTC}",
			vars:     map[string]string{"PRESENT": "America/Chicago"},
			expected: "America/Chicago",
		},
		{
			input:    "${A}/${B}",
			vars:     map[string]string{"A": "first", "B": "second"},
			expected: "first/second",
		},
		{
			input:    "Europe/Paris",
			vars:     map[string]string{},
			expected: "Europe/Paris",
		},
	}

	for _, tt := range tests {
		result := expandVars(tt.input, tt.vars)
		if result != tt.expected {
			t.Errorf("expandVars(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:   "valid default config",
			modify: func(c *Config) {},
		},
		{
			name:   "dialect is case-insensitive",
			modify: func(c *Config) { c.Dialect = "Quartz" },
		},
		{
			name:   "UTC zone",
			modify: func(c *Config) { c.TimeZone = "UTC" },
		},
		{
			name:    "unknown dialect",
			modify:  func(c *Config) { c.Dialect = "vixie" },
			wantErr: "dialect",
		},
		{
			name:    "unknown time zone",
			modify:  func(c *Config) { c.TimeZone = "Mars/Olympus_Mons" },
			wantErr: "time_zone",
		},
		{
			name:    "zero lookahead",
			modify:  func(c *Config) { c.LookaheadYears = 0 },
			wantErr: "lookahead_years",
		},
		{
			name:    "unknown format",
			modify:  func(c *Config) { c.Format = "xml" },
			wantErr: "format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error mentioning %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	cfg := &Config{Dialect: "vixie", TimeZone: "Nowhere/Land", LookaheadYears: -1, Format: "xml"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil")
	}
	for _, mention := range []string{"dialect", "time_zone", "lookahead_years", "format"} {
		if !strings.Contains(err.Error(), mention) {
			t.Errorf("Validate() = %v, missing %q", err, mention)
		}
	}
}

func TestLocationLocal(t *testing.T) {
	location, err := Default().Location()
	if err != nil {
		t.Fatalf("Location: %v", err)
	}
	if location != time.Local {
		t.Errorf("Location() = %v, want time.Local", location)
	}
}
