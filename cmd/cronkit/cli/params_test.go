// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
)

func TestBindFlags_BasicTypes(t *testing.T) {
	type params struct {
		Dialect  string        `flag:"dialect" desc:"cron dialect" default:"unix"`
		Count    int           `flag:"count" desc:"number of results" default:"5"`
		Follow   bool          `flag:"follow" desc:"keep running"`
		Interval time.Duration `flag:"interval" desc:"poll interval" default:"1m"`
		Zones    []string      `flag:"zone" desc:"time zones"`
		Ignored  string
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}

	if p.Dialect != "unix" || p.Count != 5 || p.Follow || p.Interval != time.Minute {
		t.Errorf("defaults not applied: %+v", p)
	}

	err := flagSet.Parse([]string{
		"--dialect", "quartz",
		"--count=12",
		"--follow",
		"--interval", "30s",
		"--zone", "UTC,Europe/Berlin",
		"--zone", "Asia/Tokyo",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := params{
		Dialect:  "quartz",
		Count:    12,
		Follow:   true,
		Interval: 30 * time.Second,
		Zones:    []string{"UTC", "Europe/Berlin", "Asia/Tokyo"},
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}

	if flagSet.Lookup("Ignored") != nil || flagSet.Lookup("ignored") != nil {
		t.Error("untagged field was bound")
	}
}

func TestBindFlags_Shorthand(t *testing.T) {
	type params struct {
		Format string `flag:"format,o" desc:"output format" default:"text"`
		Count  int    `flag:"count,n" desc:"results"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	if err := flagSet.Parse([]string{"-o", "json", "-n3"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Format != "json" || p.Count != 3 {
		t.Errorf("got %+v, want format=json count=3", p)
	}
	if flagSet.ShorthandLookup("o") == nil {
		t.Error("shorthand -o not registered")
	}
}

// SharedOptions is exported so its promoted fields are settable
// through reflection.
type SharedOptions struct {
	TimeZone string `flag:"tz" desc:"time zone" default:"Local"`
	Verbose  bool   `flag:"verbose,v" desc:"debug logging"`
}

func TestBindFlags_EmbeddedStruct(t *testing.T) {
	type params struct {
		SharedOptions
		From string `flag:"from" desc:"start instant"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	if err := flagSet.Parse([]string{"--tz", "UTC", "-v", "--from", "2024-01-01T00:00:00Z"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.TimeZone != "UTC" || !p.Verbose || p.From != "2024-01-01T00:00:00Z" {
		t.Errorf("embedded fields not bound: %+v", p)
	}
	if args := flagSet.Args(); len(args) != 0 {
		t.Errorf("unexpected positional args %v", args)
	}
}

func TestBindFlags_Errors(t *testing.T) {
	tests := []struct {
		name    string
		params  any
		wantErr string
	}{
		{
			name:    "not a pointer",
			params:  struct{}{},
			wantErr: "pointer to a struct",
		},
		{
			name:    "pointer to non-struct",
			params:  new(int),
			wantErr: "pointer to a struct",
		},
		{
			name: "unsupported type",
			params: &struct {
				Ratio float64 `flag:"ratio"`
			}{},
			wantErr: "unsupported type float64",
		},
		{
			name: "bad int default",
			params: &struct {
				Count int `flag:"count" default:"many"`
			}{},
			wantErr: "default for --count",
		},
		{
			name: "bad bool default",
			params: &struct {
				Follow bool `flag:"follow" default:"sometimes"`
			}{},
			wantErr: "default for --follow",
		},
		{
			name: "bad duration default",
			params: &struct {
				Interval time.Duration `flag:"interval" default:"soon"`
			}{},
			wantErr: "default for --interval",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
			err := BindFlags(test.params, flagSet)
			if err == nil {
				t.Fatal("BindFlags() = nil, want error")
			}
			if !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("error = %q, want substring %q", err.Error(), test.wantErr)
			}
		})
	}
}

func TestFlagsFromParams_PanicsOnInvalidParams(t *testing.T) {
	defer func() {
		recovered := recover()
		if recovered == nil {
			t.Fatal("FlagsFromParams did not panic")
		}
		message, ok := recovered.(string)
		if !ok || !strings.Contains(message, `cli.FlagsFromParams("broken")`) {
			t.Errorf("panic = %v", recovered)
		}
	}()
	FlagsFromParams("broken", 42)
}

func TestParseFlagTag(t *testing.T) {
	tests := []struct {
		tag       string
		name      string
		shorthand string
	}{
		{"dialect", "dialect", ""},
		{"dialect,d", "dialect", "d"},
		{"format,o", "format", "o"},
	}
	for _, test := range tests {
		name, shorthand := parseFlagTag(test.tag)
		if name != test.name || shorthand != test.shorthand {
			t.Errorf("parseFlagTag(%q) = (%q, %q), want (%q, %q)",
				test.tag, name, shorthand, test.name, test.shorthand)
		}
	}
}
