// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bureau-foundation/cronkit/cmd/cronkit/cli"
	"github.com/bureau-foundation/cronkit/lib/config"
	"github.com/bureau-foundation/cronkit/lib/cron"
	"github.com/bureau-foundation/cronkit/lib/cron/execution"
	"github.com/bureau-foundation/cronkit/lib/cron/parser"
)

// Options are the flags shared by every command that evaluates
// expressions. Empty values fall back to the configuration file.
type Options struct {
	ConfigPath string `flag:"config" desc:"path to cronkit.yaml (default: $CRONKIT_CONFIG)"`
	Dialect    string `flag:"dialect,d" desc:"cron dialect: unix, cron4j, quartz, spring, spring53"`
	TimeZone   string `flag:"tz" desc:"IANA time zone the schedule is evaluated in"`
	Format     string `flag:"format,o" desc:"output format: text, json, or cbor"`
	Lookahead  int    `flag:"lookahead" desc:"years searched for an execution before giving up"`
	Verbose    bool   `flag:"verbose,v" desc:"enable debug logging"`
}

// settings is Options resolved against the configuration.
type settings struct {
	config     *config.Config
	definition *cron.Definition
	location   *time.Location
	format     cli.Format
	execution  []execution.Option
}

// resolve loads the configuration and applies flag overrides. All
// problems with the merged result are reported together.
func (o *Options) resolve(logger *slog.Logger) (*settings, error) {
	cfg, err := config.Resolve(o.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if o.Dialect != "" {
		cfg.Dialect = o.Dialect
	}
	if o.TimeZone != "" {
		cfg.TimeZone = o.TimeZone
	}
	if o.Format != "" {
		cfg.Format = o.Format
	}
	if o.Lookahead != 0 {
		cfg.LookaheadYears = o.Lookahead
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings:\n%w", err)
	}

	// Validate has already checked these.
	definition, _ := cfg.Definition()
	location, _ := cfg.Location()
	format, _ := cli.ParseFormat(cfg.Format)

	logger.Debug("resolved settings",
		"dialect", definition.Name(),
		"time_zone", location.String(),
		"lookahead_years", cfg.LookaheadYears,
		"format", format,
	)

	return &settings{
		config:     cfg,
		definition: definition,
		location:   location,
		format:     format,
		execution:  []execution.Option{execution.WithLookahead(cfg.LookaheadYears)},
	}, nil
}

// parse parses an expression given as one or more positional
// arguments. Unquoted fields arrive as separate arguments and are
// rejoined with single spaces.
func (s *settings) parse(args []string) (*cron.Cron, *execution.ExecutionTime, error) {
	text := strings.Join(args, " ")
	if strings.TrimSpace(text) == "" {
		return nil, nil, errors.New("expression required")
	}
	c, err := parser.Parse(s.definition, text)
	if err != nil {
		return nil, nil, err
	}
	return c, execution.New(c, s.execution...), nil
}

// localLayouts are accepted by parseInstant in addition to RFC 3339.
// They carry no offset and are read on the wall clock of the
// configured time zone.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseInstant parses an instant flag value. An empty value means now.
// The result is always expressed in location.
func parseInstant(value string, location *time.Location, now time.Time) (time.Time, error) {
	if value == "" {
		return now.In(location), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(location), nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, location); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q: want RFC 3339 (2006-01-02T15:04:05Z07:00) or a local date-time such as 2006-01-02 15:04", value)
}

// parseRange resolves --from with either --to or --for into an
// interval. --to wins when both are given.
func parseRange(from, to string, duration time.Duration, location *time.Location, now time.Time) (time.Time, time.Time, error) {
	start, err := parseInstant(from, location, now)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("--from: %w", err)
	}
	if to == "" {
		return start, start.Add(duration), nil
	}
	end, err := parseInstant(to, location, now)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("--to: %w", err)
	}
	return start, end, nil
}
