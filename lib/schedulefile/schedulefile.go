// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schedulefile

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/cronkit/lib/cron"
	"github.com/bureau-foundation/cronkit/lib/cron/execution"
	"github.com/bureau-foundation/cronkit/lib/cron/parser"
)

// ErrInvalidFile is wrapped by every failure to build a Set.
var ErrInvalidFile = errors.New("invalid schedule file")

// Entry is one schedule as written in the file.
type Entry struct {
	// Name identifies the schedule. Required and unique within a file.
	Name string `json:"name"`

	// Dialect names a built-in dialect. Empty means Options.Dialect.
	Dialect string `json:"dialect,omitempty"`

	// Expression is the cron expression text.
	Expression string `json:"expression"`

	// TimeZone is an IANA zone name. Empty means Options.Location.
	TimeZone string `json:"time_zone,omitempty"`

	// Description is free text shown in listings.
	Description string `json:"description,omitempty"`

	// Disabled entries are parsed and validated but never fire.
	Disabled bool `json:"disabled,omitempty"`
}

// document is the top-level shape of a schedule file.
type document struct {
	Schedules []Entry `json:"schedules"`
}

// Options supplies the defaults applied to entries that omit them.
type Options struct {
	// Dialect is used for entries without a dialect. Nil means Unix.
	Dialect *cron.Definition

	// Location is used for entries without a time zone. Nil means UTC.
	Location *time.Location

	// Execution options are passed to every schedule's ExecutionTime.
	Execution []execution.Option
}

// Schedule is a parsed entry.
type Schedule struct {
	Entry

	Cron        *cron.Cron
	Location    *time.Location
	Execution   *execution.ExecutionTime
	Fingerprint Fingerprint
}

// Next returns the first execution strictly after t, on the wall clock
// of the schedule's location.
func (s *Schedule) Next(t time.Time) (time.Time, bool) {
	return s.Execution.NextExecution(t.In(s.Location))
}

// Set is the parsed content of a schedule file, in file order.
type Set struct {
	Schedules []*Schedule
}

// Upcoming pairs a schedule with one of its executions.
type Upcoming struct {
	Schedule *Schedule
	Time     time.Time
}

// Load reads a JSONC schedule file from disk and parses it.
func Load(path string, options Options) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	set, err := Parse(data, options)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// Parse strips JSONC comments and trailing commas from data, then
// parses every entry. Problems with individual entries are collected
// and returned together.
func Parse(data []byte, options Options) (*Set, error) {
	stripped := jsonc.ToJSON(data)

	var content document
	if err := json.Unmarshal(stripped, &content); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	if options.Dialect == nil {
		options.Dialect = cron.Unix()
	}
	if options.Location == nil {
		options.Location = time.UTC
	}

	set := &Set{}
	seen := make(map[string]int)
	var errs []error
	for index, entry := range content.Schedules {
		if entry.Name == "" {
			errs = append(errs, fmt.Errorf("%w: schedules[%d]: name is required", ErrInvalidFile, index))
			continue
		}
		if previous, ok := seen[entry.Name]; ok {
			errs = append(errs, fmt.Errorf("%w: schedules[%d]: name %q already used by schedules[%d]",
				ErrInvalidFile, index, entry.Name, previous))
			continue
		}
		seen[entry.Name] = index

		schedule, err := compile(entry, options)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: schedules[%d] (%s): %w", ErrInvalidFile, index, entry.Name, err))
			continue
		}
		set.Schedules = append(set.Schedules, schedule)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return set, nil
}

func compile(entry Entry, options Options) (*Schedule, error) {
	definition := options.Dialect
	if entry.Dialect != "" {
		var err error
		definition, err = cron.Lookup(entry.Dialect)
		if err != nil {
			return nil, err
		}
	}

	location := options.Location
	if entry.TimeZone != "" {
		var err error
		location, err = time.LoadLocation(entry.TimeZone)
		if err != nil {
			return nil, fmt.Errorf("time_zone %q: %w", entry.TimeZone, err)
		}
	}

	c, err := parser.Parse(definition, entry.Expression)
	if err != nil {
		return nil, err
	}

	return &Schedule{
		Entry:       entry,
		Cron:        c,
		Location:    location,
		Execution:   execution.New(c, options.Execution...),
		Fingerprint: FingerprintOf(c),
	}, nil
}

// Lookup returns the schedule with the given name.
func (s *Set) Lookup(name string) (*Schedule, bool) {
	for _, schedule := range s.Schedules {
		if schedule.Name == name {
			return schedule, true
		}
	}
	return nil, false
}

// Next returns the first execution after t of every enabled schedule
// that has one, ordered by time and then by name.
func (s *Set) Next(t time.Time) []Upcoming {
	var upcoming []Upcoming
	for _, schedule := range s.Schedules {
		if schedule.Disabled {
			continue
		}
		if next, ok := schedule.Next(t); ok {
			upcoming = append(upcoming, Upcoming{Schedule: schedule, Time: next})
		}
	}
	sortUpcoming(upcoming)
	return upcoming
}

// Between returns every execution of every enabled schedule in the
// half-open interval (start, end], ordered by time and then by name.
func (s *Set) Between(start, end time.Time) ([]Upcoming, error) {
	var upcoming []Upcoming
	for _, schedule := range s.Schedules {
		if schedule.Disabled {
			continue
		}
		dates, err := schedule.Execution.ExecutionDates(start.In(schedule.Location), end)
		if err != nil {
			return nil, err
		}
		for _, date := range dates {
			upcoming = append(upcoming, Upcoming{Schedule: schedule, Time: date})
		}
	}
	sortUpcoming(upcoming)
	return upcoming, nil
}

func sortUpcoming(upcoming []Upcoming) {
	slices.SortStableFunc(upcoming, func(a, b Upcoming) int {
		return cmp.Or(a.Time.Compare(b.Time), cmp.Compare(a.Schedule.Name, b.Schedule.Name))
	})
}

// Duplicates returns groups of two or more schedules that share a
// fingerprint and a location, so fire at the same instants. Groups are
// in order of their first member; members keep file order.
func (s *Set) Duplicates() [][]*Schedule {
	type key struct {
		fingerprint Fingerprint
		location    string
	}
	groups := make(map[key][]*Schedule)
	var order []key
	for _, schedule := range s.Schedules {
		k := key{schedule.Fingerprint, schedule.Location.String()}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], schedule)
	}

	var duplicates [][]*Schedule
	for _, k := range order {
		if len(groups[k]) > 1 {
			duplicates = append(duplicates, groups[k])
		}
	}
	return duplicates
}
