// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package execution

import (
	"time"

	"github.com/bureau-foundation/cronkit/lib/cron/generator"
)

// monthDays caches the day generator of the month a search is in.
type monthDays struct {
	year      int
	month     time.Month
	generator *generator.Generator
}

func (m *monthDays) get(e *ExecutionTime, year int, month time.Month) *generator.Generator {
	if m.generator == nil || m.year != year || m.month != month {
		m.year, m.month = year, month
		m.generator = e.days(year, month)
	}
	return m.generator
}

// nextWall returns the first matching wall reading at or after from.
// Each field that does not match advances to its next match and resets
// every finer field to its minimum; a field with no further match
// carries into the next coarser one. Years past limit end the search; a
// jump of the year field itself extends limit.
func (e *ExecutionTime) nextWall(from wall, limit int) (wall, bool) {
	w := from
	var days monthDays
	for w.year <= limit && w.year <= maxYear {
		if !e.years.IsMatch(w.year) {
			year, err := e.years.NextValue(w.year)
			if err != nil {
				return wall{}, false
			}
			limit = max(limit, year+e.lookahead)
			w = wall{year: year, month: time.January, day: 1}
			continue
		}

		if !e.months.IsMatch(int(w.month)) {
			month, err := e.months.NextValue(int(w.month))
			if err != nil {
				w = wall{year: w.year + 1, month: time.January, day: 1}
				continue
			}
			w = wall{year: w.year, month: time.Month(month), day: 1}
			continue
		}

		monthly := days.get(e, w.year, w.month)
		if !monthly.IsMatch(w.day) {
			day, err := monthly.NextValue(w.day)
			if err != nil {
				w = wall{year: w.year, month: w.month + 1, day: 1}.normalize()
				continue
			}
			w = wall{year: w.year, month: w.month, day: day}
			continue
		}

		if !e.hours.IsMatch(w.hour) {
			hour, err := e.hours.NextValue(w.hour)
			if err != nil {
				w = wall{year: w.year, month: w.month, day: w.day + 1}.normalize()
				continue
			}
			w.hour, w.minute, w.second = hour, 0, 0
			continue
		}

		if !e.minutes.IsMatch(w.minute) {
			minute, err := e.minutes.NextValue(w.minute)
			if err != nil {
				w = wall{year: w.year, month: w.month, day: w.day, hour: w.hour + 1}.normalize()
				continue
			}
			w.minute, w.second = minute, 0
			continue
		}

		if !e.seconds.IsMatch(w.second) {
			second, err := e.seconds.NextValue(w.second)
			if err != nil {
				w = wall{year: w.year, month: w.month, day: w.day, hour: w.hour, minute: w.minute + 1}.normalize()
				continue
			}
			w.second = second
			continue
		}

		return w, true
	}
	return wall{}, false
}

// previousWall mirrors nextWall: it returns the last matching wall
// reading at or before from, resetting finer fields to their maximum.
func (e *ExecutionTime) previousWall(from wall, limit int) (wall, bool) {
	w := from
	var days monthDays
	for w.year >= limit && w.year >= minYear {
		if !e.years.IsMatch(w.year) {
			year, err := e.years.PreviousValue(w.year)
			if err != nil {
				return wall{}, false
			}
			limit = min(limit, year-e.lookahead)
			w = endOfDay(year, time.December, 31)
			continue
		}

		if !e.months.IsMatch(int(w.month)) {
			month, err := e.months.PreviousValue(int(w.month))
			if err != nil {
				w = endOfDay(w.year-1, time.December, 31)
				continue
			}
			w = endOfDay(w.year, time.Month(month), generator.DaysInMonth(w.year, time.Month(month)))
			continue
		}

		monthly := days.get(e, w.year, w.month)
		if !monthly.IsMatch(w.day) {
			day, err := monthly.PreviousValue(w.day)
			if err != nil {
				// Day 0 normalizes to the last day of the previous month.
				w = endOfDay(w.year, w.month, 0).normalize()
				continue
			}
			w = endOfDay(w.year, w.month, day)
			continue
		}

		if !e.hours.IsMatch(w.hour) {
			hour, err := e.hours.PreviousValue(w.hour)
			if err != nil {
				w = endOfDay(w.year, w.month, w.day-1).normalize()
				continue
			}
			w.hour, w.minute, w.second = hour, 59, 59
			continue
		}

		if !e.minutes.IsMatch(w.minute) {
			minute, err := e.minutes.PreviousValue(w.minute)
			if err != nil {
				w = wall{year: w.year, month: w.month, day: w.day, hour: w.hour - 1, minute: 59, second: 59}.normalize()
				continue
			}
			w.minute, w.second = minute, 59
			continue
		}

		if !e.seconds.IsMatch(w.second) {
			second, err := e.seconds.PreviousValue(w.second)
			if err != nil {
				w = wall{year: w.year, month: w.month, day: w.day, hour: w.hour, minute: w.minute - 1, second: 59}.normalize()
				continue
			}
			w.second = second
			continue
		}

		return w, true
	}
	return wall{}, false
}

func endOfDay(year int, month time.Month, day int) wall {
	return wall{year: year, month: month, day: day, hour: 23, minute: 59, second: 59}
}
