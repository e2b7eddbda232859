// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package execution

import (
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/google/go-cmp/cmp"

	"github.com/bureau-foundation/cronkit/lib/cron"
	"github.com/bureau-foundation/cronkit/lib/cron/parser"
)

func mustParse(t *testing.T, definition *cron.Definition, text string) *ExecutionTime {
	t.Helper()
	c, err := parser.Parse(definition, text)
	if err != nil {
		t.Fatalf("Parse(%q): %v", text, err)
	}
	return New(c)
}

func utc(year int, month time.Month, day, hour, minute, second int) time.Time {
	return time.Date(year, month, day, hour, minute, second, 0, time.UTC)
}

func location(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("LoadLocation(%q): %v", name, err)
	}
	return loc
}

func TestNextExecution(t *testing.T) {
	tests := []struct {
		name       string
		definition *cron.Definition
		text       string
		from       time.Time
		want       time.Time
	}{
		{"every minute", cron.Unix(), "* * * * *", utc(2024, 1, 1, 0, 0, 0), utc(2024, 1, 1, 0, 1, 0)},
		{"mid minute", cron.Unix(), "* * * * *", utc(2024, 1, 1, 0, 0, 30), utc(2024, 1, 1, 0, 1, 0)},
		{"hourly", cron.Unix(), "0 * * * *", utc(2024, 1, 1, 10, 30, 0), utc(2024, 1, 1, 11, 0, 0)},
		{"daily rolls day", cron.Unix(), "0 12 * * *", utc(2024, 1, 1, 13, 0, 0), utc(2024, 1, 2, 12, 0, 0)},
		{"year rollover", cron.Unix(), "0 0 1 1 *", utc(2024, 6, 15, 0, 0, 0), utc(2025, 1, 1, 0, 0, 0)},
		{"month end rollover", cron.Unix(), "0 0 31 * *", utc(2024, 4, 1, 0, 0, 0), utc(2024, 5, 31, 0, 0, 0)},
		{"leap day", cron.Unix(), "0 0 29 2 *", utc(2021, 3, 1, 0, 0, 0), utc(2024, 2, 29, 0, 0, 0)},
		{"weekdays from friday", cron.Unix(), "0 9 * * MON-FRI", utc(2024, 1, 5, 10, 0, 0), utc(2024, 1, 8, 9, 0, 0)},
		{"sunday as seven", cron.Unix(), "0 0 * * 7", utc(2024, 1, 1, 0, 0, 0), utc(2024, 1, 7, 0, 0, 0)},
		{"day disjunction", cron.Unix(), "0 0 13 * 5", utc(2024, 1, 6, 0, 0, 0), utc(2024, 1, 12, 0, 0, 0)},
		{"stepped day is restricted", cron.Unix(), "0 0 */10 * 1", utc(2024, 1, 2, 0, 0, 0), utc(2024, 1, 8, 0, 0, 0)},
		{"quartz seconds", cron.Quartz(), "*/15 * * * * ?", utc(2024, 1, 1, 0, 0, 50), utc(2024, 1, 1, 0, 1, 0)},
		{"quartz last day", cron.Quartz(), "0 0 12 L * ?", utc(2024, 2, 1, 0, 0, 0), utc(2024, 2, 29, 12, 0, 0)},
		{"quartz L-2", cron.Quartz(), "0 0 12 L-2 * ?", utc(2024, 2, 28, 0, 0, 0), utc(2024, 3, 29, 12, 0, 0)},
		{"quartz last weekday", cron.Quartz(), "0 0 18 LW * ?", utc(2024, 8, 1, 0, 0, 0), utc(2024, 8, 30, 18, 0, 0)},
		{"quartz nth weekday", cron.Quartz(), "0 0 0 ? * 2#2", utc(2015, 1, 31, 0, 0, 0), utc(2015, 2, 9, 0, 0, 0)},
		{"quartz last friday", cron.Quartz(), "0 15 10 ? * 6L", utc(2024, 1, 1, 0, 0, 0), utc(2024, 1, 26, 10, 15, 0)},
		{"quartz year jump", cron.Quartz(), "0 0 0 1 1 ? 2090", utc(2020, 5, 5, 0, 0, 0), utc(2090, 1, 1, 0, 0, 0)},
		{"quartz wrapped weekdays", cron.Quartz(), "0 0 8 ? * FRI-MON", utc(2024, 1, 2, 0, 0, 0), utc(2024, 1, 5, 8, 0, 0)},
		{"spring both days", cron.Spring(), "0 0 0 13 * FRI", utc(2024, 1, 1, 0, 0, 0), utc(2024, 9, 13, 0, 0, 0)},
		{"cron4j last day", cron.Cron4j(), "0 0 L * *", utc(2023, 2, 1, 0, 0, 0), utc(2023, 2, 28, 0, 0, 0)},
		{"cron4j wrapped hours", cron.Cron4j(), "0 23-1 * * *", utc(2024, 1, 1, 1, 30, 0), utc(2024, 1, 1, 23, 0, 0)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			e := mustParse(t, test.definition, test.text)
			got, ok := e.NextExecution(test.from)
			if !ok {
				t.Fatalf("NextExecution(%s) found nothing", test.from)
			}
			if !got.Equal(test.want) {
				t.Errorf("NextExecution(%s) = %s, want %s", test.from, got, test.want)
			}
			if !e.IsMatch(got) {
				t.Errorf("IsMatch(%s) = false for a returned execution", got)
			}
		})
	}
}

func TestLastExecution(t *testing.T) {
	tests := []struct {
		name       string
		definition *cron.Definition
		text       string
		from       time.Time
		want       time.Time
	}{
		{"every minute", cron.Unix(), "* * * * *", utc(2024, 1, 1, 0, 0, 0), utc(2023, 12, 31, 23, 59, 0)},
		{"hourly", cron.Unix(), "0 * * * *", utc(2024, 1, 1, 10, 30, 0), utc(2024, 1, 1, 10, 0, 0)},
		{"year rollback", cron.Unix(), "0 0 31 12 *", utc(2024, 6, 15, 0, 0, 0), utc(2023, 12, 31, 0, 0, 0)},
		{"leap day", cron.Unix(), "0 0 29 2 *", utc(2023, 3, 1, 0, 0, 0), utc(2020, 2, 29, 0, 0, 0)},
		{"month start", cron.Unix(), "30 6 1 * *", utc(2024, 3, 1, 6, 30, 0), utc(2024, 2, 1, 6, 30, 0)},
		{"quartz last day", cron.Quartz(), "0 0 12 L * ?", utc(2024, 3, 15, 0, 0, 0), utc(2024, 2, 29, 12, 0, 0)},
		{"quartz nth weekday", cron.Quartz(), "0 0 0 ? * 2#2", utc(2015, 2, 9, 0, 0, 0), utc(2015, 1, 12, 0, 0, 0)},
		{"quartz seconds", cron.Quartz(), "10,40 * * * * ?", utc(2024, 1, 1, 0, 0, 10), utc(2023, 12, 31, 23, 59, 40)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			e := mustParse(t, test.definition, test.text)
			got, ok := e.LastExecution(test.from)
			if !ok {
				t.Fatalf("LastExecution(%s) found nothing", test.from)
			}
			if !got.Equal(test.want) {
				t.Errorf("LastExecution(%s) = %s, want %s", test.from, got, test.want)
			}
		})
	}
}

func TestLastExecutionSubSecond(t *testing.T) {
	e := mustParse(t, cron.Unix(), "0 12 * * *")
	t0 := utc(2024, 1, 1, 12, 0, 0).Add(500 * time.Millisecond)
	got, ok := e.LastExecution(t0)
	if !ok || !got.Equal(utc(2024, 1, 1, 12, 0, 0)) {
		t.Errorf("LastExecution(%s) = %s, %v", t0, got, ok)
	}
	next, ok := e.NextExecution(t0)
	if !ok || !next.Equal(utc(2024, 1, 2, 12, 0, 0)) {
		t.Errorf("NextExecution(%s) = %s, %v", t0, next, ok)
	}
}

func TestStrictlyMonotonic(t *testing.T) {
	texts := map[*cron.Definition][]string{
		cron.Unix():   {"*/7 * * * *", "0 0 13 * 5", "15 3 1 * *"},
		cron.Quartz(): {"0 0 12 LW * ?", "30 */20 * ? * 2#3", "0 0 0 29 2 ?"},
	}
	for definition, list := range texts {
		for _, text := range list {
			e := mustParse(t, definition, text)

			forward := utc(2024, 1, 1, 0, 0, 0)
			for range 20 {
				next, ok := e.NextExecution(forward)
				if !ok {
					t.Fatalf("%q: NextExecution(%s) found nothing", text, forward)
				}
				if !next.After(forward) {
					t.Fatalf("%q: NextExecution(%s) = %s is not later", text, forward, next)
				}
				forward = next
			}

			backward := utc(2024, 1, 1, 0, 0, 0)
			for range 20 {
				last, ok := e.LastExecution(backward)
				if !ok {
					t.Fatalf("%q: LastExecution(%s) found nothing", text, backward)
				}
				if !last.Before(backward) {
					t.Fatalf("%q: LastExecution(%s) = %s is not earlier", text, backward, last)
				}
				backward = last
			}
		}
	}
}

func TestNextOfLastAgrees(t *testing.T) {
	e := mustParse(t, cron.Unix(), "20 4,16 * * 1-5")
	for hours := 0; hours < 24*14; hours += 5 {
		at := utc(2024, 3, 1, 0, 7, 0).Add(time.Duration(hours) * time.Hour)
		last, ok := e.LastExecution(at)
		if !ok {
			t.Fatalf("LastExecution(%s) found nothing", at)
		}
		fromLast, _ := e.NextExecution(last)
		fromAt, _ := e.NextExecution(at)
		if !fromLast.Equal(fromAt) {
			t.Errorf("at %s: NextExecution(LastExecution) = %s, NextExecution = %s", at, fromLast, fromAt)
		}
	}
}

func TestIsMatch(t *testing.T) {
	e := mustParse(t, cron.Unix(), "30 9 * * MON-FRI")

	if !e.IsMatch(utc(2024, 1, 1, 9, 30, 0)) {
		t.Error("Monday 09:30 does not match")
	}
	if !e.IsMatch(utc(2024, 1, 1, 9, 30, 0).Add(123 * time.Millisecond)) {
		t.Error("sub-second part is not ignored")
	}
	if e.IsMatch(utc(2024, 1, 1, 9, 30, 1)) {
		t.Error("second 1 matches a five-field schedule")
	}
	if e.IsMatch(utc(2024, 1, 6, 9, 30, 0)) {
		t.Error("Saturday matches")
	}

	tokyo := location(t, "Asia/Tokyo")
	if !e.IsMatch(time.Date(2024, 1, 1, 9, 30, 0, 0, tokyo)) {
		t.Error("wall clock of the instant's own zone is not used")
	}
	if e.IsMatch(time.Date(2024, 1, 1, 9, 30, 0, 0, tokyo).UTC()) {
		t.Error("09:30 Tokyo read as UTC matches")
	}
}

func TestInclusiveExclusiveAsymmetry(t *testing.T) {
	e := mustParse(t, cron.Unix(), "0 12 * * *")
	noon := utc(2024, 5, 10, 12, 0, 0)

	if !e.IsMatch(noon) {
		t.Fatal("noon does not match")
	}
	if since, ok := e.TimeFromLastExecution(noon); !ok || since != 24*time.Hour {
		t.Errorf("TimeFromLastExecution = %s, %v; want 24h", since, ok)
	}
	if until, ok := e.TimeToNextExecution(noon); !ok || until != 24*time.Hour {
		t.Errorf("TimeToNextExecution = %s, %v; want 24h", until, ok)
	}
	if next, _ := e.NextExecution(noon); !next.Equal(noon.Add(24 * time.Hour)) {
		t.Errorf("NextExecution = %s", next)
	}

	morning := utc(2024, 5, 10, 9, 15, 0)
	if until, _ := e.TimeToNextExecution(morning); until != 2*time.Hour+45*time.Minute {
		t.Errorf("TimeToNextExecution(09:15) = %s", until)
	}
	if since, _ := e.TimeFromLastExecution(morning); since != 21*time.Hour+15*time.Minute {
		t.Errorf("TimeFromLastExecution(09:15) = %s", since)
	}
}

func TestNoMatch(t *testing.T) {
	tests := []struct {
		definition *cron.Definition
		text       string
	}{
		{cron.Unix(), "0 0 30 2 *"},
		{cron.Unix(), "0 0 31 4,6,9,11 *"},
		{cron.Quartz(), "0 0 0 ? 2 2#5 2015"},
		{cron.Quartz(), "0 0 0 1 1 ? 2014"},
	}
	for _, test := range tests {
		e := mustParse(t, test.definition, test.text)
		from := utc(2015, 1, 1, 0, 0, 0)
		if next, ok := e.NextExecution(from); ok {
			t.Errorf("%q: NextExecution = %s, want none", test.text, next)
		}
		if _, ok := e.TimeToNextExecution(from); ok {
			t.Errorf("%q: TimeToNextExecution found a duration", test.text)
		}
	}

	e := mustParse(t, cron.Unix(), "0 0 30 2 *")
	if last, ok := e.LastExecution(utc(2015, 1, 1, 0, 0, 0)); ok {
		t.Errorf("LastExecution = %s, want none", last)
	}
}

func TestQuartzYearBound(t *testing.T) {
	e := mustParse(t, cron.Quartz(), "0 0 0 1 1 ? *")
	if next, ok := e.NextExecution(utc(2099, 6, 1, 0, 0, 0)); ok {
		t.Errorf("NextExecution after 2099 = %s, want none", next)
	}
	unbounded := mustParse(t, cron.Quartz(), "0 0 0 1 1 ?")
	if next, ok := unbounded.NextExecution(utc(2099, 6, 1, 0, 0, 0)); !ok || next.Year() != 2100 {
		t.Errorf("NextExecution without a year field = %s, %v", next, ok)
	}
}

func TestLookahead(t *testing.T) {
	c, err := parser.Parse(cron.Unix(), "0 0 29 2 *")
	if err != nil {
		t.Fatal(err)
	}
	from := utc(2021, 3, 1, 0, 0, 0)

	if _, ok := New(c, WithLookahead(2)).NextExecution(from); ok {
		t.Error("found a leap day within two years of March 2021")
	}
	if next, ok := New(c, WithLookahead(3)).NextExecution(from); !ok || !next.Equal(utc(2024, 2, 29, 0, 0, 0)) {
		t.Errorf("NextExecution with three years = %s, %v", next, ok)
	}
	if next, ok := New(c).NextExecution(utc(2096, 3, 1, 0, 0, 0)); !ok || !next.Equal(utc(2104, 2, 29, 0, 0, 0)) {
		t.Errorf("NextExecution across 2100 = %s, %v", next, ok)
	}
}

func TestCountExecutions(t *testing.T) {
	e := mustParse(t, cron.Unix(), "0 * * * *")
	start := utc(2022, 1, 1, 0, 0, 0)

	count, err := e.CountExecutions(start, utc(2022, 1, 11, 0, 0, 0))
	if err != nil || count != 240 {
		t.Errorf("CountExecutions over ten days = %d, %v; want 240", count, err)
	}

	dates, err := e.ExecutionDates(start, start.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("ExecutionDates: %v", err)
	}
	var want []time.Time
	for hour := 1; hour <= 24; hour++ {
		want = append(want, start.Add(time.Duration(hour)*time.Hour))
	}
	if diff := cmp.Diff(want, dates); diff != "" {
		t.Errorf("ExecutionDates (-want +got):\n%s", diff)
	}

	for _, end := range []time.Time{start, start.Add(-time.Hour)} {
		if _, err := e.ExecutionDates(start, end); !errors.Is(err, ErrInvalidRange) {
			t.Errorf("ExecutionDates(start, %s) error = %v, want ErrInvalidRange", end, err)
		}
		if _, err := e.CountExecutions(start, end); !errors.Is(err, ErrInvalidRange) {
			t.Errorf("CountExecutions(start, %s) error = %v, want ErrInvalidRange", end, err)
		}
	}
}

func TestExecutionsRestartable(t *testing.T) {
	e := mustParse(t, cron.Unix(), "*/30 * * * *")
	sequence := e.Executions(utc(2024, 1, 1, 0, 0, 0), utc(2024, 1, 1, 3, 0, 0))

	var first, second []time.Time
	for at := range sequence {
		first = append(first, at)
	}
	for at := range sequence {
		second = append(second, at)
		if len(second) == 2 {
			break
		}
	}
	if len(first) != 6 {
		t.Errorf("first pass yielded %d instants, want 6", len(first))
	}
	if diff := cmp.Diff(first[:2], second); diff != "" {
		t.Errorf("second pass (-want +got):\n%s", diff)
	}
}

func TestDaylightSavingSpringForward(t *testing.T) {
	newYork := location(t, "America/New_York")
	e := mustParse(t, cron.Unix(), "0 17 * * *")

	from := time.Date(2016, 3, 12, 17, 0, 0, 0, newYork)
	next, ok := e.NextExecution(from)
	if !ok {
		t.Fatal("NextExecution found nothing")
	}
	if got := next.Sub(from); got != 23*time.Hour {
		t.Errorf("NextExecution is %s later, want 23h", got)
	}
	if next.Location() != newYork {
		t.Errorf("location = %s, want %s", next.Location(), newYork)
	}
	if next.Hour() != 17 || next.Day() != 13 {
		t.Errorf("NextExecution = %s", next)
	}

	count, err := e.CountExecutions(from.Add(-72*time.Hour), from.Add(72*time.Hour))
	if err != nil || count != 6 {
		t.Errorf("CountExecutions across the transition = %d, %v; want 6", count, err)
	}
}

func TestDaylightSavingGap(t *testing.T) {
	tests := []struct {
		zone string
		text string
		from time.Time
		want time.Time
	}{
		// 02:00 EST jumps to 03:00 EDT at 07:00 UTC.
		{"America/New_York", "30 2 * * *", utc(2016, 3, 13, 5, 0, 0), utc(2016, 3, 13, 7, 0, 0)},
		// 02:00 CET jumps to 03:00 CEST at 01:00 UTC.
		{"Europe/Berlin", "30 2 * * *", utc(2016, 3, 26, 23, 0, 0), utc(2016, 3, 27, 1, 0, 0)},
	}
	for _, test := range tests {
		t.Run(test.zone, func(t *testing.T) {
			loc := location(t, test.zone)
			e := mustParse(t, cron.Unix(), test.text)
			next, ok := e.NextExecution(test.from.In(loc))
			if !ok || !next.Equal(test.want) {
				t.Fatalf("NextExecution = %s, %v; want %s", next, ok, test.want.In(loc))
			}
			if next.Location() != loc {
				t.Errorf("location = %s", next.Location())
			}

			// The day after, 02:30 exists again.
			following, _ := e.NextExecution(next)
			if following.Hour() != 2 || following.Minute() != 30 || following.Day() != next.Day()+1 {
				t.Errorf("following execution = %s", following)
			}
		})
	}
}

func TestDaylightSavingOverlap(t *testing.T) {
	tests := []struct {
		zone string
		from time.Time
		want time.Time
	}{
		// 01:30 happens at 05:30 UTC (EDT) and 06:30 UTC (EST).
		{"America/New_York", utc(2016, 11, 6, 4, 0, 0), utc(2016, 11, 6, 5, 30, 0)},
		// 02:30 happens at 00:30 UTC (CEST) and 01:30 UTC (CET).
		{"Europe/Berlin", utc(2016, 10, 29, 23, 0, 0), utc(2016, 10, 30, 0, 30, 0)},
	}
	for _, test := range tests {
		t.Run(test.zone, func(t *testing.T) {
			loc := location(t, test.zone)
			want := test.want.In(loc)
			e := mustParse(t, cron.Unix(), want.Format("4 15")+" * * *")

			next, ok := e.NextExecution(test.from.In(loc))
			if !ok || !next.Equal(test.want) {
				t.Fatalf("NextExecution = %s, %v; want %s", next, ok, want)
			}

			// The repeated reading is not a second execution.
			following, _ := e.NextExecution(next)
			if following.Sub(next) < 24*time.Hour {
				t.Errorf("following execution = %s, want the next day", following)
			}
		})
	}
}

func TestDaylightSavingSecondPass(t *testing.T) {
	newYork := location(t, "America/New_York")
	e := mustParse(t, cron.Unix(), "* * * * *")

	// 01:30 EST, the second time 01:30 is read on the fall-back day.
	from := utc(2016, 11, 6, 6, 30, 0).In(newYork)

	next, ok := e.NextExecution(from)
	if !ok || !next.Equal(utc(2016, 11, 6, 6, 31, 0)) {
		t.Errorf("NextExecution(%s) = %s, %v; want 01:31 EST", from, next, ok)
	}
	last, ok := e.LastExecution(from)
	if !ok || !last.Equal(utc(2016, 11, 6, 6, 29, 0)) {
		t.Errorf("LastExecution(%s) = %s, %v; want 01:29 EST", from, last, ok)
	}

	// During the first pass the earlier instants are still closest.
	first := utc(2016, 11, 6, 5, 30, 0).In(newYork)
	next, _ = e.NextExecution(first)
	if !next.Equal(utc(2016, 11, 6, 5, 31, 0)) {
		t.Errorf("NextExecution(%s) = %s, want 01:31 EDT", first, next)
	}
	last, _ = e.LastExecution(first)
	if !last.Equal(utc(2016, 11, 6, 5, 29, 0)) {
		t.Errorf("LastExecution(%s) = %s, want 01:29 EDT", first, last)
	}

	// Leaving the repeated hour continues on the EST wall clock.
	end := utc(2016, 11, 6, 6, 59, 0).In(newYork)
	next, _ = e.NextExecution(end)
	if !next.Equal(utc(2016, 11, 6, 7, 0, 0)) {
		t.Errorf("NextExecution(%s) = %s, want 02:00 EST", end, next)
	}
}

func TestDaylightSavingHourly(t *testing.T) {
	newYork := location(t, "America/New_York")
	e := mustParse(t, cron.Unix(), "0 * * * *")

	// The spring-forward day has 23 hours, the fall-back day 25 hours
	// of which 01:00 repeats and fires once.
	for _, test := range []struct {
		day  time.Time
		want int
	}{
		{time.Date(2016, 3, 13, 0, 0, 0, 0, newYork), 23},
		{time.Date(2016, 11, 6, 0, 0, 0, 0, newYork), 24},
		{time.Date(2016, 7, 4, 0, 0, 0, 0, newYork), 24},
	} {
		end := time.Date(test.day.Year(), test.day.Month(), test.day.Day()+1, 0, 0, 0, 0, newYork)
		count, err := e.CountExecutions(test.day.Add(-time.Second), end.Add(-time.Second))
		if err != nil || count != test.want {
			t.Errorf("%s: %d executions, %v; want %d", test.day.Format(time.DateOnly), count, err, test.want)
		}
	}
}
