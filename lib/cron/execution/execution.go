// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package execution

import (
	"errors"
	"iter"
	"slices"
	"time"

	"github.com/bureau-foundation/cronkit/lib/cron"
	"github.com/bureau-foundation/cronkit/lib/cron/expr"
	"github.com/bureau-foundation/cronkit/lib/cron/generator"
)

// DefaultLookahead is how many years past the starting point a search
// scans before reporting no result.
const DefaultLookahead = 8

// Searches never leave the years time.Time formats with four digits.
const (
	minYear = 1
	maxYear = 9999
)

// ErrInvalidRange reports an interval whose end is not after its start.
var ErrInvalidRange = errors.New("execution: end must be after start")

// Option configures an ExecutionTime.
type Option func(*ExecutionTime)

// WithLookahead sets the search horizon in years. Values below 1 are
// raised to 1.
func WithLookahead(years int) Option {
	return func(e *ExecutionTime) {
		e.lookahead = max(years, 1)
	}
}

// dayRule is how the day fields combine into one test per month.
type dayRule uint8

const (
	anyDay dayRule = iota
	dayOfMonthOnly
	dayOfWeekOnly
	eitherDay
	bothDays
)

// ExecutionTime evaluates one schedule.
type ExecutionTime struct {
	cron      *cron.Cron
	lookahead int

	seconds *generator.Generator
	minutes *generator.Generator
	hours   *generator.Generator
	months  *generator.Generator
	years   *generator.Generator

	dayOfMonth cron.Field
	dayOfWeek  cron.Field
	dayOfYear  cron.Field
	rule       dayRule
	byYearDay  bool
}

// New returns the execution time calculator for c.
func New(c *cron.Cron, options ...Option) *ExecutionTime {
	e := &ExecutionTime{cron: c, lookahead: DefaultLookahead}
	for _, option := range options {
		option(e)
	}

	contextFree := generator.Context{}
	e.seconds = generator.New(fieldOrDefault(c, expr.Second), contextFree)
	e.minutes = generator.New(fieldOrDefault(c, expr.Minute), contextFree)
	e.hours = generator.New(fieldOrDefault(c, expr.Hour), contextFree)
	e.months = generator.New(fieldOrDefault(c, expr.Month), contextFree)
	e.years = generator.New(fieldOrDefault(c, expr.Year), contextFree)

	e.dayOfMonth = fieldOrDefault(c, expr.DayOfMonth)
	e.dayOfWeek = fieldOrDefault(c, expr.DayOfWeek)
	e.dayOfYear = fieldOrDefault(c, expr.DayOfYear)
	e.rule = ruleFor(c.Definition(), e.dayOfMonth.Expression, e.dayOfWeek.Expression)
	e.byYearDay = restricts(e.dayOfYear.Expression)
	return e
}

// fieldOrDefault returns the named field of c, or a stand-in for a field
// the schedule does not have. Time-of-day fields finer than every field
// the schedule has are pinned to their minimum, so a Unix schedule fires
// on second 0. Day fields become ?, and anything else matches every
// value.
func fieldOrDefault(c *cron.Cron, name expr.FieldName) cron.Field {
	if field, ok := c.Field(name); ok {
		return field
	}
	constraints := expr.DefaultConstraints(name)
	field := cron.Field{Name: name, Expression: expr.Always{}, Constraints: constraints}

	switch name {
	case expr.DayOfMonth, expr.DayOfWeek, expr.DayOfYear:
		field.Expression = expr.QuestionMark{}
	case expr.Second, expr.Minute, expr.Hour:
		fields := c.Fields()
		if len(fields) > 0 && fields[0].Name > name {
			first, err := expr.NewOn(constraints, expr.Int(constraints.Min()), expr.None, expr.Value{})
			if err != nil {
				panic(err)
			}
			field.Expression = first
		}
	}
	return field
}

// restricts reports whether e narrows the values of its field.
func restricts(e expr.Expression) bool {
	switch e := e.(type) {
	case expr.Always, expr.QuestionMark:
		return false
	case expr.Every:
		_, all := e.Inner().(expr.Always)
		return !all || e.Period() > 1
	}
	return true
}

func ruleFor(definition *cron.Definition, dayOfMonth, dayOfWeek expr.Expression) dayRule {
	byMonth := restricts(dayOfMonth)
	byWeek := restricts(dayOfWeek)
	switch {
	case byMonth && byWeek && definition.DayDisjunction():
		return eitherDay
	case byMonth && byWeek:
		return bothDays
	case byMonth:
		return dayOfMonthOnly
	case byWeek:
		return dayOfWeekOnly
	}
	return anyDay
}

// Cron returns the schedule.
func (e *ExecutionTime) Cron() *cron.Cron { return e.cron }

// days returns the generator of matching days in one month.
func (e *ExecutionTime) days(year int, month time.Month) *generator.Generator {
	ctx := generator.Context{Year: year, Month: month}
	var days *generator.Generator
	switch e.rule {
	case dayOfMonthOnly:
		days = generator.New(e.dayOfMonth, ctx)
	case dayOfWeekOnly:
		days = generator.New(e.dayOfWeek, ctx)
	case eitherDay:
		days = generator.Union(generator.New(e.dayOfMonth, ctx), generator.New(e.dayOfWeek, ctx))
	case bothDays:
		days = generator.Intersect(generator.New(e.dayOfMonth, ctx), generator.New(e.dayOfWeek, ctx))
	default:
		days = generator.AllDays(ctx)
	}
	if e.byYearDay {
		days = generator.Intersect(days, generator.New(e.dayOfYear, ctx))
	}
	return days
}

// IsMatch reports whether t, read on its own location's wall clock and
// truncated to the second, matches the schedule.
func (e *ExecutionTime) IsMatch(t time.Time) bool {
	w := wallOf(t)
	return e.years.IsMatch(w.year) &&
		e.months.IsMatch(int(w.month)) &&
		e.days(w.year, w.month).IsMatch(w.day) &&
		e.hours.IsMatch(w.hour) &&
		e.minutes.IsMatch(w.minute) &&
		e.seconds.IsMatch(w.second)
}

// NextExecution returns the first matching instant strictly after t, in
// t's location. It reports false when nothing matches within the
// lookahead.
func (e *ExecutionTime) NextExecution(t time.Time) (time.Time, bool) {
	loc := t.Location()
	from := wallOf(t).addSeconds(1)
	limit := from.year + e.lookahead
	for {
		found, ok := e.nextWall(from, limit)
		if !ok {
			return time.Time{}, false
		}
		candidate := found.in(loc)
		if candidate.After(t) {
			return candidate, true
		}
		// t lies in the second pass of an overlap: the reading's later
		// instant may still be ahead of it.
		if second, ok := found.repeat(candidate); ok && second.After(t) {
			return second, true
		}
		from = found.addSeconds(1)
	}
}

// LastExecution returns the last matching instant strictly before t, in
// t's location. It reports false when nothing matches within the
// lookahead.
func (e *ExecutionTime) LastExecution(t time.Time) (time.Time, bool) {
	loc := t.Location()
	from := wallOf(t)
	if t.Nanosecond() == 0 {
		from = from.addSeconds(-1)
	}
	limit := from.year - e.lookahead
	for {
		found, ok := e.previousWall(from, limit)
		if !ok {
			return time.Time{}, false
		}
		candidate := found.in(loc)
		if second, ok := found.repeat(candidate); ok && second.Before(t) {
			return second, true
		}
		if candidate.Before(t) {
			return candidate, true
		}
		from = found.addSeconds(-1)
	}
}

// TimeToNextExecution returns the time from t until NextExecution(t).
func (e *ExecutionTime) TimeToNextExecution(t time.Time) (time.Duration, bool) {
	next, ok := e.NextExecution(t)
	if !ok {
		return 0, false
	}
	return next.Sub(t), true
}

// TimeFromLastExecution returns the time from LastExecution(t) until t.
// For a schedule firing daily at 12:00 and t exactly 12:00 that is 24
// hours: t itself is never its own last execution.
func (e *ExecutionTime) TimeFromLastExecution(t time.Time) (time.Duration, bool) {
	last, ok := e.LastExecution(t)
	if !ok {
		return 0, false
	}
	return t.Sub(last), true
}

// Executions yields the matching instants in (start, end] in ascending
// order. It yields nothing when end is not after start. The sequence
// can be ranged over any number of times.
func (e *ExecutionTime) Executions(start, end time.Time) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		if !end.After(start) {
			return
		}
		for next, ok := e.NextExecution(start); ok && !next.After(end); next, ok = e.NextExecution(next) {
			if !yield(next) {
				return
			}
		}
	}
}

// ExecutionDates returns the matching instants in (start, end].
func (e *ExecutionTime) ExecutionDates(start, end time.Time) ([]time.Time, error) {
	if !end.After(start) {
		return nil, ErrInvalidRange
	}
	return slices.Collect(e.Executions(start, end)), nil
}

// CountExecutions returns the number of matching instants in
// (start, end].
func (e *ExecutionTime) CountExecutions(start, end time.Time) (int, error) {
	if !end.After(start) {
		return 0, ErrInvalidRange
	}
	count := 0
	for range e.Executions(start, end) {
		count++
	}
	return count, nil
}
