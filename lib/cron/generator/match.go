// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package generator

import (
	"github.com/bureau-foundation/cronkit/lib/cron/expr"
)

// compile turns e into a test over field values, ignoring the
// calendar-relative On forms, which only the day matchers give meaning
// to. last is what an L range bound stands for.
func compile(e expr.Expression, c expr.Constraints, last int) func(value int) bool {
	low, high := c.Min(), c.Max()
	progression := func(from, to, step int) func(int) bool {
		return func(value int) bool { return inRange(low, high, from, to, step, value) }
	}

	switch e := e.(type) {
	case expr.Always, expr.QuestionMark:
		return always
	case expr.On:
		if e.Special() != expr.None {
			return never
		}
		return equals(e.Time().Int())
	case expr.Between:
		return progression(resolve(e.From(), last), resolve(e.To(), last), e.Step())
	case expr.Every:
		switch inner := e.Inner().(type) {
		case expr.Always:
			return progression(low, high, e.Period())
		case expr.On:
			return progression(inner.Time().Int(), high, e.Period())
		case expr.Between:
			return progression(resolve(inner.From(), last), resolve(inner.To(), last), e.Period())
		}
	case expr.And:
		return anyOf(e.Parts(), func(part expr.Expression) func(int) bool {
			return compile(part, c, last)
		})
	}
	return never
}

// withEquivalents extends match so that a value also matches when a
// value the constraints treat as equivalent to it does: with 7
// equivalent to 0, a day-of-week range 5-7 selects Sunday 0.
func withEquivalents(match func(int) bool, c expr.Constraints) func(int) bool {
	alternates := make(map[int][]int)
	for from, to := range c.Equivalents() {
		if from != to {
			alternates[to] = append(alternates[to], from)
		}
	}
	if len(alternates) == 0 {
		return match
	}
	return func(value int) bool {
		if match(value) {
			return true
		}
		for _, alternate := range alternates[value] {
			if match(alternate) {
				return true
			}
		}
		return false
	}
}

func resolve(v expr.Value, last int) int {
	if v.Special() == expr.L {
		return last
	}
	return v.Int()
}

// inRange reports whether value is on the progression from, from+step,
// ... up to to. When from > to the progression wraps past high back to
// low.
func inRange(low, high, from, to, step, value int) bool {
	if step < 1 {
		step = 1
	}
	var offset int
	switch {
	case from <= to:
		if value < from || value > to {
			return false
		}
		offset = value - from
	case value >= from && value <= high:
		offset = value - from
	case value >= low && value <= to:
		offset = (high - from + 1) + (value - low)
	default:
		return false
	}
	return offset%step == 0
}

func always(int) bool { return true }

func never(int) bool { return false }

func equals(target int) func(int) bool {
	return func(value int) bool { return value == target }
}

func anyOf(parts []expr.Expression, build func(expr.Expression) func(int) bool) func(int) bool {
	matchers := make([]func(int) bool, len(parts))
	for i, part := range parts {
		matchers[i] = build(part)
	}
	return func(value int) bool {
		for _, match := range matchers {
			if match(value) {
				return true
			}
		}
		return false
	}
}

// dayOfMonthMatcher returns the day-of-month test for one month.
func dayOfMonthMatcher(e expr.Expression, c expr.Constraints, cal calendar) func(day int) bool {
	switch e := e.(type) {
	case expr.On:
		switch e.Special() {
		case expr.L:
			target := cal.days - e.Offset()
			if target < 1 {
				return never
			}
			return equals(target)
		case expr.LW:
			return equals(cal.lastWeekday())
		case expr.W:
			target, ok := cal.nearestWeekday(e.Time().Int())
			if !ok {
				return never
			}
			return equals(target)
		}
	case expr.And:
		return anyOf(e.Parts(), func(part expr.Expression) func(int) bool {
			return dayOfMonthMatcher(part, c, cal)
		})
	}
	return compile(e, c, cal.days)
}

// dayOfWeekMatcher returns the day-of-week test for one month, over
// days of the month.
func dayOfWeekMatcher(e expr.Expression, c expr.Constraints, cal calendar) func(day int) bool {
	convention, ok := c.WeekDay()
	if !ok {
		convention = expr.GoWeekDay
	}

	switch e := e.(type) {
	case expr.On:
		switch e.Special() {
		case expr.L:
			if !e.Time().IsInt() {
				// L alone is the last day of the week.
				lastDay := convention.Weekday(c.Canonical(c.Max()))
				return func(day int) bool { return cal.weekday(day) == lastDay }
			}
			weekday := convention.Weekday(c.Canonical(e.Time().Int()))
			return equals(cal.lastOccurrence(weekday))
		case expr.Hash:
			weekday := convention.Weekday(c.Canonical(e.Time().Int()))
			target, ok := cal.nthOccurrence(weekday, e.Nth().Int())
			if !ok {
				return never
			}
			return equals(target)
		}
	case expr.And:
		return anyOf(e.Parts(), func(part expr.Expression) func(int) bool {
			return dayOfWeekMatcher(part, c, cal)
		})
	}

	match := withEquivalents(compile(e, c, c.Max()), c)
	return func(day int) bool {
		return match(convention.FromWeekday(cal.weekday(day)))
	}
}
