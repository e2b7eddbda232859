// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package generator

import (
	"errors"
	"fmt"
	"time"

	"github.com/bureau-foundation/cronkit/lib/cron"
	"github.com/bureau-foundation/cronkit/lib/cron/expr"
)

// ErrNoSuchValue reports that no value matches beyond the reference in
// the generator's domain.
var ErrNoSuchValue = errors.New("no such value")

// Context is the month a day generator works in. Other generators
// ignore it.
type Context struct {
	Year  int
	Month time.Month
}

// Generator tests and enumerates the matching values of one field over
// the inclusive domain [low, high].
type Generator struct {
	field     expr.FieldName
	low, high int
	match     func(value int) bool
}

type constructor func(field cron.Field, ctx Context) *Generator

// constructors is indexed by expr.FieldName.
var constructors = [...]constructor{
	expr.Second:     newValueGenerator,
	expr.Minute:     newValueGenerator,
	expr.Hour:       newValueGenerator,
	expr.DayOfMonth: newDayOfMonthGenerator,
	expr.Month:      newValueGenerator,
	expr.DayOfWeek:  newDayOfWeekGenerator,
	expr.DayOfYear:  newDayOfYearGenerator,
	expr.Year:       newValueGenerator,
}

// New returns the generator for field in ctx.
func New(field cron.Field, ctx Context) *Generator {
	if int(field.Name) >= len(constructors) {
		panic(fmt.Sprintf("generator: unknown field %s", field.Name))
	}
	return constructors[field.Name](field, ctx)
}

// Field returns the name of the field the generator covers.
func (g *Generator) Field() expr.FieldName { return g.field }

// Domain returns the inclusive bounds of the values the generator
// considers.
func (g *Generator) Domain() (low, high int) { return g.low, g.high }

// IsMatch reports whether value lies in the domain and satisfies the
// expression.
func (g *Generator) IsMatch(value int) bool {
	return value >= g.low && value <= g.high && g.match(value)
}

// NextValue returns the smallest match greater than reference.
func (g *Generator) NextValue(reference int) (int, error) {
	for value := max(reference+1, g.low); value <= g.high; value++ {
		if g.match(value) {
			return value, nil
		}
	}
	return 0, ErrNoSuchValue
}

// PreviousValue returns the largest match less than reference.
func (g *Generator) PreviousValue(reference int) (int, error) {
	for value := min(reference-1, g.high); value >= g.low; value-- {
		if g.match(value) {
			return value, nil
		}
	}
	return 0, ErrNoSuchValue
}

// CandidatesExcludingBounds returns every match strictly between low
// and high in ascending order.
func (g *Generator) CandidatesExcludingBounds(low, high int) []int {
	var values []int
	for value := max(low+1, g.low); value < high && value <= g.high; value++ {
		if g.match(value) {
			values = append(values, value)
		}
	}
	return values
}

// Union matches a value matched by either generator. Both must cover
// the same field domain, as the day generators of one month do.
func Union(a, b *Generator) *Generator {
	return &Generator{
		field: a.field,
		low:   min(a.low, b.low),
		high:  max(a.high, b.high),
		match: func(value int) bool { return a.IsMatch(value) || b.IsMatch(value) },
	}
}

// Intersect matches a value matched by both generators.
func Intersect(a, b *Generator) *Generator {
	return &Generator{
		field: a.field,
		low:   max(a.low, b.low),
		high:  min(a.high, b.high),
		match: func(value int) bool { return a.IsMatch(value) && b.IsMatch(value) },
	}
}

// AllDays returns a generator matching every day of the month. The
// engine uses it when neither day field restricts the schedule.
func AllDays(ctx Context) *Generator {
	return &Generator{
		field: expr.DayOfMonth,
		low:   1,
		high:  DaysInMonth(ctx.Year, ctx.Month),
		match: func(int) bool { return true },
	}
}

func newValueGenerator(field cron.Field, _ Context) *Generator {
	c := field.Constraints
	return &Generator{
		field: field.Name,
		low:   c.Min(),
		high:  c.Max(),
		match: withEquivalents(compile(field.Expression, c, c.Max()), c),
	}
}

func newDayOfMonthGenerator(field cron.Field, ctx Context) *Generator {
	cal := newCalendar(ctx)
	return &Generator{
		field: field.Name,
		low:   1,
		high:  cal.days,
		match: dayOfMonthMatcher(field.Expression, field.Constraints, cal),
	}
}

func newDayOfWeekGenerator(field cron.Field, ctx Context) *Generator {
	cal := newCalendar(ctx)
	return &Generator{
		field: field.Name,
		low:   1,
		high:  cal.days,
		match: dayOfWeekMatcher(field.Expression, field.Constraints, cal),
	}
}

func newDayOfYearGenerator(field cron.Field, ctx Context) *Generator {
	cal := newCalendar(ctx)
	match := compile(field.Expression, field.Constraints, DaysInYear(ctx.Year))
	return &Generator{
		field: field.Name,
		low:   1,
		high:  cal.days,
		match: func(day int) bool { return match(cal.yearDay(day)) },
	}
}
