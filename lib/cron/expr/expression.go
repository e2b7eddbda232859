// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package expr

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ErrInvalidExpression is wrapped by every construction and validation
// failure in this package.
var ErrInvalidExpression = errors.New("invalid expression")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidExpression, fmt.Sprintf(format, args...))
}

// Expression is one field's parsed constraint. The concrete types are
// Always, On, Between, Every, And, and QuestionMark.
type Expression interface {
	// String returns the canonical text of the expression.
	String() string

	expression()
}

// Always matches every value in the field's range.
type Always struct{}

func (Always) expression()    {}
func (Always) String() string { return "*" }

// QuestionMark leaves a day field unspecified so its sibling day field
// decides alone.
type QuestionMark struct{}

func (QuestionMark) expression()    {}
func (QuestionMark) String() string { return "?" }

// On matches a single value, or a calendar-relative value when Special
// is not None.
type On struct {
	time    Value
	special SpecialChar
	nth     Value
	offset  int
}

func (On) expression() {}

// NewOn builds an On expression. The accepted shapes are:
//
//	Int(n), None, none      n
//	none, L, none           L    last day of month / last weekday value
//	Int(n), L, none         nL   last occurrence of weekday n
//	Int(n), W, none         nW   weekday nearest day n
//	none, LW, none          LW   last weekday of the month
//	Int(n), Hash, Int(k)    n#k  kth occurrence of weekday n
//
// where "none" is the zero Value.
func NewOn(c Constraints, time Value, special SpecialChar, nth Value) (On, error) {
	if special == QuestionMarkChar {
		return On{}, invalidf("? is not a value; use QuestionMark")
	}
	if !c.Allows(special) {
		return On{}, invalidf("special character %s not supported; allowed: %s", special, c.specialList())
	}
	if !time.IsInt() && !time.IsNone() {
		return On{}, invalidf("value %s: special character not allowed as a value", time)
	}
	if time.IsInt() && !c.InRange(time.Int()) {
		return On{}, invalidf("value out of range [%d-%d]: got %d", c.min, c.max, time.Int())
	}
	switch special {
	case None:
		if !time.IsInt() {
			return On{}, invalidf("missing value")
		}
	case W:
		if !time.IsInt() {
			return On{}, invalidf("W requires a day of the month")
		}
	case LW:
		if time.IsInt() {
			return On{}, invalidf("LW does not take a value: got %d", time.Int())
		}
	case Hash:
		if !time.IsInt() {
			return On{}, invalidf("# requires a weekday")
		}
		if !nth.IsInt() || nth.Int() < 1 || nth.Int() > 5 {
			return On{}, invalidf("# occurrence out of range [1-5]: got %q", nth.String())
		}
		return On{time: time, special: special, nth: nth}, nil
	}
	if !nth.IsNone() {
		return On{}, invalidf("occurrence %s only applies to #", nth)
	}
	return On{time: time, special: special}, nil
}

// NewLastOffset builds "L-n": n days before the last day of the month.
func NewLastOffset(c Constraints, offset int) (On, error) {
	if !c.Allows(L) {
		return On{}, invalidf("special character L not supported; allowed: %s", c.specialList())
	}
	if offset < 1 || offset > c.max-c.min {
		return On{}, invalidf("L offset out of range [1-%d]: got %d", c.max-c.min, offset)
	}
	return On{special: L, offset: offset}, nil
}

// Time returns the value the expression is anchored on. It is the zero
// Value for plain L and LW.
func (o On) Time() Value { return o.time }

// Special returns the calendar-relative modifier, or None.
func (o On) Special() SpecialChar { return o.special }

// Nth returns the occurrence of a # expression, or the zero Value.
func (o On) Nth() Value { return o.nth }

// Offset returns n for "L-n", and 0 otherwise.
func (o On) Offset() int { return o.offset }

func (o On) String() string {
	switch o.special {
	case L:
		if o.offset > 0 {
			return "L-" + strconv.Itoa(o.offset)
		}
		if o.time.IsInt() {
			return o.time.String() + "L"
		}
		return "L"
	case W:
		return o.time.String() + "W"
	case LW:
		return "LW"
	case Hash:
		return o.time.String() + "#" + o.nth.String()
	}
	return o.time.String()
}

// Between matches an inclusive range, optionally stepped. The upper
// bound may be L, which stands for the field's last value in context
// (the last day of the month in a day-of-month field).
type Between struct {
	from, to Value
	step     int
}

func (Between) expression() {}

// NewBetween builds a range. Integer bounds must lie in the field's range
// and differ. A lower bound above the upper bound is a wrap-around range
// (FRI-MON) and is only accepted when the constraints are lenient. The
// step must be at least 1 and no larger than the range's span.
func NewBetween(c Constraints, from, to Value, step int) (Between, error) {
	if from.Special() == L {
		return Between{}, invalidf("range cannot start at L")
	}
	for _, bound := range []Value{from, to} {
		if bound.IsInt() {
			if !c.InRange(bound.Int()) {
				return Between{}, invalidf("value out of range [%d-%d]: got %d", c.min, c.max, bound.Int())
			}
			continue
		}
		if bound.Special() != L {
			return Between{}, invalidf("range bound %q must be a number or L", bound)
		}
		if !c.Allows(L) {
			return Between{}, invalidf("special character L not supported; allowed: %s", c.specialList())
		}
	}
	if step < 1 {
		return Between{}, invalidf("step must be at least 1: got %d", step)
	}
	if from.IsInt() && to.IsInt() {
		span, err := rangeSpan(c, from.Int(), to.Int())
		if err != nil {
			return Between{}, err
		}
		if step > span {
			return Between{}, invalidf("step %d exceeds range %d-%d", step, from.Int(), to.Int())
		}
	}
	return Between{from: from, to: to, step: step}, nil
}

// rangeSpan returns the distance covered by from-to, wrapping past the
// maximum when from > to.
func rangeSpan(c Constraints, from, to int) (int, error) {
	switch {
	case from == to:
		return 0, invalidf("zero-length range %d-%d", from, to)
	case from < to:
		return to - from, nil
	case c.strict:
		return 0, invalidf("inverted range %d-%d", from, to)
	}
	return (c.max - from) + (to - c.min) + 1, nil
}

// From returns the lower bound.
func (b Between) From() Value { return b.from }

// To returns the upper bound.
func (b Between) To() Value { return b.to }

// Step returns the step, 1 when the range is not stepped.
func (b Between) Step() int { return b.step }

func (b Between) String() string {
	text := b.from.String() + "-" + b.to.String()
	if b.step > 1 {
		text += "/" + strconv.Itoa(b.step)
	}
	return text
}

// Every matches every Period-th value, starting from the point its Inner
// expression establishes: the field minimum for Always, the value of an
// On, the lower bound of a Between.
type Every struct {
	inner  Expression
	period int
}

func (Every) expression() {}

// NewEvery builds "inner/period". Period must be at least 1 and no larger
// than the field's range.
func NewEvery(c Constraints, inner Expression, period int) (Every, error) {
	switch inner := inner.(type) {
	case Always, Between:
	case On:
		if inner.special != None {
			return Every{}, invalidf("step cannot start at %s", inner)
		}
	default:
		return Every{}, invalidf("step cannot start at %s", inner)
	}
	if period < 1 {
		return Every{}, invalidf("step must be at least 1: got %d", period)
	}
	if size := c.max - c.min + 1; period > size {
		return Every{}, invalidf("step %d exceeds field range [%d-%d]", period, c.min, c.max)
	}
	return Every{inner: inner, period: period}, nil
}

// Inner returns the expression establishing the starting point.
func (e Every) Inner() Expression { return e.inner }

// Period returns the step.
func (e Every) Period() int { return e.period }

func (e Every) String() string {
	return e.inner.String() + "/" + strconv.Itoa(e.period)
}

// And matches a value matched by any of its parts.
type And struct {
	parts []Expression
}

func (And) expression() {}

// NewAnd builds a list expression. Nested lists are flattened. A list
// must not be empty and cannot contain QuestionMark.
func NewAnd(parts ...Expression) (And, error) {
	var flat []Expression
	for _, part := range parts {
		switch part := part.(type) {
		case nil:
			return And{}, invalidf("nil list element")
		case QuestionMark:
			return And{}, invalidf("? cannot appear in a list")
		case And:
			flat = append(flat, part.parts...)
		default:
			flat = append(flat, part)
		}
	}
	if len(flat) == 0 {
		return And{}, invalidf("empty list")
	}
	return And{parts: flat}, nil
}

// Parts returns a copy of the list elements.
func (a And) Parts() []Expression { return slices.Clone(a.parts) }

func (a And) String() string {
	texts := make([]string, len(a.parts))
	for i, part := range a.parts {
		texts[i] = part.String()
	}
	return strings.Join(texts, ",")
}
