// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package expr

import (
	"fmt"
	"maps"
	"strings"
)

// Constraints is the per-field metadata a dialect attaches to a field:
// the inclusive valid range, name aliases ("MON", "JAN"), integer
// equivalences (7 for Sunday in a 0-7 weekday field), the special
// characters the field accepts, and whether inverted ranges are
// rejected.
//
// Constraints is immutable. The With* methods return a modified copy and
// never touch the receiver, so a value can be built once and shared:
//
//	dayOfWeek := expr.NewConstraints(0, 7).
//		WithAliases(weekdayNames).
//		WithEquivalent(7, 0).
//		WithStrictRange(true)
type Constraints struct {
	min, max    int
	aliases     map[string]int
	equivalents map[int]int
	specials    uint8
	strict      bool
	weekDay     WeekDay
	hasWeekDay  bool
}

// NewConstraints returns constraints for the inclusive range min..max.
// It panics if min > max; constraints are built from static dialect
// tables, so an inverted range is a programming error.
func NewConstraints(min, max int) Constraints {
	if min > max {
		panic(fmt.Sprintf("expr: inverted constraint range [%d-%d]", min, max))
	}
	return Constraints{min: min, max: max}
}

// WithAliases returns a copy that also accepts the given names. Names
// are matched case-insensitively.
func (c Constraints) WithAliases(aliases map[string]int) Constraints {
	merged := make(map[string]int, len(c.aliases)+len(aliases))
	maps.Copy(merged, c.aliases)
	for name, value := range aliases {
		merged[strings.ToUpper(name)] = value
	}
	c.aliases = merged
	return c
}

// WithEquivalent returns a copy in which from is treated as to when
// matching (for example weekday 7 as weekday 0).
func (c Constraints) WithEquivalent(from, to int) Constraints {
	merged := make(map[int]int, len(c.equivalents)+1)
	maps.Copy(merged, c.equivalents)
	merged[from] = to
	c.equivalents = merged
	return c
}

// WithSpecials returns a copy that additionally accepts the given
// special characters.
func (c Constraints) WithSpecials(specials ...SpecialChar) Constraints {
	for _, s := range specials {
		c.specials |= 1 << s
	}
	return c
}

// WithStrictRange returns a copy with the given range policy. Strict
// fields reject a Between whose lower bound exceeds its upper bound;
// lenient fields read it as a range that wraps past the maximum.
func (c Constraints) WithStrictRange(strict bool) Constraints {
	c.strict = strict
	return c
}

// WithWeekDay returns a copy carrying the weekday numbering of a
// day-of-week field.
func (c Constraints) WithWeekDay(w WeekDay) Constraints {
	c.weekDay = w
	c.hasWeekDay = true
	return c
}

// Min returns the lowest valid value.
func (c Constraints) Min() int { return c.min }

// Max returns the highest valid value.
func (c Constraints) Max() int { return c.max }

// InRange reports whether n lies in [Min, Max].
func (c Constraints) InRange(n int) bool { return n >= c.min && n <= c.max }

// Alias resolves a name such as "MON" or "jan".
func (c Constraints) Alias(name string) (int, bool) {
	value, ok := c.aliases[strings.ToUpper(name)]
	return value, ok
}

// Aliases returns a copy of the name aliases.
func (c Constraints) Aliases() map[string]int { return maps.Clone(c.aliases) }

// Canonical maps n through the integer equivalences.
func (c Constraints) Canonical(n int) int {
	if to, ok := c.equivalents[n]; ok {
		return to
	}
	return n
}

// Equivalents returns a copy of the integer equivalences.
func (c Constraints) Equivalents() map[int]int { return maps.Clone(c.equivalents) }

// Allows reports whether the field accepts the special character s.
// None is always allowed.
func (c Constraints) Allows(s SpecialChar) bool {
	return s == None || c.specials&(1<<s) != 0
}

// Specials returns the accepted special characters in declaration order.
func (c Constraints) Specials() []SpecialChar {
	var result []SpecialChar
	for s := L; s <= QuestionMarkChar; s++ {
		if c.Allows(s) {
			result = append(result, s)
		}
	}
	return result
}

// StrictRange reports whether inverted ranges are rejected.
func (c Constraints) StrictRange() bool { return c.strict }

// WeekDay returns the weekday numbering of a day-of-week field.
func (c Constraints) WeekDay() (WeekDay, bool) { return c.weekDay, c.hasWeekDay }

func (c Constraints) specialList() string {
	specials := c.Specials()
	if len(specials) == 0 {
		return "none"
	}
	names := make([]string, len(specials))
	for i, s := range specials {
		names[i] = s.String()
	}
	return strings.Join(names, " ")
}
