// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cron

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bureau-foundation/cronkit/lib/cron/expr"
)

var monthNames = map[string]int{
	"JAN": 1, "FEB": 2, "MAR": 3, "APR": 4, "MAY": 5, "JUN": 6,
	"JUL": 7, "AUG": 8, "SEP": 9, "OCT": 10, "NOV": 11, "DEC": 12,
}

// weekdayNames returns SUN..SAT numbered in the given convention.
func weekdayNames(convention expr.WeekDay) map[string]int {
	names := make(map[string]int, 7)
	for day := time.Sunday; day <= time.Saturday; day++ {
		names[strings.ToUpper(day.String()[:3])] = convention.FromWeekday(day)
	}
	return names
}

var (
	seconds = expr.NewConstraints(0, 59)
	minutes = expr.NewConstraints(0, 59)
	hours   = expr.NewConstraints(0, 23)
	months  = expr.NewConstraints(1, 12).WithAliases(monthNames)

	// Sunday is 0 and 7; Monday is 1.
	sundayZeroOrSeven = expr.NewConstraints(0, 7).
		WithAliases(weekdayNames(expr.GoWeekDay)).
		WithEquivalent(7, 0).
		WithWeekDay(expr.GoWeekDay)
)

var (
	unix = NewDefinitionBuilder("unix").
		WithField(expr.Minute, minutes).
		WithField(expr.Hour, hours).
		WithField(expr.DayOfMonth, expr.NewConstraints(1, 31)).
		WithField(expr.Month, months).
		WithField(expr.DayOfWeek, sundayZeroOrSeven).
		StrictRanges().
		DayDisjunction().
		WithNickname("@yearly", "0 0 1 1 *").
		WithNickname("@annually", "0 0 1 1 *").
		WithNickname("@monthly", "0 0 1 * *").
		WithNickname("@weekly", "0 0 * * 0").
		WithNickname("@daily", "0 0 * * *").
		WithNickname("@midnight", "0 0 * * *").
		WithNickname("@hourly", "0 * * * *").
		MustBuild()

	cron4j = NewDefinitionBuilder("cron4j").
		WithField(expr.Minute, minutes).
		WithField(expr.Hour, hours).
		WithField(expr.DayOfMonth, expr.NewConstraints(1, 31).WithSpecials(expr.L)).
		WithField(expr.Month, months).
		WithField(expr.DayOfWeek, expr.NewConstraints(0, 6).
			WithAliases(weekdayNames(expr.GoWeekDay)).
			WithWeekDay(expr.GoWeekDay)).
		DayDisjunction().
		MustBuild()

	quartz = NewDefinitionBuilder("quartz").
		WithField(expr.Second, seconds).
		WithField(expr.Minute, minutes).
		WithField(expr.Hour, hours).
		WithField(expr.DayOfMonth, expr.NewConstraints(1, 31).
			WithSpecials(expr.L, expr.W, expr.LW, expr.QuestionMarkChar)).
		WithField(expr.Month, months).
		WithField(expr.DayOfWeek, expr.NewConstraints(1, 7).
			WithAliases(weekdayNames(expr.QuartzWeekDay)).
			WithSpecials(expr.L, expr.Hash, expr.QuestionMarkChar).
			WithWeekDay(expr.QuartzWeekDay)).
		WithField(expr.Year, expr.NewConstraints(1970, 2099)).
		LastFieldOptional().
		WithValidation(exactlyOneDayUnspecified).
		MustBuild()

	spring = NewDefinitionBuilder("spring").
		WithField(expr.Second, seconds).
		WithField(expr.Minute, minutes).
		WithField(expr.Hour, hours).
		WithField(expr.DayOfMonth, expr.NewConstraints(1, 31).WithSpecials(expr.QuestionMarkChar)).
		WithField(expr.Month, months).
		WithField(expr.DayOfWeek, sundayZeroOrSeven.WithSpecials(expr.QuestionMarkChar)).
		WithField(expr.Year, expr.NewConstraints(1970, 2099)).
		LastFieldOptional().
		StrictRanges().
		WithValidation(notBothDaysUnspecified).
		MustBuild()

	spring53 = NewDefinitionBuilder("spring53").
		WithField(expr.Second, seconds).
		WithField(expr.Minute, minutes).
		WithField(expr.Hour, hours).
		WithField(expr.DayOfMonth, expr.NewConstraints(1, 31).
			WithSpecials(expr.L, expr.W, expr.LW, expr.QuestionMarkChar)).
		WithField(expr.Month, months).
		WithField(expr.DayOfWeek, sundayZeroOrSeven.
			WithSpecials(expr.L, expr.Hash, expr.QuestionMarkChar)).
		WithField(expr.Year, expr.NewConstraints(1970, 2099)).
		LastFieldOptional().
		StrictRanges().
		WithValidation(notBothDaysUnspecified).
		WithNickname("@yearly", "0 0 0 1 1 *").
		WithNickname("@annually", "0 0 0 1 1 *").
		WithNickname("@monthly", "0 0 0 1 * *").
		WithNickname("@weekly", "0 0 0 * * 0").
		WithNickname("@daily", "0 0 0 * * *").
		WithNickname("@midnight", "0 0 0 * * *").
		WithNickname("@hourly", "0 0 * * * *").
		MustBuild()
)

// Unix is classic crontab: five fields, Sunday as 0 or 7, and a day
// matching when either day field matches.
func Unix() *Definition { return unix }

// Cron4j is the cron4j dialect: five fields, L in day-of-month,
// inverted ranges wrap around.
func Cron4j() *Definition { return cron4j }

// Quartz is the Quartz scheduler dialect: seconds first, an optional
// year, Sunday as 1, and exactly one of the day fields set to ?.
func Quartz() *Definition { return quartz }

// Spring is Spring's CronSequenceGenerator dialect: seconds first and
// both day fields matched together.
func Spring() *Definition { return spring }

// Spring53 is Spring 5.3's CronExpression dialect, which adds L, W, #,
// and @nicknames to Spring.
func Spring53() *Definition { return spring53 }

var dialects = []*Definition{unix, cron4j, quartz, spring, spring53}

// Dialects returns the built-in definitions.
func Dialects() []*Definition {
	return append([]*Definition(nil), dialects...)
}

// Lookup returns the built-in definition with the given name, matched
// case-insensitively.
func Lookup(name string) (*Definition, error) {
	for _, definition := range dialects {
		if strings.EqualFold(definition.name, name) {
			return definition, nil
		}
	}
	names := make([]string, len(dialects))
	for i, definition := range dialects {
		names[i] = definition.name
	}
	return nil, fmt.Errorf("cron: unknown dialect %q (known: %s)", name, strings.Join(names, ", "))
}

func isUnspecified(c *Cron, name expr.FieldName) bool {
	field, ok := c.Field(name)
	if !ok {
		return false
	}
	_, unspecified := field.Expression.(expr.QuestionMark)
	return unspecified
}

func exactlyOneDayUnspecified(c *Cron) error {
	dayOfMonth := isUnspecified(c, expr.DayOfMonth)
	dayOfWeek := isUnspecified(c, expr.DayOfWeek)
	switch {
	case dayOfMonth && dayOfWeek:
		return errors.New("day-of-month and day-of-week cannot both be ?")
	case !dayOfMonth && !dayOfWeek:
		return errors.New("one of day-of-month and day-of-week must be ?")
	}
	return nil
}

func notBothDaysUnspecified(c *Cron) error {
	if isUnspecified(c, expr.DayOfMonth) && isUnspecified(c, expr.DayOfWeek) {
		return errors.New("day-of-month and day-of-week cannot both be ?")
	}
	return nil
}
