// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package generator

import "time"

// DaysInMonth returns the number of days in the month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year int) int {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()
}

// calendar holds the facts about one month that the day generators
// need.
type calendar struct {
	year  int
	month time.Month
	days  int
	first time.Weekday
}

func newCalendar(ctx Context) calendar {
	return calendar{
		year:  ctx.Year,
		month: ctx.Month,
		days:  DaysInMonth(ctx.Year, ctx.Month),
		first: time.Date(ctx.Year, ctx.Month, 1, 0, 0, 0, 0, time.UTC).Weekday(),
	}
}

func (c calendar) weekday(day int) time.Weekday {
	return time.Weekday((int(c.first) + day - 1) % 7)
}

func (c calendar) yearDay(day int) int {
	return time.Date(c.year, c.month, day, 0, 0, 0, 0, time.UTC).YearDay()
}

// lastOccurrence returns the day of the last given weekday.
func (c calendar) lastOccurrence(weekday time.Weekday) int {
	back := (int(c.weekday(c.days)) - int(weekday) + 7) % 7
	return c.days - back
}

// nthOccurrence returns the day of the nth given weekday, if the month
// has one.
func (c calendar) nthOccurrence(weekday time.Weekday, n int) (int, bool) {
	first := 1 + (int(weekday)-int(c.first)+7)%7
	day := first + 7*(n-1)
	return day, n >= 1 && day <= c.days
}

// lastWeekday returns the last Monday to Friday of the month.
func (c calendar) lastWeekday() int {
	switch c.weekday(c.days) {
	case time.Saturday:
		return c.days - 1
	case time.Sunday:
		return c.days - 2
	}
	return c.days
}

// nearestWeekday returns the Monday to Friday closest to day without
// leaving the month. A Saturday moves to Friday, or to Monday the 3rd
// when it is the 1st; a Sunday moves to Monday, or to Friday when it is
// the last day. Days past the end of the month have no match.
func (c calendar) nearestWeekday(day int) (int, bool) {
	if day < 1 || day > c.days {
		return 0, false
	}
	switch c.weekday(day) {
	case time.Saturday:
		if day == 1 {
			return 3, true
		}
		return day - 1, true
	case time.Sunday:
		if day == c.days {
			return day - 2, true
		}
		return day + 1, true
	}
	return day, true
}
