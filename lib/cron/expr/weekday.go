// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package expr

import "time"

// WeekDay describes how a dialect numbers the days of the week: the
// number it gives Monday, and whether the week's numbering starts at
// zero (0-6) or one (1-7).
type WeekDay struct {
	MondayValue  int
	FirstDayZero bool
}

// Conventional weekday numberings.
var (
	// GoWeekDay is time.Weekday: Sunday=0, Monday=1.
	GoWeekDay = WeekDay{MondayValue: 1, FirstDayZero: true}

	// ISOWeekDay is ISO 8601: Monday=1, Sunday=7.
	ISOWeekDay = WeekDay{MondayValue: 1, FirstDayZero: false}

	// QuartzWeekDay is Quartz: Sunday=1, Monday=2, Saturday=7.
	QuartzWeekDay = WeekDay{MondayValue: 2, FirstDayZero: false}
)

// MapTo converts day from w's numbering to target's numbering.
//
// The shift is target.MondayValue - w.MondayValue, and the result is
// wrapped into target's range: 0-6 when target starts at zero, 1-7
// otherwise.
func (w WeekDay) MapTo(target WeekDay, day int) int {
	shifted := target.MondayValue - w.MondayValue + day
	if target.FirstDayZero {
		return mod(shifted, 7)
	}
	return mod(shifted-1, 7) + 1
}

// Weekday converts day from w's numbering to a time.Weekday.
func (w WeekDay) Weekday(day int) time.Weekday {
	return time.Weekday(w.MapTo(GoWeekDay, day))
}

// FromWeekday converts a time.Weekday into w's numbering.
func (w WeekDay) FromWeekday(day time.Weekday) int {
	return GoWeekDay.MapTo(w, int(day))
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
