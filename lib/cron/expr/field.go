// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package expr

import "fmt"

// FieldName identifies a schedule field. Names are ordered from the
// finest unit to the coarsest; a Cron keeps its fields in this order.
type FieldName uint8

const (
	Second FieldName = iota
	Minute
	Hour
	DayOfMonth
	Month
	DayOfWeek
	DayOfYear
	Year
)

// FieldNames lists every field name in order.
var FieldNames = []FieldName{Second, Minute, Hour, DayOfMonth, Month, DayOfWeek, DayOfYear, Year}

var fieldNameStrings = [...]string{
	Second:     "second",
	Minute:     "minute",
	Hour:       "hour",
	DayOfMonth: "day-of-month",
	Month:      "month",
	DayOfWeek:  "day-of-week",
	DayOfYear:  "day-of-year",
	Year:       "year",
}

func (f FieldName) String() string {
	if int(f) < len(fieldNameStrings) {
		return fieldNameStrings[f]
	}
	return fmt.Sprintf("FieldName(%d)", uint8(f))
}

// DefaultConstraints returns the conventional range of a field with no
// aliases and no special characters. It describes fields a dialect does
// not define: a Unix schedule has no seconds or years, but the engine
// still evaluates them.
func DefaultConstraints(name FieldName) Constraints {
	switch name {
	case Second, Minute:
		return NewConstraints(0, 59)
	case Hour:
		return NewConstraints(0, 23)
	case DayOfMonth:
		return NewConstraints(1, 31)
	case Month:
		return NewConstraints(1, 12)
	case DayOfWeek:
		return NewConstraints(0, 6).WithWeekDay(WeekDay{MondayValue: 1, FirstDayZero: true})
	case DayOfYear:
		return NewConstraints(1, 366)
	case Year:
		return NewConstraints(1, 9999)
	}
	panic(fmt.Sprintf("expr: unknown field name %d", uint8(name)))
}
