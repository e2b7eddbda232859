// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package generator enumerates the values a field expression selects.
//
// A Generator covers one field over a finite domain: the field's range
// for seconds, minutes, hours, months, and years, and the days of one
// month for the day fields. The day fields need a Context (year and
// month) because L, W, LW, and # depend on the month's length and on
// the weekday the month starts on:
//
//	g := generator.New(dayOfWeek, generator.Context{Year: 2015, Month: time.February})
//	day, err := g.NextValue(0) // first day matching the expression
//
// The day-of-week and day-of-year generators are expressed over days of
// the month too, so the engine can combine them with the day-of-month
// generator using Union and Intersect.
//
// NextValue and PreviousValue never return their reference value and
// fail with ErrNoSuchValue when the domain has no further match. That
// is an expected outcome: the engine reacts by rolling over to the next
// coarser field.
//
// Generators are cheap and immutable; build them per lookup.
package generator
