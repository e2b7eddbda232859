// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package parser turns schedule text into a validated cron.Cron for a
// given dialect.
//
// Fields are separated by whitespace and read in the dialect's field
// order. Each field is a comma-separated list of terms:
//
//	5  MON     a value or an alias, case-insensitive
//	*          every value
//	?          no specific value (day fields, where the dialect allows)
//	1-5        an inclusive range; FRI-MON wraps in lenient dialects
//	10-L       a day-of-month range ending on the last day
//	*/15       every 15th value from the field minimum
//	5/15       every 15th value from 5
//	1-30/5     every 5th value in a range
//	L  L-3     last day of the month, three days before it
//	LW  15W    last weekday, weekday nearest the 15th
//	6L  FRIL   last Friday (day-of-week)
//	2#3        third occurrence of weekday 2
//
// Which special characters a field accepts is decided by the dialect's
// constraints, not by the grammar. A dialect with nicknames also
// accepts @yearly, @annually, @monthly, @weekly, @daily, @midnight, and
// @hourly as the whole text.
package parser
