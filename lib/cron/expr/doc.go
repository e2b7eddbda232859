// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package expr is the schedule expression model: the values, per-field
// constraints, and field expressions that a parsed cron schedule is made
// of.
//
// A field expression is one of six variants:
//
//	Always        *          every value in the field's range
//	On            5  L  15W  LW  6L  2#3
//	Between       1-5  FRI-MON  10-L  1-20/3
//	Every         */15  0/20
//	And           1,5,10-12
//	QuestionMark  ?          unspecified (day fields only)
//
// Every variant is an immutable value. The constructors NewOn, NewBetween,
// NewEvery, and NewAnd check their arguments against the owning field's
// Constraints and fail with ErrInvalidExpression instead of producing a
// partially valid expression. Validate re-checks a whole tree, and is
// where strict dialects reject inverted ranges.
//
// Consumers switch over the concrete types:
//
//	switch e := e.(type) {
//	case expr.Always:
//	case expr.On:
//	case expr.Between:
//	case expr.Every:
//	case expr.And:
//	case expr.QuestionMark:
//	}
//
// The Expression interface has an unexported method, so the set of
// variants is closed to this package.
package expr
