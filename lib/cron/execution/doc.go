// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package execution computes when a schedule fires.
//
// An ExecutionTime wraps a cron.Cron and answers, for any instant t:
//
//   - NextExecution and LastExecution: the nearest matching instant
//     strictly after or strictly before t
//   - IsMatch: whether t itself matches (to the second)
//   - TimeToNextExecution and TimeFromLastExecution: the distance to
//     those instants
//   - CountExecutions, ExecutionDates, and Executions: the matches in
//     (start, end]
//
// Schedules are evaluated on the wall clock of t's location. The search
// advances calendar fields (year, month, day, hour, minute, second) like
// an odometer, so a day is never assumed to be 24 hours long. A wall
// time that falls into a daylight-saving gap resolves to the first
// instant after the gap; a wall time that occurs twice resolves to the
// earlier instant.
//
// The day-of-month and day-of-week fields combine as follows: a field
// that is ? or absent defers to the other; a field that is * defers to
// a restricted sibling; when both are restricted, dialects with day
// disjunction (Unix, cron4j) match either and the others match both.
//
// The search gives up after a lookahead of DefaultLookahead years
// (WithLookahead changes it) and reports no result rather than an
// error, so schedules that cannot fire, like February 30, terminate.
//
// An ExecutionTime holds no mutable state and is safe for concurrent
// use.
package execution
