// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cron holds parsed schedules and the dialects that define them.
//
// A Definition describes a dialect: which fields a schedule has, the
// Constraints of each field, whether the last field may be omitted, and
// the cross-field validations a schedule must pass. Five dialects are
// built in:
//
//	Unix      minute hour day-of-month month day-of-week
//	Cron4j    minute hour day-of-month month day-of-week
//	Quartz    second minute hour day-of-month month day-of-week [year]
//	Spring    second minute hour day-of-month month day-of-week [year]
//	Spring53  Spring with L, W, LW, # and @nicknames
//
// A Cron is an immutable set of Fields, one per field of its
// definition, each holding a validated expr.Expression. Crons are built
// by package parser from text, or by New from fields assembled in code:
//
//	c, err := parser.Parse(cron.Quartz(), "0 15 10 ? * 6L")
//
// Definitions and Crons are immutable and safe for concurrent use.
package cron
