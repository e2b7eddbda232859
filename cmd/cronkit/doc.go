// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Cronkit parses cron expressions in several dialects and computes
// their execution times.
//
// Usage:
//
//	cronkit <command> [flags]
//
// Commands:
//
//	next       Print upcoming executions
//	last       Print previous executions
//	match      Test whether an instant matches an expression
//	list       Print every execution in an interval
//	count      Count the executions in an interval
//	validate   Check expressions and print their canonical form
//	calendar   Render a month calendar of matching days
//	upcoming   Print the next executions of a schedule file
//	dialects   List the built-in cron dialects
//	version    Print version information
//
// Run "cronkit <command> --help" for the flags of each command.
package main
