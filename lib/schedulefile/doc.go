// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package schedulefile loads named sets of cron schedules.
//
// A schedule set is authored as a JSONC file (JSON extended with //
// line comments, /* block comments */, and trailing commas):
//
//	{
//	  "schedules": [
//	    // Nightly database dump.
//	    {"name": "backup", "expression": "30 2 * * *", "time_zone": "Europe/Berlin"},
//	    {"name": "report", "dialect": "quartz", "expression": "0 0 9 ? * MON-FRI"},
//	  ],
//	}
//
// Entries without a dialect or time zone take the defaults passed in
// [Options]. Each entry is parsed into a [Schedule] holding the compiled
// cron.Cron, its location, and an execution.ExecutionTime ready for
// queries.
//
// Every schedule carries a [Fingerprint]: a BLAKE3 keyed hash of its
// dialect name and canonical expression text. Two entries written
// differently ("MON-FRI" and "1-5") but meaning the same thing share a
// fingerprint, which [Set.Duplicates] uses to report redundant entries.
package schedulefile
