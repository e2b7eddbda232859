// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for cronkit packages.
//
// [RequireReceive] and [RequireClosed] wrap the timeout safety valve
// pattern (select with a time.After fallback) so a test that loses a
// wakeup fails with a message instead of hanging until the go test
// deadline. They are the only place in the test suite where real
// wall-clock timeouts are used.
//
// [AdvanceWhenWaiting] steps a [clock.FakeClock] once the code under
// test has registered its timers, under the same timeout.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil
