// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"testing"
	"time"

	"github.com/bureau-foundation/cronkit/lib/clock"
)

// AdvanceWhenWaiting blocks until fake has at least n pending timers,
// then moves it to target. The test fails if the timers are not
// registered within DefaultTimeout, which usually means the code under
// test returned early with an error.
func AdvanceWhenWaiting(t testing.TB, fake *clock.FakeClock, n int, target time.Time) {
	t.Helper()
	registered := make(chan struct{})
	go func() {
		fake.WaitForTimers(n)
		close(registered)
	}()
	RequireClosed(t, registered, DefaultTimeout,
		"waiting for %d timer(s) before advancing to %s", n, target.Format(time.RFC3339))
	fake.AdvanceTo(target)
}
