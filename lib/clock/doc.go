// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source.
//
// Commands that compute "the next execution from now" or wait for an
// execution to arrive accept a Clock instead of calling time.Now or
// time.After directly. In production Real() reads the system clock. In
// tests Fake() provides a clock that moves only when Advance or
// AdvanceTo is called, so expected instants can be written down
// exactly.
//
// # Waiting for an execution
//
//	next, _ := schedule.NextExecution(c.Now())
//	if err := clock.WaitUntil(ctx, c, next); err != nil {
//	    return err // ctx was cancelled
//	}
//
// In tests, a goroutine blocked in WaitUntil registers a pending
// waiter on the FakeClock. Call WaitForTimers before Advance to avoid
// racing the registration.
package clock
