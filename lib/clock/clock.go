// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"context"
	"time"
)

// Clock abstracts the two time operations schedule evaluation needs:
// reading the current instant and waiting for a later one.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// After returns a channel that receives the current time after
	// duration d elapses. If d <= 0, the channel receives immediately.
	After(d time.Duration) <-chan time.Time
}

// WaitUntil blocks until c reaches deadline or ctx is done. It returns
// ctx.Err() in the latter case. A deadline at or before c.Now() returns
// immediately.
func WaitUntil(ctx context.Context, c Clock, deadline time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	wait := deadline.Sub(c.Now())
	if wait <= 0 {
		return nil
	}
	select {
	case <-c.After(wait):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
