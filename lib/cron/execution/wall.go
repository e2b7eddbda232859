// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package execution

import "time"

// wall is a local calendar reading with no zone attached. Fields may be
// out of range until normalize folds them back, the way time.Date does.
type wall struct {
	year   int
	month  time.Month
	day    int
	hour   int
	minute int
	second int
}

func wallOf(t time.Time) wall {
	year, month, day := t.Date()
	hour, minute, second := t.Clock()
	return wall{year: year, month: month, day: day, hour: hour, minute: minute, second: second}
}

// utc reads the wall clock as if it were UTC, which gives wall readings
// a total order without zone effects.
func (w wall) utc() time.Time {
	return time.Date(w.year, w.month, w.day, w.hour, w.minute, w.second, 0, time.UTC)
}

func (w wall) normalize() wall { return wallOf(w.utc()) }

func (w wall) addSeconds(seconds int) wall {
	w.second += seconds
	return w.normalize()
}

func (w wall) before(other wall) bool { return w.utc().Before(other.utc()) }

// in returns the instant the wall reading names in loc.
//
// A reading inside a daylight-saving gap names no instant; it resolves
// to the transition that ends the gap, the first existing local time
// after it. A reading inside an overlap names two instants; it resolves
// to the earlier one.
func (w wall) in(loc *time.Location) time.Time {
	t := time.Date(w.year, w.month, w.day, w.hour, w.minute, w.second, 0, loc)
	got := wallOf(t)

	if got != w {
		// time.Date shifted the reading by the gap length, in either
		// direction depending on the zone. The transition is the
		// boundary of the period t landed in that faces the gap.
		start, end := t.ZoneBounds()
		if got.before(w) && !end.IsZero() {
			return end
		}
		if w.before(got) && !start.IsZero() {
			return start
		}
		return t
	}

	start, _ := t.ZoneBounds()
	if start.IsZero() {
		return t
	}
	_, offset := t.Zone()
	_, previousOffset := start.Add(-time.Second).Zone()
	if previousOffset <= offset {
		return t
	}
	// Clocks went back at start: the same reading may also exist under
	// the previous, larger offset.
	earlier := t.Add(-time.Duration(previousOffset-offset) * time.Second)
	if earlier.Before(start) && wallOf(earlier) == w {
		return earlier
	}
	return t
}

// repeat returns the second instant an overlap reading names, under the
// smaller offset that follows the transition. first is the reading's
// resolution by in. It reports false when the reading names one instant.
func (w wall) repeat(first time.Time) (time.Time, bool) {
	if wallOf(first) != w {
		return time.Time{}, false
	}
	_, end := first.ZoneBounds()
	if end.IsZero() {
		return time.Time{}, false
	}
	_, offset := first.Zone()
	_, nextOffset := end.Zone()
	if nextOffset >= offset {
		return time.Time{}, false
	}
	second := first.Add(time.Duration(offset-nextOffset) * time.Second)
	if second.Before(end) || wallOf(second) != w {
		return time.Time{}, false
	}
	return second, true
}
