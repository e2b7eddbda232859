// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package expr

import (
	"fmt"
	"strconv"
)

// SpecialChar is a non-numeric token with calendar-relative meaning.
type SpecialChar uint8

const (
	// None marks a plain integer value.
	None SpecialChar = iota

	// L is "last": the last day of the month in the day-of-month field,
	// the last occurrence of a weekday in the day-of-week field.
	L

	// W is the weekday (Monday to Friday) nearest a day of the month.
	W

	// LW is the last weekday of the month.
	LW

	// Hash selects the nth occurrence of a weekday in the month.
	Hash

	// QuestionMarkChar is the "no specific value" token.
	QuestionMarkChar
)

var specialNames = [...]string{
	None:             "",
	L:                "L",
	W:                "W",
	LW:               "LW",
	Hash:             "#",
	QuestionMarkChar: "?",
}

func (s SpecialChar) String() string {
	if int(s) < len(specialNames) {
		if s == None {
			return "NONE"
		}
		return specialNames[s]
	}
	return fmt.Sprintf("SpecialChar(%d)", uint8(s))
}

// Value is the atomic value carried by an expression: either an integer
// or a special character. The zero Value is Special(None), which is how
// an omitted value (for example the nth of an On without #) is spelled.
// Values are comparable with ==.
type Value struct {
	integer int
	special SpecialChar
	isInt   bool
}

// Int returns an integer value.
func Int(n int) Value {
	return Value{integer: n, isInt: true}
}

// Special returns a special-character value.
func Special(s SpecialChar) Value {
	return Value{special: s}
}

// IsInt reports whether v holds an integer.
func (v Value) IsInt() bool { return v.isInt }

// Int returns the integer held by v, or 0 for a special value.
func (v Value) Int() int { return v.integer }

// Special returns the special character held by v, or None for an
// integer value.
func (v Value) Special() SpecialChar { return v.special }

// IsNone reports whether v is the empty value Special(None).
func (v Value) IsNone() bool { return !v.isInt && v.special == None }

func (v Value) String() string {
	if v.isInt {
		return strconv.Itoa(v.integer)
	}
	return specialNames[v.special]
}
