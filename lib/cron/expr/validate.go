// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package expr

import "errors"

// Validate re-checks a whole expression tree against the constraints of
// the field that owns it. Construction already enforces most of these
// rules; Validate also catches expressions built against different
// constraints, including inverted ranges handed to a strict field.
func Validate(e Expression, c Constraints) error {
	switch e := e.(type) {
	case nil:
		return invalidf("missing expression")
	case Always:
		return nil
	case QuestionMark:
		if !c.Allows(QuestionMarkChar) {
			return invalidf("special character ? not supported; allowed: %s", c.specialList())
		}
		return nil
	case On:
		if e.offset > 0 {
			_, err := NewLastOffset(c, e.offset)
			return err
		}
		_, err := NewOn(c, e.time, e.special, e.nth)
		return err
	case Between:
		_, err := NewBetween(c, e.from, e.to, e.step)
		return err
	case Every:
		if _, err := NewEvery(c, e.inner, e.period); err != nil {
			return err
		}
		return Validate(e.inner, c)
	case And:
		if len(e.parts) == 0 {
			return invalidf("empty list")
		}
		var errs []error
		for _, part := range e.parts {
			if _, ok := part.(QuestionMark); ok {
				errs = append(errs, invalidf("? cannot appear in a list"))
				continue
			}
			errs = append(errs, Validate(part, c))
		}
		return errors.Join(errs...)
	}
	return invalidf("unknown expression %T", e)
}
