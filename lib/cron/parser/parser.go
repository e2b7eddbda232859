// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bureau-foundation/cronkit/lib/cron"
	"github.com/bureau-foundation/cronkit/lib/cron/expr"
)

// ErrSyntax is wrapped by failures to read the text itself. Values that
// read fine but break a field's constraints wrap expr.ErrInvalidExpression
// instead, and cross-field problems wrap cron.ErrInvalidCron.
var ErrSyntax = errors.New("syntax error")

// Parser reads schedules in one dialect. It holds no mutable state and
// is safe for concurrent use.
type Parser struct {
	definition *cron.Definition
}

// New returns a parser for definition.
func New(definition *cron.Definition) *Parser {
	return &Parser{definition: definition}
}

// Parse reads text in definition's dialect.
func Parse(definition *cron.Definition, text string) (*cron.Cron, error) {
	return New(definition).Parse(text)
}

// MustParse is like Parse but panics on error. It is meant for
// schedules fixed at compile time.
func MustParse(definition *cron.Definition, text string) *cron.Cron {
	c, err := Parse(definition, text)
	if err != nil {
		panic(err)
	}
	return c
}

// Definition returns the parser's dialect.
func (p *Parser) Definition() *cron.Definition { return p.definition }

// Parse reads one schedule.
func (p *Parser) Parse(text string) (*cron.Cron, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: cron: empty expression", ErrSyntax)
	}
	if strings.HasPrefix(text, "@") {
		expansion, ok := p.definition.Nickname(text)
		if !ok {
			return nil, fmt.Errorf("%w: cron: %s does not support %s", ErrSyntax, p.definition.Name(), text)
		}
		text = expansion
	}

	tokens := strings.Fields(text)
	definitions := p.definition.Fields()
	switch want := len(definitions); {
	case len(tokens) == want:
	case len(tokens) == want-1 && p.definition.LastFieldOptional():
		definitions = definitions[:want-1]
	case p.definition.LastFieldOptional():
		return nil, fmt.Errorf("%w: cron: expected %d or %d fields, got %d", ErrSyntax, want-1, want, len(tokens))
	default:
		return nil, fmt.Errorf("%w: cron: expected %d fields, got %d", ErrSyntax, want, len(tokens))
	}

	fields := make([]cron.Field, len(tokens))
	for i, token := range tokens {
		definition := definitions[i]
		expression, err := parseField(token, definition.Name, definition.Constraints)
		if err != nil {
			return nil, fmt.Errorf("cron: %s field: %w", definition.Name, err)
		}
		fields[i] = cron.Field{
			Name:        definition.Name,
			Expression:  expression,
			Constraints: definition.Constraints,
		}
	}
	return cron.New(p.definition, fields)
}

// parseField parses a comma-separated list of terms.
func parseField(field string, name expr.FieldName, c expr.Constraints) (expr.Expression, error) {
	terms := strings.Split(field, ",")
	if len(terms) == 1 {
		return parseTerm(field, name, c)
	}
	parts := make([]expr.Expression, len(terms))
	for i, term := range terms {
		part, err := parseTerm(term, name, c)
		if err != nil {
			return nil, err
		}
		parts[i] = part
	}
	return wrap(expr.NewAnd(parts...))
}

// parseTerm parses a single term: *, ?, V, V-V, */N, V/N, V-V/N, or one
// of the calendar-relative forms.
func parseTerm(term string, name expr.FieldName, c expr.Constraints) (expr.Expression, error) {
	if term == "" {
		return nil, fmt.Errorf("%w: empty term", ErrSyntax)
	}

	if base, stepText, stepped := strings.Cut(term, "/"); stepped {
		step, err := strconv.Atoi(stepText)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid step %q", ErrSyntax, stepText)
		}
		switch {
		case base == "*":
			return wrap(expr.NewEvery(c, expr.Always{}, step))
		case strings.Contains(base, "-"):
			from, to, err := parseRange(base, c)
			if err != nil {
				return nil, err
			}
			return wrap(expr.NewBetween(c, from, to, step))
		}
		value, err := parseValue(base, c)
		if err != nil {
			return nil, err
		}
		start, err := expr.NewOn(c, expr.Int(value), expr.None, expr.Value{})
		if err != nil {
			return nil, err
		}
		return wrap(expr.NewEvery(c, start, step))
	}

	switch {
	case term == "*":
		return expr.Always{}, nil
	case term == "?":
		if err := expr.Validate(expr.QuestionMark{}, c); err != nil {
			return nil, err
		}
		return expr.QuestionMark{}, nil
	case strings.EqualFold(term, "L"):
		return wrap(expr.NewOn(c, expr.Value{}, expr.L, expr.Value{}))
	case strings.EqualFold(term, "LW"):
		return wrap(expr.NewOn(c, expr.Value{}, expr.LW, expr.Value{}))
	case name == expr.DayOfMonth && len(term) > 2 && strings.EqualFold(term[:2], "L-"):
		offset, err := strconv.Atoi(term[2:])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid offset %q", ErrSyntax, term[2:])
		}
		return wrap(expr.NewLastOffset(c, offset))
	}

	if value, ok := lookupValue(term, c); ok {
		return wrap(expr.NewOn(c, expr.Int(value), expr.None, expr.Value{}))
	}

	if weekday, occurrence, ok := strings.Cut(term, "#"); ok {
		value, err := parseValue(weekday, c)
		if err != nil {
			return nil, err
		}
		nth, err := strconv.Atoi(occurrence)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid occurrence %q", ErrSyntax, occurrence)
		}
		return wrap(expr.NewOn(c, expr.Int(value), expr.Hash, expr.Int(nth)))
	}

	if strings.Contains(term, "-") {
		from, to, err := parseRange(term, c)
		if err != nil {
			return nil, err
		}
		return wrap(expr.NewBetween(c, from, to, 1))
	}

	if suffix, ok := suffixes[name]; ok {
		if text, found := cutSuffixFold(term, suffix.String()); found && text != "" {
			value, err := parseValue(text, c)
			if err != nil {
				return nil, err
			}
			return wrap(expr.NewOn(c, expr.Int(value), suffix, expr.Value{}))
		}
	}

	_, err := parseValue(term, c)
	return nil, err
}

// suffixes maps the fields that take a numeric prefix before a special
// character: nW names a day of the month, nL a weekday.
var suffixes = map[expr.FieldName]expr.SpecialChar{
	expr.DayOfMonth: expr.W,
	expr.DayOfWeek:  expr.L,
}

// parseRange parses "V-V", where the upper bound may be L.
func parseRange(text string, c expr.Constraints) (from, to expr.Value, err error) {
	fromText, toText, _ := strings.Cut(text, "-")
	if from, err = parseBound(fromText, c); err != nil {
		return expr.Value{}, expr.Value{}, err
	}
	if to, err = parseBound(toText, c); err != nil {
		return expr.Value{}, expr.Value{}, err
	}
	return from, to, nil
}

func parseBound(text string, c expr.Constraints) (expr.Value, error) {
	if strings.EqualFold(text, "L") {
		return expr.Special(expr.L), nil
	}
	value, err := parseValue(text, c)
	if err != nil {
		return expr.Value{}, err
	}
	return expr.Int(value), nil
}

// parseValue reads a number or an alias.
func parseValue(text string, c expr.Constraints) (int, error) {
	if value, ok := lookupValue(text, c); ok {
		return value, nil
	}
	return 0, fmt.Errorf("%w: invalid value %q", ErrSyntax, text)
}

func lookupValue(text string, c expr.Constraints) (int, bool) {
	if value, ok := c.Alias(text); ok {
		return value, true
	}
	if text == "" || strings.ContainsAny(text, "+-") {
		return 0, false
	}
	value, err := strconv.Atoi(text)
	return value, err == nil
}

func cutSuffixFold(text, suffix string) (string, bool) {
	if len(text) < len(suffix) || !strings.EqualFold(text[len(text)-len(suffix):], suffix) {
		return text, false
	}
	return text[:len(text)-len(suffix)], true
}

// wrap adapts a constructor's concrete result to an Expression without
// turning a failed construction into a non-nil interface.
func wrap[T expr.Expression](e T, err error) (expr.Expression, error) {
	if err != nil {
		return nil, err
	}
	return e, nil
}
