// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cron

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/bureau-foundation/cronkit/lib/cron/expr"
)

// ErrInvalidCron is wrapped by every failure to assemble a Cron.
var ErrInvalidCron = errors.New("invalid cron")

// Field is one field of a schedule: its name, its expression, and the
// constraints the expression was validated against.
type Field struct {
	Name        expr.FieldName
	Expression  expr.Expression
	Constraints expr.Constraints
}

// Cron is a parsed schedule. Fields are kept ordered by name and are
// unique; the canonical text is derived on first use.
type Cron struct {
	definition *Definition
	fields     []Field

	textOnce sync.Once
	text     string
}

// New assembles a Cron for definition. Every field must belong to the
// definition, appear at most once, and hold an expression valid for its
// constraints; every non-optional field of the definition must be
// present. The definition's cross-field validations run last.
func New(definition *Definition, fields []Field) (*Cron, error) {
	if definition == nil {
		return nil, fmt.Errorf("%w: no definition", ErrInvalidCron)
	}

	sorted := slices.Clone(fields)
	slices.SortStableFunc(sorted, func(a, b Field) int { return int(a.Name) - int(b.Name) })

	var errs []error
	for i, field := range sorted {
		if i > 0 && sorted[i-1].Name == field.Name {
			return nil, fmt.Errorf("%w: duplicate %s field", ErrInvalidCron, field.Name)
		}
		if _, ok := definition.Field(field.Name); !ok {
			return nil, fmt.Errorf("%w: %s has no %s field", ErrInvalidCron, definition.Name(), field.Name)
		}
		if err := expr.Validate(field.Expression, field.Constraints); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s field: %w", ErrInvalidCron, field.Name, err))
		}
	}
	for _, fieldDefinition := range definition.fields {
		if fieldDefinition.Optional {
			continue
		}
		if !slices.ContainsFunc(sorted, func(f Field) bool { return f.Name == fieldDefinition.Name }) {
			errs = append(errs, fmt.Errorf("%w: missing %s field", ErrInvalidCron, fieldDefinition.Name))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	c := &Cron{definition: definition, fields: sorted}
	for _, validate := range definition.validations {
		if err := validate(c); err != nil {
			errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidCron, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return c, nil
}

// Definition returns the dialect the schedule was built for.
func (c *Cron) Definition() *Definition { return c.definition }

// Field returns the field with the given name. Fields the definition
// does not have, and an omitted optional field, are reported absent.
func (c *Cron) Field(name expr.FieldName) (Field, bool) {
	for _, field := range c.fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Fields returns the fields ordered by name.
func (c *Cron) Fields() []Field { return slices.Clone(c.fields) }

// String returns the canonical text: each field's canonical expression
// in field order, separated by single spaces. Aliases are rendered as
// numbers, so "MON-FRI" reads back as "1-5".
func (c *Cron) String() string {
	c.textOnce.Do(func() {
		texts := make([]string, len(c.fields))
		for i, field := range c.fields {
			texts[i] = field.Expression.String()
		}
		c.text = strings.Join(texts, " ")
	})
	return c.text
}

// Equivalent reports whether c and other belong to the same dialect and
// have the same canonical text.
func (c *Cron) Equivalent(other *Cron) bool {
	if other == nil {
		return false
	}
	return c.definition == other.definition && c.String() == other.String()
}

// MarshalText returns the canonical text, so a Cron embedded in JSON or
// CBOR output serializes as its expression string.
func (c *Cron) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
