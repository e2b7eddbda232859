// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cron

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/bureau-foundation/cronkit/lib/cron/expr"
)

// Validation is a cross-field rule a Cron must satisfy, such as "day of
// month and day of week may not both be ?".
type Validation func(c *Cron) error

// FieldDefinition is one field of a dialect.
type FieldDefinition struct {
	Name        expr.FieldName
	Constraints expr.Constraints

	// Optional fields may be omitted from the text. Only the last field
	// of a definition can be optional.
	Optional bool
}

// Definition is a dialect: an ordered list of fields and the rules a
// schedule in that dialect follows. Build one with DefinitionBuilder.
type Definition struct {
	name           string
	fields         []FieldDefinition
	strictRanges   bool
	dayDisjunction bool
	nicknames      map[string]string
	validations    []Validation
}

// Name returns the dialect name.
func (d *Definition) Name() string { return d.name }

// Fields returns the field definitions in order.
func (d *Definition) Fields() []FieldDefinition { return slices.Clone(d.fields) }

// Field returns the definition of a field.
func (d *Definition) Field(name expr.FieldName) (FieldDefinition, bool) {
	for _, field := range d.fields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldDefinition{}, false
}

// LastFieldOptional reports whether schedules may omit the last field.
func (d *Definition) LastFieldOptional() bool {
	return len(d.fields) > 0 && d.fields[len(d.fields)-1].Optional
}

// StrictRanges reports whether inverted ranges are rejected.
func (d *Definition) StrictRanges() bool { return d.strictRanges }

// DayDisjunction reports whether a day matches when either the
// day-of-month or the day-of-week field matches, when both are
// restricted. Without it both must match.
func (d *Definition) DayDisjunction() bool { return d.dayDisjunction }

// Nickname expands a macro such as "@daily". The name is matched
// case-insensitively and includes the leading @.
func (d *Definition) Nickname(name string) (string, bool) {
	expansion, ok := d.nicknames[strings.ToLower(name)]
	return expansion, ok
}

// Nicknames returns a copy of the macro table.
func (d *Definition) Nicknames() map[string]string { return maps.Clone(d.nicknames) }

func (d *Definition) String() string { return d.name }

// DefinitionBuilder assembles a Definition:
//
//	definition, err := cron.NewDefinitionBuilder("hourly-only").
//		WithField(expr.Minute, expr.NewConstraints(0, 59)).
//		WithField(expr.Hour, expr.NewConstraints(0, 23)).
//		StrictRanges().
//		Build()
type DefinitionBuilder struct {
	definition   Definition
	lastOptional bool
}

// NewDefinitionBuilder starts a definition with the given name.
func NewDefinitionBuilder(name string) *DefinitionBuilder {
	return &DefinitionBuilder{definition: Definition{name: name}}
}

// WithField appends a field. Fields must be added in FieldName order.
func (b *DefinitionBuilder) WithField(name expr.FieldName, constraints expr.Constraints) *DefinitionBuilder {
	b.definition.fields = append(b.definition.fields, FieldDefinition{Name: name, Constraints: constraints})
	return b
}

// LastFieldOptional lets schedules omit the last field.
func (b *DefinitionBuilder) LastFieldOptional() *DefinitionBuilder {
	b.lastOptional = true
	return b
}

// StrictRanges rejects inverted ranges in every field.
func (b *DefinitionBuilder) StrictRanges() *DefinitionBuilder {
	b.definition.strictRanges = true
	return b
}

// DayDisjunction matches a day when either day field matches.
func (b *DefinitionBuilder) DayDisjunction() *DefinitionBuilder {
	b.definition.dayDisjunction = true
	return b
}

// WithNickname adds a macro. The name must start with @.
func (b *DefinitionBuilder) WithNickname(name, expansion string) *DefinitionBuilder {
	if b.definition.nicknames == nil {
		b.definition.nicknames = make(map[string]string)
	}
	b.definition.nicknames[strings.ToLower(name)] = expansion
	return b
}

// WithValidation adds a cross-field rule.
func (b *DefinitionBuilder) WithValidation(validation Validation) *DefinitionBuilder {
	b.definition.validations = append(b.definition.validations, validation)
	return b
}

// Build returns the definition. The builder must not be used afterwards.
func (b *DefinitionBuilder) Build() (*Definition, error) {
	definition := b.definition
	if definition.name == "" {
		return nil, fmt.Errorf("cron: definition has no name")
	}
	if len(definition.fields) == 0 {
		return nil, fmt.Errorf("cron: definition %s has no fields", definition.name)
	}
	for i, field := range definition.fields {
		if i > 0 && field.Name <= definition.fields[i-1].Name {
			return nil, fmt.Errorf("cron: definition %s: field %s out of order after %s",
				definition.name, field.Name, definition.fields[i-1].Name)
		}
		if definition.strictRanges {
			definition.fields[i].Constraints = field.Constraints.WithStrictRange(true)
		}
	}
	for expansion := range maps.Values(definition.nicknames) {
		got := len(strings.Fields(expansion))
		if got != len(definition.fields) && (!b.lastOptional || got != len(definition.fields)-1) {
			return nil, fmt.Errorf("cron: definition %s: nickname expansion %q has %d fields, want %d",
				definition.name, expansion, got, len(definition.fields))
		}
	}
	if b.lastOptional {
		definition.fields[len(definition.fields)-1].Optional = true
	}
	definition.fields = slices.Clip(definition.fields)
	return &definition, nil
}

// MustBuild is like Build but panics on error. It is meant for
// package-level dialect tables.
func (b *DefinitionBuilder) MustBuild() *Definition {
	definition, err := b.Build()
	if err != nil {
		panic(err)
	}
	return definition
}
