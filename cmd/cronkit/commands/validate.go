// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/bureau-foundation/cronkit/cmd/cronkit/cli"
	"github.com/bureau-foundation/cronkit/lib/cron/parser"
)

type validateParams struct {
	Options
}

// validation is the verdict on one expression.
type validation struct {
	Input     string            `json:"input"`
	Valid     bool              `json:"valid"`
	Canonical string            `json:"canonical,omitempty"`
	Fields    []validationField `json:"fields,omitempty"`
	Error     string            `json:"error,omitempty"`
}

type validationField struct {
	Name       string `json:"name"`
	Expression string `json:"expression"`
}

func validateCommand(env *environment) *cli.Command {
	var params validateParams

	return &cli.Command{
		Name:    "validate",
		Summary: "Check expressions and print their canonical form",
		Description: `Parse each argument as one cron expression in the selected dialect.
Valid expressions are printed in canonical form, with names such as
MON or JAN replaced by numbers, followed by their fields. Invalid
expressions are printed with the reason.

Exits 1 if any expression is invalid.`,
		Usage: "cronkit validate [flags] <expression>...",
		Examples: []cli.Example{
			{
				Description: "Check two expressions",
				Command:     "cronkit validate '0 9 * * MON-FRI' '@weekly'",
			},
			{
				Description: "Check a Quartz expression",
				Command:     "cronkit validate -d quartz '0 15 10 ? * 6#3 2024-2026'",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) == 0 {
				return errors.New("at least one expression required")
			}
			s, err := params.resolve(logger)
			if err != nil {
				return err
			}

			results := make([]validation, 0, len(args))
			invalid := 0
			for _, input := range args {
				result := validation{Input: input}
				c, err := parser.Parse(s.definition, input)
				if err != nil {
					result.Error = err.Error()
					invalid++
				} else {
					result.Valid = true
					result.Canonical = c.String()
					for _, field := range c.Fields() {
						result.Fields = append(result.Fields, validationField{
							Name:       field.Name.String(),
							Expression: field.Expression.String(),
						})
					}
				}
				logger.Debug("validated expression", "input", input, "valid", result.Valid)
				results = append(results, result)
			}

			err = cli.Emit(env.stdout, s.format, results, func(w io.Writer) error {
				for _, result := range results {
					if !result.Valid {
						fmt.Fprintf(w, "invalid  %s\n  %s\n", result.Input, result.Error)
						continue
					}
					fmt.Fprintf(w, "valid    %s\n  canonical: %s\n", result.Input, result.Canonical)
					tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
					for _, field := range result.Fields {
						fmt.Fprintf(tw, "  %s\t%s\n", field.Name, field.Expression)
					}
					if err := tw.Flush(); err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
				return err
			}
			if invalid > 0 {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}
