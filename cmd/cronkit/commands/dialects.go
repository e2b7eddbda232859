// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/bureau-foundation/cronkit/cmd/cronkit/cli"
	"github.com/bureau-foundation/cronkit/lib/cron"
)

type dialectsParams struct {
	Format string `flag:"format,o" desc:"output format: text, json, or cbor" default:"text"`
}

type dialectInfo struct {
	Name           string             `json:"name"`
	Fields         []dialectFieldInfo `json:"fields"`
	StrictRanges   bool               `json:"strict_ranges"`
	DayDisjunction bool               `json:"day_disjunction"`
	Nicknames      []string           `json:"nicknames"`
}

type dialectFieldInfo struct {
	Name     string   `json:"name"`
	Min      int      `json:"min"`
	Max      int      `json:"max"`
	Optional bool     `json:"optional,omitempty"`
	Specials []string `json:"specials,omitempty"`
}

func describeDialect(definition *cron.Definition) dialectInfo {
	info := dialectInfo{
		Name:           definition.Name(),
		StrictRanges:   definition.StrictRanges(),
		DayDisjunction: definition.DayDisjunction(),
		Nicknames:      []string{},
	}
	for _, field := range definition.Fields() {
		fieldInfo := dialectFieldInfo{
			Name:     field.Name.String(),
			Min:      field.Constraints.Min(),
			Max:      field.Constraints.Max(),
			Optional: field.Optional,
		}
		for _, special := range field.Constraints.Specials() {
			fieldInfo.Specials = append(fieldInfo.Specials, special.String())
		}
		info.Fields = append(info.Fields, fieldInfo)
	}
	for nickname := range definition.Nicknames() {
		info.Nicknames = append(info.Nicknames, nickname)
	}
	slices.Sort(info.Nicknames)
	return info
}

func dialectsCommand(env *environment) *cli.Command {
	var params dialectsParams

	return &cli.Command{
		Name:    "dialects",
		Summary: "List the built-in cron dialects",
		Description: `List the built-in dialects with their fields in order. Optional fields
are marked with "?" and may be left off the end of an expression.`,
		Usage:  "cronkit dialects [flags]",
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			format, err := cli.ParseFormat(params.Format)
			if err != nil {
				return err
			}
			var infos []dialectInfo
			for _, definition := range cron.Dialects() {
				infos = append(infos, describeDialect(definition))
			}

			return cli.Emit(env.stdout, format, infos, func(w io.Writer) error {
				tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "DIALECT\tFIELDS\tRANGES\tDAYS\tNICKNAMES")
				for _, info := range infos {
					fields := make([]string, len(info.Fields))
					for i, field := range info.Fields {
						fields[i] = field.Name
						if field.Optional {
							fields[i] += "?"
						}
					}
					ranges := "lenient"
					if info.StrictRanges {
						ranges = "strict"
					}
					days := "and"
					if info.DayDisjunction {
						days = "or"
					}
					nicknames := "-"
					if len(info.Nicknames) > 0 {
						nicknames = strings.Join(info.Nicknames, " ")
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", info.Name, strings.Join(fields, " "), ranges, days, nicknames)
				}
				return tw.Flush()
			})
		},
	}
}
