// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/bureau-foundation/cronkit/cmd/cronkit/cli"
	"github.com/bureau-foundation/cronkit/lib/cron"
	"github.com/bureau-foundation/cronkit/lib/cron/execution"
)

// RangeOptions selects the interval (from, to] shared by "list" and
// "count".
type RangeOptions struct {
	Options
	From string        `flag:"from" desc:"start of the interval, exclusive (default: now)"`
	To   string        `flag:"to" desc:"end of the interval, inclusive (overrides --for)"`
	For  time.Duration `flag:"for" desc:"length of the interval when --to is not given" default:"24h"`
}

// interval resolves the flags into (start, end] and rejects empty
// intervals.
func (p *RangeOptions) interval(location *time.Location, now time.Time) (time.Time, time.Time, error) {
	start, end, err := parseRange(p.From, p.To, p.For, location, now)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s is not after %s",
			execution.ErrInvalidRange, end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return start, end, nil
}

type listParams struct {
	RangeOptions
	Limit int `flag:"limit" desc:"stop after this many executions (0: no limit)" default:"1000"`
}

func listCommand(env *environment) *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "Print every execution in an interval",
		Description: `Print every execution of a cron expression in the interval (from, to],
oldest first. The interval is given by --to, or by --for counted from
--from.

Listings stop at --limit executions; an every-second expression fires
86400 times a day.`,
		Usage: "cronkit list [flags] <expression>",
		Examples: []cli.Example{
			{
				Description: "Executions over the next day",
				Command:     "cronkit list '0 */4 * * *'",
			},
			{
				Description: "Executions in March 2024 as JSON",
				Command:     "cronkit list --from 2024-03-01 --to 2024-04-01 -o json '0 12 * * SAT,SUN'",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if params.Limit < 0 {
				return fmt.Errorf("--limit must not be negative, got %d", params.Limit)
			}
			s, err := params.resolve(logger)
			if err != nil {
				return err
			}
			c, engine, err := s.parse(args)
			if err != nil {
				return err
			}
			start, end, err := params.interval(s.location, env.clock.Now())
			if err != nil {
				return err
			}

			result := newListing(c, s, start)
			result.To = &end
			for t := range engine.Executions(start, end) {
				if params.Limit > 0 && len(result.Executions) == params.Limit {
					logger.Warn("listing truncated",
						"limit", params.Limit,
						"resume_from", result.Executions[len(result.Executions)-1].Format(time.RFC3339),
					)
					break
				}
				result.Executions = append(result.Executions, t)
			}

			return cli.Emit(env.stdout, s.format, result, result.writeText)
		},
	}
}

// countResult is the output of "cronkit count".
type countResult struct {
	Expression *cron.Cron `json:"expression"`
	TimeZone   string     `json:"time_zone"`
	From       time.Time  `json:"from"`
	To         time.Time  `json:"to"`
	Count      int        `json:"count"`
}

func countCommand(env *environment) *cli.Command {
	var params RangeOptions

	return &cli.Command{
		Name:    "count",
		Summary: "Count the executions in an interval",
		Description: `Print the number of executions of a cron expression in the interval
(from, to]. The interval is given by --to, or by --for counted from
--from.`,
		Usage: "cronkit count [flags] <expression>",
		Examples: []cli.Example{
			{
				Description: "Executions of an every-ten-minutes job in a week",
				Command:     "cronkit count --for 168h '*/10 * * * *'",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			s, err := params.resolve(logger)
			if err != nil {
				return err
			}
			c, engine, err := s.parse(args)
			if err != nil {
				return err
			}
			start, end, err := params.interval(s.location, env.clock.Now())
			if err != nil {
				return err
			}
			count, err := engine.CountExecutions(start, end)
			if err != nil {
				return err
			}

			result := &countResult{
				Expression: c,
				TimeZone:   s.location.String(),
				From:       start,
				To:         end,
				Count:      count,
			}
			return cli.Emit(env.stdout, s.format, result, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, result.Count)
				return err
			})
		},
	}
}
