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
)

type matchParams struct {
	Options
	At string `flag:"at" desc:"instant to test (default: now)"`
}

// matchResult reports whether an instant matches and how far it is
// from the surrounding executions.
type matchResult struct {
	Expression *cron.Cron `json:"expression"`
	TimeZone   string     `json:"time_zone"`
	At         time.Time  `json:"at"`
	Match      bool       `json:"match"`
	Last       *time.Time `json:"last,omitempty"`
	SinceLast  string     `json:"since_last,omitempty"`
	Next       *time.Time `json:"next,omitempty"`
	UntilNext  string     `json:"until_next,omitempty"`
}

func (r *matchResult) writeText(w io.Writer) error {
	verdict := "does not match"
	if r.Match {
		verdict = "matches"
	}
	fmt.Fprintf(w, "%s %s %s\n", r.At.Format(time.RFC3339), verdict, r.Expression)
	if r.Last != nil {
		fmt.Fprintf(w, "  last: %s (%s ago)\n", r.Last.Format(time.RFC3339), r.SinceLast)
	}
	if r.Next != nil {
		fmt.Fprintf(w, "  next: %s (in %s)\n", r.Next.Format(time.RFC3339), r.UntilNext)
	}
	return nil
}

func matchCommand(env *environment) *cli.Command {
	var params matchParams

	return &cli.Command{
		Name:    "match",
		Summary: "Test whether an instant matches an expression",
		Description: `Report whether an instant matches a cron expression, with the nearest
executions on either side. Sub-second precision is ignored.

Exits 0 when the instant matches and 1 when it does not, so the
command can gate shell scripts.`,
		Usage: "cronkit match [flags] <expression>",
		Examples: []cli.Example{
			{
				Description: "Gate a script on the first Monday of the month",
				Command:     "cronkit match -d quartz '0 0 9 ? * 2#1' && ./monthly-report",
			},
			{
				Description: "Test a fixed instant in New York time",
				Command:     "cronkit match --tz America/New_York --at '2024-03-10 02:30' '30 2 * * *'",
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
			at, err := parseInstant(params.At, s.location, env.clock.Now())
			if err != nil {
				return fmt.Errorf("--at: %w", err)
			}

			result := &matchResult{
				Expression: c,
				TimeZone:   s.location.String(),
				At:         at,
				Match:      engine.IsMatch(at),
			}
			if last, ok := engine.LastExecution(at); ok {
				result.Last = &last
				since, _ := engine.TimeFromLastExecution(at)
				result.SinceLast = since.String()
			}
			if next, ok := engine.NextExecution(at); ok {
				result.Next = &next
				until, _ := engine.TimeToNextExecution(at)
				result.UntilNext = until.String()
			}

			if err := cli.Emit(env.stdout, s.format, result, result.writeText); err != nil {
				return err
			}
			if !result.Match {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}
