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

// listing is the result of every command that prints a sequence of
// execution times.
type listing struct {
	Expression *cron.Cron  `json:"expression"`
	Dialect    string      `json:"dialect"`
	TimeZone   string      `json:"time_zone"`
	From       time.Time   `json:"from"`
	To         *time.Time  `json:"to,omitempty"`
	Executions []time.Time `json:"executions"`
}

func newListing(c *cron.Cron, s *settings, from time.Time) *listing {
	return &listing{
		Expression: c,
		Dialect:    c.Definition().Name(),
		TimeZone:   s.location.String(),
		From:       from,
		Executions: []time.Time{},
	}
}

// writeText prints one execution per line with its weekday.
func (l *listing) writeText(w io.Writer) error {
	for _, t := range l.Executions {
		if _, err := fmt.Fprintf(w, "%s  %s\n", t.Format(time.RFC3339), t.Format("Mon")); err != nil {
			return err
		}
	}
	return nil
}

// stepParams holds the parameters for "cronkit next" and "cronkit last".
type stepParams struct {
	Options
	From  string `flag:"from" desc:"reference instant (default: now)"`
	Count int    `flag:"count,n" desc:"number of executions to print" default:"5"`
}

func nextCommand(env *environment) *cli.Command {
	return stepCommand(env, "next", "Print upcoming executions", (*execution.ExecutionTime).NextExecution)
}

func lastCommand(env *environment) *cli.Command {
	return stepCommand(env, "last", "Print previous executions", (*execution.ExecutionTime).LastExecution)
}

// stepCommand builds a command that walks executions one at a time
// from --from in the direction of step.
func stepCommand(env *environment, name, summary string, step func(*execution.ExecutionTime, time.Time) (time.Time, bool)) *cli.Command {
	var params stepParams

	direction := "after"
	if name == "last" {
		direction = "before"
	}

	return &cli.Command{
		Name:    name,
		Summary: summary,
		Description: fmt.Sprintf(`Print the executions of a cron expression strictly %s the reference
instant, nearest first.

The expression may be quoted as one argument or given as separate
fields. The search gives up after --lookahead years; an expression
with no execution in that window is an error.`, direction),
		Usage: fmt.Sprintf("cronkit %s [flags] <expression>", name),
		Examples: []cli.Example{
			{
				Description: "Five executions " + direction + " now",
				Command:     fmt.Sprintf("cronkit %s '*/15 9-17 * * MON-FRI'", name),
			},
			{
				Description: "Three executions " + direction + " a fixed instant, Quartz syntax",
				Command:     fmt.Sprintf("cronkit %s -d quartz -n 3 --from 2024-01-01T00:00:00Z '0 0 12 ? * 6L'", name),
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if params.Count < 1 {
				return fmt.Errorf("--count must be at least 1, got %d", params.Count)
			}
			s, err := params.resolve(logger)
			if err != nil {
				return err
			}
			c, engine, err := s.parse(args)
			if err != nil {
				return err
			}
			from, err := parseInstant(params.From, s.location, env.clock.Now())
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}

			result := newListing(c, s, from)
			cursor := from
			for range params.Count {
				t, ok := step(engine, cursor)
				if !ok {
					break
				}
				result.Executions = append(result.Executions, t)
				cursor = t
			}
			if len(result.Executions) == 0 {
				return fmt.Errorf("%q has no execution %s %s within %d years",
					c.String(), direction, from.Format(time.RFC3339), s.config.LookaheadYears)
			}
			if len(result.Executions) < params.Count {
				logger.Debug("search window exhausted",
					"found", len(result.Executions),
					"requested", params.Count,
				)
			}

			return cli.Emit(env.stdout, s.format, result, result.writeText)
		},
	}
}
