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
	"time"

	"github.com/bureau-foundation/cronkit/cmd/cronkit/cli"
	"github.com/bureau-foundation/cronkit/lib/clock"
	"github.com/bureau-foundation/cronkit/lib/schedulefile"
)

type upcomingParams struct {
	Options
	File       string `flag:"file,f" desc:"schedule file (default: schedules from the config)"`
	From       string `flag:"from" desc:"reference instant (default: now)"`
	Count      int    `flag:"count,n" desc:"number of executions to print" default:"10"`
	Follow     bool   `flag:"follow" desc:"wait for each execution and print it as it fires"`
	MaxFirings int    `flag:"max-firings" desc:"with --follow, exit after this many firings (0: run until interrupted)"`
	Name       string `flag:"name" desc:"only the schedule with this name"`
}

// firing is one execution of a named schedule.
type firing struct {
	Time        time.Time `json:"time"`
	Name        string    `json:"name"`
	Expression  string    `json:"expression"`
	Dialect     string    `json:"dialect"`
	TimeZone    string    `json:"time_zone"`
	Fingerprint string    `json:"fingerprint"`
	Description string    `json:"description,omitempty"`
}

func newFiring(upcoming schedulefile.Upcoming) firing {
	schedule := upcoming.Schedule
	return firing{
		Time:        upcoming.Time,
		Name:        schedule.Name,
		Expression:  schedule.Cron.String(),
		Dialect:     schedule.Cron.Definition().Name(),
		TimeZone:    schedule.Location.String(),
		Fingerprint: schedule.Fingerprint.Short(),
		Description: schedule.Description,
	}
}

func writeFirings(w io.Writer, firings []firing) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, f := range firings {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.Time.Format(time.RFC3339), f.Name, f.Expression, f.Description)
	}
	return tw.Flush()
}

func upcomingCommand(env *environment) *cli.Command {
	var params upcomingParams

	return &cli.Command{
		Name:    "upcoming",
		Summary: "Print the next executions of a schedule file",
		Description: `Load a schedule file and print the next executions across all of its
enabled schedules, soonest first. Schedules that fire at the same
instant are listed together, ordered by name.

A schedule file is JSON with comments and trailing commas allowed:

  {
    "schedules": [
      // Nightly backup, Berlin time.
      {"name": "backup", "expression": "0 2 * * *", "time_zone": "Europe/Berlin"},
      {"name": "report", "dialect": "quartz", "expression": "0 0 9 ? * MON-FRI"},
    ],
  }

Entries without a dialect or time zone use --dialect and --tz. Entries
with "disabled": true are validated but never fire. Schedules that
share an expression and time zone are reported as duplicates.

With --follow, the command waits for each execution and prints it as
it fires until interrupted.`,
		Usage: "cronkit upcoming [flags]",
		Examples: []cli.Example{
			{
				Description: "Next ten executions across a schedule file",
				Command:     "cronkit upcoming --file schedules.jsonc",
			},
			{
				Description: "Print each firing as it happens",
				Command:     "cronkit upcoming --file schedules.jsonc --follow",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument %q", args[0])
			}
			if params.Count < 1 {
				return fmt.Errorf("--count must be at least 1, got %d", params.Count)
			}
			s, err := params.resolve(logger)
			if err != nil {
				return err
			}

			path := params.File
			if path == "" {
				path = s.config.Schedules
			}
			if path == "" {
				return errors.New("no schedule file: use --file or set schedules in the config")
			}
			set, err := schedulefile.Load(path, schedulefile.Options{
				Dialect:   s.definition,
				Location:  s.location,
				Execution: s.execution,
			})
			if err != nil {
				return err
			}
			if params.Name != "" {
				schedule, ok := set.Lookup(params.Name)
				if !ok {
					return fmt.Errorf("%s has no schedule named %q", path, params.Name)
				}
				set = &schedulefile.Set{Schedules: []*schedulefile.Schedule{schedule}}
			}
			logger = logger.With("file", path)
			logger.Debug("loaded schedules", "count", len(set.Schedules))
			for _, group := range set.Duplicates() {
				names := make([]string, len(group))
				for i, schedule := range group {
					names[i] = schedule.Name
				}
				logger.Warn("schedules fire at the same instants",
					"names", names,
					"fingerprint", group[0].Fingerprint.Short(),
				)
			}

			from, err := parseInstant(params.From, s.location, env.clock.Now())
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}

			if params.Follow {
				return follow(ctx, env, s.format, set, from, params.MaxFirings, logger)
			}

			firings := []firing{}
			for cursor := from; len(firings) < params.Count; {
				batch := nextInstant(set, cursor)
				if len(batch) == 0 {
					break
				}
				for _, upcoming := range batch {
					firings = append(firings, newFiring(upcoming))
				}
				cursor = batch[0].Time
			}
			// The last batch may carry more firings than were asked for.
			if len(firings) > params.Count {
				firings = firings[:params.Count]
			}
			return cli.Emit(env.stdout, s.format, firings, func(w io.Writer) error {
				return writeFirings(w, firings)
			})
		},
	}
}

// nextInstant returns every execution at the earliest instant after t
// across the set.
func nextInstant(set *schedulefile.Set, t time.Time) []schedulefile.Upcoming {
	upcoming := set.Next(t)
	for i, u := range upcoming {
		if !u.Time.Equal(upcoming[0].Time) {
			return upcoming[:i]
		}
	}
	return upcoming
}

// follow waits on the environment clock for each execution of set after from and emits it
// when it fires. It returns nil when ctx is cancelled, when maxFirings
// firings have been emitted, or when no schedule fires again.
func follow(ctx context.Context, env *environment, format cli.Format, set *schedulefile.Set, from time.Time, maxFirings int, logger *slog.Logger) error {
	fired := 0
	cursor := from
	for maxFirings == 0 || fired < maxFirings {
		batch := nextInstant(set, cursor)
		if len(batch) == 0 {
			logger.Info("no schedule fires again")
			return nil
		}
		deadline := batch[0].Time
		logger.Debug("waiting for next execution",
			"time", deadline.Format(time.RFC3339),
			"schedules", len(batch),
		)
		if err := clock.WaitUntil(ctx, env.clock, deadline); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		for _, upcoming := range batch {
			f := newFiring(upcoming)
			err := cli.Emit(env.stdout, format, f, func(w io.Writer) error {
				return writeFirings(w, []firing{f})
			})
			if err != nil {
				return err
			}
			fired++
			if maxFirings > 0 && fired == maxFirings {
				return nil
			}
		}
		cursor = deadline
	}
	return nil
}
