// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the cronkit command tree. Every subcommand
// writes its result through an [environment], so tests can substitute
// an in-memory stdout and a fake clock.
package commands

import (
	"io"
	"os"

	"github.com/bureau-foundation/cronkit/cmd/cronkit/cli"
	"github.com/bureau-foundation/cronkit/lib/clock"
)

// environment is what commands need from the process.
type environment struct {
	stdout io.Writer
	clock  clock.Clock
}

// Root builds and returns the complete cronkit command tree, bound to
// the process stdout and the wall clock.
func Root() *cli.Command {
	return newRoot(&environment{stdout: os.Stdout, clock: clock.Real()})
}

func newRoot(env *environment) *cli.Command {
	return &cli.Command{
		Name: "cronkit",
		Description: `cronkit: cron expression toolkit.

Parse cron expressions in the Unix, cron4j, Quartz, and Spring dialects,
and compute when they fire. Execution times are evaluated on the wall
clock of a time zone, including across daylight saving transitions.

Settings default from the YAML file named by --config or $CRONKIT_CONFIG.`,
		Subcommands: []*cli.Command{
			nextCommand(env),
			lastCommand(env),
			matchCommand(env),
			listCommand(env),
			countCommand(env),
			validateCommand(env),
			calendarCommand(env),
			upcomingCommand(env),
			dialectsCommand(env),
			versionCommand(env),
		},
		Examples: []cli.Example{
			{
				Description: "Next five weekday mornings",
				Command:     "cronkit next '0 9 * * MON-FRI'",
			},
			{
				Description: "Last business day of the month at noon, Quartz syntax, Berlin time",
				Command:     "cronkit next --dialect quartz --tz Europe/Berlin '0 0 12 LW * ?'",
			},
			{
				Description: "Does 09:00 today match?",
				Command:     "cronkit match --at 2024-03-04T09:00:00Z '0 9 * * 1-5'",
			},
			{
				Description: "Every execution in the next week as JSON",
				Command:     "cronkit list --for 168h --format json '@daily'",
			},
			{
				Description: "Highlight matching days over a quarter",
				Command:     "cronkit calendar --months 3 '0 0 1,15 * *'",
			},
			{
				Description: "Watch a schedule file and print each firing",
				Command:     "cronkit upcoming --file schedules.jsonc --follow",
			},
		},
	}
}
