// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/cronkit/cmd/cronkit/cli"
	"github.com/bureau-foundation/cronkit/lib/cron"
	"github.com/bureau-foundation/cronkit/lib/cron/execution"
)

type calendarParams struct {
	Options
	Month   string `flag:"month" desc:"first month to show, as YYYY-MM (default: current month)"`
	Months  int    `flag:"months" desc:"number of months to show" default:"1"`
	Columns int    `flag:"columns" desc:"months per row" default:"3"`
}

// calendarMonth lists the days of one month with at least one
// execution.
type calendarMonth struct {
	Month string `json:"month"`
	Days  []int  `json:"days"`
}

type calendarResult struct {
	Expression *cron.Cron      `json:"expression"`
	TimeZone   string          `json:"time_zone"`
	Months     []calendarMonth `json:"months"`
}

// Month grid geometry: seven cells of cellWidth separated by one space.
const (
	cellWidth  = 3
	monthWidth = 7*cellWidth + 6
	monthGap   = "   "
)

var weekdayHeader = []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

func calendarCommand(env *environment) *cli.Command {
	var params calendarParams

	return &cli.Command{
		Name:    "calendar",
		Summary: "Render a month calendar of matching days",
		Description: `Render month grids with every day on which the expression fires at
least once marked with "*" (and highlighted on color terminals).
Weeks start on Monday.`,
		Usage: "cronkit calendar [flags] <expression>",
		Examples: []cli.Example{
			{
				Description: "The last Friday of each month this quarter",
				Command:     "cronkit calendar -d quartz --months 3 '0 0 18 ? * 6L'",
			},
			{
				Description: "A year of bi-weekly paydays",
				Command:     "cronkit calendar --month 2025-01 --months 12 --columns 4 '0 9 1,15 * *'",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if params.Months < 1 {
				return fmt.Errorf("--months must be at least 1, got %d", params.Months)
			}
			if params.Columns < 1 {
				return fmt.Errorf("--columns must be at least 1, got %d", params.Columns)
			}
			s, err := params.resolve(logger)
			if err != nil {
				return err
			}
			c, engine, err := s.parse(args)
			if err != nil {
				return err
			}
			first, err := parseMonth(params.Month, s.location, env.clock.Now())
			if err != nil {
				return err
			}

			result := &calendarResult{
				Expression: c,
				TimeZone:   s.location.String(),
			}
			for offset := range params.Months {
				month := first.AddDate(0, offset, 0)
				result.Months = append(result.Months, calendarMonth{
					Month: month.Format("2006-01"),
					Days:  matchingDays(engine, month),
				})
			}

			return cli.Emit(env.stdout, s.format, result, func(w io.Writer) error {
				_, err := io.WriteString(w, renderCalendar(lipgloss.NewRenderer(w), first, result.Months, params.Columns)+"\n")
				return err
			})
		},
	}
}

// parseMonth returns midnight on the first day of the month named by
// value, or of the month containing now.
func parseMonth(value string, location *time.Location, now time.Time) (time.Time, error) {
	if value == "" {
		now = now.In(location)
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, location), nil
	}
	t, err := time.ParseInLocation("2006-01", value, location)
	if err != nil {
		return time.Time{}, fmt.Errorf("--month: invalid month %q: want YYYY-MM", value)
	}
	return t, nil
}

// matchingDays returns the days of the month starting at first on
// which engine fires. After each hit the search resumes at the next
// midnight, so dense schedules cost one lookup per day.
func matchingDays(engine *execution.ExecutionTime, first time.Time) []int {
	location := first.Location()
	end := first.AddDate(0, 1, 0)
	days := []int{}

	cursor := first.Add(-time.Second)
	for {
		next, ok := engine.NextExecution(cursor)
		if !ok || !next.Before(end) {
			return days
		}
		days = append(days, next.Day())
		midnight := time.Date(next.Year(), next.Month(), next.Day()+1, 0, 0, 0, 0, location)
		cursor = midnight.Add(-time.Second)
	}
}

// renderCalendar lays out one grid per month, columns to a row.
func renderCalendar(renderer *lipgloss.Renderer, first time.Time, months []calendarMonth, columns int) string {
	titleStyle := renderer.NewStyle().Bold(true).Width(monthWidth).Align(lipgloss.Center)
	headerStyle := renderer.NewStyle().Faint(true)
	matchStyle := renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))

	var blocks []string
	for index, month := range months {
		start := first.AddDate(0, index, 0)
		blocks = append(blocks, renderMonth(start, month.Days, titleStyle, headerStyle, matchStyle))
	}

	var rows []string
	for len(blocks) > 0 {
		count := min(columns, len(blocks))
		row := make([]string, 0, 2*count-1)
		for i, block := range blocks[:count] {
			if i > 0 {
				row = append(row, monthGap)
			}
			row = append(row, block)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
		blocks = blocks[count:]
	}
	return strings.Join(rows, "\n\n")
}

func renderMonth(start time.Time, days []int, titleStyle, headerStyle, matchStyle lipgloss.Style) string {
	matched := make(map[int]bool, len(days))
	for _, day := range days {
		matched[day] = true
	}

	header := make([]string, len(weekdayHeader))
	for i, name := range weekdayHeader {
		header[i] = fmt.Sprintf("%-*s", cellWidth, name)
	}
	lines := []string{
		titleStyle.Render(start.Format("January 2006")),
		headerStyle.Render(strings.Join(header, " ")),
	}

	daysInMonth := start.AddDate(0, 1, -1).Day()
	// Monday is column zero.
	column := (int(start.Weekday()) + 6) % 7
	week := make([]string, column, 7)
	for i := range week {
		week[i] = strings.Repeat(" ", cellWidth)
	}
	for day := 1; day <= daysInMonth; day++ {
		cell := fmt.Sprintf("%2d ", day)
		if matched[day] {
			cell = matchStyle.Render(fmt.Sprintf("%2d*", day))
		}
		week = append(week, cell)
		if len(week) == 7 || day == daysInMonth {
			lines = append(lines, strings.Join(week, " "))
			week = week[:0]
		}
	}
	lines = append(lines, fmt.Sprintf("%d of %d days", len(days), daysInMonth))
	return strings.Join(lines, "\n")
}
