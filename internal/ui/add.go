package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timegrid/internal/schedule"
)

func (a *App) addCmd() *cobra.Command {
	var (
		date   string
		start  string
		end    string
		locked bool
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new schedule",
		Long: `Add a new schedule to the grid.

Example:
  timegrid add "Design review" --date=2025-01-10 --start=09:00 --end=10:30`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSchedule(args[0], date, start, end, time.Local)
			if err != nil {
				return err
			}
			s.Resizable = locked

			if err := a.ensureRepo(); err != nil {
				return err
			}
			if err := a.repo.CreateSchedule(context.Background(), s); err != nil {
				return fmt.Errorf("creating schedule: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created schedule %s: %s %s %s\n",
				shortID(s.ID),
				s.Title,
				schedule.FormatDate(s.Start),
				clockRange(s),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM, required)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM or 24:00, required)")
	cmd.Flags().BoolVar(&locked, "locked", false, "Refuse resizing in the grid")

	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

// newSchedule builds a schedule from command line values.
func newSchedule(title, date, start, end string, loc *time.Location) (*schedule.Schedule, error) {
	day, err := schedule.ParseDate(date, loc)
	if err != nil {
		return nil, err
	}
	from, err := schedule.ParseClock(day, start)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	to, err := schedule.ParseClock(day, end)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}
	return schedule.New(title, from, to)
}
