package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/timegrid/internal/schedule"
)

func (a *App) listCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
		copyOut   bool
		noColor   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List schedules in a date range",
		Long: `List all schedules within a date range.

If no dates are specified, lists today's schedules.
If only --start is specified, lists schedules for that single day.
If both --start and --end are specified, lists schedules in that range (inclusive).`,
		Example: `  timegrid list
  timegrid list --start=2025-01-15
  timegrid list --start=2025-01-13 --end=2025-01-19 --copy`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}

			from, to, err := schedule.ParseDateRange(startDate, endDate, time.Local)
			if err != nil {
				return err
			}

			if err := a.ensureRepo(); err != nil {
				return err
			}
			schedules, err := a.repo.ListSchedulesByDateRange(context.Background(), from, to)
			if err != nil {
				return fmt.Errorf("listing schedules: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(schedules) == 0 {
				fmt.Fprintln(out, "No schedules found in the specified date range.")
				return nil
			}

			printSchedules(out, schedules, time.Now(), termWidth())

			if copyOut {
				if err := clipboard.WriteAll(schedulesText(schedules)); err != nil {
					return fmt.Errorf("copying to clipboard: %w", err)
				}
				fmt.Fprintln(out, formatMuted("Copied to clipboard"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD, defaults to start date)")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Copy the listed schedules to the clipboard")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}
