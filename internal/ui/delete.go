package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timegrid/internal/schedule"
)

func (a *App) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [schedule-id]",
		Short: "Delete a schedule",
		Long: `Delete a schedule by its ID.

Example:
  timegrid delete 3f2a9c1e-5b7d-4e8f-9a0b-1c2d3e4f5a6b`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			id := strings.TrimSpace(args[0])
			ctx := context.Background()
			s, err := a.repo.GetSchedule(ctx, id)
			if err != nil {
				return fmt.Errorf("finding schedule: %w", err)
			}
			if err := a.repo.DeleteSchedule(ctx, id); err != nil {
				return fmt.Errorf("deleting schedule: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted schedule %s: %s %s %s\n",
				shortID(s.ID), s.Title, schedule.FormatDate(s.Start), clockRange(s))
			return nil
		},
	}
}
