package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/timegrid/internal/db"
	"github.com/javiermolinar/timegrid/internal/schedule"
)

// importResult counts what importSchedules did.
type importResult struct {
	Imported int
	Skipped  int
}

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [database_path]",
		Short: "Import schedules from another database",
		Long: `Import all schedules from another timegrid database into the current one.

Schedules that already exist or overlap an existing schedule are skipped.

Example:
  timegrid import /path/to/other.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			sourcePath, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			destPath, err := resolvePath(a.config.Storage.DBPath)
			if err != nil {
				return err
			}

			if sourcePath == destPath {
				return fmt.Errorf("source database matches current database")
			}

			info, err := os.Stat(sourcePath)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("source database does not exist: %s", sourcePath)
				}
				return fmt.Errorf("checking source database: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("source database path is a directory: %s", sourcePath)
			}

			res, err := importSchedules(context.Background(), a.repo, sourcePath, a.log)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d schedules from %s (%d skipped)\n", res.Imported, sourcePath, res.Skipped)
			return nil
		},
	}

	return cmd
}

// importSchedules copies every schedule of the database at sourcePath into
// dest, keeping ids. Duplicates and overlapping schedules are skipped.
func importSchedules(ctx context.Context, dest schedule.Repository, sourcePath string, log *zap.Logger) (importResult, error) {
	var res importResult

	sourceRepo, err := db.New(sourcePath)
	if err != nil {
		return res, fmt.Errorf("opening source database: %w", err)
	}
	defer func() { _ = sourceRepo.Close() }()

	schedules, err := sourceRepo.ListAllSchedules(ctx)
	if err != nil {
		return res, fmt.Errorf("listing source schedules: %w", err)
	}

	for _, s := range schedules {
		if _, err := dest.GetSchedule(ctx, s.ID); err == nil {
			log.Debug("import skipped duplicate", zap.String("id", s.ID))
			res.Skipped++
			continue
		} else if !errors.Is(err, schedule.ErrNotFound) {
			return res, fmt.Errorf("checking schedule %q: %w", s.Title, err)
		}

		err := dest.CreateSchedule(ctx, s)
		switch {
		case errors.Is(err, schedule.ErrOverlap):
			log.Debug("import skipped overlap", zap.String("id", s.ID), zap.Time("start", s.Start))
			res.Skipped++
		case err != nil:
			return res, fmt.Errorf("importing schedule %q: %w", s.Title, err)
		default:
			res.Imported++
		}
	}

	return res, nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
