// Package ui provides the timegrid command line interface.
package ui

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/timegrid/internal/config"
	"github.com/javiermolinar/timegrid/internal/logging"
	"github.com/javiermolinar/timegrid/internal/schedule"
	"github.com/javiermolinar/timegrid/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo   schedule.Repository
	config *config.Config
	log    *zap.Logger
	root   *cobra.Command
	debug  bool // Enable debug logging
}

// NewApp creates a new CLI application. A nil repo is opened lazily from
// the configured database path.
func NewApp(repo schedule.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg, log: zap.NewNop()}

	a.root = &cobra.Command{
		Use:   "timegrid",
		Short: "A mouse-driven weekly time grid",
		Long: `Timegrid is a terminal calendar grid.

Drag on an empty column to create a schedule, double click for a single
cell, and drag a block's first or last line to resize it.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.setupLogger()
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runTUI()
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (writes "+logging.DebugLogPath+")")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.runCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.deleteCmd())
	a.root.AddCommand(a.importCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "timegrid %s (commit: %s)\n", Version, Commit)
		},
	}
}

func (a *App) runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open the time grid (default)",
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runTUI()
		},
	}
}

func (a *App) runTUI() error {
	if err := a.ensureRepo(); err != nil {
		return err
	}
	return tui.Run(a.repo, a.config, a.log)
}

// setupLogger builds the logger from the config, switching to the debug
// log file when --debug is set.
func (a *App) setupLogger() error {
	cfg := a.config.Log
	if a.debug {
		cfg = logging.Debug(cfg)
	}
	log, err := logging.New(cfg)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	a.log = log
	return nil
}

// ensureRepo opens the configured database unless a repository was given.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	repo, err := tui.OpenRepo(a.config.Storage.DBPath)
	if err != nil {
		return err
	}
	a.repo = repo
	a.log.Debug("database opened", zap.String("path", a.config.Storage.DBPath))
	return nil
}

// SetArgs overrides the command line arguments, for tests.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the repository and flushes the logger.
func (a *App) Close() error {
	_ = a.log.Sync()
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}
