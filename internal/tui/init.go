package tui

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/timegrid/internal/config"
	"github.com/javiermolinar/timegrid/internal/db"
	"github.com/javiermolinar/timegrid/internal/schedule"
)

// OpenRepo opens the SQLite repository at dbPath, creating its directory.
func OpenRepo(dbPath string) (schedule.Repository, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}
	return repo, nil
}

// Run starts the TUI. The caller owns repo and closes it.
func Run(repo schedule.Repository, cfg *config.Config, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	model := New(repo, cfg, WithLogger(log))
	defer model.Close()

	log.Debug("tui start",
		zap.Time("range_start", model.eng.layout.Start()),
		zap.Int("days", model.eng.layout.DayCount()))

	p := tea.NewProgram(*model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	log.Debug("tui exit")
	return nil
}
