package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS schedules (
			id         TEXT PRIMARY KEY,
			title      TEXT NOT NULL,
			start_at   TEXT NOT NULL,
			end_at     TEXT NOT NULL,
			resizable  INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			CHECK (end_at > start_at)
		);

		CREATE INDEX IF NOT EXISTS idx_schedules_start ON schedules(start_at);
		CREATE INDEX IF NOT EXISTS idx_schedules_end ON schedules(end_at);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating schedules table: %w", err)
	}

	return nil
}
