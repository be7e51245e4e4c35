// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/timegrid/internal/schedule"
)

// Timestamps are stored as fixed-width UTC text so string comparison orders
// them chronologically.
const timeLayout = "2006-01-02T15:04:05Z"

// SQLite implements schedule.Repository using SQLite.
type SQLite struct {
	db  *sql.DB
	loc *time.Location
}

// New creates a new SQLite repository and runs migrations. Times read back
// are converted to the local time zone.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db, loc: time.Local}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// CreateSchedule adds a new schedule.
// Returns schedule.ErrOverlap if it overlaps an existing schedule.
func (s *SQLite) CreateSchedule(ctx context.Context, sc *schedule.Schedule) error {
	if !sc.End.After(sc.Start) {
		return schedule.ErrEndBeforeStart
	}
	if err := s.checkOverlap(ctx, sc.Range(), sc.ID); err != nil {
		return err
	}

	createdAt := sc.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO schedules (id, title, start_at, end_at, resizable, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		sc.ID,
		sc.Title,
		formatTime(sc.Start),
		formatTime(sc.End),
		sc.Resizable,
		formatTime(createdAt),
	)
	if err != nil {
		return fmt.Errorf("inserting schedule: %w", err)
	}
	return nil
}

// GetSchedule retrieves a schedule by id.
func (s *SQLite) GetSchedule(ctx context.Context, id string) (*schedule.Schedule, error) {
	query := `
		SELECT id, title, start_at, end_at, resizable, created_at
		FROM schedules
		WHERE id = ?
	`
	sc, err := s.scan(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("schedule %s: %w", id, schedule.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying schedule: %w", err)
	}
	return sc, nil
}

// UpdateSchedule applies changes to a stored schedule.
// Returns schedule.ErrOverlap if the new range conflicts with another schedule.
func (s *SQLite) UpdateSchedule(ctx context.Context, id string, changes schedule.Changes) error {
	if changes.Empty() {
		return nil
	}
	cur, err := s.GetSchedule(ctx, id)
	if err != nil {
		return fmt.Errorf("getting schedule: %w", err)
	}
	updated, err := changes.Apply(cur)
	if err != nil {
		return err
	}
	if err := s.checkOverlap(ctx, updated.Range(), id); err != nil {
		return err
	}

	query := `UPDATE schedules SET start_at = ?, end_at = ? WHERE id = ?`
	if _, err := s.db.ExecContext(ctx, query, formatTime(updated.Start), formatTime(updated.End), id); err != nil {
		return fmt.Errorf("updating schedule times: %w", err)
	}
	return nil
}

// DeleteSchedule removes a schedule.
func (s *SQLite) DeleteSchedule(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting schedule: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("schedule %s: %w", id, schedule.ErrNotFound)
	}
	return nil
}

// ListSchedulesByDateRange returns the schedules overlapping the days from
// start through end (inclusive), ordered by start.
func (s *SQLite) ListSchedulesByDateRange(ctx context.Context, start, end time.Time) ([]*schedule.Schedule, error) {
	from := schedule.TruncateToDay(start)
	to := schedule.TruncateToDay(end).AddDate(0, 0, 1)

	query := `
		SELECT id, title, start_at, end_at, resizable, created_at
		FROM schedules
		WHERE start_at < ? AND end_at > ?
		ORDER BY start_at, id
	`
	return s.query(ctx, query, formatTime(to), formatTime(from))
}

// ListAllSchedules returns every stored schedule ordered by start.
func (s *SQLite) ListAllSchedules(ctx context.Context) ([]*schedule.Schedule, error) {
	return s.query(ctx, `
		SELECT id, title, start_at, end_at, resizable, created_at
		FROM schedules
		ORDER BY start_at, id
	`)
}

func (s *SQLite) query(ctx context.Context, query string, args ...any) ([]*schedule.Schedule, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying schedules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*schedule.Schedule
	for rows.Next() {
		sc, err := s.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning schedule: %w", err)
		}
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating schedules: %w", err)
	}
	return out, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func (s *SQLite) scan(row scanner) (*schedule.Schedule, error) {
	var sc schedule.Schedule
	var startAt, endAt, created string
	if err := row.Scan(&sc.ID, &sc.Title, &startAt, &endAt, &sc.Resizable, &created); err != nil {
		return nil, err
	}

	var err error
	if sc.Start, err = s.parseTime(startAt); err != nil {
		return nil, fmt.Errorf("parsing start: %w", err)
	}
	if sc.End, err = s.parseTime(endAt); err != nil {
		return nil, fmt.Errorf("parsing end: %w", err)
	}
	if sc.CreatedAt, err = s.parseTime(created); err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}
	return &sc, nil
}

// checkOverlap returns schedule.ErrOverlap if r overlaps a stored schedule
// other than excludeID. Two ranges overlap if start1 < end2 AND start2 < end1.
func (s *SQLite) checkOverlap(ctx context.Context, r schedule.Range, excludeID string) error {
	query := `
		SELECT id, title, start_at, end_at
		FROM schedules
		WHERE id != ?
		  AND start_at < ?
		  AND end_at > ?
		LIMIT 1
	`

	var id, title, existStart, existEnd string
	err := s.db.QueryRowContext(ctx, query,
		excludeID,
		formatTime(r.End),
		formatTime(r.Start),
	).Scan(&id, &title, &existStart, &existEnd)

	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking overlap: %w", err)
	}

	return fmt.Errorf("%w: conflicts with %q (%s - %s)", schedule.ErrOverlap, title, existStart, existEnd)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func (s *SQLite) parseTime(v string) (time.Time, error) {
	t, err := time.Parse(timeLayout, v)
	if err != nil {
		// Some drivers hand back RFC3339 with an offset.
		t, err = time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, fmt.Errorf("unrecognized time format: %s", v)
		}
	}
	return t.In(s.loc), nil
}
