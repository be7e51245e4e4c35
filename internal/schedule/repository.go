package schedule

import (
	"context"
	"time"
)

// Repository defines the storage interface for schedules.
type Repository interface {
	// CreateSchedule adds a new schedule.
	CreateSchedule(ctx context.Context, s *Schedule) error

	// GetSchedule retrieves a schedule by id.
	// Returns ErrNotFound if it does not exist.
	GetSchedule(ctx context.Context, id string) (*Schedule, error)

	// UpdateSchedule applies a field-level change set to a schedule.
	UpdateSchedule(ctx context.Context, id string, changes Changes) error

	// DeleteSchedule removes a schedule.
	DeleteSchedule(ctx context.Context, id string) error

	// ListSchedulesByDateRange returns the schedules overlapping the days
	// from start through end (inclusive), ordered by start.
	ListSchedulesByDateRange(ctx context.Context, start, end time.Time) ([]*Schedule, error)

	// Close releases any resources held by the repository.
	Close() error
}
