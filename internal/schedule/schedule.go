// Package schedule defines the schedule entity, its time range and the
// keyed in-memory collection the interaction controllers read from.
package schedule

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Validation errors.
var (
	ErrEmptyTitle     = errors.New("title cannot be empty")
	ErrEndBeforeStart = errors.New("end time must be after start time")
)

// Domain errors.
var (
	ErrNotFound    = errors.New("schedule not found")
	ErrDuplicateID = errors.New("schedule id already exists")
	ErrOverlap     = errors.New("schedule overlaps with an existing schedule")
)

// DefaultTitle is used for schedules created by pointer gestures.
const DefaultTitle = "New schedule"

// Range is a closed time interval with Start <= End.
type Range struct {
	Start time.Time
	End   time.Time
}

// NewRange returns a Range, swapping the endpoints if needed.
func NewRange(a, b time.Time) Range {
	if b.Before(a) {
		a, b = b, a
	}
	return Range{Start: a, End: b}
}

// Duration returns End - Start.
func (r Range) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Overlaps reports whether r and o share any instant beyond a touching edge.
func (r Range) Overlaps(o Range) bool {
	return r.Start.Before(o.End) && o.Start.Before(r.End)
}

// Contains reports whether t lies in [Start, End).
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// Schedule is a titled time block on the calendar.
//
// Resizable == true blocks resize interactions. The flag reads inverted but
// callers depend on it; do not flip it without migrating stored rows.
type Schedule struct {
	ID        string
	Title     string
	Start     time.Time
	End       time.Time
	Resizable bool
	CreatedAt time.Time
}

// New creates a validated Schedule with a fresh id.
func New(title string, start, end time.Time) (*Schedule, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if !end.After(start) {
		return nil, ErrEndBeforeStart
	}
	return &Schedule{
		ID:        uuid.NewString(),
		Title:     title,
		Start:     start,
		End:       end,
		CreatedAt: time.Now(),
	}, nil
}

// Range returns the schedule's time range.
func (s *Schedule) Range() Range {
	return Range{Start: s.Start, End: s.End}
}

// Duration returns the schedule length.
func (s *Schedule) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// OverlapsWith reports whether s and other overlap in time.
func (s *Schedule) OverlapsWith(other *Schedule) bool {
	if other == nil {
		return false
	}
	return s.Range().Overlaps(other.Range())
}

// Clone returns a copy of s.
func (s *Schedule) Clone() *Schedule {
	c := *s
	return &c
}
