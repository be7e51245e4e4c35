// Package interaction implements the pointer-driven creation and resize
// controllers for the time grid. Controllers consume pointer gestures,
// compute grid positions with gridtime and publish events on their Bus.
//
// Controllers are single-threaded: every method, including timer callbacks,
// must run on the same loop.
package interaction

import (
	"time"

	"github.com/javiermolinar/timegrid/internal/gridtime"
	"github.com/javiermolinar/timegrid/internal/pointer"
	"github.com/javiermolinar/timegrid/internal/schedule"
)

// Grid resolves rendered day columns by index.
type Grid interface {
	Day(index int) (gridtime.View, bool)
	Days() []gridtime.View
}

// Columns is a Grid backed by a slice; Day(i) is the i-th element.
type Columns []gridtime.View

// Day returns the view at index.
func (c Columns) Day(index int) (gridtime.View, bool) {
	if index < 0 || index >= len(c) {
		return gridtime.View{}, false
	}
	return c[index], true
}

// Days returns all views.
func (c Columns) Days() []gridtime.View {
	return c
}

// Store is the read side of the schedule collection.
type Store interface {
	Get(id string) (*schedule.Schedule, bool)
}

// GuideSuppressor hides and disables a controller's guides while another
// interaction owns the pointer. Suspend is idempotent; Resume restores the
// state saved by the first Suspend.
type GuideSuppressor interface {
	Suspend()
	Resume()
}

// HandlerSource exposes the contexts registered on a pointer source so a
// controller can discover its collaborators.
type HandlerSource interface {
	Handlers() []any
}

// Config holds the interaction switches and delays.
type Config struct {
	DisableDblClick bool
	DisableClick    bool
	GuideOnHover    bool
	GuideOnClick    bool
	HoverDelay      time.Duration
	ClickDelay      time.Duration
	RestoreDelay    time.Duration
}

// Default delays.
const (
	DefaultHoverDelay   = 2000 * time.Millisecond
	DefaultClickDelay   = 300 * time.Millisecond
	DefaultRestoreDelay = 100 * time.Millisecond
)

// DefaultConfig enables the hover guide with the default delays.
func DefaultConfig() Config {
	return Config{
		GuideOnHover: true,
		HoverDelay:   DefaultHoverDelay,
		ClickDelay:   DefaultClickDelay,
		RestoreDelay: DefaultRestoreDelay,
	}
}

// session is the state captured at drag start and threaded through the
// drag. The locator is frozen for the session's lifetime.
type session struct {
	locator  gridtime.Locator
	view     gridtime.View
	start    gridtime.Position
	dayRange gridtime.GridRange
}

func newSession(view gridtime.View, mode gridtime.SnapMode, pointerY float64) *session {
	loc := gridtime.NewLocator(view, mode)
	v := loc.View()
	return &session{
		locator:  loc,
		view:     v,
		start:    loc.Locate(pointerY),
		dayRange: gridtime.RangeForDay(v.Date, v.Options),
	}
}

func (s *session) event(g pointer.Gesture, pos gridtime.Position) GridEvent {
	return GridEvent{View: s.view, Gesture: g, Position: pos}
}

// resizeSession extends session with the target schedule and the clamp
// state of a resize drag. Rows are measured from the schedule's start day
// so multi-day schedules clamp on one continuous axis.
type resizeSession struct {
	*session
	scheduleID string
	direction  Direction
	original   schedule.Range

	anchor      time.Time // Start of the schedule's first day
	viewOffset  float64   // Rows from the anchor day to the handle's view
	startRow    float64
	endRow      float64
	bottomLimit float64

	lastRow  float64
	hasLast  bool
	stopped  *float64
	frozen   bool
	override *time.Time
}

// clamp limits row to the direction's window and reports whether it moved.
func (r *resizeSession) clamp(row float64) (float64, bool) {
	cell := r.view.Options.CellHours()
	lo, hi := 0.0, r.endRow-cell
	if r.direction == DirectionBottom {
		lo, hi = r.startRow+cell, r.bottomLimit
	}
	switch {
	case row < lo:
		return lo, true
	case row > hi:
		return hi, true
	default:
		return row, false
	}
}

// rowTime converts an anchor row back to a timestamp via the frozen locator.
func (r *resizeSession) rowTime(row float64) time.Time {
	return r.locator.RowTime(row - r.viewOffset)
}

// timeRow converts t to an anchor row.
func (r *resizeSession) timeRow(t time.Time) float64 {
	opts := r.view.Options
	return opts.TimeToRow(t) + float64(gridtime.HoursPerDay*gridtime.DaysBetween(r.anchor, t))
}

// preview returns the schedule range with the moving edge at t.
func (r *resizeSession) preview(t time.Time) schedule.Range {
	if r.direction == DirectionTop {
		return schedule.Range{Start: t, End: r.original.End}
	}
	return schedule.Range{Start: r.original.Start, End: t}
}
