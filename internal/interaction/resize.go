package interaction

import (
	"time"

	"go.uber.org/zap"

	"github.com/javiermolinar/timegrid/internal/gridtime"
	"github.com/javiermolinar/timegrid/internal/pointer"
	"github.com/javiermolinar/timegrid/internal/schedule"
	"github.com/javiermolinar/timegrid/internal/timer"
)

type verdictKind int

const (
	verdictAllow verdictKind = iota
	verdictFreeze
	verdictOverride
)

// ResizeVerdict is the answer of a resize predicate for one drag tick.
type ResizeVerdict struct {
	kind    verdictKind
	minutes int
}

var (
	// Allow keeps the clamped position.
	Allow = ResizeVerdict{kind: verdictAllow}
	// Freeze pins the edge at its original position. A drag that ends
	// frozen commits nothing.
	Freeze = ResizeVerdict{kind: verdictFreeze}
)

// OverrideMinutes places the moving edge at the schedule's start plus n
// minutes, ignoring the geometric clamp.
func OverrideMinutes(n int) ResizeVerdict {
	return ResizeVerdict{kind: verdictOverride, minutes: n}
}

// ResizeCheck is the input of a resize predicate.
type ResizeCheck struct {
	Schedule  *schedule.Schedule
	Direction Direction
	Position  gridtime.Position
	Proposed  schedule.Range
}

// ResizeCheckFunc vets or overrides each resize tick.
type ResizeCheckFunc func(ResizeCheck) ResizeVerdict

// Resize turns drags on a schedule's edge handles into new start or end
// times.
type Resize struct {
	grid  Grid
	store Store
	sched timer.Scheduler
	bus   *Bus
	log   *zap.Logger

	check        ResizeCheckFunc
	restoreDelay time.Duration

	suppressor GuideSuppressor
	handlers   HandlerSource

	sess        *resizeSession
	suspended   GuideSuppressor
	restoreTask timer.Task
	destroyed   bool
}

// ResizeOption configures a Resize controller.
type ResizeOption func(*Resize)

// WithResizeLogger sets the logger.
func WithResizeLogger(log *zap.Logger) ResizeOption {
	return func(r *Resize) {
		r.log = log
	}
}

// WithResizeScheduler sets the timer used to restore suppressed guides. The
// scheduler must run callbacks on the caller's loop. Without one, suppressed
// guides come back only on Destroy.
func WithResizeScheduler(s timer.Scheduler) ResizeOption {
	return func(r *Resize) {
		r.sched = s
	}
}

// WithResizeCheck sets the per-tick predicate.
func WithResizeCheck(fn ResizeCheckFunc) ResizeOption {
	return func(r *Resize) {
		r.check = fn
	}
}

// WithRestoreDelay sets how long after a resize the suppressed guides come
// back.
func WithRestoreDelay(d time.Duration) ResizeOption {
	return func(r *Resize) {
		r.restoreDelay = d
	}
}

// WithGuideSuppressor sets the controller whose guides are suspended during
// a resize.
func WithGuideSuppressor(s GuideSuppressor) ResizeOption {
	return func(r *Resize) {
		r.suppressor = s
	}
}

// WithHandlerSource lets the controller discover a GuideSuppressor among
// the contexts registered on the pointer source.
func WithHandlerSource(src HandlerSource) ResizeOption {
	return func(r *Resize) {
		r.handlers = src
	}
}

// NewResize returns a Resize controller over grid reading schedules from store.
func NewResize(grid Grid, store Store, opts ...ResizeOption) *Resize {
	r := &Resize{
		grid:         grid,
		store:        store,
		sched:        timer.Nop{},
		bus:          NewBus(),
		log:          zap.NewNop(),
		restoreDelay: DefaultRestoreDelay,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Bus returns the controller's event bus.
func (r *Resize) Bus() *Bus {
	return r.bus
}

// Resizing reports whether a resize session is open.
func (r *Resize) Resizing() bool {
	return r.sess != nil
}

// CheckHandle returns the day view of a resize handle nested in a schedule
// block.
func (r *Resize) CheckHandle(t pointer.Target) (gridtime.View, bool) {
	if !t.IsHandle() || t.ScheduleID == "" {
		return gridtime.View{}, false
	}
	return r.grid.Day(t.Day)
}

// OnDragStart opens a resize session on a handle.
func (r *Resize) OnDragStart(g pointer.Gesture) {
	if r.destroyed {
		return
	}
	view, ok := r.CheckHandle(g.Target)
	if !ok {
		return
	}
	s, ok := r.store.Get(g.Target.ScheduleID)
	if !ok {
		r.log.Debug("resize target missing", zap.String("id", g.Target.ScheduleID))
		return
	}
	if s.Resizable {
		r.log.Debug("resize blocked by resizable flag", zap.String("id", s.ID))
		return
	}

	dir, mode := DirectionBottom, gridtime.SnapBottom
	if g.Target.Kind == pointer.KindTopHandle {
		dir, mode = DirectionTop, gridtime.SnapTop
	}

	base := newSession(view, mode, g.Y)
	opts := base.view.Options
	anchor := gridtime.StartOfDay(s.Start)
	rs := &resizeSession{
		session:    base,
		scheduleID: s.ID,
		direction:  dir,
		original:   s.Range(),
		anchor:     anchor,
		viewOffset: float64(gridtime.HoursPerDay * gridtime.DaysBetween(anchor, base.view.Date)),
	}
	rs.dayRange = gridtime.RangeForDay(s.Start, opts)
	rs.startRow = rs.timeRow(s.Start)
	rs.endRow = rs.timeRow(s.End)
	rs.bottomLimit = float64(opts.HourSpan() + gridtime.HoursPerDay*daysSpanned(s))
	rs.lastRow, rs.hasLast = rs.start.NearestGridY+rs.viewOffset, true
	r.sess = rs

	r.suspendGuides()
	r.log.Debug("resize session opened",
		zap.String("id", s.ID),
		zap.Stringer("direction", dir),
		zap.Float64("start_row", rs.startRow),
		zap.Float64("end_row", rs.endRow))

	r.bus.Publish(ResizeDragStart{
		GridEvent:  rs.event(g, rs.start),
		ScheduleID: s.ID,
		Direction:  dir,
		Preview:    rs.original,
	})
}

// OnDrag moves the handle. Ticks that land on the previous row are dropped.
func (r *Resize) OnDrag(g pointer.Gesture) {
	if r.destroyed || r.sess == nil {
		return
	}
	rs := r.sess
	pos := rs.locator.Locate(g.Y)
	row := pos.NearestGridY + rs.viewOffset
	if rs.hasLast && row == rs.lastRow {
		return
	}
	rs.lastRow, rs.hasLast = row, true

	clamped, stopped := rs.clamp(row)
	if stopped {
		v := clamped
		rs.stopped = &v
		r.log.Debug("resize clamped", zap.Float64("row", row), zap.Float64("clamped", clamped))
	} else {
		rs.stopped = nil
	}
	at := rs.rowTime(clamped)

	rs.frozen = false
	rs.override = nil
	if r.check != nil {
		s, ok := r.store.Get(rs.scheduleID)
		if ok {
			verdict := r.check(ResizeCheck{
				Schedule:  s.Clone(),
				Direction: rs.direction,
				Position:  pos,
				Proposed:  rs.preview(at),
			})
			if verdict.kind == verdictOverride {
				t := rs.original.Start.Add(time.Duration(verdict.minutes) * time.Minute)
				if p := rs.preview(t); p.End.After(p.Start) {
					rs.override = &t
					clamped, at = rs.timeRow(t), t
					r.log.Debug("resize overridden by check", zap.Int("minutes", verdict.minutes))
				} else {
					// An override that empties or inverts the range moves nothing.
					verdict = Freeze
				}
			}
			if verdict.kind == verdictFreeze {
				rs.frozen = true
				if rs.direction == DirectionTop {
					clamped, at = rs.startRow, rs.original.Start
				} else {
					clamped, at = rs.endRow, rs.original.End
				}
				r.log.Debug("resize frozen by check", zap.String("id", rs.scheduleID))
			}
		}
	}

	r.bus.Publish(ResizeDrag{
		GridEvent:  rs.event(g, rs.locator.PositionAt(pos, clamped-rs.viewOffset)),
		ScheduleID: rs.scheduleID,
		Direction:  rs.direction,
		Preview:    rs.preview(at),
	})
}

// OnDragEnd commits the resize and schedules the guides' restoration.
func (r *Resize) OnDragEnd(g pointer.Gesture) {
	if r.destroyed {
		return
	}
	r.scheduleRestore()
	if r.sess == nil {
		return
	}
	rs := r.sess
	r.sess = nil

	pos := rs.locator.Locate(g.Y)
	var newTime *schedule.Range
	switch {
	case rs.frozen:
	case rs.override != nil:
		nt := rs.preview(*rs.override)
		newTime = &nt
	case rs.stopped != nil:
		nt := rs.preview(rs.rowTime(*rs.stopped))
		newTime = &nt
	default:
		row, _ := rs.clamp(pos.NearestGridY + rs.viewOffset)
		nt := rs.preview(rs.rowTime(row))
		newTime = &nt
	}

	if cur, ok := r.store.Get(rs.scheduleID); ok && newTime != nil {
		changes := schedule.Diff(cur, *newTime)
		if !changes.Empty() {
			r.bus.Publish(BeforeUpdateSchedule{
				Schedule: cur.Clone(),
				Changes:  changes,
				Type:     UpdateTypeResize,
			})
		}
	}

	r.log.Debug("resize session closed", zap.String("id", rs.scheduleID), zap.Bool("committed", newTime != nil))
	r.bus.Publish(ResizeDragEnd{
		GridEvent: rs.event(g, pos),
		TargetID:  rs.scheduleID,
		NewTime:   newTime,
	})
}

// OnClick drops a session opened by a press that never moved.
func (r *Resize) OnClick(g pointer.Gesture) {
	if r.destroyed || r.sess == nil {
		return
	}
	rs := r.sess
	r.sess = nil
	r.scheduleRestore()
	r.bus.Publish(ResizeClick{
		GridEvent: rs.event(g, rs.start),
		TargetID:  rs.scheduleID,
	})
}

// Destroy cancels pending work, resumes suppressed guides and closes the bus.
func (r *Resize) Destroy() {
	if r.restoreTask != nil {
		r.restoreTask.Cancel()
		r.restoreTask = nil
	}
	if r.suspended != nil {
		r.suspended.Resume()
		r.suspended = nil
	}
	r.sess = nil
	r.destroyed = true
	r.bus.Close()
}

func (r *Resize) suspendGuides() {
	sup := r.findSuppressor()
	if sup == nil {
		return
	}
	if r.restoreTask != nil {
		r.restoreTask.Cancel()
		r.restoreTask = nil
	}
	sup.Suspend()
	r.suspended = sup
}

func (r *Resize) findSuppressor() GuideSuppressor {
	if r.suppressor != nil {
		return r.suppressor
	}
	if r.handlers == nil {
		return nil
	}
	for _, h := range r.handlers.Handlers() {
		if h == any(r) {
			continue
		}
		if s, ok := h.(GuideSuppressor); ok {
			return s
		}
	}
	return nil
}

func (r *Resize) scheduleRestore() {
	sup := r.suspended
	if sup == nil {
		return
	}
	if r.restoreTask != nil {
		r.restoreTask.Cancel()
	}
	r.restoreTask = r.sched.AfterFunc(r.restoreDelay, func() {
		r.restoreTask = nil
		if r.suspended == sup {
			r.suspended = nil
		}
		sup.Resume()
	})
}

// daysSpanned counts the day boundaries between a schedule's start and its
// last instant. A schedule ending exactly at midnight stays on its first day.
func daysSpanned(s *schedule.Schedule) int {
	last := s.End
	if last.After(s.Start) {
		last = last.Add(-time.Nanosecond)
	}
	if n := gridtime.DaysBetween(s.Start, last); n > 0 {
		return n
	}
	return 0
}
