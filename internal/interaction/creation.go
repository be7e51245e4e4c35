package interaction

import (
	"time"

	"go.uber.org/zap"

	"github.com/javiermolinar/timegrid/internal/gridtime"
	"github.com/javiermolinar/timegrid/internal/pointer"
	"github.com/javiermolinar/timegrid/internal/schedule"
	"github.com/javiermolinar/timegrid/internal/timer"
)

// MinCreateDuration is added to the later endpoint of a created range, so a
// press and release on one point still yields a half-hour schedule.
const MinCreateDuration = 30 * time.Minute

// PositionCheck is a caller predicate for hover and click previews. It
// returns false to reject the position.
type PositionCheck func(gridtime.Position) (Condition, bool)

// Creation turns gestures on empty grid space into new schedule ranges.
//
// States: idle, hovering (a hover task is pending), dragging (a session is
// open) and pending click (a click task is pending).
type Creation struct {
	grid  Grid
	sched timer.Scheduler
	bus   *Bus
	log   *zap.Logger
	cfg   Config

	checkHover PositionCheck
	checkClick PositionCheck

	sess      *session
	hoverTask timer.Task
	clickTask timer.Task

	requestOnClick  bool
	focusInCalendar bool

	suspended  bool
	savedHover bool
	savedClick bool

	destroyed bool
}

// CreationOption configures a Creation controller.
type CreationOption func(*Creation)

// WithCreationLogger sets the logger.
func WithCreationLogger(log *zap.Logger) CreationOption {
	return func(c *Creation) {
		c.log = log
	}
}

// WithCreationScheduler sets the timer used for hover and click delays. The
// scheduler must run callbacks on the caller's loop. Without one, delayed
// hover and click work never runs.
func WithCreationScheduler(s timer.Scheduler) CreationOption {
	return func(c *Creation) {
		c.sched = s
	}
}

// WithCreationConfig replaces the default switches and delays.
func WithCreationConfig(cfg Config) CreationOption {
	return func(c *Creation) {
		c.cfg = cfg
	}
}

// WithHoverCheck sets the hover predicate.
func WithHoverCheck(fn PositionCheck) CreationOption {
	return func(c *Creation) {
		c.checkHover = fn
	}
}

// WithClickCheck sets the click predicate.
func WithClickCheck(fn PositionCheck) CreationOption {
	return func(c *Creation) {
		c.checkClick = fn
	}
}

// NewCreation returns a Creation controller over grid.
func NewCreation(grid Grid, opts ...CreationOption) *Creation {
	c := &Creation{
		grid:  grid,
		sched: timer.Nop{},
		bus:   NewBus(),
		log:   zap.NewNop(),
		cfg:   DefaultConfig(),

		focusInCalendar: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Bus returns the controller's event bus.
func (c *Creation) Bus() *Bus {
	return c.bus
}

// Dragging reports whether a creation session is open.
func (c *Creation) Dragging() bool {
	return c.sess != nil
}

// GuideFlags returns the current hover and click guide switches.
func (c *Creation) GuideFlags() (hover, click bool) {
	return c.cfg.GuideOnHover, c.cfg.GuideOnClick
}

// OnDragStart opens a session when the press lands on a day column or a
// block wrapper.
func (c *Creation) OnDragStart(g pointer.Gesture) {
	if c.destroyed {
		return
	}
	view, ok := c.dayView(g.Target)
	if !ok {
		return
	}
	c.sess = newSession(view, gridtime.SnapNone, g.Y)
	c.log.Debug("creation session opened",
		zap.Int("day", view.Index),
		zap.Float64("row", c.sess.start.NearestGridY))
	c.bus.Publish(CreationDragStart{GridEvent: c.sess.event(g, c.sess.start)})
}

// OnDrag re-locates the pointer with the session's locator.
func (c *Creation) OnDrag(g pointer.Gesture) {
	if c.destroyed || c.sess == nil {
		return
	}
	pos := c.sess.locator.Locate(g.Y)
	c.bus.Publish(CreationDrag{GridEvent: c.sess.event(g, pos)})
}

// OnDragEnd commits the dragged range. The later endpoint is extended by
// MinCreateDuration and both ends are clamped to the session's day.
func (c *Creation) OnDragEnd(g pointer.Gesture) {
	if c.destroyed || c.sess == nil {
		return
	}
	s := c.sess
	c.sess = nil

	end := s.locator.Locate(g.Y)
	r := schedule.NewRange(s.start.NearestGridTimeY, end.NearestGridTimeY)
	r.End = r.End.Add(MinCreateDuration)

	dayStart := gridtime.StartOfDay(s.view.Date)
	nextDay := gridtime.StartOfNextDay(s.view.Date)
	r.Start = gridtime.ClampTime(r.Start, dayStart, nextDay)
	r.End = gridtime.ClampTime(r.End, dayStart, nextDay)

	c.log.Debug("creation session closed",
		zap.Time("start", r.Start),
		zap.Time("end", r.End))

	c.bus.Publish(BeforeCreateSchedule{
		Start:   r.Start,
		End:     r.End,
		Trigger: pointer.TypeDragEnd,
	})
	c.bus.Publish(CreationDragEnd{
		GridEvent: s.event(g, end),
		Range:     r,
		Grid:      gridtime.DragGridRange(r.Start, r.End, s.view.Options),
	})
}

// OnPointerMove restarts the hover debounce.
func (c *Creation) OnPointerMove(g pointer.Gesture) {
	if c.destroyed {
		return
	}
	c.cancelHover()
	if !c.cfg.GuideOnHover {
		return
	}
	c.hoverTask = c.sched.AfterFunc(c.cfg.HoverDelay, func() {
		c.hoverTask = nil
		c.OnHoverTick(g)
	})
}

// OnHoverTick shows a hover preview when the pointer has rested on a day
// column. It never disturbs an open drag session.
func (c *Creation) OnHoverTick(g pointer.Gesture) {
	if c.destroyed || !c.cfg.GuideOnHover || !c.focusInCalendar || c.sess != nil || c.suspended {
		return
	}
	if g.Target.Kind != pointer.KindDayColumn {
		return
	}
	view, ok := c.grid.Day(g.Target.Day)
	if !ok {
		return
	}
	loc := gridtime.NewLocator(view, gridtime.SnapBottom)
	pos := loc.Locate(g.Y)
	cond, ok := c.check(c.checkHover, pos, view.Options)
	if !ok {
		c.log.Debug("hover rejected", zap.Time("at", pos.NearestGridTimeY))
		return
	}
	c.bus.Publish(CreationHover{
		GridEvent: GridEvent{View: loc.View(), Gesture: g, Position: pos},
		Condition: cond,
	})
}

// OnClick tears down any press-only session and, when the click guide is on,
// schedules a delayed creation that a double click can still cancel.
func (c *Creation) OnClick(g pointer.Gesture) {
	if c.destroyed {
		return
	}
	if c.sess != nil {
		c.sess = nil
		c.bus.Publish(ClearCreationGuide{})
	}
	if !c.cfg.GuideOnClick || c.cfg.DisableClick {
		return
	}
	view, ok := c.dayView(g.Target)
	if !ok {
		return
	}
	loc := gridtime.NewLocator(view, gridtime.SnapBottom)
	pos := loc.Locate(g.Y)
	cond, ok := c.check(c.checkClick, pos, view.Options)
	if !ok {
		c.log.Debug("click rejected", zap.Time("at", pos.NearestGridTimeY))
		return
	}

	c.requestOnClick = true
	c.cancelClick()
	delay := c.cfg.ClickDelay
	if c.cfg.DisableDblClick {
		delay = 0
	}
	ev := GridEvent{View: loc.View(), Gesture: g, Position: pos}
	c.clickTask = c.sched.AfterFunc(delay, func() {
		c.clickTask = nil
		if !c.requestOnClick {
			return
		}
		c.requestOnClick = false
		c.emitClick(ev, cond, pointer.TypeClick)
	})
}

// OnDoubleClick cancels a pending click and creates at the pointer.
func (c *Creation) OnDoubleClick(g pointer.Gesture) {
	if c.destroyed || c.cfg.DisableDblClick {
		return
	}
	if g.Target.Kind != pointer.KindDayColumn {
		return
	}
	view, ok := c.grid.Day(g.Target.Day)
	if !ok {
		return
	}
	c.cancelClick()
	c.requestOnClick = false

	loc := gridtime.NewLocator(view, gridtime.SnapNone)
	pos := loc.Locate(g.Y)
	cond := defaultCondition(pos, view.Options)
	c.emitClick(GridEvent{View: loc.View(), Gesture: g, Position: pos}, cond, pointer.TypeDoubleClick)
}

// OnMouseEnter marks the pointer as inside the grid.
func (c *Creation) OnMouseEnter() {
	c.focusInCalendar = true
}

// OnMouseLeave drops the session and any pending hover and clears the guide.
func (c *Creation) OnMouseLeave() {
	if c.destroyed {
		return
	}
	c.focusInCalendar = false
	c.cancelHover()
	c.sess = nil
	c.bus.Publish(ClearCreationGuide{})
}

// Suspend hides the guide and disables the hover and click guides until
// Resume.
func (c *Creation) Suspend() {
	if c.destroyed || c.suspended {
		return
	}
	c.suspended = true
	c.bus.Publish(ClearCreationGuide{})
	c.savedHover, c.savedClick = c.cfg.GuideOnHover, c.cfg.GuideOnClick
	c.cfg.GuideOnHover, c.cfg.GuideOnClick = false, false
	c.cancelHover()
	c.log.Debug("creation guides suspended")
}

// Resume restores the guide switches saved by Suspend.
func (c *Creation) Resume() {
	if !c.suspended {
		return
	}
	c.suspended = false
	c.cfg.GuideOnHover, c.cfg.GuideOnClick = c.savedHover, c.savedClick
	c.log.Debug("creation guides resumed")
}

// Suspended reports whether guides are suspended.
func (c *Creation) Suspended() bool {
	return c.suspended
}

// InvokeCreationClick synthesizes a click for an existing range, as if the
// user had clicked the day it starts on.
func (c *Creation) InvokeCreationClick(s *schedule.Schedule) {
	if c.destroyed || s == nil {
		return
	}
	days := c.grid.Days()
	if len(days) == 0 {
		return
	}
	view := days[0]
	for _, d := range days {
		if gridtime.DaysBetween(d.Date, s.Start) == 0 {
			view = d
			break
		}
	}
	loc := gridtime.NewLocator(view, gridtime.SnapNone)
	opts := view.Options
	row := opts.TimeToRow(s.Start)
	pos := gridtime.Position{
		GridY:            row,
		TimeY:            s.Start,
		NearestGridY:     row,
		NearestGridTimeY: s.Start,
	}
	if span := opts.HourSpan(); span > 0 {
		pos.MouseY = row / float64(span) * view.Height
	}
	g := pointer.Gesture{
		Type:   pointer.TypeManual,
		Target: pointer.Target{Kind: pointer.KindDayColumn, Day: view.Index},
		Y:      pos.MouseY,
	}
	cond := Condition{EndTime: s.End, Delta: s.End.Sub(s.Start)}
	c.emitClick(GridEvent{View: loc.View(), Gesture: g, Position: pos}, cond, pointer.TypeManual)
}

// Destroy cancels pending work, drops the session and closes the bus.
func (c *Creation) Destroy() {
	c.cancelHover()
	c.cancelClick()
	c.sess = nil
	c.requestOnClick = false
	c.destroyed = true
	c.bus.Close()
}

func (c *Creation) emitClick(ev GridEvent, cond Condition, trigger pointer.Type) {
	c.bus.Publish(CreationClick{GridEvent: ev, Condition: cond})
	c.bus.Publish(BeforeCreateSchedule{
		Start:   ev.NearestGridTimeY,
		End:     cond.EndTime,
		Trigger: trigger,
	})
}

// dayView resolves a day column or block wrapper to its view.
func (c *Creation) dayView(t pointer.Target) (gridtime.View, bool) {
	if t.Kind == pointer.KindBlockWrap {
		t = t.Parent()
	}
	if t.Kind != pointer.KindDayColumn {
		return gridtime.View{}, false
	}
	return c.grid.Day(t.Day)
}

func (c *Creation) check(fn PositionCheck, pos gridtime.Position, opts gridtime.Options) (Condition, bool) {
	if fn == nil {
		return defaultCondition(pos, opts), true
	}
	cond, ok := fn(pos)
	if !ok {
		return Condition{}, false
	}
	if cond.EndTime.IsZero() {
		cond.EndTime = pos.NearestGridTimeY.Add(opts.CellDuration())
	}
	if cond.Delta == 0 {
		cond.Delta = cond.EndTime.Sub(pos.NearestGridTimeY)
	}
	return cond, true
}

func defaultCondition(pos gridtime.Position, opts gridtime.Options) Condition {
	d := opts.CellDuration()
	return Condition{EndTime: pos.NearestGridTimeY.Add(d), Delta: d}
}

func (c *Creation) cancelHover() {
	if c.hoverTask != nil {
		c.hoverTask.Cancel()
		c.hoverTask = nil
	}
}

func (c *Creation) cancelClick() {
	if c.clickTask != nil {
		c.clickTask.Cancel()
		c.clickTask = nil
	}
}
