package interaction

import (
	"testing"
	"time"

	"github.com/javiermolinar/timegrid/internal/gridtime"
	"github.com/javiermolinar/timegrid/internal/pointer"
	"github.com/javiermolinar/timegrid/internal/schedule"
	"github.com/javiermolinar/timegrid/internal/timer"
)

// 240 rows of height for a 24 hour grid: y = hour * 10.
const testHeight = 240.0

var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func at(day, h, m int) time.Time {
	return monday.AddDate(0, 0, day).Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func testColumns(n int) Columns {
	return testColumnsWith(n, gridtime.DefaultOptions())
}

func testColumnsWith(n int, opts gridtime.Options) Columns {
	cols := make(Columns, n)
	for i := range cols {
		cols[i] = gridtime.View{
			Index:   i,
			Date:    monday.AddDate(0, 0, i),
			Height:  testHeight,
			Options: opts,
		}
	}
	return cols
}

// quarterHourOptions snaps to 15 minute cells.
func quarterHourOptions() gridtime.Options {
	opts := gridtime.DefaultOptions()
	opts.MinuteCell = 15
	opts.RatioHourGridY = []float64{0, 0.25, 0.5, 0.75}
	return opts
}

func column(day int) pointer.Target {
	return pointer.Target{Kind: pointer.KindDayColumn, Day: day}
}

func topHandle(day int, id string) pointer.Target {
	return pointer.Target{Kind: pointer.KindTopHandle, Day: day, ScheduleID: id}
}

func bottomHandle(day int, id string) pointer.Target {
	return pointer.Target{Kind: pointer.KindBottomHandle, Day: day, ScheduleID: id}
}

type harness struct {
	t        *testing.T
	clock    *timer.Manual
	src      *pointer.Source
	store    *schedule.Collection
	creation *Creation
	resize   *Resize
	events   []Event
}

type harnessOpts struct {
	cfg      Config
	creation []CreationOption
	resize   []ResizeOption
	days     int
	grid     *gridtime.Options
}

func newHarness(t *testing.T, o harnessOpts, schedules ...*schedule.Schedule) *harness {
	t.Helper()
	if o.days == 0 {
		o.days = 2
	}
	if o.cfg == (Config{}) {
		o.cfg = DefaultConfig()
	}
	clock := timer.NewManual(monday.Add(8 * time.Hour))
	src := pointer.NewSource()
	src.Now = clock.Now
	src.DoubleClickWindow = o.cfg.ClickDelay

	grid := testColumns(o.days)
	if o.grid != nil {
		grid = testColumnsWith(o.days, *o.grid)
	}
	store := schedule.NewCollection(schedules...)

	copts := append([]CreationOption{
		WithCreationScheduler(clock),
		WithCreationConfig(o.cfg),
	}, o.creation...)
	creation := NewCreation(grid, copts...)

	ropts := append([]ResizeOption{
		WithResizeScheduler(clock),
		WithRestoreDelay(o.cfg.RestoreDelay),
		WithHandlerSource(src),
	}, o.resize...)
	resize := NewResize(grid, store, ropts...)

	src.Register(creation)
	src.Register(resize)

	h := &harness{t: t, clock: clock, src: src, store: store, creation: creation, resize: resize}
	creation.Bus().Subscribe(func(e Event) { h.events = append(h.events, e) })
	resize.Bus().Subscribe(func(e Event) { h.events = append(h.events, e) })
	return h
}

func (h *harness) kinds() []EventKind {
	out := make([]EventKind, len(h.events))
	for i, e := range h.events {
		out[i] = e.Kind()
	}
	return out
}

func (h *harness) reset() {
	h.events = nil
}

func (h *harness) expectKinds(want ...EventKind) {
	h.t.Helper()
	got := h.kinds()
	if len(got) != len(want) {
		h.t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			h.t.Fatalf("events = %v, want %v", got, want)
		}
	}
}

func (h *harness) count(kind EventKind) int {
	n := 0
	for _, e := range h.events {
		if e.Kind() == kind {
			n++
		}
	}
	return n
}

func findLast[T Event](h *harness) (T, bool) {
	var zero T
	for i := len(h.events) - 1; i >= 0; i-- {
		if v, ok := h.events[i].(T); ok {
			return v, true
		}
	}
	return zero, false
}

// drag presses at from, moves through path and releases at the last point.
func (h *harness) drag(target pointer.Target, from float64, path ...float64) {
	h.src.Press(0, from, target)
	last := from
	for _, y := range path {
		h.src.Move(0, y, target)
		last = y
	}
	h.src.Release(0, last, target)
}

func (h *harness) click(target pointer.Target, y float64) {
	h.src.Press(0, y, target)
	h.src.Release(0, y, target)
}

func sched(id string, start, end time.Time) *schedule.Schedule {
	return &schedule.Schedule{ID: id, Title: id, Start: start, End: end}
}
