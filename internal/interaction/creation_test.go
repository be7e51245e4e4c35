package interaction

import (
	"testing"
	"time"

	"github.com/javiermolinar/timegrid/internal/gridtime"
	"github.com/javiermolinar/timegrid/internal/pointer"
	"github.com/javiermolinar/timegrid/internal/timer"
)

func clickConfig() Config {
	cfg := DefaultConfig()
	cfg.GuideOnHover = false
	cfg.GuideOnClick = true
	return cfg
}

func TestCreation_DragCreatesRange(t *testing.T) {
	tests := []struct {
		name      string
		from      float64
		path      []float64
		wantStart time.Time
		wantEnd   time.Time
	}{
		{"downward drag", 90, []float64{100, 105}, at(0, 9, 0), at(0, 11, 0)},
		{"single point extends half an hour", 90, []float64{91}, at(0, 9, 0), at(0, 9, 30)},
		{"upward drag is sorted", 150, []float64{120, 100}, at(0, 10, 0), at(0, 15, 30)},
		{"past midnight clamps to next day start", 230, []float64{260}, at(0, 23, 0), at(1, 0, 0)},
		{"above the grid clamps to day start", 20, []float64{-30}, at(0, 0, 0), at(0, 2, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, harnessOpts{})
			h.drag(column(0), tt.from, tt.path...)

			if h.count(KindCreationDrag) != len(tt.path) {
				t.Errorf("drag events = %d, want %d", h.count(KindCreationDrag), len(tt.path))
			}
			create, ok := findLast[BeforeCreateSchedule](h)
			if !ok {
				t.Fatalf("no BeforeCreateSchedule in %v", h.kinds())
			}
			if !create.Start.Equal(tt.wantStart) || !create.End.Equal(tt.wantEnd) {
				t.Errorf("range = [%v, %v], want [%v, %v]", create.Start, create.End, tt.wantStart, tt.wantEnd)
			}
			if create.IsAllDay || create.Trigger != pointer.TypeDragEnd {
				t.Errorf("unexpected create payload %+v", create)
			}
			if create.End.Before(create.Start) {
				t.Error("start must not be after end")
			}

			kinds := h.kinds()
			if kinds[0] != KindCreationDragStart || kinds[len(kinds)-1] != KindCreationDragEnd {
				t.Errorf("events = %v", kinds)
			}
			if h.creation.Dragging() {
				t.Error("session should be closed")
			}
		})
	}
}

func TestCreation_DragEndGridRange(t *testing.T) {
	h := newHarness(t, harnessOpts{})
	h.drag(column(0), 230, 260)

	end, ok := findLast[CreationDragEnd](h)
	if !ok {
		t.Fatal("no CreationDragEnd")
	}
	if end.Grid.NearestGridY != 23 || end.Grid.NearestGridEndY != 24 {
		t.Errorf("grid rows = %v..%v, want 23..24", end.Grid.NearestGridY, end.Grid.NearestGridEndY)
	}
}

func TestCreation_DragTargets(t *testing.T) {
	tests := []struct {
		name   string
		target pointer.Target
		want   bool
	}{
		{"day column", column(1), true},
		{"block wrapper resolves to column", pointer.Target{Kind: pointer.KindBlockWrap, Day: 1}, true},
		{"schedule block", pointer.Target{Kind: pointer.KindScheduleBlock, Day: 1, ScheduleID: "x"}, false},
		{"outside grid", pointer.None, false},
		{"unknown day", column(9), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, harnessOpts{})
			h.drag(tt.target, 90, 120)
			got := h.count(KindBeforeCreateSchedule) == 1
			if got != tt.want {
				t.Errorf("created = %v, want %v (events %v)", got, tt.want, h.kinds())
			}
		})
	}
}

func TestCreation_DragWithoutStartIsIgnored(t *testing.T) {
	h := newHarness(t, harnessOpts{})
	g := pointer.Gesture{Type: pointer.TypeDrag, Target: column(0), Y: 100}
	h.creation.OnDrag(g)
	g.Type = pointer.TypeDragEnd
	h.creation.OnDragEnd(g)

	if len(h.events) != 0 {
		t.Errorf("events = %v, want none", h.kinds())
	}
}

func TestCreation_LocatorFrozenForSession(t *testing.T) {
	grid := testColumns(1)
	c := NewCreation(grid)
	var got []CreationDrag
	On(c.Bus(), func(e CreationDrag) { got = append(got, e) })

	c.OnDragStart(pointer.Gesture{Target: column(0), Y: 90})
	grid[0].Height = 480
	c.OnDrag(pointer.Gesture{Target: column(0), Y: 120})

	if len(got) != 1 || got[0].NearestGridY != 12 {
		t.Fatalf("drag = %+v, want row 12 on the captured height", got)
	}
}

func TestCreation_HoverDebounce(t *testing.T) {
	h := newHarness(t, harnessOpts{})
	h.src.Enter()

	for _, y := range []float64{80, 85, 92.5} {
		h.src.Move(0, y, column(0))
		h.clock.Advance(500 * time.Millisecond)
	}
	if h.count(KindCreationHover) != 0 {
		t.Fatal("hover fired before the delay")
	}

	h.clock.Advance(2 * time.Second)
	h.expectKinds(KindCreationHover)

	hover := h.events[0].(CreationHover)
	if hover.NearestGridY != 9.5 {
		t.Errorf("hover row = %v, want 9.5 (snapped toward bottom)", hover.NearestGridY)
	}
	if !hover.Condition.EndTime.Equal(at(0, 10, 0)) || hover.Condition.Delta != 30*time.Minute {
		t.Errorf("condition = %+v", hover.Condition)
	}
}

func TestCreation_HoverGates(t *testing.T) {
	reject := func(gridtime.Position) (Condition, bool) { return Condition{}, false }

	tests := []struct {
		name  string
		opts  harnessOpts
		setup func(*harness)
	}{
		{
			name: "pointer left the calendar",
			setup: func(h *harness) {
				h.src.Enter()
				h.src.Leave()
				h.reset()
			},
		},
		{
			name: "hover guide off",
			opts: harnessOpts{cfg: clickConfig()},
			setup: func(h *harness) {
				h.src.Enter()
			},
		},
		{
			name: "predicate rejects",
			opts: harnessOpts{creation: []CreationOption{WithHoverCheck(reject)}},
			setup: func(h *harness) {
				h.src.Enter()
			},
		},
		{
			name: "suspended",
			setup: func(h *harness) {
				h.src.Enter()
				h.creation.Suspend()
				h.reset()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.opts)
			tt.setup(h)
			h.src.Move(0, 90, column(0))
			h.clock.Advance(3 * time.Second)
			if n := h.count(KindCreationHover); n != 0 {
				t.Errorf("hover events = %d, want 0", n)
			}
		})
	}
}

func TestCreation_HoverTickNeverCancelsDrag(t *testing.T) {
	h := newHarness(t, harnessOpts{})
	h.src.Enter()
	h.src.Move(0, 90, column(0))
	h.src.Press(0, 90, column(0))
	h.clock.Advance(3 * time.Second)

	if h.count(KindCreationHover) != 0 {
		t.Error("hover fired during a drag")
	}
	if !h.creation.Dragging() {
		t.Fatal("hover tick tore down the drag session")
	}

	h.src.Move(0, 120, column(0))
	h.src.Release(0, 120, column(0))
	if h.count(KindBeforeCreateSchedule) != 1 {
		t.Errorf("events = %v, want a committed drag", h.kinds())
	}
}

func TestCreation_HoverPredicateCondition(t *testing.T) {
	check := func(pos gridtime.Position) (Condition, bool) {
		return Condition{EndTime: pos.NearestGridTimeY.Add(90 * time.Minute)}, true
	}
	h := newHarness(t, harnessOpts{creation: []CreationOption{WithHoverCheck(check)}})
	h.src.Enter()
	h.src.Move(0, 90, column(1))
	h.clock.Advance(2 * time.Second)

	hover, ok := findLast[CreationHover](h)
	if !ok {
		t.Fatal("no hover")
	}
	if !hover.Condition.EndTime.Equal(at(1, 10, 30)) || hover.Condition.Delta != 90*time.Minute {
		t.Errorf("condition = %+v", hover.Condition)
	}
}

func TestCreation_ClickCreatesAfterDelay(t *testing.T) {
	h := newHarness(t, harnessOpts{cfg: clickConfig()})
	h.click(column(0), 92.5)

	h.expectKinds(KindCreationDragStart, KindClearCreationGuide)
	h.reset()

	h.clock.Advance(299 * time.Millisecond)
	if len(h.events) != 0 {
		t.Fatalf("click fired early: %v", h.kinds())
	}
	h.clock.Advance(time.Millisecond)
	h.expectKinds(KindCreationClick, KindBeforeCreateSchedule)

	create := h.events[1].(BeforeCreateSchedule)
	if !create.Start.Equal(at(0, 9, 30)) || !create.End.Equal(at(0, 10, 0)) {
		t.Errorf("range = [%v, %v]", create.Start, create.End)
	}
	if create.Trigger != pointer.TypeClick {
		t.Errorf("trigger = %v", create.Trigger)
	}
}

func TestCreation_DoubleClickCancelsPendingClick(t *testing.T) {
	h := newHarness(t, harnessOpts{cfg: clickConfig()})

	h.click(column(0), 90)
	h.clock.Advance(100 * time.Millisecond)
	h.click(column(0), 90)
	h.clock.Advance(time.Second)

	if n := h.count(KindBeforeCreateSchedule); n != 1 {
		t.Fatalf("creates = %d, want 1 (events %v)", n, h.kinds())
	}
	create, _ := findLast[BeforeCreateSchedule](h)
	if create.Trigger != pointer.TypeDoubleClick {
		t.Errorf("trigger = %v, want dblclick", create.Trigger)
	}
	if !create.Start.Equal(at(0, 9, 0)) || !create.End.Equal(at(0, 9, 30)) {
		t.Errorf("range = [%v, %v]", create.Start, create.End)
	}
}

func TestCreation_SlowSecondClickCreatesTwice(t *testing.T) {
	h := newHarness(t, harnessOpts{cfg: clickConfig()})

	h.click(column(0), 90)
	h.clock.Advance(time.Second)
	h.click(column(0), 150)
	h.clock.Advance(time.Second)

	if n := h.count(KindBeforeCreateSchedule); n != 2 {
		t.Errorf("creates = %d, want 2", n)
	}
}

func TestCreation_DisableDblClick(t *testing.T) {
	cfg := clickConfig()
	cfg.DisableDblClick = true
	h := newHarness(t, harnessOpts{cfg: cfg})

	h.click(column(0), 90)
	h.clock.Advance(0)
	if n := h.count(KindBeforeCreateSchedule); n != 1 {
		t.Fatalf("creates after first click = %d, want 1", n)
	}

	h.clock.Advance(50 * time.Millisecond)
	h.click(column(0), 90)
	h.clock.Advance(0)
	if n := h.count(KindBeforeCreateSchedule); n != 2 {
		t.Errorf("creates = %d, want 2 (double click disabled)", n)
	}
}

func TestCreation_DisableClick(t *testing.T) {
	cfg := clickConfig()
	cfg.DisableClick = true
	h := newHarness(t, harnessOpts{cfg: cfg})

	h.click(column(0), 90)
	h.clock.Advance(time.Second)
	if n := h.count(KindCreationClick); n != 0 {
		t.Errorf("click events = %d, want 0", n)
	}
}

func TestCreation_ClickPredicateRejects(t *testing.T) {
	reject := func(gridtime.Position) (Condition, bool) { return Condition{}, false }
	h := newHarness(t, harnessOpts{cfg: clickConfig(), creation: []CreationOption{WithClickCheck(reject)}})

	h.click(column(0), 90)
	h.clock.Advance(time.Second)
	if n := h.count(KindBeforeCreateSchedule); n != 0 {
		t.Errorf("creates = %d, want 0", n)
	}
}

func TestCreation_MouseLeave(t *testing.T) {
	h := newHarness(t, harnessOpts{})
	h.src.Enter()
	h.src.Move(0, 90, column(0))
	h.src.Press(0, 90, column(0))
	h.src.Leave()

	if h.creation.Dragging() {
		t.Error("leave should drop the session")
	}
	if h.count(KindClearCreationGuide) != 1 {
		t.Errorf("events = %v, want a clear", h.kinds())
	}

	h.clock.Advance(3 * time.Second)
	if h.count(KindCreationHover) != 0 {
		t.Error("pending hover survived mouse leave")
	}
}

func TestCreation_SuspendResume(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GuideOnHover = true
	cfg.GuideOnClick = true
	h := newHarness(t, harnessOpts{cfg: cfg})

	h.creation.Suspend()
	h.creation.Suspend()
	if n := h.count(KindClearCreationGuide); n != 1 {
		t.Errorf("clears = %d, want 1 (suspend is idempotent)", n)
	}
	if hover, click := h.creation.GuideFlags(); hover || click {
		t.Errorf("flags while suspended = %v, %v", hover, click)
	}

	h.creation.Resume()
	if hover, click := h.creation.GuideFlags(); !hover || !click {
		t.Errorf("flags after resume = %v, %v, want true, true", hover, click)
	}

	h.creation.Resume()
	if hover, click := h.creation.GuideFlags(); !hover || !click {
		t.Error("extra resume changed flags")
	}
}

func TestCreation_SuspendRestoresOnlySavedFlags(t *testing.T) {
	h := newHarness(t, harnessOpts{cfg: clickConfig()})
	h.creation.Suspend()
	h.creation.Resume()

	if hover, click := h.creation.GuideFlags(); hover || !click {
		t.Errorf("flags = %v, %v, want false, true", hover, click)
	}
}

func TestCreation_InvokeCreationClick(t *testing.T) {
	h := newHarness(t, harnessOpts{days: 3})
	h.creation.InvokeCreationClick(sched("x", at(1, 14, 0), at(1, 15, 0)))

	h.expectKinds(KindCreationClick, KindBeforeCreateSchedule)
	click := h.events[0].(CreationClick)
	if click.View.Index != 1 || click.NearestGridY != 14 {
		t.Errorf("click view=%d row=%v", click.View.Index, click.NearestGridY)
	}
	create := h.events[1].(BeforeCreateSchedule)
	if create.Trigger != pointer.TypeManual || !create.End.Equal(at(1, 15, 0)) {
		t.Errorf("create = %+v", create)
	}
}

func TestCreation_InvokeFallsBackToFirstDay(t *testing.T) {
	h := newHarness(t, harnessOpts{days: 2})
	h.creation.InvokeCreationClick(sched("x", at(5, 9, 0), at(5, 10, 0)))

	click, ok := findLast[CreationClick](h)
	if !ok || click.View.Index != 0 {
		t.Errorf("click = %+v, want first view", click)
	}
}

func TestCreation_Destroy(t *testing.T) {
	h := newHarness(t, harnessOpts{cfg: clickConfig()})
	h.click(column(0), 90)
	h.reset()

	h.creation.Destroy()
	h.clock.Advance(time.Second)
	h.drag(column(0), 90, 120)

	if len(h.events) != 0 {
		t.Errorf("events after destroy = %v", h.kinds())
	}
}

func TestCreation_SinglePointAtLeastHalfHour(t *testing.T) {
	quarter := quarterHourOptions()
	tests := []struct {
		name string
		grid *gridtime.Options
	}{
		{"half hour cells", nil},
		{"quarter hour cells", &quarter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for y := 0.0; y < testHeight-5; y += 3.5 {
				h := newHarness(t, harnessOpts{grid: tt.grid})
				h.drag(column(0), y, y+0.5)
				create, ok := findLast[BeforeCreateSchedule](h)
				if !ok {
					t.Fatalf("y=%v: no create", y)
				}
				if create.End.Sub(create.Start) < MinCreateDuration {
					t.Errorf("y=%v: range [%v, %v] shorter than %v", y, create.Start, create.End, MinCreateDuration)
				}
			}
		})
	}
}

func TestCreation_SinglePointDragOnQuarterHourGrid(t *testing.T) {
	quarter := quarterHourOptions()
	h := newHarness(t, harnessOpts{grid: &quarter})

	h.drag(column(0), 90, 90.5)
	create, ok := findLast[BeforeCreateSchedule](h)
	if !ok {
		t.Fatalf("no create, events = %v", h.kinds())
	}
	if !create.Start.Equal(at(0, 9, 0)) || !create.End.Equal(at(0, 9, 30)) {
		t.Errorf("create = %v - %v, want 09:00 - 09:30", create.Start, create.End)
	}
}

func TestCreation_HoverWithoutEnter(t *testing.T) {
	h := newHarness(t, harnessOpts{})

	h.src.Move(0, 90, column(0))
	h.clock.Advance(3 * time.Second)
	if n := h.count(KindCreationHover); n != 1 {
		t.Errorf("hover events = %d, want 1", n)
	}
}

func TestCreation_DefaultSchedulerRunsNothing(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HoverDelay = 0
	c := NewCreation(testColumns(1), WithCreationConfig(cfg))
	if _, ok := c.sched.(timer.Nop); !ok {
		t.Fatalf("default scheduler = %T, want timer.Nop", c.sched)
	}

	var hovers int
	c.Bus().Subscribe(func(e Event) {
		if e.Kind() == KindCreationHover {
			hovers++
		}
	})
	g := pointer.Gesture{Type: pointer.TypeMove, Target: column(0), Y: 90}
	for range 50 {
		c.OnPointerMove(g)
	}
	if hovers != 0 {
		t.Errorf("hover events = %d, want 0 without a scheduler", hovers)
	}
}
