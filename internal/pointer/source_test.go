package pointer

import (
	"testing"
	"time"
)

// recorder implements every handler interface and logs gesture types.
type recorder struct {
	events []Type
	last   Gesture
	enters int
	leaves int
}

func (r *recorder) record(g Gesture) {
	r.events = append(r.events, g.Type)
	r.last = g
}

func (r *recorder) OnDragStart(g Gesture)   { r.record(g) }
func (r *recorder) OnDrag(g Gesture)        { r.record(g) }
func (r *recorder) OnDragEnd(g Gesture)     { r.record(g) }
func (r *recorder) OnClick(g Gesture)       { r.record(g) }
func (r *recorder) OnDoubleClick(g Gesture) { r.record(g) }
func (r *recorder) OnPointerMove(g Gesture) { r.record(g) }
func (r *recorder) OnMouseEnter()           { r.enters++ }
func (r *recorder) OnMouseLeave()           { r.leaves++ }

// clickOnly implements just ClickHandler.
type clickOnly struct{ clicks int }

func (c *clickOnly) OnClick(Gesture) { c.clicks++ }

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestSource() (*Source, *recorder, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	src := NewSource()
	src.Now = clock.Now
	rec := &recorder{}
	src.Register(rec)
	return src, rec, clock
}

func equalTypes(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

var col2 = Target{Kind: KindDayColumn, Day: 2}

func TestSource_Sequences(t *testing.T) {
	tests := []struct {
		name string
		run  func(*Source, *fakeClock)
		want []Type
	}{
		{
			name: "press and release in place is a click",
			run: func(s *Source, _ *fakeClock) {
				s.Press(1, 10, col2)
				s.Release(1, 10, col2)
			},
			want: []Type{TypeDragStart, TypeClick},
		},
		{
			name: "press move release is a drag",
			run: func(s *Source, _ *fakeClock) {
				s.Press(1, 10, col2)
				s.Move(1, 12, col2)
				s.Move(1, 14, col2)
				s.Release(1, 14, col2)
			},
			want: []Type{TypeDragStart, TypeDrag, TypeDrag, TypeDragEnd},
		},
		{
			name: "motion at the press point is not a drag",
			run: func(s *Source, _ *fakeClock) {
				s.Press(1, 10, col2)
				s.Move(1, 10, col2)
				s.Release(1, 10, col2)
			},
			want: []Type{TypeDragStart, TypeClick},
		},
		{
			name: "motion without press is a move",
			run: func(s *Source, _ *fakeClock) {
				s.Move(3, 3, col2)
			},
			want: []Type{TypeMove},
		},
		{
			name: "release without press is ignored",
			run: func(s *Source, _ *fakeClock) {
				s.Release(3, 3, col2)
			},
			want: nil,
		},
		{
			name: "two quick clicks add a double click",
			run: func(s *Source, c *fakeClock) {
				s.Press(1, 10, col2)
				s.Release(1, 10, col2)
				c.Advance(100 * time.Millisecond)
				s.Press(1, 10, col2)
				s.Release(1, 10, col2)
			},
			want: []Type{TypeDragStart, TypeClick, TypeDragStart, TypeClick, TypeDoubleClick},
		},
		{
			name: "slow second click is a plain click",
			run: func(s *Source, c *fakeClock) {
				s.Press(1, 10, col2)
				s.Release(1, 10, col2)
				c.Advance(time.Second)
				s.Press(1, 10, col2)
				s.Release(1, 10, col2)
			},
			want: []Type{TypeDragStart, TypeClick, TypeDragStart, TypeClick},
		},
		{
			name: "clicks on different days are not a double click",
			run: func(s *Source, c *fakeClock) {
				s.Press(1, 10, col2)
				s.Release(1, 10, col2)
				c.Advance(50 * time.Millisecond)
				other := Target{Kind: KindDayColumn, Day: 3}
				s.Press(20, 10, other)
				s.Release(20, 10, other)
			},
			want: []Type{TypeDragStart, TypeClick, TypeDragStart, TypeClick},
		},
		{
			name: "third quick click starts a new pair",
			run: func(s *Source, c *fakeClock) {
				for i := 0; i < 3; i++ {
					s.Press(1, 10, col2)
					s.Release(1, 10, col2)
					c.Advance(50 * time.Millisecond)
				}
			},
			want: []Type{
				TypeDragStart, TypeClick,
				TypeDragStart, TypeClick, TypeDoubleClick,
				TypeDragStart, TypeClick,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, rec, clock := newTestSource()
			tt.run(src, clock)
			if !equalTypes(rec.events, tt.want) {
				t.Errorf("events = %v, want %v", rec.events, tt.want)
			}
		})
	}
}

func TestSource_ClickUsesPressPoint(t *testing.T) {
	src, rec, _ := newTestSource()
	src.Press(4, 7, col2)
	src.Release(4, 7, None)

	if rec.last.Type != TypeClick {
		t.Fatalf("last = %v, want click", rec.last.Type)
	}
	if rec.last.Target != col2 || rec.last.Y != 7 {
		t.Errorf("click gesture = %+v", rec.last)
	}
}

func TestSource_EnterLeaveDeduped(t *testing.T) {
	src, rec, _ := newTestSource()
	src.Enter()
	src.Enter()
	src.Leave()
	src.Leave()
	src.Enter()

	if rec.enters != 2 || rec.leaves != 1 {
		t.Errorf("enters=%d leaves=%d, want 2 and 1", rec.enters, rec.leaves)
	}
	if !src.Inside() {
		t.Error("Inside() should be true after Enter")
	}
}

func TestSource_PartialHandlers(t *testing.T) {
	src := NewSource()
	c := &clickOnly{}
	src.Register(c)

	src.Press(0, 0, col2)
	src.Move(0, 5, col2)
	src.Release(0, 5, col2)
	src.Press(0, 0, col2)
	src.Release(0, 0, col2)

	if c.clicks != 1 {
		t.Errorf("clicks = %d, want 1", c.clicks)
	}
}

func TestSource_RegisterAndRemove(t *testing.T) {
	src := NewSource()
	a, b := &recorder{}, &recorder{}
	ha := src.Register(a)
	src.Register(b)

	if got := src.Handlers(); len(got) != 2 || got[0] != any(a) || got[1] != any(b) {
		t.Fatalf("Handlers() = %v", got)
	}

	ha.Remove()
	ha.Remove()
	src.Move(0, 0, col2)

	if len(a.events) != 0 {
		t.Error("removed handler received events")
	}
	if len(b.events) != 1 {
		t.Errorf("remaining handler got %d events, want 1", len(b.events))
	}
	if len(src.Handlers()) != 1 {
		t.Errorf("Handlers() len = %d, want 1", len(src.Handlers()))
	}
}

func TestTarget_Parent(t *testing.T) {
	tests := []struct {
		in   Target
		want Target
	}{
		{Target{Kind: KindBlockWrap, Day: 1}, Target{Kind: KindDayColumn, Day: 1}},
		{Target{Kind: KindTopHandle, Day: 1, ScheduleID: "x"}, Target{Kind: KindScheduleBlock, Day: 1, ScheduleID: "x"}},
		{Target{Kind: KindScheduleBlock, Day: 1, ScheduleID: "x"}, Target{Kind: KindBlockWrap, Day: 1}},
		{Target{Kind: KindDayColumn, Day: 1}, None},
	}
	for _, tt := range tests {
		if got := tt.in.Parent(); got != tt.want {
			t.Errorf("%v.Parent() = %v, want %v", tt.in, got, tt.want)
		}
	}
}
