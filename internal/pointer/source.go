package pointer

import "time"

// DefaultDoubleClickWindow is the maximum gap between two clicks on the same
// day column for them to count as a double click.
const DefaultDoubleClickWindow = 300 * time.Millisecond

// Source tracks a single pointer and dispatches gestures to the handler
// contexts registered on it, in registration order.
//
// A press emits dragStart immediately. A release emits dragEnd when the
// pointer moved while pressed, otherwise click. Motion without a press emits
// move.
//
// Source is not safe for concurrent use.
type Source struct {
	DoubleClickWindow time.Duration
	Now               func() time.Time

	handlers []*entry
	nextID   uint32

	pressed     bool
	moved       bool
	pressX      float64
	pressY      float64
	pressTarget Target

	inside bool

	lastClickAt     time.Time
	lastClickTarget Target
	hasLastClick    bool
}

type entry struct {
	id uint32
	h  any
}

// NewSource returns a Source with the default double-click window and the
// wall clock.
func NewSource() *Source {
	return &Source{
		DoubleClickWindow: DefaultDoubleClickWindow,
		Now:               time.Now,
	}
}

// Handle removes a registered context.
type Handle struct {
	id  uint32
	src *Source
}

// Remove unregisters the context. Removing twice is a no-op.
func (h Handle) Remove() {
	if h.src == nil {
		return
	}
	for i, e := range h.src.handlers {
		if e.id == h.id {
			h.src.handlers = append(h.src.handlers[:i], h.src.handlers[i+1:]...)
			return
		}
	}
}

// Register adds a handler context. h should implement one or more of the
// handler interfaces in this package.
func (s *Source) Register(h any) Handle {
	s.nextID++
	s.handlers = append(s.handlers, &entry{id: s.nextID, h: h})
	return Handle{id: s.nextID, src: s}
}

// Handlers returns the registered contexts in registration order. Controllers
// use it to discover collaborators that share the same input source.
func (s *Source) Handlers() []any {
	out := make([]any, len(s.handlers))
	for i, e := range s.handlers {
		out[i] = e.h
	}
	return out
}

// Pressed reports whether a press is in progress.
func (s *Source) Pressed() bool {
	return s.pressed
}

// Press starts a gesture at (x, y) on target.
func (s *Source) Press(x, y float64, target Target) {
	if s.pressed {
		// Missed release; finish the previous gesture first.
		s.Release(x, y, target)
	}
	s.pressed = true
	s.moved = false
	s.pressX, s.pressY = x, y
	s.pressTarget = target

	g := s.gesture(TypeDragStart, x, y, target)
	s.each(func(h any) {
		if d, ok := h.(DragStartHandler); ok {
			d.OnDragStart(g)
		}
	})
}

// Move reports pointer motion. While pressed it emits drag once the pointer
// leaves the press point; otherwise it emits move.
func (s *Source) Move(x, y float64, target Target) {
	if s.pressed {
		if !s.moved && x == s.pressX && y == s.pressY {
			return
		}
		s.moved = true
		g := s.gesture(TypeDrag, x, y, target)
		s.each(func(h any) {
			if d, ok := h.(DragHandler); ok {
				d.OnDrag(g)
			}
		})
		return
	}

	g := s.gesture(TypeMove, x, y, target)
	s.each(func(h any) {
		if m, ok := h.(MoveHandler); ok {
			m.OnPointerMove(g)
		}
	})
}

// Release ends the current gesture. A release without a press is ignored.
func (s *Source) Release(x, y float64, target Target) {
	if !s.pressed {
		return
	}
	s.pressed = false

	if s.moved {
		g := s.gesture(TypeDragEnd, x, y, target)
		s.each(func(h any) {
			if d, ok := h.(DragEndHandler); ok {
				d.OnDragEnd(g)
			}
		})
		s.hasLastClick = false
		return
	}

	// A click is reported at the press point on the press target.
	g := s.gesture(TypeClick, s.pressX, s.pressY, s.pressTarget)
	s.each(func(h any) {
		if c, ok := h.(ClickHandler); ok {
			c.OnClick(g)
		}
	})

	if s.isDoubleClick(g) {
		s.hasLastClick = false
		dg := g
		dg.Type = TypeDoubleClick
		s.each(func(h any) {
			if d, ok := h.(DoubleClickHandler); ok {
				d.OnDoubleClick(dg)
			}
		})
		return
	}
	s.lastClickAt = g.At
	s.lastClickTarget = g.Target
	s.hasLastClick = true
}

// Enter reports that the pointer entered the grid container.
func (s *Source) Enter() {
	if s.inside {
		return
	}
	s.inside = true
	s.each(func(h any) {
		if f, ok := h.(FocusHandler); ok {
			f.OnMouseEnter()
		}
	})
}

// Leave reports that the pointer left the grid container.
func (s *Source) Leave() {
	if !s.inside {
		return
	}
	s.inside = false
	s.each(func(h any) {
		if f, ok := h.(FocusHandler); ok {
			f.OnMouseLeave()
		}
	})
}

// Inside reports whether the pointer is within the grid container.
func (s *Source) Inside() bool {
	return s.inside
}

func (s *Source) isDoubleClick(g Gesture) bool {
	if !s.hasLastClick {
		return false
	}
	if s.lastClickTarget.Day != g.Target.Day {
		return false
	}
	return g.At.Sub(s.lastClickAt) <= s.DoubleClickWindow
}

func (s *Source) gesture(typ Type, x, y float64, target Target) Gesture {
	return Gesture{Type: typ, Target: target, X: x, Y: y, At: s.now()}
}

func (s *Source) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// each calls fn for every handler. The slice is copied so handlers may
// register or remove contexts during dispatch.
func (s *Source) each(fn func(any)) {
	snapshot := make([]*entry, len(s.handlers))
	copy(snapshot, s.handlers)
	for _, e := range snapshot {
		fn(e.h)
	}
}
