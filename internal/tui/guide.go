package tui

import (
	"time"

	"github.com/javiermolinar/timegrid/internal/gridtime"
	"github.com/javiermolinar/timegrid/internal/interaction"
	"github.com/javiermolinar/timegrid/internal/schedule"
)

// GuideKind identifies which controller owns the visible preview.
type GuideKind int

const (
	GuideNone GuideKind = iota
	GuideCreation
	GuideResize
)

// Guide is the preview drawn over the grid while the user hovers, clicks,
// drags out a new schedule or resizes one. It only listens to controller
// events and never touches the schedule store.
type Guide struct {
	kind       GuideKind
	day        int
	r          schedule.Range
	scheduleID string

	dragging bool
	anchor   time.Time
	cell     time.Duration
	dayStart time.Time
	dayEnd   time.Time

	subs []interaction.Subscription
}

// NewGuide returns a hidden guide.
func NewGuide() *Guide {
	return &Guide{}
}

// Attach subscribes the guide to the given controller buses.
func (g *Guide) Attach(buses ...*interaction.Bus) {
	for _, b := range buses {
		g.subs = append(g.subs, b.Subscribe(g.handle))
	}
}

// Detach removes every subscription.
func (g *Guide) Detach() {
	for _, s := range g.subs {
		s.Remove()
	}
	g.subs = nil
}

// Kind returns the guide owner, GuideNone when hidden.
func (g *Guide) Kind() GuideKind { return g.kind }

// Visible reports whether a preview is shown.
func (g *Guide) Visible() bool { return g.kind != GuideNone }

// Day returns the column the preview was opened on.
func (g *Guide) Day() int { return g.day }

// Range returns the previewed time range.
func (g *Guide) Range() schedule.Range { return g.r }

// ScheduleID returns the schedule being resized, if any.
func (g *Guide) ScheduleID() string { return g.scheduleID }

// Hide clears the preview.
func (g *Guide) Hide() {
	*g = Guide{subs: g.subs}
}

// HideHover clears a hover or click preview but leaves drags alone.
func (g *Guide) HideHover() {
	if g.kind == GuideCreation && !g.dragging {
		g.Hide()
	}
}

func (g *Guide) handle(e interaction.Event) {
	switch ev := e.(type) {
	case interaction.CreationDragStart:
		g.show(GuideCreation, ev.View)
		g.dragging = true
		g.anchor = ev.NearestGridTimeY
		g.r = g.dragRange(ev.NearestGridTimeY)

	case interaction.CreationDrag:
		if g.kind != GuideCreation || !g.dragging {
			return
		}
		g.r = g.dragRange(ev.NearestGridTimeY)

	case interaction.CreationDragEnd:
		if g.kind == GuideCreation && g.dragging {
			g.Hide()
		}

	case interaction.ClearCreationGuide:
		if g.kind == GuideCreation {
			g.Hide()
		}

	case interaction.CreationHover:
		g.showCondition(ev.GridEvent, ev.Condition)

	case interaction.CreationClick:
		g.showCondition(ev.GridEvent, ev.Condition)

	case interaction.ResizeDragStart:
		g.show(GuideResize, ev.View)
		g.scheduleID = ev.ScheduleID
		g.r = ev.Preview

	case interaction.ResizeDrag:
		if g.kind != GuideResize || g.scheduleID != ev.ScheduleID {
			return
		}
		g.r = ev.Preview

	case interaction.ResizeDragEnd, interaction.ResizeClick:
		if g.kind == GuideResize {
			g.Hide()
		}
	}
}

func (g *Guide) show(kind GuideKind, view gridtime.View) {
	subs := g.subs
	*g = Guide{
		kind:     kind,
		day:      view.Index,
		cell:     view.Options.CellDuration(),
		dayStart: gridtime.StartOfDay(view.Date),
		dayEnd:   gridtime.StartOfNextDay(view.Date),
		subs:     subs,
	}
}

func (g *Guide) showCondition(ev interaction.GridEvent, cond interaction.Condition) {
	if g.kind == GuideCreation && g.dragging {
		return
	}
	g.show(GuideCreation, ev.View)
	g.r = schedule.NewRange(ev.NearestGridTimeY, cond.EndTime)
}

// dragRange mirrors the range a creation drag would commit.
func (g *Guide) dragRange(at time.Time) schedule.Range {
	r := schedule.NewRange(g.anchor, at)
	r.End = r.End.Add(g.cell)
	r.Start = gridtime.ClampTime(r.Start, g.dayStart, g.dayEnd)
	r.End = gridtime.ClampTime(r.End, g.dayStart, g.dayEnd)
	return r
}
