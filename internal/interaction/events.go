package interaction

import (
	"time"

	"github.com/javiermolinar/timegrid/internal/gridtime"
	"github.com/javiermolinar/timegrid/internal/pointer"
	"github.com/javiermolinar/timegrid/internal/schedule"
)

// EventKind names an event variant.
type EventKind string

const (
	KindCreationDragStart    EventKind = "creationDragStart"
	KindCreationDrag         EventKind = "creationDrag"
	KindCreationDragEnd      EventKind = "creationDragend"
	KindCreationHover        EventKind = "creationHover"
	KindCreationClick        EventKind = "creationClick"
	KindClearCreationGuide   EventKind = "clearCreationGuide"
	KindBeforeCreateSchedule EventKind = "beforeCreateSchedule"
	KindResizeDragStart      EventKind = "resizeDragstart"
	KindResizeDrag           EventKind = "resizeDrag"
	KindResizeDragEnd        EventKind = "resizeDragend"
	KindResizeClick          EventKind = "resizeClick"
	KindBeforeUpdateSchedule EventKind = "beforeUpdateSchedule"
)

// Event is the closed set of values published on a controller Bus. Only
// types in this package implement it.
type Event interface {
	Kind() EventKind
	event()
}

// GridEvent is the payload shared by every pointer-derived event: the
// related day view, the originating gesture and the computed position.
type GridEvent struct {
	View    gridtime.View
	Gesture pointer.Gesture
	gridtime.Position
}

// Condition is what a hover or click predicate returns on acceptance: the
// end time the preview should extend to and its length.
type Condition struct {
	EndTime time.Time
	Delta   time.Duration
}

// Direction is the schedule edge a resize moves.
type Direction int

const (
	DirectionTop Direction = iota
	DirectionBottom
)

func (d Direction) String() string {
	if d == DirectionTop {
		return "top"
	}
	return "bottom"
}

// UpdateTypeResize is the BeforeUpdateSchedule type for resize commits.
const UpdateTypeResize = "resize"

type (
	// CreationDragStart opens a creation preview at the press position.
	CreationDragStart struct{ GridEvent }

	// CreationDrag moves the far edge of the creation preview.
	CreationDrag struct{ GridEvent }

	// CreationDragEnd closes the creation preview. Range is the committed
	// range and Grid its rows on the view.
	CreationDragEnd struct {
		GridEvent
		Range schedule.Range
		Grid  gridtime.GridRange
	}

	// CreationHover shows a hover preview after the pointer rests.
	CreationHover struct {
		GridEvent
		Condition Condition
	}

	// CreationClick shows a preview for a click or double click.
	CreationClick struct {
		GridEvent
		Condition Condition
	}

	// ClearCreationGuide hides any creation preview.
	ClearCreationGuide struct{}

	// BeforeCreateSchedule asks the application to create a schedule.
	BeforeCreateSchedule struct {
		IsAllDay bool
		Start    time.Time
		End      time.Time
		Trigger  pointer.Type
	}

	// ResizeDragStart opens a resize preview. Preview is the schedule's
	// current range.
	ResizeDragStart struct {
		GridEvent
		ScheduleID string
		Direction  Direction
		Preview    schedule.Range
	}

	// ResizeDrag reports a new clamped edge position. It is only published
	// when the snapped row changes.
	ResizeDrag struct {
		GridEvent
		ScheduleID string
		Direction  Direction
		Preview    schedule.Range
	}

	// ResizeDragEnd closes the resize preview. NewTime is nil when the
	// resize produced no new range.
	ResizeDragEnd struct {
		GridEvent
		TargetID string
		NewTime  *schedule.Range
	}

	// ResizeClick reports a press and release on a handle without motion.
	ResizeClick struct {
		GridEvent
		TargetID string
	}

	// BeforeUpdateSchedule asks the application to apply Changes to Schedule.
	BeforeUpdateSchedule struct {
		Schedule *schedule.Schedule
		Changes  schedule.Changes
		Type     string
	}
)

func (CreationDragStart) Kind() EventKind    { return KindCreationDragStart }
func (CreationDrag) Kind() EventKind         { return KindCreationDrag }
func (CreationDragEnd) Kind() EventKind      { return KindCreationDragEnd }
func (CreationHover) Kind() EventKind        { return KindCreationHover }
func (CreationClick) Kind() EventKind        { return KindCreationClick }
func (ClearCreationGuide) Kind() EventKind   { return KindClearCreationGuide }
func (BeforeCreateSchedule) Kind() EventKind { return KindBeforeCreateSchedule }
func (ResizeDragStart) Kind() EventKind      { return KindResizeDragStart }
func (ResizeDrag) Kind() EventKind           { return KindResizeDrag }
func (ResizeDragEnd) Kind() EventKind        { return KindResizeDragEnd }
func (ResizeClick) Kind() EventKind          { return KindResizeClick }
func (BeforeUpdateSchedule) Kind() EventKind { return KindBeforeUpdateSchedule }

func (CreationDragStart) event()    {}
func (CreationDrag) event()         {}
func (CreationDragEnd) event()      {}
func (CreationHover) event()        {}
func (CreationClick) event()        {}
func (ClearCreationGuide) event()   {}
func (BeforeCreateSchedule) event() {}
func (ResizeDragStart) event()      {}
func (ResizeDrag) event()           {}
func (ResizeDragEnd) event()        {}
func (ResizeClick) event()          {}
func (BeforeUpdateSchedule) event() {}
