// Package pointer turns raw press, motion and release samples into gesture
// events and dispatches them to registered handler contexts.
package pointer

import "fmt"

// Kind identifies what a hit-tested point landed on.
type Kind int

const (
	// KindNone is outside any interactive element.
	KindNone Kind = iota
	// KindDayColumn is empty space in a day column.
	KindDayColumn
	// KindBlockWrap is the container holding a day's schedule blocks.
	KindBlockWrap
	// KindScheduleBlock is the body of a rendered schedule.
	KindScheduleBlock
	// KindTopHandle is the resize handle on a schedule's start edge.
	KindTopHandle
	// KindBottomHandle is the resize handle on a schedule's end edge.
	KindBottomHandle
)

func (k Kind) String() string {
	switch k {
	case KindDayColumn:
		return "day-column"
	case KindBlockWrap:
		return "block-wrap"
	case KindScheduleBlock:
		return "schedule-block"
	case KindTopHandle:
		return "top-handle"
	case KindBottomHandle:
		return "bottom-handle"
	default:
		return "none"
	}
}

// Target is the hit-tested element under the pointer. Day is the index of the
// day column that contains it, or -1 when outside the grid. ScheduleID is set
// when the element belongs to a schedule block.
type Target struct {
	Kind       Kind
	Day        int
	ScheduleID string
}

// None is the target for points outside the grid.
var None = Target{Kind: KindNone, Day: -1}

// IsHandle reports whether t is a top or bottom resize handle.
func (t Target) IsHandle() bool {
	return t.Kind == KindTopHandle || t.Kind == KindBottomHandle
}

// Parent returns the enclosing element: a block wrapper resolves to its day
// column and a handle resolves to its schedule block. Other targets return
// None.
func (t Target) Parent() Target {
	switch t.Kind {
	case KindBlockWrap:
		return Target{Kind: KindDayColumn, Day: t.Day}
	case KindTopHandle, KindBottomHandle:
		return Target{Kind: KindScheduleBlock, Day: t.Day, ScheduleID: t.ScheduleID}
	case KindScheduleBlock:
		return Target{Kind: KindBlockWrap, Day: t.Day}
	default:
		return None
	}
}

func (t Target) String() string {
	if t.ScheduleID != "" {
		return fmt.Sprintf("%s[day=%d id=%s]", t.Kind, t.Day, t.ScheduleID)
	}
	return fmt.Sprintf("%s[day=%d]", t.Kind, t.Day)
}
