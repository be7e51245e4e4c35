package pointer

import "time"

// Type is the kind of gesture a Source emits.
type Type string

const (
	TypeDragStart   Type = "dragStart"
	TypeDrag        Type = "drag"
	TypeDragEnd     Type = "dragEnd"
	TypeClick       Type = "click"
	TypeDoubleClick Type = "dblclick"
	TypeMove        Type = "move"
	// TypeManual marks gestures synthesized by application code rather than
	// the pointer.
	TypeManual Type = "manual"
)

// Gesture is one pointer event with its hit-tested target. Y is the offset
// within the target's day column, in the same unit as the column height.
type Gesture struct {
	Type   Type
	Target Target
	X, Y   float64
	At     time.Time
}

// Handler interfaces. A registered context implements any subset.
type (
	DragStartHandler interface {
		OnDragStart(Gesture)
	}
	DragHandler interface {
		OnDrag(Gesture)
	}
	DragEndHandler interface {
		OnDragEnd(Gesture)
	}
	ClickHandler interface {
		OnClick(Gesture)
	}
	DoubleClickHandler interface {
		OnDoubleClick(Gesture)
	}
	MoveHandler interface {
		OnPointerMove(Gesture)
	}
	FocusHandler interface {
		OnMouseEnter()
		OnMouseLeave()
	}
)
