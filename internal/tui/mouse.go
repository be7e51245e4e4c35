package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// handleMouse feeds terminal mouse input to the pointer source. Crossing the
// grid body reports enter and leave; while the left button is held the
// pointer stays captured and its row is clamped to the body.
func (m Model) handleMouse(msg tea.MouseMsg) {
	m.debugMouse(msg)

	e := m.eng
	x := float64(msg.X)
	y := e.layout.PointerY(msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		target, ok := e.layout.HitTest(msg.X, msg.Y, e.store)
		if !ok {
			return
		}
		e.source.Enter()
		e.source.Press(x, y, target)

	case tea.MouseActionMotion:
		target, ok := e.layout.HitTest(msg.X, msg.Y, e.store)
		if e.source.Pressed() {
			e.source.Move(x, y, target)
			return
		}
		if !ok {
			e.source.Leave()
			return
		}
		e.source.Enter()
		e.source.Move(x, y, target)

	case tea.MouseActionRelease:
		if !e.source.Pressed() {
			return
		}
		target, _ := e.layout.HitTest(msg.X, msg.Y, e.store)
		e.source.Release(x, y, target)
	}
}
