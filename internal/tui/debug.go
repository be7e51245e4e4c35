package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/javiermolinar/timegrid/internal/interaction"
)

// debugKey logs a keystroke when debug logging is on.
func (m Model) debugKey(msg tea.KeyMsg) {
	if ce := m.log.Check(zapcore.DebugLevel, "key"); ce != nil {
		ce.Write(
			zap.String("key", msg.String()),
			zap.Time("range_start", m.eng.layout.Start()),
			zap.String("selected", m.eng.selected),
		)
	}
}

// debugMouse logs raw mouse input. Hover motion is very chatty, so it is only
// logged while a button is held.
func (m Model) debugMouse(msg tea.MouseMsg) {
	if msg.Action == tea.MouseActionMotion && !m.eng.source.Pressed() {
		return
	}
	if ce := m.log.Check(zapcore.DebugLevel, "mouse"); ce != nil {
		ce.Write(
			zap.String("action", msg.Action.String()),
			zap.String("button", msg.Button.String()),
			zap.Int("x", msg.X),
			zap.Int("y", msg.Y),
		)
	}
}

// logEvents mirrors every controller event into the debug log.
func (e *engine) logEvents() {
	if !e.log.Core().Enabled(zapcore.DebugLevel) {
		return
	}
	log := e.log.Named("bus")
	write := func(ev interaction.Event) {
		fields := []zap.Field{zap.String("kind", string(ev.Kind()))}
		switch ev := ev.(type) {
		case interaction.BeforeCreateSchedule:
			fields = append(fields, zap.Time("start", ev.Start), zap.Time("end", ev.End))
		case interaction.BeforeUpdateSchedule:
			if ev.Schedule != nil {
				fields = append(fields, zap.String("id", ev.Schedule.ID))
			}
		}
		log.Debug("event", fields...)
	}
	e.creation.Bus().Subscribe(write)
	e.resize.Bus().Subscribe(write)
}
