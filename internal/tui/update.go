package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/timegrid/internal/timer"
	"github.com/javiermolinar/timegrid/internal/tui/commands"
)

// Update handles messages and updates the model. Commands queued by the
// interaction engine while handling msg are batched with the result.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.update(msg)
	return model, tea.Batch(cmd, model.eng.drain())
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		updated, cmd := m.handleKeyMsg(msg)
		if model, ok := updated.(Model); ok {
			return model, cmd
		}
		return m, cmd

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.eng.layout.Resize(msg.Width, msg.Height)
		return m, nil

	case timer.FireMsg:
		if m.eng.loop != nil {
			m.eng.loop.Fire(msg)
		}
		return m, nil

	case commands.SchedulesLoadedMsg:
		// A stale load for a range we navigated away from is dropped.
		if !msg.Start.Equal(m.eng.layout.Start()) {
			return m, nil
		}
		m.eng.store.Replace(msg.Schedules)
		if _, ok := m.eng.store.Get(m.eng.selected); !ok {
			m.eng.selected = ""
		}
		m.loading = false
		return m, nil

	case commands.ScheduleSavedMsg:
		m.log.Debug("schedule saved", zap.String("id", msg.ID), zap.String("action", string(msg.Action)))
		if msg.Action == commands.ActionDelete {
			return m, m.status("Schedule deleted")
		}
		return m, nil

	case commands.ErrMsg:
		m.log.Error("tui error", zap.Error(msg.Err))
		m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
		m.statusErr = true
		m.statusTime = m.now().Add(errorTimeout)
		m.loading = false
		cmds := []tea.Cmd{commands.ClearStatusAfter(errorTimeout)}
		if msg.Reload {
			cmds = append(cmds, m.reload())
		}
		return m, tea.Batch(cmds...)

	case commands.StatusMsgCmd:
		m.statusMsg = msg.Msg
		m.statusErr = false
		m.statusTime = m.now().Add(statusTimeout)
		return m, commands.ClearStatusAfter(statusTimeout)

	case commands.ClearStatusMsg:
		if !m.now().Before(m.statusTime) {
			m.statusMsg = ""
			m.statusErr = false
		}
		return m, nil
	}

	return m, nil
}
