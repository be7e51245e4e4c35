package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/timegrid/internal/schedule"
	"github.com/javiermolinar/timegrid/internal/tui/commands"
)

// keyMap defines the keyboard bindings. The grid itself is driven by the
// mouse; keys cover navigation and the few actions a pointer cannot express.
type keyMap struct {
	Prev   key.Binding
	Next   key.Binding
	Today  key.Binding
	Delete key.Binding
	Copy   key.Binding
	Reload key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Prev: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "prev"),
		),
		Next: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "next"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Delete, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Today},
		{k.Delete, k.Copy, k.Reload},
		{k.Help, k.Quit},
	}
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.debugKey(msg)

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Prev):
		cmd := m.shiftDays(-m.eng.layout.DayCount())
		return m, cmd

	case key.Matches(msg, m.keys.Next):
		cmd := m.shiftDays(m.eng.layout.DayCount())
		return m, cmd

	case key.Matches(msg, m.keys.Today):
		cmd := m.goTo(m.defaultStart())
		return m, cmd

	case key.Matches(msg, m.keys.Delete):
		cmd := m.eng.deleteSelected()
		if cmd == nil {
			return m, m.status("Nothing selected")
		}
		return m, cmd

	case key.Matches(msg, m.keys.Copy):
		text := visibleSchedulesText(m.eng)
		if text == "" {
			return m, m.status("No schedules to copy")
		}
		return m, commands.CopyToClipboard(text)

	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m, m.reload()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m, nil
}

// shiftDays moves the visible range by n days.
func (m *Model) shiftDays(n int) tea.Cmd {
	return m.goTo(m.eng.layout.Start().AddDate(0, 0, n))
}

// goTo shows the range starting at start. It is refused while a button is
// held since the columns under the pointer would change.
func (m *Model) goTo(start time.Time) tea.Cmd {
	if !m.eng.cancelGestures() {
		return nil
	}
	m.eng.layout.SetStart(start)
	m.eng.store.Replace(nil)
	m.eng.selected = ""
	m.loading = true
	return m.reload()
}

// visibleSchedulesText formats the visible schedules one per line.
func visibleSchedulesText(e *engine) string {
	from := e.layout.Start()
	to := from.AddDate(0, 0, e.layout.DayCount())
	var b strings.Builder
	for _, s := range e.store.Between(from, to) {
		fmt.Fprintf(&b, "%s %s-%s %s\n",
			schedule.FormatDate(s.Start),
			schedule.FormatClock(s.Start),
			schedule.FormatClock(s.End),
			s.Title)
	}
	return b.String()
}
