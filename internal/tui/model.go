// Package tui provides the terminal user interface for timegrid.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/timegrid/internal/config"
	"github.com/javiermolinar/timegrid/internal/schedule"
	"github.com/javiermolinar/timegrid/internal/timer"
	"github.com/javiermolinar/timegrid/internal/tui/commands"
	"github.com/javiermolinar/timegrid/internal/tui/theme"
)

// Status line timeouts.
const (
	statusTimeout = 3 * time.Second
	errorTimeout  = 5 * time.Second
)

// Model is the main TUI model. It is passed by value through Update; the
// interaction state lives in the shared engine.
type Model struct {
	// Dependencies
	repo   schedule.Repository
	config *config.Config
	log    *zap.Logger

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Components
	keys keyMap
	help help.Model

	// Interaction state
	eng *engine

	// State
	loading bool
	now     func() time.Time

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string
	statusErr  bool
	statusTime time.Time

	// Construction-only settings
	sched timer.Scheduler
	start time.Time
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithLogger sets the logger used for interaction and debug output.
func WithLogger(log *zap.Logger) ModelOption {
	return func(m *Model) {
		if log != nil {
			m.log = log
		}
	}
}

// WithScheduler replaces the Bubble Tea timer loop, mostly for tests.
func WithScheduler(s timer.Scheduler) ModelOption {
	return func(m *Model) {
		m.sched = s
	}
}

// WithClock sets the clock used for double clicks, past blocks and the
// default range.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		if now != nil {
			m.now = now
		}
	}
}

// WithStart sets the first visible day.
func WithStart(t time.Time) ModelOption {
	return func(m *Model) {
		m.start = t
	}
}

// New creates a new TUI model.
func New(repo schedule.Repository, cfg *config.Config, opts ...ModelOption) *Model {
	if cfg == nil {
		cfg = config.Default()
	}

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("mocha")
	}
	styles := NewStyles(t)

	h := help.New()
	h.Styles.ShortKey = styles.HelpStyle.Bold(true)
	h.Styles.ShortDesc = styles.HelpStyle
	h.Styles.ShortSeparator = styles.HelpStyle

	m := &Model{
		repo:    repo,
		config:  cfg,
		log:     zap.NewNop(),
		theme:   t,
		styles:  styles,
		keys:    defaultKeyMap(),
		help:    h,
		now:     time.Now,
		loading: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.start.IsZero() {
		m.start = m.defaultStart()
	}

	layout := NewLayout(cfg.GridOptions(), m.start, cfg.Grid.Days)
	m.eng = newEngine(engineConfig{
		repo:   repo,
		log:    m.log,
		layout: layout,
		cfg:    cfg.InteractionConfig(),
		sched:  m.sched,
		now:    m.now,
	})
	m.sched = nil

	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return m.reload()
}

// defaultStart returns the first day to show: the current week for a
// seven-day grid, today otherwise.
func (m Model) defaultStart() time.Time {
	now := m.now()
	if m.config.Grid.Days == 7 {
		return schedule.WeekStart(now)
	}
	return schedule.TruncateToDay(now)
}

// reload fetches the visible range from the repository.
func (m Model) reload() tea.Cmd {
	if m.repo == nil {
		return nil
	}
	return commands.LoadRange(m.repo, m.eng.layout.Start(), m.eng.layout.DayCount())
}

// status shows a transient message.
func (m Model) status(msg string) tea.Cmd {
	return func() tea.Msg {
		return commands.StatusMsgCmd{Msg: msg}
	}
}

// Close tears down the interaction controllers.
func (m Model) Close() {
	m.eng.destroy()
}
