package timer

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FireMsg is delivered to the Bubble Tea update loop when a Loop task is due.
type FireMsg struct {
	ID uint64
}

// Loop schedules callbacks on a Bubble Tea program's update loop so they run
// on the same goroutine as input handling. Scheduling queues a tick command;
// the model drains queued commands after each update and hands FireMsg values
// back to Fire.
//
// Loop is not safe for concurrent use. All calls must happen from Update.
type Loop struct {
	nextID  uint64
	pending map[uint64]func()
	queued  []tea.Cmd
}

// NewLoop returns an empty Loop.
func NewLoop() *Loop {
	return &Loop{pending: make(map[uint64]func())}
}

// AfterFunc queues fn to run after d.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Task {
	l.nextID++
	id := l.nextID
	l.pending[id] = fn
	l.queued = append(l.queued, tea.Tick(d, func(time.Time) tea.Msg {
		return FireMsg{ID: id}
	}))
	return &loopTask{loop: l, id: id}
}

// Fire runs the callback for msg if it is still pending. It reports whether a
// callback ran.
func (l *Loop) Fire(msg FireMsg) bool {
	fn, ok := l.pending[msg.ID]
	if !ok {
		return false
	}
	delete(l.pending, msg.ID)
	fn()
	return true
}

// Drain returns the tick commands queued since the last call, batched.
// It returns nil when nothing was scheduled.
func (l *Loop) Drain() tea.Cmd {
	if len(l.queued) == 0 {
		return nil
	}
	cmds := l.queued
	l.queued = nil
	return tea.Batch(cmds...)
}

// Pending returns the number of tasks that have neither fired nor been cancelled.
func (l *Loop) Pending() int {
	return len(l.pending)
}

type loopTask struct {
	loop *Loop
	id   uint64
}

func (t *loopTask) Cancel() {
	delete(t.loop.pending, t.id)
}
