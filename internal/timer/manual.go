package timer

import (
	"sort"
	"time"
)

// Manual is a deterministic scheduler driven by Advance. Tasks fire in due
// order; tasks due at the same instant fire in scheduling order.
type Manual struct {
	now   time.Time
	seq   uint64
	tasks []*manualTask
}

// NewManual returns a Manual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the manual clock's current time.
func (m *Manual) Now() time.Time {
	return m.now
}

// AfterFunc schedules fn to run when the clock passes now+d.
func (m *Manual) AfterFunc(d time.Duration, fn func()) Task {
	m.seq++
	t := &manualTask{due: m.now.Add(d), seq: m.seq, fn: fn}
	m.tasks = append(m.tasks, t)
	return t
}

// Advance moves the clock forward by d, running every task that comes due.
// Tasks scheduled by a running callback fire in the same call if they are due.
func (m *Manual) Advance(d time.Duration) {
	target := m.now.Add(d)
	for {
		next := m.nextDue(target)
		if next == nil {
			break
		}
		m.now = next.due
		next.done = true
		next.fn()
	}
	m.now = target
	m.compact()
}

// Pending returns the number of tasks still waiting to fire.
func (m *Manual) Pending() int {
	n := 0
	for _, t := range m.tasks {
		if !t.done {
			n++
		}
	}
	return n
}

func (m *Manual) nextDue(target time.Time) *manualTask {
	sort.SliceStable(m.tasks, func(i, j int) bool {
		a, b := m.tasks[i], m.tasks[j]
		if !a.due.Equal(b.due) {
			return a.due.Before(b.due)
		}
		return a.seq < b.seq
	})
	for _, t := range m.tasks {
		if t.done {
			continue
		}
		if t.due.After(target) {
			return nil
		}
		return t
	}
	return nil
}

func (m *Manual) compact() {
	live := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.done {
			live = append(live, t)
		}
	}
	m.tasks = live
}

type manualTask struct {
	due  time.Time
	seq  uint64
	fn   func()
	done bool
}

func (t *manualTask) Cancel() {
	t.done = true
}
