// Package timer provides cancellable one-shot delayed tasks. Controllers use it
// for hover and click debouncing and for restoring state after a short delay.
package timer

import (
	"sync"
	"time"
)

// Task is a pending delayed callback.
type Task interface {
	// Cancel stops the callback from running. Cancelling a task that has
	// already fired or been cancelled is a no-op.
	Cancel()
}

// Scheduler schedules callbacks to run once after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Task
}

// Real schedules callbacks with time.AfterFunc. Callbacks run on their own
// goroutine; callers that share state with them must serialize access.
type Real struct{}

// AfterFunc schedules fn after d.
func (Real) AfterFunc(d time.Duration, fn func()) Task {
	return &realTask{t: time.AfterFunc(d, fn)}
}

type realTask struct {
	once sync.Once
	t    *time.Timer
}

func (r *realTask) Cancel() {
	r.once.Do(func() { r.t.Stop() })
}

// Nop never runs anything. Useful when a controller has no delayed behavior.
type Nop struct{}

// AfterFunc discards fn.
func (Nop) AfterFunc(time.Duration, func()) Task { return nopTask{} }

type nopTask struct{}

func (nopTask) Cancel() {}
