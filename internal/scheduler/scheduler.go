// Package scheduler provides the cancellable delayed tasks that drive trial
// presentation windows, stimulus ticks and the simulated training delay.
//
// Every implementation runs callbacks on the goroutine that advances it, so
// engines built on a Scheduler never need locks.
package scheduler

import "time"

// Scheduler schedules callbacks after a delay.
type Scheduler interface {
	// Now returns the scheduler's notion of the current time.
	Now() time.Time

	// After schedules fn to run once after d. The returned task can be
	// cancelled until it fires.
	After(d time.Duration, fn func()) *Task
}

// Task is a single scheduled callback.
type Task struct {
	id   uint64
	due  time.Time
	fn   func()
	done bool
}

// ID returns the task's identifier, unique within its scheduler.
func (t *Task) ID() uint64 {
	return t.id
}

// Due returns when the task is set to fire.
func (t *Task) Due() time.Time {
	return t.due
}

// Cancel stops the task from firing. It reports whether the call prevented
// the callback; cancelling a fired or already-cancelled task returns false.
// Cancel on a nil task is a no-op.
func (t *Task) Cancel() bool {
	if t == nil || t.done {
		return false
	}
	t.done = true
	return true
}

// Done reports whether the task fired or was cancelled.
func (t *Task) Done() bool {
	return t == nil || t.done
}

// run fires the callback unless the task is done.
func (t *Task) run() bool {
	if t.done {
		return false
	}
	t.done = true
	t.fn()
	return true
}
