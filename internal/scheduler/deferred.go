package scheduler

import "time"

// Request describes a task the host event loop must arm.
type Request struct {
	ID    uint64
	Delay time.Duration
}

// Deferred hands scheduling to a host event loop. After records a request;
// the host drains requests, arms its own timers, and calls Fire with the
// task ID when each timer elapses. The TUI uses this to turn tasks into
// bubbletea tick commands so callbacks run inside Update.
type Deferred struct {
	clock   func() time.Time
	nextID  uint64
	tasks   map[uint64]*Task
	pending []Request
}

var _ Scheduler = (*Deferred)(nil)

// NewDeferred creates a Deferred scheduler reading time from clock.
// A nil clock uses time.Now.
func NewDeferred(clock func() time.Time) *Deferred {
	if clock == nil {
		clock = time.Now
	}
	return &Deferred{
		clock: clock,
		tasks: make(map[uint64]*Task),
	}
}

// Now returns the current time from the clock.
func (d *Deferred) Now() time.Time {
	return d.clock()
}

// After records a task and queues a Request for the host.
func (d *Deferred) After(delay time.Duration, fn func()) *Task {
	if delay < 0 {
		delay = 0
	}
	d.nextID++
	t := &Task{id: d.nextID, due: d.clock().Add(delay), fn: fn}
	d.tasks[t.id] = t
	d.pending = append(d.pending, Request{ID: t.id, Delay: delay})
	return t
}

// Drain returns and clears the requests recorded since the last call.
func (d *Deferred) Drain() []Request {
	reqs := d.pending
	d.pending = nil
	return reqs
}

// Fire runs the task with the given ID. Unknown, fired and cancelled tasks
// are ignored. Reports whether a callback ran.
func (d *Deferred) Fire(id uint64) bool {
	t, ok := d.tasks[id]
	if !ok {
		return false
	}
	delete(d.tasks, id)
	return t.run()
}

// Pending returns the number of live tasks.
func (d *Deferred) Pending() int {
	n := 0
	for _, t := range d.tasks {
		if !t.done {
			n++
		}
	}
	return n
}
