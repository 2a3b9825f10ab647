package scheduler

import (
	"sort"
	"time"
)

// Virtual is a manually advanced scheduler. Tests and headless simulations
// use it to run timed engines without wall-clock delays.
type Virtual struct {
	now    time.Time
	nextID uint64
	queue  []*Task
}

var _ Scheduler = (*Virtual)(nil)

// NewVirtual creates a Virtual scheduler whose clock starts at start.
func NewVirtual(start time.Time) *Virtual {
	return &Virtual{now: start}
}

// Now returns the virtual time.
func (v *Virtual) Now() time.Time {
	return v.now
}

// After schedules fn at Now()+d. Negative delays are treated as zero.
func (v *Virtual) After(d time.Duration, fn func()) *Task {
	if d < 0 {
		d = 0
	}
	v.nextID++
	t := &Task{id: v.nextID, due: v.now.Add(d), fn: fn}
	v.queue = append(v.queue, t)
	return t
}

// Advance moves the clock forward by d, firing every task that falls due in
// deadline order (ties in scheduling order). Tasks scheduled by callbacks
// fire in the same call if they fall within the window. Returns the number
// of callbacks run.
func (v *Virtual) Advance(d time.Duration) int {
	target := v.now.Add(d)
	fired := 0
	for {
		t := v.popDue(target)
		if t == nil {
			break
		}
		v.now = t.due
		if t.run() {
			fired++
		}
	}
	v.now = target
	return fired
}

// Flush fires tasks until none remain, advancing the clock to each
// deadline. It stops after limit callbacks to guard against tasks that
// reschedule forever. Returns the number of callbacks run.
func (v *Virtual) Flush(limit int) int {
	fired := 0
	for fired < limit {
		v.compact()
		if len(v.queue) == 0 {
			break
		}
		next := v.queue[0].due
		fired += v.Advance(next.Sub(v.now))
	}
	return fired
}

// Pending returns the number of tasks that have neither fired nor been
// cancelled.
func (v *Virtual) Pending() int {
	v.compact()
	return len(v.queue)
}

func (v *Virtual) popDue(target time.Time) *Task {
	v.compact()
	if len(v.queue) == 0 || v.queue[0].due.After(target) {
		return nil
	}
	t := v.queue[0]
	v.queue = v.queue[1:]
	return t
}

// compact drops done tasks and keeps the queue ordered by (due, id).
func (v *Virtual) compact() {
	live := v.queue[:0]
	for _, t := range v.queue {
		if !t.done {
			live = append(live, t)
		}
	}
	v.queue = live
	sort.SliceStable(v.queue, func(i, j int) bool {
		if v.queue[i].due.Equal(v.queue[j].due) {
			return v.queue[i].id < v.queue[j].id
		}
		return v.queue[i].due.Before(v.queue[j].due)
	})
}
