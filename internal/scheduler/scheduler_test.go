package scheduler

import (
	"testing"
	"time"
)

var epoch = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

func TestVirtualFiresInDeadlineOrder(t *testing.T) {
	v := NewVirtual(epoch)
	var order []string
	v.After(300*time.Millisecond, func() { order = append(order, "c") })
	v.After(100*time.Millisecond, func() { order = append(order, "a") })
	v.After(100*time.Millisecond, func() { order = append(order, "b") })

	if n := v.Advance(99 * time.Millisecond); n != 0 {
		t.Fatalf("fired %d tasks before deadline", n)
	}
	if n := v.Advance(time.Second); n != 3 {
		t.Fatalf("fired %d tasks, want 3", n)
	}
	if got := order[0] + order[1] + order[2]; got != "abc" {
		t.Errorf("order = %s, want abc", got)
	}
	if !v.Now().Equal(epoch.Add(1099 * time.Millisecond)) {
		t.Errorf("Now = %v", v.Now())
	}
}

func TestVirtualCallbackSeesDeadlineTime(t *testing.T) {
	v := NewVirtual(epoch)
	var at time.Time
	v.After(1500*time.Millisecond, func() { at = v.Now() })
	v.Advance(10 * time.Second)
	if !at.Equal(epoch.Add(1500 * time.Millisecond)) {
		t.Errorf("callback time = %v", at)
	}
}

func TestVirtualCancel(t *testing.T) {
	v := NewVirtual(epoch)
	fired := false
	task := v.After(time.Second, func() { fired = true })
	if !task.Cancel() {
		t.Fatal("Cancel returned false for live task")
	}
	if task.Cancel() {
		t.Error("second Cancel returned true")
	}
	v.Advance(2 * time.Second)
	if fired {
		t.Error("cancelled task fired")
	}
	if v.Pending() != 0 {
		t.Errorf("Pending = %d", v.Pending())
	}
}

func TestVirtualRescheduleWithinWindow(t *testing.T) {
	v := NewVirtual(epoch)
	ticks := 0
	var tick func()
	tick = func() {
		ticks++
		if ticks < 5 {
			v.After(time.Second, tick)
		}
	}
	v.After(time.Second, tick)
	v.Advance(3 * time.Second)
	if ticks != 3 {
		t.Fatalf("ticks = %d after 3s, want 3", ticks)
	}
	if n := v.Flush(100); n != 2 {
		t.Errorf("Flush fired %d, want 2", n)
	}
	if !v.Now().Equal(epoch.Add(5 * time.Second)) {
		t.Errorf("Now after flush = %v", v.Now())
	}
}

func TestNilTaskCancel(t *testing.T) {
	var task *Task
	if task.Cancel() {
		t.Error("nil Cancel returned true")
	}
	if !task.Done() {
		t.Error("nil task should report done")
	}
}

func TestDeferredDrainAndFire(t *testing.T) {
	now := epoch
	d := NewDeferred(func() time.Time { return now })
	calls := 0
	a := d.After(2*time.Second, func() { calls++ })
	b := d.After(time.Second, func() { calls += 10 })

	reqs := d.Drain()
	if len(reqs) != 2 {
		t.Fatalf("Drain = %d requests", len(reqs))
	}
	if reqs[0].ID != a.ID() || reqs[0].Delay != 2*time.Second {
		t.Errorf("first request = %+v", reqs[0])
	}
	if len(d.Drain()) != 0 {
		t.Error("second Drain not empty")
	}

	b.Cancel()
	if d.Fire(b.ID()) {
		t.Error("cancelled task fired")
	}
	if !d.Fire(a.ID()) {
		t.Error("live task did not fire")
	}
	if d.Fire(a.ID()) {
		t.Error("task fired twice")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if d.Pending() != 0 {
		t.Errorf("Pending = %d", d.Pending())
	}
}
