package ui

import (
	"sync"
	"time"

	"atomicgo.dev/schedule"
)

// DebounceDelay is how long search input must stay idle before the view recomputes
const DebounceDelay = 300 * time.Millisecond

// Scheduler runs fn once after delay and returns a cancel function.
// It exists so the debounce policy is testable without real time.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) (cancel func())
}

type scheduleBackend struct{}

func (scheduleBackend) Schedule(delay time.Duration, fn func()) func() {
	task := schedule.After(delay, fn)
	return func() { task.Stop() }
}

// Debouncer coalesces rapid triggers into one delayed run: each Trigger
// cancels the pending task and reschedules it. Only the most recent function
// ever runs.
type Debouncer struct {
	delay     time.Duration
	scheduler Scheduler

	mu      sync.Mutex
	cancel  func()
	pending func()
	seq     int
}

// NewDebouncer creates a debouncer backed by a real timer
func NewDebouncer(delay time.Duration) *Debouncer {
	return NewDebouncerWithScheduler(delay, scheduleBackend{})
}

// NewDebouncerWithScheduler creates a debouncer with an injected scheduler
func NewDebouncerWithScheduler(delay time.Duration, scheduler Scheduler) *Debouncer {
	return &Debouncer{delay: delay, scheduler: scheduler}
}

// Trigger schedules fn to run after the idle delay, replacing any pending run
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancel != nil {
		d.cancel()
	}
	d.seq++
	seq := d.seq
	d.pending = fn
	d.cancel = d.scheduler.Schedule(d.delay, func() {
		d.mu.Lock()
		if d.seq != seq {
			d.mu.Unlock()
			return
		}
		d.pending = nil
		d.cancel = nil
		d.mu.Unlock()
		fn()
	})
}

// Flush cancels the pending timer and runs the pending function immediately,
// if there is one.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	fn := d.pending
	if d.cancel != nil {
		d.cancel()
	}
	d.seq++
	d.pending = nil
	d.cancel = nil
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Cancel drops any pending run without executing it
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		d.cancel()
	}
	d.seq++
	d.pending = nil
	d.cancel = nil
}
