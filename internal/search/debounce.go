// Package search implements the live product search: a debounced input cell
// feeding the remote search endpoint.
package search

import (
	"sync"
	"time"
)

// Debouncer is a single-slot pending-operation cell. Each Trigger overwrites
// the slot, cancelling the previously scheduled function; the latest function
// fires exactly once after the quiet period.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn after the quiet period, cancelling any pending call.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels the pending call, if any.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
