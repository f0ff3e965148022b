// Package debounce coalesces bursts of events into a single trailing call.
package debounce

import (
	"sync"
	"time"

	"github.com/five82/devinfo/internal/clock"
)

// DefaultInterval is the quiet period used when none is configured.
const DefaultInterval = 250 * time.Millisecond

// Debouncer wraps a function so that rapid Trigger calls collapse into one
// invocation, fired once the interval has passed without another Trigger.
type Debouncer struct {
	interval time.Duration
	clock    clock.Clock
	fn       func()

	mu    sync.Mutex
	timer clock.Timer
	seq   uint64
}

// New returns a Debouncer that calls fn on the trailing edge of each burst.
// A zero interval selects DefaultInterval; a nil clock selects clock.Real.
func New(interval time.Duration, clk clock.Clock, fn func()) *Debouncer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if clk == nil {
		clk = clock.Real{}
	}
	return &Debouncer{interval: interval, clock: clk, fn: fn}
}

// Trigger restarts the quiet period.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = d.clock.AfterFunc(d.interval, func() {
		d.mu.Lock()
		// A timer that already fired can race a later Trigger; only the
		// latest schedule may run.
		if seq != d.seq {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()

		d.fn()
	})
}

// Cancel drops any pending trailing call.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending reports whether a trailing call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Interval returns the quiet period.
func (d *Debouncer) Interval() time.Duration {
	return d.interval
}
