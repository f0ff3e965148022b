// Package clock abstracts timer scheduling so debounce and delayed delivery
// can be driven deterministically in tests.
package clock

import (
	"sort"
	"sync"
	"time"
)

// Timer is the subset of *time.Timer the reporter relies on.
type Timer interface {
	Stop() bool
}

// Clock schedules functions to run after a delay.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Real schedules on the runtime timer heap.
type Real struct{}

// AfterFunc implements Clock.
func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Fake is a manually advanced clock. Callbacks run synchronously on the
// goroutine calling Advance, in due-time order.
type Fake struct {
	mu     sync.Mutex
	now    time.Duration
	seq    uint64
	timers []*fakeTimer
}

type fakeTimer struct {
	clock *Fake
	due   time.Duration
	seq   uint64
	f     func()
}

// NewFake returns a Fake positioned at time zero.
func NewFake() *Fake {
	return &Fake{}
}

// AfterFunc implements Clock.
func (c *Fake) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d < 0 {
		d = 0
	}
	c.seq++
	t := &fakeTimer{clock: c, due: c.now + d, seq: c.seq, f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by d, firing every timer that comes due.
// Timers scheduled by fired callbacks also fire if they fall inside the window.
func (c *Fake) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()

	for {
		c.mu.Lock()
		next := c.popDueLocked(target)
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		c.now = next.due
		c.mu.Unlock()
		next.f()
	}
}

// Pending reports how many timers are scheduled and not yet fired or stopped.
func (c *Fake) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

func (c *Fake) popDueLocked(target time.Duration) *fakeTimer {
	if len(c.timers) == 0 {
		return nil
	}
	sort.SliceStable(c.timers, func(i, j int) bool {
		if c.timers[i].due == c.timers[j].due {
			return c.timers[i].seq < c.timers[j].seq
		}
		return c.timers[i].due < c.timers[j].due
	})
	head := c.timers[0]
	if head.due > target {
		return nil
	}
	c.timers = c.timers[1:]
	return head
}

func (t *fakeTimer) Stop() bool {
	c := t.clock
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, pending := range c.timers {
		if pending == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return true
		}
	}
	return false
}
