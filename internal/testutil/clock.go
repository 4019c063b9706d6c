package testutil

import (
	"sort"
	"sync"
	"time"

	"github.com/roach88/rsvp/internal/engine"
)

// Epoch is the time a FakeClock starts at.
var Epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// FakeClock is a manually advanced engine.Clock for tests.
//
// Time only moves when the test calls Advance or Stall. Advance fires due
// callbacks synchronously on the calling goroutine, in deadline order (ties
// in scheduling order), with Now() set to each callback's deadline while it
// runs. Callbacks may schedule further callbacks; those fire within the same
// Advance if they fall due.
//
// Thread-safety: all methods are safe for concurrent use, but callbacks run
// on whichever goroutine calls Advance.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	seq    int64
	timers []*FakeTimer
}

// FakeTimer is a callback pending on a FakeClock.
type FakeTimer struct {
	clock   *FakeClock
	at      time.Time
	seq     int64
	fn      func()
	stopped bool
}

// NewFakeClock creates a clock at Epoch with no pending timers.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: Epoch}
}

// Now returns the current virtual time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Elapsed returns the virtual time since Epoch.
func (c *FakeClock) Elapsed() time.Duration {
	return c.Now().Sub(Epoch)
}

// AfterFunc schedules f to run d after the current virtual time.
// Negative d is treated as zero.
func (c *FakeClock) AfterFunc(d time.Duration, f func()) engine.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	if d < 0 {
		d = 0
	}
	c.seq++
	t := &FakeTimer{clock: c, at: c.now.Add(d), seq: c.seq, fn: f}
	c.timers = append(c.timers, t)
	return t
}

// Stop removes the timer. It reports false if the timer already fired or
// was stopped.
func (t *FakeTimer) Stop() bool {
	c := t.clock
	c.mu.Lock()
	defer c.mu.Unlock()

	if t.stopped {
		return false
	}
	t.stopped = true
	for i, pending := range c.timers {
		if pending == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return true
		}
	}
	return false
}

// Advance moves virtual time forward by d, firing every callback that falls
// due on the way.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		t := c.popDue(target)
		if t == nil {
			if target.After(c.now) {
				c.now = target
			}
			c.mu.Unlock()
			return
		}
		if t.at.After(c.now) {
			c.now = t.at
		}
		c.mu.Unlock()

		t.fn()
	}
}

// Stall moves virtual time forward by d without firing anything, as if the
// host were busy. Overdue callbacks fire on the next Advance, late.
func (c *FakeClock) Stall(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Pending returns the number of scheduled callbacks.
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// NextDelay returns the time until the earliest pending callback.
// It reports false if nothing is pending.
func (c *FakeClock) NextDelay() (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.timers) == 0 {
		return 0, false
	}
	c.sortTimers()
	return c.timers[0].at.Sub(c.now), true
}

// popDue removes and returns the earliest timer due at or before target.
// Caller holds c.mu.
func (c *FakeClock) popDue(target time.Time) *FakeTimer {
	if len(c.timers) == 0 {
		return nil
	}
	c.sortTimers()
	t := c.timers[0]
	if t.at.After(target) {
		return nil
	}
	c.timers = c.timers[1:]
	t.stopped = true
	return t
}

func (c *FakeClock) sortTimers() {
	sort.SliceStable(c.timers, func(i, j int) bool {
		if c.timers[i].at.Equal(c.timers[j].at) {
			return c.timers[i].seq < c.timers[j].seq
		}
		return c.timers[i].at.Before(c.timers[j].at)
	})
}
