// Package testutil provides test doubles shared across packages, most
// importantly a deterministic clock that fires scheduled callbacks
// synchronously as test code advances time.
package testutil

import (
	"sort"
	"sync"
	"time"

	"github.com/keydoro/keydoro/internal/ports"
)

// FakeClock is a ports.Clock driven entirely by Advance. Callbacks run
// on the caller's goroutine, in deadline order, which makes engine
// behavior fully deterministic: "pause then resume with zero elapsed
// time" really elapses zero time.
type FakeClock struct {
	mu   sync.Mutex
	now  time.Time
	next int
	work []*scheduled
}

type scheduled struct {
	id       int
	at       time.Time
	interval time.Duration // zero for one-shots
	fn       func()
	stopped  bool
}

// NewFakeClock starts the clock at a fixed, arbitrary instant.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
}

// Ensure FakeClock implements ports.Clock.
var _ ports.Clock = (*FakeClock)(nil)

// Now returns the fake current time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc schedules f once after d of fake time.
func (c *FakeClock) AfterFunc(d time.Duration, f func()) ports.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := &scheduled{id: c.next, at: c.now.Add(d), fn: f}
	c.next++
	c.work = append(c.work, s)
	return fakeTimer{c: c, s: s}
}

// TickFunc schedules f every d of fake time.
func (c *FakeClock) TickFunc(d time.Duration, f func()) ports.Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := &scheduled{id: c.next, at: c.now.Add(d), interval: d, fn: f}
	c.next++
	c.work = append(c.work, s)
	return fakeTicker{c: c, s: s}
}

// Advance moves the clock forward by d, firing every due callback in
// deadline order. Tickers re-arm until stopped.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	deadline := c.now.Add(d)
	for {
		s := c.nextDueLocked(deadline)
		if s == nil {
			break
		}
		if s.at.After(c.now) {
			c.now = s.at
		}
		if s.interval > 0 {
			s.at = s.at.Add(s.interval)
		} else {
			s.stopped = true
		}
		fn := s.fn
		c.mu.Unlock()
		fn()
		c.mu.Lock()
	}
	c.now = deadline
	c.mu.Unlock()
}

// Pending reports how many callbacks are still scheduled. Useful for
// asserting that teardown cancelled everything.
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, s := range c.work {
		if !s.stopped {
			n++
		}
	}
	return n
}

func (c *FakeClock) nextDueLocked(deadline time.Time) *scheduled {
	live := c.work[:0]
	for _, s := range c.work {
		if !s.stopped {
			live = append(live, s)
		}
	}
	c.work = live
	sort.Slice(c.work, func(i, j int) bool {
		if c.work[i].at.Equal(c.work[j].at) {
			return c.work[i].id < c.work[j].id
		}
		return c.work[i].at.Before(c.work[j].at)
	})
	for _, s := range c.work {
		if !s.at.After(deadline) {
			return s
		}
	}
	return nil
}

type fakeTimer struct {
	c *FakeClock
	s *scheduled
}

func (t fakeTimer) Stop() bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	was := !t.s.stopped
	t.s.stopped = true
	return was
}

type fakeTicker struct {
	c *FakeClock
	s *scheduled
}

func (t fakeTicker) Stop() {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	t.s.stopped = true
}
