// Package clock provides the system implementation of the ports.Clock
// scheduling interface.
package clock

import (
	"sync"
	"time"

	"github.com/keydoro/keydoro/internal/ports"
)

// System is the wall-clock backed scheduler.
type System struct{}

// Ensure System implements ports.Clock.
var _ ports.Clock = System{}

// New returns the system clock.
func New() System {
	return System{}
}

// Now returns the current wall-clock time.
func (System) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules f once after d.
func (System) AfterFunc(d time.Duration, f func()) ports.Timer {
	return systemTimer{time.AfterFunc(d, f)}
}

// TickFunc schedules f every d until stopped.
func (System) TickFunc(d time.Duration, f func()) ports.Ticker {
	t := &systemTicker{
		ticker: time.NewTicker(d),
		done:   make(chan struct{}),
	}
	go func() {
		for {
			select {
			case <-t.done:
				return
			case <-t.ticker.C:
				f()
			}
		}
	}()
	return t
}

type systemTimer struct {
	t *time.Timer
}

func (s systemTimer) Stop() bool {
	return s.t.Stop()
}

type systemTicker struct {
	ticker *time.Ticker
	stop   sync.Once
	done   chan struct{}
}

func (s *systemTicker) Stop() {
	s.stop.Do(func() {
		s.ticker.Stop()
		close(s.done)
	})
}
