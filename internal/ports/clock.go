package ports

import "time"

// Timer is a cancellable one-shot callback.
type Timer interface {
	// Stop cancels the callback if it has not fired yet. Stopping an
	// already-fired or already-stopped timer is a no-op.
	Stop() bool
}

// Ticker is a cancellable repeating callback.
type Ticker interface {
	Stop()
}

// Clock abstracts wall-clock reads and callback scheduling so the engine
// can be driven deterministically in tests. All waiting in the core is
// expressed as scheduled future invocations; nothing blocks.
type Clock interface {
	Now() time.Time

	// AfterFunc schedules f to run once after d.
	AfterFunc(d time.Duration, f func()) Timer

	// TickFunc schedules f to run every d until the ticker is stopped.
	TickFunc(d time.Duration, f func()) Ticker
}
