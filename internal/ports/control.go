package ports

import "github.com/keydoro/keydoro/internal/domain"

// TimerSnapshot is a read-only view of one instance, safe to hand to
// control surfaces and displays.
type TimerSnapshot struct {
	Instance         string
	Phase            domain.TimerPhase
	CycleIndex       int
	RemainingSeconds int
	ExactSecondsLeft float64
	Settings         domain.TimerSettings
}

// Controller exposes the registry to out-of-band control surfaces (the
// MCP server, the simulator). A tap is a short press; a hold performs
// the long-press action directly.
type Controller interface {
	Tap(instance string)
	Hold(instance string)
	Snapshot(instance string) (TimerSnapshot, bool)
	UpdateSettings(instance string, raw map[string]any)
	Instances() []string
}
