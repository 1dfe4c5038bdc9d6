package domain

import (
	"math"
	"time"
)

// TimerInstance is the mutable state of one key on the host, addressed by
// an opaque instance id. All mutation is pure state-machine bookkeeping;
// scheduling of ticks and the long-press one-shot lives in the engine.
//
// Invariants:
//   - RemainingSeconds >= 0
//   - TargetEnd is non-nil iff the phase is running
//   - CycleIndex changes only when a break completes
type TimerInstance struct {
	Phase            TimerPhase
	CycleIndex       int
	TargetEnd        *time.Time
	RemainingSeconds int
}

// NewTimerInstance seeds a fresh instance in the idle work phase with the
// full work duration loaded.
func NewTimerInstance(s TimerSettings) *TimerInstance {
	return &TimerInstance{
		Phase:            PhaseIdleWork,
		RemainingSeconds: s.WorkSeconds(),
	}
}

// TotalSecondsForPhase returns the full duration of the current phase
// family: the work duration for work phases, the break duration otherwise.
func (ti *TimerInstance) TotalSecondsForPhase(s TimerSettings) int {
	if ti.Phase.IsBreak() {
		return s.BreakSeconds()
	}
	return s.WorkSeconds()
}

// Reset returns the instance to idle work with a zero cycle index and the
// full work duration loaded. Used for long-press reset, appear and
// settings-changed so the display always reflects current settings.
func (ti *TimerInstance) Reset(s TimerSettings) {
	ti.Phase = PhaseIdleWork
	ti.CycleIndex = 0
	ti.TargetEnd = nil
	ti.RemainingSeconds = s.WorkSeconds()
}

// Start begins the countdown from idle, loading the full phase duration
// and anchoring the deadline to the wall clock.
func (ti *TimerInstance) Start(s TimerSettings, now time.Time) {
	switch ti.Phase {
	case PhaseIdleWork:
		ti.Phase = PhaseRunningWork
		ti.RemainingSeconds = s.WorkSeconds()
	case PhaseIdleBreak:
		ti.Phase = PhaseRunningBreak
		ti.RemainingSeconds = s.BreakSeconds()
	default:
		return
	}
	end := now.Add(time.Duration(ti.RemainingSeconds) * time.Second)
	ti.TargetEnd = &end
}

// Pause freezes a running countdown. RemainingSeconds becomes the
// authoritative value until Resume re-anchors the deadline.
func (ti *TimerInstance) Pause(now time.Time) {
	switch ti.Phase {
	case PhaseRunningWork:
		ti.Phase = PhasePausedWork
	case PhaseRunningBreak:
		ti.Phase = PhasePausedBreak
	default:
		return
	}
	if ti.TargetEnd != nil {
		ti.RemainingSeconds = remainingWholeSeconds(*ti.TargetEnd, now)
	}
	ti.TargetEnd = nil
}

// Resume continues a paused countdown from the frozen RemainingSeconds.
// No wall-clock time is lost or gained across a pause/resume pair.
func (ti *TimerInstance) Resume(now time.Time) {
	switch ti.Phase {
	case PhasePausedWork:
		ti.Phase = PhaseRunningWork
	case PhasePausedBreak:
		ti.Phase = PhaseRunningBreak
	default:
		return
	}
	end := now.Add(time.Duration(ti.RemainingSeconds) * time.Second)
	ti.TargetEnd = &end
}

// Refresh recomputes RemainingSeconds from the wall-clock deadline while
// running. Anchoring to an absolute end time keeps elapsed time correct
// across delivery jitter or missed ticks. It reports whether the
// countdown has reached its deadline.
func (ti *TimerInstance) Refresh(now time.Time) (done bool) {
	if ti.TargetEnd == nil {
		return false
	}
	if !now.Before(*ti.TargetEnd) {
		ti.RemainingSeconds = 0
		return true
	}
	ti.RemainingSeconds = remainingWholeSeconds(*ti.TargetEnd, now)
	return false
}

// ExactSecondsLeft returns the precise fractional seconds remaining while
// running, for smooth ring animation. When not running it returns the
// frozen RemainingSeconds.
func (ti *TimerInstance) ExactSecondsLeft(now time.Time) float64 {
	if ti.TargetEnd == nil {
		return float64(ti.RemainingSeconds)
	}
	secs := ti.TargetEnd.Sub(now).Seconds()
	if secs < 0 {
		return 0
	}
	return secs
}

// CompletePhase performs the countdown-completion transition, whether the
// deadline fired naturally or a paused phase was force-completed by a
// long press. A completed work phase flips to idle break; a completed
// break flips back to idle work and advances the cycle index modulo the
// configured cycle count.
func (ti *TimerInstance) CompletePhase(s TimerSettings) {
	ti.TargetEnd = nil
	if ti.Phase.IsBreak() {
		ti.Phase = PhaseIdleWork
		ti.CycleIndex = (ti.CycleIndex + 1) % s.CycleCount
		ti.RemainingSeconds = s.WorkSeconds()
		return
	}
	ti.Phase = PhaseIdleBreak
	ti.RemainingSeconds = s.BreakSeconds()
}

func remainingWholeSeconds(end, now time.Time) int {
	ms := end.Sub(now).Milliseconds()
	if ms <= 0 {
		return 0
	}
	return int(math.Floor(float64(ms) / 1000.0))
}
