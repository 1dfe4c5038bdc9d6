package domain

// TimerPhase identifies one of the six points in the timer's state machine:
// idle, running or paused, crossed with the work or break family.
type TimerPhase string

const (
	PhaseIdleWork     TimerPhase = "idle_work"
	PhaseRunningWork  TimerPhase = "running_work"
	PhasePausedWork   TimerPhase = "paused_work"
	PhaseIdleBreak    TimerPhase = "idle_break"
	PhaseRunningBreak TimerPhase = "running_break"
	PhasePausedBreak  TimerPhase = "paused_break"
)

// IsWork reports whether the phase belongs to the work family.
func (p TimerPhase) IsWork() bool {
	return p == PhaseIdleWork || p == PhaseRunningWork || p == PhasePausedWork
}

// IsBreak reports whether the phase belongs to the break family.
func (p TimerPhase) IsBreak() bool {
	return p == PhaseIdleBreak || p == PhaseRunningBreak || p == PhasePausedBreak
}

// IsRunning reports whether a countdown is active in this phase.
func (p TimerPhase) IsRunning() bool {
	return p == PhaseRunningWork || p == PhaseRunningBreak
}

// IsPaused reports whether the phase is paused mid-countdown.
func (p TimerPhase) IsPaused() bool {
	return p == PhasePausedWork || p == PhasePausedBreak
}

// IsIdle reports whether the phase is waiting to be started.
func (p TimerPhase) IsIdle() bool {
	return p == PhaseIdleWork || p == PhaseIdleBreak
}

// GetPhaseLabel returns a human-readable label for the phase.
func GetPhaseLabel(p TimerPhase) string {
	switch p {
	case PhaseIdleWork:
		return "Work (ready)"
	case PhaseRunningWork:
		return "Work"
	case PhasePausedWork:
		return "Work (paused)"
	case PhaseIdleBreak:
		return "Break (ready)"
	case PhaseRunningBreak:
		return "Break"
	case PhasePausedBreak:
		return "Break (paused)"
	default:
		return "Unknown"
	}
}
