package domain

import "time"

// PhaseFamily distinguishes work from break completions in the history log.
type PhaseFamily string

const (
	FamilyWork  PhaseFamily = "work"
	FamilyBreak PhaseFamily = "break"
)

// PhaseCompletion records one finished phase for the optional history log.
type PhaseCompletion struct {
	ID             string
	Instance       string
	Family         PhaseFamily
	PlannedSeconds int
	CycleIndex     int
	Forced         bool
	CompletedAt    time.Time
}

// Family returns the phase family of the instance's current phase.
func (ti *TimerInstance) Family() PhaseFamily {
	if ti.Phase.IsBreak() {
		return FamilyBreak
	}
	return FamilyWork
}

// DailySummary aggregates completed phases for one day.
type DailySummary struct {
	Date          time.Time
	WorkCompleted int
	BreaksTaken   int
	TotalWorkTime time.Duration
	ForcedSkips   int
}
