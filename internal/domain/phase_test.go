package domain

import "testing"

func TestTimerPhase_Predicates(t *testing.T) {
	tests := []struct {
		phase   TimerPhase
		work    bool
		brk     bool
		running bool
		paused  bool
		idle    bool
	}{
		{PhaseIdleWork, true, false, false, false, true},
		{PhaseRunningWork, true, false, true, false, false},
		{PhasePausedWork, true, false, false, true, false},
		{PhaseIdleBreak, false, true, false, false, true},
		{PhaseRunningBreak, false, true, true, false, false},
		{PhasePausedBreak, false, true, false, true, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.phase), func(t *testing.T) {
			if got := tt.phase.IsWork(); got != tt.work {
				t.Errorf("IsWork() = %v, want %v", got, tt.work)
			}
			if got := tt.phase.IsBreak(); got != tt.brk {
				t.Errorf("IsBreak() = %v, want %v", got, tt.brk)
			}
			if got := tt.phase.IsRunning(); got != tt.running {
				t.Errorf("IsRunning() = %v, want %v", got, tt.running)
			}
			if got := tt.phase.IsPaused(); got != tt.paused {
				t.Errorf("IsPaused() = %v, want %v", got, tt.paused)
			}
			if got := tt.phase.IsIdle(); got != tt.idle {
				t.Errorf("IsIdle() = %v, want %v", got, tt.idle)
			}
		})
	}
}

func TestGetPhaseLabel(t *testing.T) {
	tests := []struct {
		phase TimerPhase
		want  string
	}{
		{PhaseIdleWork, "Work (ready)"},
		{PhaseRunningWork, "Work"},
		{PhasePausedBreak, "Break (paused)"},
		{TimerPhase("bogus"), "Unknown"},
	}

	for _, tt := range tests {
		if got := GetPhaseLabel(tt.phase); got != tt.want {
			t.Errorf("GetPhaseLabel(%q) = %q, want %q", tt.phase, got, tt.want)
		}
	}
}
