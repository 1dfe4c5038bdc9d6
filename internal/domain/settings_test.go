package domain

import (
	"testing"
)

func TestResolveSettings_Defaults(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
	}{
		{name: "nil bag", raw: nil},
		{name: "empty bag", raw: map[string]any{}},
		{
			name: "unparsable fields",
			raw: map[string]any{
				"workTime":  "not a number",
				"breakTime": "",
				"numCycles": "many",
			},
		},
	}

	want := TimerSettings{
		WorkMinutes:  25,
		BreakMinutes: 5,
		CycleCount:   4,
		SoundEnabled: false,
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveSettings(tt.raw); got != want {
				t.Errorf("ResolveSettings() = %+v, want %+v", got, want)
			}
		})
	}
}

func TestResolveSettings_Coercion(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want TimerSettings
	}{
		{
			name: "json numbers arrive as float64",
			raw: map[string]any{
				"workTime":  float64(50),
				"breakTime": float64(10),
				"numCycles": float64(2),
			},
			want: TimerSettings{WorkMinutes: 50, BreakMinutes: 10, CycleCount: 2},
		},
		{
			name: "form fields arrive as strings",
			raw: map[string]any{
				"workTime":     "15",
				"breakTime":    "3",
				"numCycles":    "3",
				"soundEnabled": "true",
			},
			want: TimerSettings{WorkMinutes: 15, BreakMinutes: 3, CycleCount: 3, SoundEnabled: true},
		},
		{
			name: "zero durations fall back to defaults",
			raw: map[string]any{
				"workTime":  0,
				"breakTime": 0,
			},
			want: TimerSettings{WorkMinutes: 25, BreakMinutes: 5, CycleCount: 4},
		},
		{
			name: "negative durations fall back to defaults",
			raw: map[string]any{
				"workTime":  -5,
				"breakTime": -1,
			},
			want: TimerSettings{WorkMinutes: 25, BreakMinutes: 5, CycleCount: 4},
		},
		{
			name: "cycle count clamps high",
			raw:  map[string]any{"numCycles": "99"},
			want: TimerSettings{WorkMinutes: 25, BreakMinutes: 5, CycleCount: 4},
		},
		{
			name: "cycle count clamps low",
			raw:  map[string]any{"numCycles": 0},
			want: TimerSettings{WorkMinutes: 25, BreakMinutes: 5, CycleCount: 1},
		},
		{
			name: "sound toggle",
			raw:  map[string]any{"soundEnabled": true},
			want: TimerSettings{WorkMinutes: 25, BreakMinutes: 5, CycleCount: 4, SoundEnabled: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveSettings(tt.raw); got != tt.want {
				t.Errorf("ResolveSettings(%v) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestTimerSettings_Seconds(t *testing.T) {
	s := TimerSettings{WorkMinutes: 25, BreakMinutes: 5}

	if got := s.WorkSeconds(); got != 1500 {
		t.Errorf("WorkSeconds() = %d, want 1500", got)
	}
	if got := s.BreakSeconds(); got != 300 {
		t.Errorf("BreakSeconds() = %d, want 300", got)
	}
}
