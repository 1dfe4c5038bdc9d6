package domain

import (
	"github.com/spf13/cast"
)

// Settings field names as they appear in the raw host property bag.
const (
	SettingWorkTime     = "workTime"
	SettingBreakTime    = "breakTime"
	SettingNumCycles    = "numCycles"
	SettingSoundEnabled = "soundEnabled"
)

// Default values applied when a field is absent or unparsable.
const (
	DefaultWorkMinutes  = 25
	DefaultBreakMinutes = 5
	DefaultCycleCount   = 4

	MinCycleCount = 1
	MaxCycleCount = 4
)

// TimerSettings holds the validated per-instance configuration.
// Values are immutable once resolved; every settings-changed event
// produces a fresh value.
type TimerSettings struct {
	WorkMinutes  int
	BreakMinutes int
	CycleCount   int
	SoundEnabled bool
}

// DefaultSettings returns the settings used when the host supplies nothing.
func DefaultSettings() TimerSettings {
	return TimerSettings{
		WorkMinutes:  DefaultWorkMinutes,
		BreakMinutes: DefaultBreakMinutes,
		CycleCount:   DefaultCycleCount,
		SoundEnabled: false,
	}
}

// ResolveSettings normalizes a raw property bag into TimerSettings.
// It never fails: hosts deliver settings as loosely typed JSON (numbers
// arrive as float64, form fields as strings), so every field is coerced
// defensively and falls back to its default when absent or unparsable.
// The cycle count is clamped into [MinCycleCount, MaxCycleCount].
func ResolveSettings(raw map[string]any) TimerSettings {
	s := DefaultSettings()
	if raw == nil {
		return s
	}

	if v, ok := raw[SettingWorkTime]; ok {
		if n := cast.ToInt(v); n >= 1 {
			s.WorkMinutes = n
		}
	}
	if v, ok := raw[SettingBreakTime]; ok {
		if n := cast.ToInt(v); n >= 1 {
			s.BreakMinutes = n
		}
	}
	if v, ok := raw[SettingNumCycles]; ok {
		if n, err := cast.ToIntE(v); err == nil {
			s.CycleCount = clampInt(n, MinCycleCount, MaxCycleCount)
		}
	}
	if v, ok := raw[SettingSoundEnabled]; ok {
		s.SoundEnabled = cast.ToBool(v)
	}

	return s
}

// WorkSeconds returns the full work-phase duration in seconds.
func (s TimerSettings) WorkSeconds() int {
	return s.WorkMinutes * 60
}

// BreakSeconds returns the full break-phase duration in seconds.
func (s TimerSettings) BreakSeconds() int {
	return s.BreakMinutes * 60
}

func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
