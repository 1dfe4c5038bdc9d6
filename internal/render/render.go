// Package render converts timer state into a 72x72 vector key face and
// suppresses redraws whose quantized visual signature has not changed.
package render

import (
	"math"
	"strconv"
	"time"

	"github.com/keydoro/keydoro/internal/domain"
)

// Quantization bounds update traffic: the ring position snaps to
// progressSteps discrete stops and every opacity to steps of 0.05, so a
// 50ms tick cadence only reaches the host when something perceptible
// moved.
const (
	progressSteps = 400
	opacityStep   = 0.05
)

// Signature is the quantized tuple of visual parameters used to decide
// whether a redraw is worth emitting. Two frames with equal signatures
// are pixel-identical.
type Signature struct {
	ProgressStep     int
	Title            string
	ContentOpacity   int
	GlobalOpacity    int
	PulseOpacity     int
	IndicatorOpacity int
	Phase            domain.TimerPhase
	CycleIndex       int
	CycleCount       int
}

// Frame is one rendered key face. Image is a self-contained SVG encoded
// as a base64 data URI; Title is the bare countdown numeral drawn inside
// the image (hosts that show their own titles get the empty string).
type Frame struct {
	Title string
	Image string
}

// Renderer computes visual parameters and assembles frames.
type Renderer struct {
	theme Theme
}

// New creates a renderer with the given theme. A zero Theme is replaced
// by DefaultTheme.
func New(theme Theme) *Renderer {
	if theme.WorkGradientStart == "" {
		theme = DefaultTheme()
	}
	return &Renderer{theme: theme}
}

// Render computes the frame for the given state. It returns nil when the
// visual signature equals last, along with the signature for the caller
// to store. secs is the precise fractional seconds remaining (the
// engine's tick supplies it as a float for smooth animation); now is the
// wall clock driving the pulse wave.
func (r *Renderer) Render(inst *domain.TimerInstance, s domain.TimerSettings, secs float64, now time.Time, last *Signature) (*Frame, *Signature) {
	p := computeVisual(inst, s, secs, now)
	sig := p.signature()
	if last != nil && *last == sig {
		return nil, last
	}
	return &Frame{Title: p.title, Image: r.drawSVG(p)}, &sig
}

// visual holds the un-encoded parameters of one frame.
type visual struct {
	phase            domain.TimerPhase
	cycleIndex       int
	cycleCount       int
	progress         float64
	title            string
	contentOpacity   float64
	globalOpacity    float64
	pulseOpacity     float64
	indicatorOpacity float64
}

func computeVisual(inst *domain.TimerInstance, s domain.TimerSettings, secs float64, now time.Time) visual {
	total := float64(inst.TotalSecondsForPhase(s))
	running := inst.Phase.IsRunning()
	paused := inst.Phase.IsPaused()

	v := visual{
		phase:            inst.Phase,
		cycleIndex:       inst.CycleIndex,
		cycleCount:       s.CycleCount,
		progress:         clamp01(secs / total),
		title:            formatCountdown(secs),
		contentOpacity:   1,
		globalOpacity:    1,
		pulseOpacity:     1,
		indicatorOpacity: 1,
	}

	if running {
		// Cross-fade the numeral across the seconds/minutes formatting
		// boundary: fully transparent at 60s, fully opaque at 61s.
		if secs >= 60 && secs < 61 {
			v.contentOpacity = secs - 60
		}
		// Fade the whole glyph out over the final two seconds.
		if secs < 2 {
			v.globalOpacity = clamp01(secs / 2)
		}
		v.indicatorOpacity = pulseWave(now, 0.6, 0.4)
	}
	if paused {
		v.pulseOpacity = pulseWave(now, 0.75, 0.25)
	}

	return v
}

func (v visual) signature() Signature {
	return Signature{
		ProgressStep:     int(math.Round(v.progress * progressSteps)),
		Title:            v.title,
		ContentOpacity:   quantizeOpacity(v.contentOpacity),
		GlobalOpacity:    quantizeOpacity(v.globalOpacity),
		PulseOpacity:     quantizeOpacity(v.pulseOpacity),
		IndicatorOpacity: quantizeOpacity(v.indicatorOpacity),
		Phase:            v.phase,
		CycleIndex:       v.cycleIndex,
		CycleCount:       v.cycleCount,
	}
}

// formatCountdown renders the remaining time as a bare number: whole
// seconds below one minute, floor minutes otherwise.
func formatCountdown(secs float64) string {
	if secs < 0 {
		secs = 0
	}
	if secs < 60 {
		return strconv.Itoa(int(math.Floor(secs)))
	}
	return strconv.Itoa(int(math.Floor(secs / 60)))
}

// pulseWave oscillates around center with the given amplitude on a sine
// wave of period ~3.77s, quantized to 0.05 steps to bound redraw
// frequency.
func pulseWave(now time.Time, center, amplitude float64) float64 {
	v := center + amplitude*math.Sin(float64(now.UnixMilli())/600)
	return quantized(v)
}

func quantizeOpacity(v float64) int {
	return int(math.Round(v / opacityStep))
}

func quantized(v float64) float64 {
	return float64(quantizeOpacity(v)) * opacityStep
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
