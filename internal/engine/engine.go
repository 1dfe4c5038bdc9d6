// Package engine owns per-instance timer state: the six-phase state
// machine, the wall-clock-anchored countdown, tap/long-press
// disambiguation, and the redraw drivers.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/keydoro/keydoro/internal/domain"
	"github.com/keydoro/keydoro/internal/ports"
	"github.com/keydoro/keydoro/internal/render"
)

const (
	// TickInterval is the countdown/redraw cadence (20 updates per
	// second). The renderer's signature suppression keeps actual host
	// traffic far below this.
	TickInterval = 50 * time.Millisecond

	// LongPressThreshold is how long a press must be held to count as a
	// long press instead of a tap.
	LongPressThreshold = 1500 * time.Millisecond
)

// Config carries the collaborators every engine needs. History is
// optional; the others are required.
type Config struct {
	Clock    ports.Clock
	Sink     ports.HostSink
	Sound    ports.SoundPlayer
	History  ports.HistoryRecorder
	Renderer *render.Renderer
}

// Engine drives one timer instance. All event handling and every
// scheduled callback run under the instance mutex held by the owning
// Registry, preserving the cooperative single-threaded discipline; two
// engines never share state.
type Engine struct {
	mu       sync.Mutex
	id       string
	cfg      Config
	settings domain.TimerSettings
	inst     *domain.TimerInstance

	// countdown runs only while running, pulse only while paused; the
	// two are mutually exclusive and starting one cancels the other.
	countdown ports.Ticker
	pulse     ports.Ticker

	longPress    ports.Timer
	didLongPress bool

	lastSig *render.Signature
	closed  bool
}

func newEngine(id string, raw map[string]any, cfg Config) *Engine {
	settings := domain.ResolveSettings(raw)
	return &Engine{
		id:       id,
		cfg:      cfg,
		settings: settings,
		inst:     domain.NewTimerInstance(settings),
	}
}

// HandleEvent applies one host event. Disappear is handled by the
// registry, which closes the engine instead.
func (e *Engine) HandleEvent(ev ports.Event) {
	e.withLock(func() { e.handleEvent(ev) })
}

// Tap performs the short-press action directly, bypassing press-down/up
// disambiguation. Used by control surfaces that deliver taps atomically.
func (e *Engine) Tap() {
	e.withLock(func() {
		if !e.closed {
			e.shortPress()
		}
	})
}

// Hold performs the long-press action directly: skip while paused, full
// reset otherwise.
func (e *Engine) Hold() {
	e.withLock(func() {
		if e.closed {
			return
		}
		e.cancelLongPress()
		if e.inst.Phase.IsPaused() {
			e.complete(true)
			return
		}
		e.reset()
	})
}

// UpdateSettings re-resolves the raw settings and resets the instance.
func (e *Engine) UpdateSettings(raw map[string]any) {
	e.withLock(func() {
		if !e.closed {
			e.applySettings(raw)
		}
	})
}

// Snapshot returns a read-only view of the instance.
func (e *Engine) Snapshot() ports.TimerSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

// Close cancels every scheduled callback owned by this instance. After
// Close no further renders or completion side effects occur.
func (e *Engine) Close() {
	e.withLock(e.close)
}

func (e *Engine) withLock(f func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	f()
}

func (e *Engine) handleEvent(ev ports.Event) {
	if e.closed {
		return
	}
	switch ev.Type {
	case ports.EventAppear, ports.EventSettingsChanged:
		e.applySettings(ev.Settings)
	case ports.EventPressDown:
		e.pressDown()
	case ports.EventPressUp:
		e.pressUp()
	}
}

// applySettings re-resolves the raw settings and fully resets the
// instance, so the displayed duration always reflects current settings
// and no stale countdown survives a configuration edit.
func (e *Engine) applySettings(raw map[string]any) {
	e.settings = domain.ResolveSettings(raw)
	e.reset()
}

func (e *Engine) pressDown() {
	e.didLongPress = false
	e.cancelLongPress()
	e.longPress = e.cfg.Clock.AfterFunc(LongPressThreshold, func() {
		e.withLock(func() {
			e.longPressFired()
		})
	})
}

func (e *Engine) pressUp() {
	e.cancelLongPress()
	if e.didLongPress {
		// The long-press action already ran; swallow the release.
		e.didLongPress = false
		return
	}
	e.shortPress()
}

// shortPress is the tap transition: start from idle, pause while
// running, resume while paused. The family never changes on a tap.
func (e *Engine) shortPress() {
	now := e.cfg.Clock.Now()
	switch {
	case e.inst.Phase.IsIdle():
		e.inst.Start(e.settings, now)
		e.startCountdown()
	case e.inst.Phase.IsRunning():
		e.inst.Pause(now)
		e.stopCountdown()
		e.startPulse()
	case e.inst.Phase.IsPaused():
		e.inst.Resume(now)
		e.stopPulse()
		e.startCountdown()
	}
	e.render(e.inst.ExactSecondsLeft(now))
}

// longPressFired runs once when a press has been held for the
// threshold. While paused it force-completes the phase (skip to next);
// from any other phase it performs a full reset.
func (e *Engine) longPressFired() {
	if e.closed {
		// A system timer that has already fired survives cancellation;
		// never act on a torn-down instance.
		return
	}
	e.didLongPress = true
	e.longPress = nil
	if e.inst.Phase.IsPaused() {
		e.complete(true)
		return
	}
	e.reset()
}

// onTick refreshes the countdown from the absolute deadline. The
// remaining time is recomputed from the wall clock on every tick rather
// than decremented, so jitter and missed ticks never skew the timer.
func (e *Engine) onTick() {
	if e.closed || e.inst.TargetEnd == nil {
		return
	}
	now := e.cfg.Clock.Now()
	secs := e.inst.ExactSecondsLeft(now)
	if e.inst.Refresh(now) {
		e.complete(false)
		return
	}
	e.render(secs)
}

// complete performs the countdown-completion transition, either because
// the deadline passed or because a paused phase was force-completed by
// a long press.
func (e *Engine) complete(forced bool) {
	e.stopCountdown()
	e.stopPulse()

	rec := domain.PhaseCompletion{
		Instance:       e.id,
		Family:         e.inst.Family(),
		PlannedSeconds: e.inst.TotalSecondsForPhase(e.settings),
		CycleIndex:     e.inst.CycleIndex,
		Forced:         forced,
		CompletedAt:    e.cfg.Clock.Now(),
	}

	e.inst.CompletePhase(e.settings)

	if e.settings.SoundEnabled && e.cfg.Sound != nil {
		e.cfg.Sound.PlayCompletion()
	}
	if e.cfg.History != nil {
		// Observational only; a failed write never blocks the timer.
		_ = e.cfg.History.RecordCompletion(context.Background(), rec)
	}

	e.render(float64(e.inst.RemainingSeconds))
}

// reset cancels all scheduled work and returns to idle work with the
// full work duration loaded.
func (e *Engine) reset() {
	e.stopCountdown()
	e.stopPulse()
	e.inst.Reset(e.settings)
	e.render(float64(e.inst.RemainingSeconds))
}

func (e *Engine) startCountdown() {
	e.stopPulse()
	e.stopCountdown()
	e.countdown = e.cfg.Clock.TickFunc(TickInterval, func() {
		e.withLock(e.onTick)
	})
}

func (e *Engine) startPulse() {
	e.stopCountdown()
	e.stopPulse()
	e.pulse = e.cfg.Clock.TickFunc(TickInterval, func() {
		e.withLock(func() {
			if e.closed {
				return
			}
			e.render(float64(e.inst.RemainingSeconds))
		})
	})
}

// Cancellations are defensive no-ops when nothing is scheduled, so
// double-cancellation is never an error.
func (e *Engine) stopCountdown() {
	if e.countdown != nil {
		e.countdown.Stop()
		e.countdown = nil
	}
}

func (e *Engine) stopPulse() {
	if e.pulse != nil {
		e.pulse.Stop()
		e.pulse = nil
	}
}

func (e *Engine) cancelLongPress() {
	if e.longPress != nil {
		e.longPress.Stop()
		e.longPress = nil
	}
}

// render pushes a frame to the host unless the quantized visual
// signature is unchanged since the last emission.
func (e *Engine) render(secs float64) {
	frame, sig := e.cfg.Renderer.Render(e.inst, e.settings, secs, e.cfg.Clock.Now(), e.lastSig)
	e.lastSig = sig
	if frame == nil {
		return
	}
	// The numeral is drawn inside the image, so the host title stays
	// empty.
	_ = e.cfg.Sink.SetTitle(e.id, "")
	_ = e.cfg.Sink.SetImage(e.id, frame.Image)
}

func (e *Engine) close() {
	e.stopCountdown()
	e.stopPulse()
	e.cancelLongPress()
	e.closed = true
}

func (e *Engine) snapshot() ports.TimerSnapshot {
	return ports.TimerSnapshot{
		Instance:         e.id,
		Phase:            e.inst.Phase,
		CycleIndex:       e.inst.CycleIndex,
		RemainingSeconds: e.inst.RemainingSeconds,
		ExactSecondsLeft: e.inst.ExactSecondsLeft(e.cfg.Clock.Now()),
		Settings:         e.settings,
	}
}
