package engine

import (
	"sort"
	"sync"

	"github.com/keydoro/keydoro/internal/ports"
)

// Registry maps opaque host instance ids to engines. Instances are
// created on first appearance and torn down on disappearance; teardown
// cancels all of the instance's scheduled work so nothing leaks.
type Registry struct {
	mu       sync.Mutex
	cfg      Config
	defaults map[string]any
	engines  map[string]*Engine
}

// Ensure Registry can serve out-of-band control surfaces.
var _ ports.Controller = (*Registry)(nil)

// NewRegistry creates an empty registry. defaults is the raw settings
// bag merged underneath event-supplied settings (event keys win), so
// hosts that omit settings still get the configured defaults.
func NewRegistry(cfg Config, defaults map[string]any) *Registry {
	return &Registry{
		cfg:      cfg,
		defaults: defaults,
		engines:  make(map[string]*Engine),
	}
}

// Dispatch routes one host event to its engine, creating it on first
// contact and removing it on disappearance.
func (r *Registry) Dispatch(ev ports.Event) {
	if ev.Type == ports.EventDisappear {
		r.Remove(ev.Instance)
		return
	}

	ev.Settings = r.mergeDefaults(ev.Settings)
	r.GetOrCreate(ev.Instance).HandleEvent(ev)
}

// GetOrCreate returns the engine for id, creating it seeded with the
// configured defaults if it does not exist yet.
func (r *Registry) GetOrCreate(id string) *Engine {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.engines[id]; ok {
		return e
	}
	e := newEngine(id, r.defaults, r.cfg)
	r.engines[id] = e
	return e
}

// Remove tears down the engine for id, cancelling any live countdown,
// pulse driver and pending long-press timer.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	e, ok := r.engines[id]
	delete(r.engines, id)
	r.mu.Unlock()
	if ok {
		e.Close()
	}
}

// Close tears down every engine.
func (r *Registry) Close() {
	r.mu.Lock()
	engines := make([]*Engine, 0, len(r.engines))
	for _, e := range r.engines {
		engines = append(engines, e)
	}
	r.engines = make(map[string]*Engine)
	r.mu.Unlock()
	for _, e := range engines {
		e.Close()
	}
}

// Tap implements ports.Controller.
func (r *Registry) Tap(instance string) {
	r.GetOrCreate(instance).Tap()
}

// Hold implements ports.Controller.
func (r *Registry) Hold(instance string) {
	r.GetOrCreate(instance).Hold()
}

// Snapshot implements ports.Controller.
func (r *Registry) Snapshot(instance string) (ports.TimerSnapshot, bool) {
	r.mu.Lock()
	e, ok := r.engines[instance]
	r.mu.Unlock()
	if !ok {
		return ports.TimerSnapshot{}, false
	}
	return e.Snapshot(), true
}

// UpdateSettings implements ports.Controller.
func (r *Registry) UpdateSettings(instance string, raw map[string]any) {
	r.GetOrCreate(instance).UpdateSettings(r.mergeDefaults(raw))
}

// Instances implements ports.Controller.
func (r *Registry) Instances() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.engines))
	for id := range r.engines {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// mergeDefaults layers event-supplied settings over the configured
// defaults without mutating either map.
func (r *Registry) mergeDefaults(raw map[string]any) map[string]any {
	if len(r.defaults) == 0 {
		return raw
	}
	merged := make(map[string]any, len(r.defaults)+len(raw))
	for k, v := range r.defaults {
		merged[k] = v
	}
	for k, v := range raw {
		merged[k] = v
	}
	return merged
}
