package testutil

import (
	"context"
	"sync"

	"github.com/keydoro/keydoro/internal/domain"
	"github.com/keydoro/keydoro/internal/ports"
)

// RecordingSink captures every title/image emission per instance.
type RecordingSink struct {
	mu     sync.Mutex
	Titles map[string][]string
	Images map[string][]string
}

var _ ports.HostSink = (*RecordingSink)(nil)

// NewRecordingSink returns an empty sink.
func NewRecordingSink() *RecordingSink {
	return &RecordingSink{
		Titles: make(map[string][]string),
		Images: make(map[string][]string),
	}
}

// SetTitle implements ports.HostSink.
func (s *RecordingSink) SetTitle(instance, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Titles[instance] = append(s.Titles[instance], title)
	return nil
}

// SetImage implements ports.HostSink.
func (s *RecordingSink) SetImage(instance, image string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Images[instance] = append(s.Images[instance], image)
	return nil
}

// ImageCount returns how many images were emitted for instance.
func (s *RecordingSink) ImageCount(instance string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Images[instance])
}

// LastImage returns the most recent image for instance, or "".
func (s *RecordingSink) LastImage(instance string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	imgs := s.Images[instance]
	if len(imgs) == 0 {
		return ""
	}
	return imgs[len(imgs)-1]
}

// RecordingSound counts completion-sound signals.
type RecordingSound struct {
	mu    sync.Mutex
	Plays int
}

var _ ports.SoundPlayer = (*RecordingSound)(nil)

// PlayCompletion implements ports.SoundPlayer.
func (s *RecordingSound) PlayCompletion() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Plays++
}

// Count returns how many times the completion sound was requested.
func (s *RecordingSound) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Plays
}

// RecordingHistory captures completion records in memory.
type RecordingHistory struct {
	mu      sync.Mutex
	Records []domain.PhaseCompletion
}

var _ ports.HistoryRecorder = (*RecordingHistory)(nil)

// RecordCompletion implements ports.HistoryRecorder.
func (h *RecordingHistory) RecordCompletion(_ context.Context, rec domain.PhaseCompletion) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Records = append(h.Records, rec)
	return nil
}

// All returns a copy of the captured records.
func (h *RecordingHistory) All() []domain.PhaseCompletion {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]domain.PhaseCompletion(nil), h.Records...)
}
