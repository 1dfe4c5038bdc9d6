// Package hostio speaks the newline-delimited JSON protocol with the
// host process: input events on one stream, title/image operations on
// another.
package hostio

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/keydoro/keydoro/internal/ports"
)

// operation is one output line to the host.
type operation struct {
	Op       string  `json:"op"`
	Instance string  `json:"instance"`
	Title    *string `json:"title,omitempty"`
	Image    *string `json:"image,omitempty"`
}

// Sink writes setTitle/setImage operations as JSON lines.
type Sink struct {
	mu  sync.Mutex
	enc *json.Encoder
}

var _ ports.HostSink = (*Sink)(nil)

// NewSink wraps w in a JSON-lines host sink.
func NewSink(w io.Writer) *Sink {
	return &Sink{enc: json.NewEncoder(w)}
}

// SetTitle implements ports.HostSink.
func (s *Sink) SetTitle(instance, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enc.Encode(operation{Op: "setTitle", Instance: instance, Title: &title})
}

// SetImage implements ports.HostSink.
func (s *Sink) SetImage(instance, image string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enc.Encode(operation{Op: "setImage", Instance: instance, Image: &image})
}

// Listen decodes events from r line by line and hands each to dispatch
// until r is exhausted or the context is cancelled. Malformed lines are
// skipped and reported through warn (which may be nil).
func Listen(ctx context.Context, r io.Reader, dispatch func(ports.Event), warn func(error)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var ev ports.Event
		if err := json.Unmarshal(line, &ev); err != nil {
			if warn != nil {
				warn(fmt.Errorf("skipping malformed event: %w", err))
			}
			continue
		}
		if ev.Instance == "" {
			if warn != nil {
				warn(fmt.Errorf("skipping event without instance id"))
			}
			continue
		}
		dispatch(ev)
	}
	return scanner.Err()
}
