// Package ports defines the interfaces between the timer core and its
// collaborators (host, clock, sound, history). Driving adapters deliver
// Events; the core drives the HostSink back.
package ports

// EventType identifies an input event delivered by the host.
type EventType string

const (
	// EventAppear fires when an instance becomes visible on the host.
	EventAppear EventType = "appear"

	// EventDisappear fires when an instance is removed; all per-instance
	// timers must be cancelled.
	EventDisappear EventType = "disappear"

	// EventSettingsChanged fires after the user edits the raw settings.
	EventSettingsChanged EventType = "settingsChanged"

	// EventPressDown fires when the key is pressed.
	EventPressDown EventType = "pressDown"

	// EventPressUp fires when the key is released.
	EventPressUp EventType = "pressUp"
)

// Event is one host input, tagged with an opaque instance id. Settings is
// the raw, unvalidated property bag and may be nil for press events.
type Event struct {
	Type     EventType      `json:"event"`
	Instance string         `json:"instance"`
	Settings map[string]any `json:"settings,omitempty"`
}

// HostSink receives rendered output for one instance. Implementations
// must not block the caller for long; errors are reported but never stop
// the state machine.
type HostSink interface {
	// SetTitle sets the key title. The engine draws its own numeral
	// inside the image, so this is normally the empty string.
	SetTitle(instance, title string) error

	// SetImage sets the key face to a self-contained vector image
	// encoded as a data URI.
	SetImage(instance, image string) error
}
