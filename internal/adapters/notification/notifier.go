// Package notification provides the completion-sound collaborator on
// top of desktop notifications.
package notification

import (
	"runtime"

	"github.com/gen2brain/beeep"
	"github.com/keydoro/keydoro/internal/ports"
)

// Notifier plays the phase-completion signal. Playback is fire-and-
// forget: it runs off the caller's goroutine and errors are discarded,
// so it can never block or fail the render/state path.
type Notifier struct {
	notify bool
}

var _ ports.SoundPlayer = (*Notifier)(nil)

// New creates a notifier. When notify is true a desktop notification
// accompanies the beep.
func New(notify bool) *Notifier {
	return &Notifier{notify: notify}
}

// PlayCompletion implements ports.SoundPlayer.
func (n *Notifier) PlayCompletion() {
	go func() {
		if beepSupported() {
			_ = beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration)
		}
		if n.notify {
			_ = beeep.Notify("Keydoro", "Phase complete", "")
		}
	}()
}

// beepSupported reports whether this OS has a tone-playback mechanism;
// elsewhere the signal degrades to the optional notification only.
func beepSupported() bool {
	switch runtime.GOOS {
	case "linux", "darwin", "windows":
		return true
	default:
		return false
	}
}
