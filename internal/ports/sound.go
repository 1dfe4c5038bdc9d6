package ports

// SoundPlayer is the external collaborator that plays the completion
// sound. Calls are fire-and-forget: implementations must never block or
// fail the render/state path, and must be a no-op on platforms without a
// playback mechanism.
type SoundPlayer interface {
	PlayCompletion()
}
