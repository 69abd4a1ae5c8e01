package preview

// Mute is the audio toggle of a session.
type Mute struct {
	muted bool
}

// NewMute returns a Mute starting in the given state.
func NewMute(muted bool) Mute {
	return Mute{muted: muted}
}

// Toggle flips the flag and returns the new value.
func (m *Mute) Toggle() bool {
	m.muted = !m.muted
	return m.muted
}

// Muted reports the current value.
func (m *Mute) Muted() bool {
	return m.muted
}
