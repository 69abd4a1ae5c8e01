// Package preview implements the per-item hover preview lifecycle: hover-intent debounce,
// the Idle/Armed/Playing state machine, position tracking across hovers, and mute state.
package preview

// Phase is the playback state of one preview session.
type Phase int

const (
	// Idle shows the thumbnail; no timer is pending and no media is mounted.
	Idle Phase = iota

	// Armed means the pointer rests on the item and the commit timer is pending.
	Armed

	// Playing means the media is mounted and playing.
	Playing
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "Idle"
	case Armed:
		return "Armed"
	case Playing:
		return "Playing"
	default:
		return "Unknown"
	}
}
