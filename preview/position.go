package preview

import "math"

// Tracker remembers the last observed playback position and whether the user
// navigated manually since the last natural end of playback.
type Tracker struct {
	last   float64
	manual bool
}

// RecordTick stores a periodic time update from the backend.
func (t *Tracker) RecordTick(pos float64) error {
	return t.record(pos)
}

// RecordManualSeek stores a position chosen with the seek control and marks the session as navigated.
func (t *Tracker) RecordManualSeek(pos float64) error {
	if err := t.record(pos); err != nil {
		return err
	}
	t.manual = true
	return nil
}

// RecordPause stores the position at which playback stopped because the pointer left.
func (t *Tracker) RecordPause(pos float64) error {
	return t.record(pos)
}

// Forget clears the manual navigation flag. The last position is kept.
func (t *Tracker) Forget() {
	t.manual = false
}

// Last returns the most recently recorded position.
func (t *Tracker) Last() float64 {
	return t.last
}

// ManuallyNavigated reports whether a manual seek happened since the last Forget.
func (t *Tracker) ManuallyNavigated() bool {
	return t.manual
}

// record passes values through unclamped; the backend owns range checks.
func (t *Tracker) record(pos float64) error {
	if math.IsNaN(pos) || math.IsInf(pos, 0) {
		return ErrInvalidPosition
	}
	if pos < 0 {
		return ErrNegativePosition
	}
	t.last = pos
	return nil
}
