package preview

import "time"

// DefaultHoverDelay separates a deliberate hover from a pointer passing through.
const DefaultHoverDelay = 500 * time.Millisecond

// HoverIntent holds at most one scheduled "commit to preview" action.
type HoverIntent struct {
	scheduler Scheduler
	pending   Timer
}

// NewHoverIntent returns a HoverIntent scheduling on s.
func NewHoverIntent(s Scheduler) HoverIntent {
	if s == nil {
		s = ClockScheduler{}
	}
	return HoverIntent{scheduler: s}
}

// Arm schedules onCommit after delay. It fails with ErrAlreadyArmed while a commit is pending;
// the caller must Cancel first. The owner calls Cancel once the commit runs to clear the slot.
func (h *HoverIntent) Arm(delay time.Duration, onCommit func()) error {
	if h.pending != nil {
		return ErrAlreadyArmed
	}

	h.pending = h.scheduler.Schedule(delay, onCommit)
	return nil
}

// Cancel stops and clears the pending commit, if any.
func (h *HoverIntent) Cancel() {
	if h.pending == nil {
		return
	}

	h.pending.Stop()
	h.pending = nil
}

// Pending reports whether a commit is scheduled.
func (h *HoverIntent) Pending() bool {
	return h.pending != nil
}
