package preview

import "time"

// Timer is a handle to a scheduled callback.
// Stop is idempotent: stopping a fired or already stopped timer does nothing.
type Timer interface {
	Stop()
}

// Scheduler runs fn once after d elapses unless the returned Timer is stopped first.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) Timer
}

// ClockScheduler schedules callbacks on the runtime timer wheel.
type ClockScheduler struct{}

// Schedule implements Scheduler via time.AfterFunc.
func (ClockScheduler) Schedule(d time.Duration, fn func()) Timer {
	return clockTimer{time.AfterFunc(d, fn)}
}

type clockTimer struct {
	t *time.Timer
}

func (c clockTimer) Stop() {
	c.t.Stop()
}
