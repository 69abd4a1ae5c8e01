package preview

import (
	"fmt"
	"sync"
	"time"
)

// manualScheduler fires callbacks only when the test advances its clock.
type manualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	mu      sync.Mutex
	due     time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}

func (s *manualScheduler) Schedule(d time.Duration, fn func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &manualTimer{due: s.now + d, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves the clock and runs every due timer on the calling goroutine.
func (s *manualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	var due []*manualTimer
	for _, t := range s.timers {
		t.mu.Lock()
		if !t.stopped && !t.fired && t.due <= s.now {
			t.fired = true
			due = append(due, t)
		}
		t.mu.Unlock()
	}
	s.mu.Unlock()

	for _, t := range due {
		t.fn()
	}
}

// Scheduled counts timers ever handed out.
func (s *manualScheduler) Scheduled() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// FireStale runs the callback of the n-th timer even if it was stopped,
// imitating a fire that was already dispatched when Stop ran.
func (s *manualScheduler) FireStale(n int) {
	s.mu.Lock()
	t := s.timers[n]
	s.mu.Unlock()
	t.fn()
}

// fakeBackend records every call and can be told to fail one of them.
type fakeBackend struct {
	mu      sync.Mutex
	calls   []string
	failOn  string
	mounted bool
	muted   bool
	time    float64
	playing bool
}

func (b *fakeBackend) record(call string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.calls = append(b.calls, call)
	if b.failOn != "" && b.failOn == call {
		return fmt.Errorf("%s failed", call)
	}
	return nil
}

func (b *fakeBackend) Mount(ref, title string) error {
	if err := b.record("mount"); err != nil {
		return err
	}
	b.mounted = true
	return nil
}

func (b *fakeBackend) Unmount() error {
	b.mounted = false
	b.playing = false
	return b.record("unmount")
}

func (b *fakeBackend) Play() error {
	if err := b.record("play"); err != nil {
		return err
	}
	b.playing = true
	return nil
}

func (b *fakeBackend) Pause() error {
	b.playing = false
	return b.record("pause")
}

func (b *fakeBackend) SetCurrentTime(seconds float64) error {
	if err := b.record("seek"); err != nil {
		return err
	}
	b.time = seconds
	return nil
}

func (b *fakeBackend) SetMuted(muted bool) error {
	if err := b.record("mute"); err != nil {
		return err
	}
	b.muted = muted
	return nil
}

func (b *fakeBackend) Calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.calls...)
}

func (b *fakeBackend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = nil
}

// recorder counts lifecycle notifications.
type recorder struct {
	mu      sync.Mutex
	events  []string
	seekedT []float64
}

func (r *recorder) add(e string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) OnStart()   { r.add("start") }
func (r *recorder) OnEnded()   { r.add("ended") }
func (r *recorder) OnResumed() { r.add("resumed") }

func (r *recorder) OnSeeked(seconds float64) {
	r.mu.Lock()
	r.seekedT = append(r.seekedT, seconds)
	r.mu.Unlock()
	r.add("seeked")
}

func (r *recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func (r *recorder) Count(e string) int {
	n := 0
	for _, got := range r.Events() {
		if got == e {
			n++
		}
	}
	return n
}
