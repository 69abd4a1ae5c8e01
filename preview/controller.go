package preview

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/peek-cli/peek/catalog"
	"github.com/peek-cli/peek/duration"
	"github.com/peek-cli/peek/log"
	"github.com/samber/mo"
)

// Options configures a Controller. Start from DefaultOptions.
type Options struct {
	Mode       Mode
	Surface    Surface
	HoverDelay time.Duration
	Muted      bool
	Scheduler  Scheduler
}

// DefaultOptions returns an interactive, pointer-driven, muted configuration with the default delay.
func DefaultOptions() Options {
	return Options{
		Mode:       ModeInteractive,
		Surface:    SurfacePointer,
		HoverDelay: DefaultHoverDelay,
		Muted:      true,
		Scheduler:  ClockScheduler{},
	}
}

// session is the mutable state of one item's preview.
type session struct {
	phase    Phase
	current  float64
	tracker  Tracker
	mute     Mute
	observed mo.Option[float64]
	intent   HoverIntent
}

// Snapshot is a read-only copy of a session.
type Snapshot struct {
	Phase             Phase
	CurrentTime       float64
	LastPosition      float64
	ManuallyNavigated bool
	Muted             bool
	Observed          mo.Option[float64]
	Pending           bool
}

// Controller owns the preview lifecycle of a single item.
// All methods are safe for concurrent use.
type Controller struct {
	mu sync.Mutex

	item     *catalog.Item
	opts     Options
	backend  Backend
	listener Listener
	log      log.Entry

	session    session
	nominal    mo.Option[float64]
	generation uint64
	closed     bool
}

// New creates an idle controller for item.
// A nil listener is replaced by NopListener; backend may be nil only in static mode.
func New(item *catalog.Item, backend Backend, listener Listener, opts Options) *Controller {
	if listener == nil {
		listener = NopListener{}
	}
	if opts.Scheduler == nil {
		opts.Scheduler = ClockScheduler{}
	}
	if opts.HoverDelay <= 0 {
		opts.HoverDelay = DefaultHoverDelay
	}

	c := &Controller{
		item:     item,
		opts:     opts,
		backend:  backend,
		listener: listener,
		log:      log.With(log.Fields{"id": item.ID, "title": item.Title}),
		session: session{
			phase:  Idle,
			mute:   NewMute(opts.Muted),
			intent: NewHoverIntent(opts.Scheduler),
		},
	}

	if seconds, err := duration.Parse(item.Duration); err != nil {
		c.log.Warnf("nominal duration: %v", err)
	} else {
		c.nominal = mo.Some(float64(seconds))
	}

	return c
}

// Item returns the item this controller previews.
func (c *Controller) Item() *catalog.Item {
	return c.item
}

// transition runs fn under the session lock and invokes the notification it returns after unlocking.
func (c *Controller) transition(fn func() func()) {
	c.mu.Lock()
	notify := fn()
	c.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// interactive reports whether pointer input can drive this session. Caller holds the lock.
func (c *Controller) interactive() bool {
	return !c.closed && c.opts.Mode == ModeInteractive && c.opts.Surface == SurfacePointer
}

// PointerEnter reports that the pointer entered target.
// Entering the mute control never arms; re-entering while Armed keeps the existing timer.
func (c *Controller) PointerEnter(target Target) {
	c.transition(func() func() {
		if target == TargetMuteControl {
			return nil
		}
		if !c.interactive() || c.session.phase != Idle {
			return nil
		}

		c.generation++
		gen := c.generation
		if err := c.session.intent.Arm(c.opts.HoverDelay, func() { c.commit(gen) }); err != nil {
			c.log.Errorf("arm: %v", err)
			return nil
		}

		c.session.phase = Armed
		return nil
	})
}

// PointerLeave reports that the pointer left the item.
func (c *Controller) PointerLeave() {
	c.transition(func() func() {
		if !c.interactive() {
			return nil
		}

		switch c.session.phase {
		case Armed:
			c.session.intent.Cancel()
			c.session.phase = Idle
		case Playing:
			if err := c.backend.Pause(); err != nil {
				c.log.Errorf("pause: %v", err)
			}
			if err := c.session.tracker.RecordPause(c.session.current); err != nil {
				c.log.Errorf("record pause: %v", err)
			}
			c.session.intent.Cancel()
			c.unmount()
			c.session.phase = Idle
		}

		return nil
	})
}

// commit is the hover-intent callback. Stale fires are recognised by their generation.
func (c *Controller) commit(gen uint64) {
	c.transition(func() func() {
		if c.closed || gen != c.generation || c.session.phase != Armed {
			return nil
		}
		c.session.intent.Cancel()

		resume := c.session.tracker.ManuallyNavigated()
		target := 0.0
		if resume {
			target = c.session.tracker.Last()
		}

		if err := c.start(target); err != nil {
			c.log.Errorf("start preview: %v", err)
			c.unmount()
			c.session.phase = Idle
			return nil
		}

		c.session.current = target
		if err := c.session.tracker.RecordTick(target); err != nil {
			c.log.Debugf("record start %v: %v", target, err)
		}
		c.session.phase = Playing

		if resume {
			return c.listener.OnResumed
		}
		return c.listener.OnStart
	})
}

func (c *Controller) start(target float64) error {
	if c.backend == nil {
		return ErrNoBackend
	}

	if err := c.backend.Mount(c.item.VideoURL, c.item.Title); err != nil {
		return fmt.Errorf("mount: %w", err)
	}
	if err := c.backend.SetMuted(c.session.mute.Muted()); err != nil {
		return fmt.Errorf("mute: %w", err)
	}
	if err := c.backend.SetCurrentTime(target); err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	if err := c.backend.Play(); err != nil {
		return fmt.Errorf("play: %w", err)
	}

	return nil
}

func (c *Controller) unmount() {
	if c.backend == nil {
		return
	}
	if err := c.backend.Unmount(); err != nil {
		c.log.Errorf("unmount: %v", err)
	}
}

// Seek moves playback to seconds. It is honoured only while Playing.
func (c *Controller) Seek(seconds float64) error {
	var err error

	c.transition(func() func() {
		if !c.interactive() || c.session.phase != Playing {
			return nil
		}

		if err = c.session.tracker.RecordManualSeek(seconds); err != nil {
			return nil
		}
		if backendErr := c.backend.SetCurrentTime(seconds); backendErr != nil {
			c.log.Errorf("seek: %v", backendErr)
		}
		c.session.current = seconds

		return func() { c.listener.OnSeeked(seconds) }
	})

	return err
}

// ToggleMute flips the mute flag and returns the new value.
// While Playing the value reaches the backend immediately, otherwise at the next commit.
func (c *Controller) ToggleMute() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.opts.Mode == ModeStatic {
		return c.session.mute.Muted()
	}

	muted := c.session.mute.Toggle()
	if c.session.phase == Playing {
		if err := c.backend.SetMuted(muted); err != nil {
			c.log.Errorf("mute: %v", err)
		}
	}

	return muted
}

// TimeUpdate implements Events.
func (c *Controller) TimeUpdate(seconds float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.interactive() || c.session.phase != Playing {
		return
	}

	if err := c.session.tracker.RecordTick(seconds); err != nil {
		c.log.Debugf("time update %v: %v", seconds, err)
		return
	}
	c.session.current = seconds
}

// CanPlay implements Events. Non-finite or non-positive durations are ignored.
func (c *Controller) CanPlay(d float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.interactive() || math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
		return
	}

	c.session.observed = mo.Some(d)
}

// Ended implements Events. It is ignored unless Playing.
func (c *Controller) Ended() {
	c.transition(func() func() {
		if !c.interactive() || c.session.phase != Playing {
			return nil
		}

		c.session.tracker.Forget()
		if err := c.backend.Pause(); err != nil {
			c.log.Errorf("pause: %v", err)
		}
		c.unmount()
		c.session.phase = Idle

		return c.listener.OnEnded
	})
}

// total is the best known media length. Caller holds the lock.
func (c *Controller) total() float64 {
	if d, ok := c.session.observed.Get(); ok {
		return d
	}
	return c.nominal.OrElse(0)
}

// Display returns the elapsed and total labels in M:SS form.
func (c *Controller) Display() (elapsed, total string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return duration.Format(c.session.current), duration.Format(c.total())
}

// SeekRange returns the seek control's maximum and current value.
func (c *Controller) SeekRange() (upper, value float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.total(), c.session.current
}

// Snapshot returns a copy of the session state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		Phase:             c.session.phase,
		CurrentTime:       c.session.current,
		LastPosition:      c.session.tracker.Last(),
		ManuallyNavigated: c.session.tracker.ManuallyNavigated(),
		Muted:             c.session.mute.Muted(),
		Observed:          c.session.observed,
		Pending:           c.session.intent.Pending(),
	}
}

// Close cancels any pending commit and unmounts playing media. Later inputs are no-ops.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}

	c.session.intent.Cancel()
	if c.session.phase == Playing {
		if err := c.backend.Pause(); err != nil {
			c.log.Errorf("pause: %v", err)
		}
		c.unmount()
	}

	c.session.phase = Idle
	c.closed = true
	return nil
}
