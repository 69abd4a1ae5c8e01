package preview

import (
	"math"
	"testing"
	"time"

	"github.com/peek-cli/peek/catalog"
	. "github.com/smartystreets/goconvey/convey"
)

const delay = 500 * time.Millisecond

func testItem(nominal string) *catalog.Item {
	return &catalog.Item{
		ID:       "1",
		Title:    "Big Buck Bunny",
		Author:   "Blender Foundation",
		VideoURL: "https://example.com/bbb.mp4",
		Duration: nominal,
	}
}

type fixture struct {
	sched      *manualScheduler
	backend    *fakeBackend
	listener   *recorder
	controller *Controller
}

func newFixture(nominal string, tweak func(*Options)) *fixture {
	f := &fixture{
		sched:    &manualScheduler{},
		backend:  &fakeBackend{},
		listener: &recorder{},
	}

	opts := DefaultOptions()
	opts.Scheduler = f.sched
	opts.HoverDelay = delay
	if tweak != nil {
		tweak(&opts)
	}

	f.controller = New(testItem(nominal), f.backend, f.listener, opts)
	return f
}

// hover enters the surface and waits out the arming delay.
func (f *fixture) hover() {
	f.controller.PointerEnter(TargetSurface)
	f.sched.Advance(delay)
}

func (f *fixture) phase() Phase {
	return f.controller.Snapshot().Phase
}

func TestControllerLifecycle(t *testing.T) {
	Convey("Given an interactive controller", t, func() {
		f := newFixture("2:05", nil)

		Convey("It should start Idle", func() {
			So(f.phase(), ShouldEqual, Idle)
			So(f.controller.Snapshot().Muted, ShouldBeTrue)
			So(f.backend.Calls(), ShouldBeEmpty)
		})

		Convey("Pointer enter should arm without touching the backend", func() {
			f.controller.PointerEnter(TargetSurface)

			So(f.phase(), ShouldEqual, Armed)
			So(f.controller.Snapshot().Pending, ShouldBeTrue)
			So(f.backend.Calls(), ShouldBeEmpty)
		})

		Convey("Playing should only be reached through Armed", func() {
			f.controller.TimeUpdate(3)
			f.controller.Ended()
			So(f.phase(), ShouldEqual, Idle)

			f.sched.Advance(time.Hour)
			So(f.phase(), ShouldEqual, Idle)

			f.controller.PointerEnter(TargetSurface)
			So(f.phase(), ShouldEqual, Armed)
			f.sched.Advance(delay)
			So(f.phase(), ShouldEqual, Playing)
		})

		Convey("Leaving within the delay should never start playback", func() {
			f.controller.PointerEnter(TargetSurface)
			f.sched.Advance(delay - time.Millisecond)
			f.controller.PointerLeave()
			f.sched.Advance(time.Hour)

			So(f.phase(), ShouldEqual, Idle)
			So(f.controller.Snapshot().Pending, ShouldBeFalse)
			So(f.listener.Count("start"), ShouldEqual, 0)
			So(f.listener.Count("resumed"), ShouldEqual, 0)
			So(f.backend.Calls(), ShouldBeEmpty)
		})

		Convey("A fresh commit should seek to zero and fire start once", func() {
			f.hover()

			So(f.phase(), ShouldEqual, Playing)
			So(f.backend.Calls(), ShouldResemble, []string{"mount", "mute", "seek", "play"})
			So(f.backend.time, ShouldEqual, 0)
			So(f.backend.muted, ShouldBeTrue)
			So(f.listener.Events(), ShouldResemble, []string{"start"})
			So(f.controller.Snapshot().Pending, ShouldBeFalse)
		})

		Convey("Re-entering while Armed should not schedule another timer", func() {
			f.controller.PointerEnter(TargetSurface)
			f.sched.Advance(200 * time.Millisecond)
			f.controller.PointerEnter(TargetSurface)
			So(f.sched.Scheduled(), ShouldEqual, 1)

			f.sched.Advance(300 * time.Millisecond)
			So(f.phase(), ShouldEqual, Playing)
			So(f.listener.Count("start"), ShouldEqual, 1)
		})

		Convey("Time updates while Playing should keep position and tracker equal", func() {
			f.hover()
			f.controller.TimeUpdate(12.5)

			snap := f.controller.Snapshot()
			So(snap.CurrentTime, ShouldEqual, 12.5)
			So(snap.LastPosition, ShouldEqual, 12.5)
		})

		Convey("Leaving while Playing should pause, remember and unmount silently", func() {
			f.hover()
			f.controller.TimeUpdate(12)
			f.backend.Reset()

			f.controller.PointerLeave()

			snap := f.controller.Snapshot()
			So(snap.Phase, ShouldEqual, Idle)
			So(snap.LastPosition, ShouldEqual, 12)
			So(f.backend.Calls(), ShouldResemble, []string{"pause", "unmount"})
			So(f.listener.Events(), ShouldResemble, []string{"start"})
		})

		Convey("Hovering again without a manual seek should restart at zero", func() {
			f.hover()
			f.controller.TimeUpdate(12)
			f.controller.PointerLeave()

			f.hover()
			So(f.backend.time, ShouldEqual, 0)
			So(f.listener.Events(), ShouldResemble, []string{"start", "start"})
		})

		Convey("After a manual seek a later hover should resume at that time", func() {
			f.hover()
			So(f.controller.Seek(42), ShouldBeNil)
			So(f.listener.Events(), ShouldResemble, []string{"start", "seeked"})
			So(f.listener.seekedT, ShouldResemble, []float64{42})
			So(f.controller.Snapshot().ManuallyNavigated, ShouldBeTrue)

			f.controller.PointerLeave()
			f.hover()

			So(f.phase(), ShouldEqual, Playing)
			So(f.backend.time, ShouldEqual, 42)
			So(f.controller.Snapshot().CurrentTime, ShouldEqual, 42)
			So(f.listener.Events(), ShouldResemble, []string{"start", "seeked", "resumed"})
		})

		Convey("Resuming should use the position at which the pointer left", func() {
			f.hover()
			So(f.controller.Seek(30), ShouldBeNil)
			f.controller.TimeUpdate(35)
			f.controller.PointerLeave()

			f.hover()
			So(f.backend.time, ShouldEqual, 35)
			So(f.listener.Count("resumed"), ShouldEqual, 1)
		})

		Convey("A negative seek should be rejected", func() {
			f.hover()
			So(f.controller.Seek(-1), ShouldEqual, ErrNegativePosition)
			So(f.listener.Count("seeked"), ShouldEqual, 0)
		})

		Convey("A non-finite seek should be rejected and leave the labels intact", func() {
			f.hover()
			So(f.controller.Seek(math.NaN()), ShouldEqual, ErrInvalidPosition)
			So(f.controller.Seek(math.Inf(1)), ShouldEqual, ErrInvalidPosition)

			snapshot := f.controller.Snapshot()
			So(snapshot.CurrentTime, ShouldEqual, 0)
			So(snapshot.ManuallyNavigated, ShouldBeFalse)
			So(f.listener.Count("seeked"), ShouldEqual, 0)

			elapsed, _ := f.controller.Display()
			So(elapsed, ShouldEqual, "0:00")
		})

		Convey("A non-finite time update should be ignored", func() {
			f.hover()
			f.controller.TimeUpdate(12)
			f.controller.TimeUpdate(math.NaN())
			So(f.controller.Snapshot().CurrentTime, ShouldEqual, 12)
		})

		Convey("Seeking outside Playing should be ignored", func() {
			So(f.controller.Seek(10), ShouldBeNil)
			So(f.controller.Snapshot().ManuallyNavigated, ShouldBeFalse)
			So(f.listener.Events(), ShouldBeEmpty)
		})

		Convey("Natural end should forget navigation and fire ended once", func() {
			f.hover()
			So(f.controller.Seek(50), ShouldBeNil)
			f.backend.Reset()

			f.controller.Ended()
			f.controller.Ended()

			snap := f.controller.Snapshot()
			So(snap.Phase, ShouldEqual, Idle)
			So(snap.ManuallyNavigated, ShouldBeFalse)
			So(f.listener.Count("ended"), ShouldEqual, 1)
			So(f.backend.Calls(), ShouldResemble, []string{"pause", "unmount"})

			Convey("And the next hover should restart at zero", func() {
				f.controller.PointerLeave()
				f.hover()
				So(f.backend.time, ShouldEqual, 0)
				So(f.listener.Count("start"), ShouldEqual, 2)
				So(f.listener.Count("resumed"), ShouldEqual, 0)
			})
		})
	})
}

func TestControllerMute(t *testing.T) {
	Convey("Given an interactive controller", t, func() {
		f := newFixture("2:05", nil)

		Convey("Toggling while Idle should be applied at the next commit", func() {
			So(f.controller.ToggleMute(), ShouldBeFalse)
			So(f.backend.Calls(), ShouldBeEmpty)

			f.hover()
			So(f.backend.muted, ShouldBeFalse)
		})

		Convey("Toggling while Playing should reach the backend immediately", func() {
			f.hover()
			f.backend.Reset()

			So(f.controller.ToggleMute(), ShouldBeFalse)
			So(f.backend.Calls(), ShouldResemble, []string{"mute"})
			So(f.backend.muted, ShouldBeFalse)
			So(f.listener.Events(), ShouldResemble, []string{"start"})
		})

		Convey("Mute state should survive leaving and re-entering", func() {
			f.hover()
			f.controller.ToggleMute()
			f.controller.PointerLeave()
			f.hover()

			So(f.backend.muted, ShouldBeFalse)
			So(f.controller.Snapshot().Muted, ShouldBeFalse)
		})

		Convey("Entering the mute control should never arm", func() {
			f.controller.PointerEnter(TargetMuteControl)

			So(f.phase(), ShouldEqual, Idle)
			So(f.sched.Scheduled(), ShouldEqual, 0)
		})

		Convey("Entering the mute control while Playing should change nothing", func() {
			f.hover()
			f.backend.Reset()
			f.controller.PointerEnter(TargetMuteControl)

			So(f.phase(), ShouldEqual, Playing)
			So(f.backend.Calls(), ShouldBeEmpty)
		})
	})

	Convey("A controller configured unmuted should start with sound", t, func() {
		f := newFixture("2:05", func(o *Options) { o.Muted = false })
		f.hover()
		So(f.backend.muted, ShouldBeFalse)
	})
}

func TestControllerDuration(t *testing.T) {
	Convey("Given a well-formed nominal duration", t, func() {
		f := newFixture("2:05", nil)

		Convey("The total should come from the nominal value until the backend reports", func() {
			elapsed, total := f.controller.Display()
			So(elapsed, ShouldEqual, "0:00")
			So(total, ShouldEqual, "2:05")

			upper, value := f.controller.SeekRange()
			So(upper, ShouldEqual, 125)
			So(value, ShouldEqual, 0)
		})

		Convey("An observed duration should take over and never be overwritten by the nominal", func() {
			f.hover()
			f.controller.CanPlay(130.4)
			f.controller.TimeUpdate(61)

			elapsed, total := f.controller.Display()
			So(elapsed, ShouldEqual, "1:01")
			So(total, ShouldEqual, "2:10")

			upper, value := f.controller.SeekRange()
			So(upper, ShouldEqual, 130.4)
			So(value, ShouldEqual, 61)

			observed, ok := f.controller.Snapshot().Observed.Get()
			So(ok, ShouldBeTrue)
			So(observed, ShouldEqual, 130.4)
		})

		Convey("Invalid durations from the backend should be ignored", func() {
			f.hover()
			f.controller.CanPlay(0)
			f.controller.CanPlay(-3)
			So(f.controller.Snapshot().Observed.IsPresent(), ShouldBeFalse)

			upper, _ := f.controller.SeekRange()
			So(upper, ShouldEqual, 125)
		})
	})

	Convey("Given a malformed nominal duration", t, func() {
		f := newFixture("abc:05", nil)

		Convey("The controller should still work and show 0:00", func() {
			_, total := f.controller.Display()
			So(total, ShouldEqual, "0:00")

			upper, _ := f.controller.SeekRange()
			So(upper, ShouldEqual, 0)

			f.hover()
			So(f.phase(), ShouldEqual, Playing)
		})

		Convey("The backend duration should fill in once known", func() {
			f.hover()
			f.controller.CanPlay(90)

			_, total := f.controller.Display()
			So(total, ShouldEqual, "1:30")

			upper, _ := f.controller.SeekRange()
			So(upper, ShouldEqual, 90)
		})
	})

	Convey("Given a nominal duration too large to count in seconds", t, func() {
		f := newFixture("153722867280912931:00", nil)

		Convey("The total should fall back to 0:00 with a zero seek range", func() {
			_, total := f.controller.Display()
			So(total, ShouldEqual, "0:00")

			upper, _ := f.controller.SeekRange()
			So(upper, ShouldEqual, 0)
		})
	})
}

func TestControllerFailures(t *testing.T) {
	for _, step := range []string{"mount", "mute", "seek", "play"} {
		step := step

		Convey("When the backend fails to "+step, t, func() {
			f := newFixture("2:05", nil)
			f.backend.failOn = step
			f.hover()

			Convey("The controller should revert to Idle without a callback", func() {
				So(f.phase(), ShouldEqual, Idle)
				So(f.listener.Events(), ShouldBeEmpty)

				calls := f.backend.Calls()
				So(calls[len(calls)-1], ShouldEqual, "unmount")
			})

			Convey("A later hover should be able to try again", func() {
				f.backend.failOn = ""
				f.controller.PointerLeave()
				f.hover()
				So(f.phase(), ShouldEqual, Playing)
				So(f.listener.Events(), ShouldResemble, []string{"start"})
			})
		})
	}

	Convey("A pause failure on leave should still reach Idle", t, func() {
		f := newFixture("2:05", nil)
		f.hover()
		f.backend.failOn = "pause"

		f.controller.PointerLeave()
		So(f.phase(), ShouldEqual, Idle)
		So(f.backend.mounted, ShouldBeFalse)
	})

	Convey("A controller without a backend should never leave Idle", t, func() {
		sched := &manualScheduler{}
		rec := &recorder{}
		opts := DefaultOptions()
		opts.Scheduler = sched
		c := New(testItem("2:05"), nil, rec, opts)

		c.PointerEnter(TargetSurface)
		sched.Advance(delay)

		So(c.Snapshot().Phase, ShouldEqual, Idle)
		So(rec.Events(), ShouldBeEmpty)
	})
}

func TestControllerStaleTimer(t *testing.T) {
	Convey("A timer fire dispatched before cancellation should be discarded", t, func() {
		f := newFixture("2:05", nil)

		f.controller.PointerEnter(TargetSurface)
		f.controller.PointerLeave()
		f.controller.PointerEnter(TargetSurface)

		f.sched.FireStale(0)
		So(f.phase(), ShouldEqual, Armed)
		So(f.listener.Events(), ShouldBeEmpty)

		f.sched.Advance(delay)
		So(f.phase(), ShouldEqual, Playing)
		So(f.listener.Count("start"), ShouldEqual, 1)
	})
}

func TestControllerInert(t *testing.T) {
	Convey("In static mode", t, func() {
		f := newFixture("2:05", func(o *Options) { o.Mode = ModeStatic })

		Convey("Every input should be a no-op", func() {
			f.hover()
			So(f.controller.Seek(3), ShouldBeNil)
			So(f.controller.ToggleMute(), ShouldBeTrue)
			f.controller.CanPlay(30)
			f.controller.Ended()
			f.controller.PointerLeave()

			So(f.phase(), ShouldEqual, Idle)
			So(f.sched.Scheduled(), ShouldEqual, 0)
			So(f.backend.Calls(), ShouldBeEmpty)
			So(f.listener.Events(), ShouldBeEmpty)
		})
	})

	Convey("On a touch surface", t, func() {
		f := newFixture("2:05", func(o *Options) { o.Surface = SurfaceTouch })

		Convey("Pointer events should leave the item as a thumbnail", func() {
			f.hover()
			So(f.phase(), ShouldEqual, Idle)
			So(f.sched.Scheduled(), ShouldEqual, 0)
		})
	})

	Convey("After Close", t, func() {
		f := newFixture("2:05", nil)
		f.hover()
		f.backend.Reset()

		So(f.controller.Close(), ShouldBeNil)

		Convey("The media should be released", func() {
			So(f.backend.Calls(), ShouldResemble, []string{"pause", "unmount"})
			So(f.phase(), ShouldEqual, Idle)
		})

		Convey("Further input should be ignored", func() {
			f.backend.Reset()
			f.hover()
			So(f.controller.Seek(1), ShouldBeNil)
			So(f.phase(), ShouldEqual, Idle)
			So(f.backend.Calls(), ShouldBeEmpty)
		})

		Convey("Closing twice should report ErrClosed", func() {
			So(f.controller.Close(), ShouldEqual, ErrClosed)
		})
	})

	Convey("Closing while Armed should cancel the commit", t, func() {
		f := newFixture("2:05", nil)
		f.controller.PointerEnter(TargetSurface)
		So(f.controller.Close(), ShouldBeNil)

		f.sched.Advance(time.Hour)
		So(f.listener.Events(), ShouldBeEmpty)
		So(f.backend.Calls(), ShouldBeEmpty)
	})
}

func TestListenerReentry(t *testing.T) {
	Convey("A listener calling back into the controller should not deadlock", t, func() {
		sched := &manualScheduler{}
		backend := &fakeBackend{}
		var c *Controller
		var snapshot Snapshot

		opts := DefaultOptions()
		opts.Scheduler = sched
		c = New(testItem("2:05"), backend, ListenerFuncs{
			Start: func() { snapshot = c.Snapshot() },
		}, opts)

		c.PointerEnter(TargetSurface)
		sched.Advance(delay)

		So(snapshot.Phase, ShouldEqual, Playing)
	})
}
