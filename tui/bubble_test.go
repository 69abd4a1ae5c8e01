package tui

import (
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/peek-cli/peek/catalog"
	"github.com/peek-cli/peek/filesystem"
	"github.com/peek-cli/peek/key"
	"github.com/peek-cli/peek/preview"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.IconsVariant, "plain")
	viper.Set(key.PreviewSeekStep, 5)
	viper.Set(key.SearchShowQuerySuggestions, true)
}

type stubTimer struct {
	scheduler *stubScheduler
	id        int
}

func (t stubTimer) Stop() {
	t.scheduler.mu.Lock()
	defer t.scheduler.mu.Unlock()
	delete(t.scheduler.pending, t.id)
}

// stubScheduler fires timers only when told to.
type stubScheduler struct {
	mu      sync.Mutex
	next    int
	pending map[int]func()
}

func (s *stubScheduler) Schedule(_ time.Duration, fn func()) preview.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		s.pending = make(map[int]func())
	}
	s.next++
	s.pending[s.next] = fn
	return stubTimer{scheduler: s, id: s.next}
}

func (s *stubScheduler) fire() {
	s.mu.Lock()
	fns := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

type stubBackend struct {
	mu      sync.Mutex
	mounted bool
	playing bool
	muted   bool
	time    float64
}

func (s *stubBackend) Mount(string, string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mounted = true
	return nil
}

func (s *stubBackend) Unmount() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mounted, s.playing = false, false
	return nil
}

func (s *stubBackend) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = true
	return nil
}

func (s *stubBackend) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = false
	return nil
}

func (s *stubBackend) SetCurrentTime(t float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.time = t
	return nil
}

func (s *stubBackend) SetMuted(m bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muted = m
	return nil
}

func testItems() []*catalog.Item {
	return []*catalog.Item{
		{ID: "1", Title: "Big Buck Bunny", Author: "Blender Foundation", VideoURL: "https://x/1.mp4", Duration: "8:18"},
		{ID: "2", Title: "Elephant Dream", Author: "Blender Foundation", VideoURL: "https://x/2.mp4", Duration: "10:53"},
		{ID: "3", Title: "For Bigger Blazes", Author: "Vlc Media Player", VideoURL: "https://x/3.mp4", Duration: "0:15"},
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone}
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func flush(b *statefulBubble) {
	for _, c := range b.cells {
		c.worker.Flush()
	}
}

func TestBubble(t *testing.T) {
	Convey("Given a grid with three items", t, func() {
		sched := &stubScheduler{}
		backends := make(map[int]*stubBackend)

		options := &Options{
			Mode:       preview.ModeInteractive,
			Surface:    preview.SurfacePointer,
			Columns:    3,
			StartMuted: true,
			Scheduler:  sched,
		}
		options.NewBackend = func(preview.Events) preview.Backend {
			s := &stubBackend{}
			backends[len(backends)] = s
			return s
		}

		b := newBubble(options)
		b.resize(100, 40)
		b.Update(catalogLoadedMsg{items: testItems()})
		defer b.shutdown()

		So(b.state, ShouldEqual, gridState)
		So(len(b.cells), ShouldEqual, 3)
		So(len(backends), ShouldEqual, 3)

		phase := func(i int) preview.Phase {
			flush(b)
			return b.cells[i].worker.Status().Phase
		}

		Convey("Hovering a cell should arm it and the timer should start playback", func() {
			b.Update(motion(10, 5))
			So(b.pointer, ShouldEqual, 0)
			So(phase(0), ShouldEqual, preview.Armed)

			sched.fire()
			So(phase(0), ShouldEqual, preview.Playing)
			So(backends[0].mounted, ShouldBeTrue)
			So(backends[0].muted, ShouldBeTrue)

			msg := <-b.lifecycleChannel
			So(msg.event, ShouldEqual, "started")
			So(msg.String(), ShouldEqual, "Video started: Big Buck Bunny")

			So(b.View(), ShouldContainSubstring, "Playing")

			Convey("Moving to the next cell should stop the first", func() {
				b.Update(motion(40, 5))
				So(b.pointer, ShouldEqual, 1)
				So(phase(0), ShouldEqual, preview.Idle)
				So(phase(1), ShouldEqual, preview.Armed)
				So(backends[0].mounted, ShouldBeFalse)
			})

			Convey("Seek keys should move playback by the step", func() {
				b.Update(runes("]"))
				flush(b)
				So(b.cells[0].worker.Status().CurrentTime, ShouldEqual, 5)
				So(backends[0].time, ShouldEqual, 5)

				b.Update(runes("["))
				b.Update(runes("["))
				flush(b)
				So(b.cells[0].worker.Status().CurrentTime, ShouldEqual, 0)
			})

			Convey("Clicking the seek bar should seek proportionally", func() {
				// item 0 is 8:18 long; the bar's last column is its end
				b.Update(click(4+15, 8))
				flush(b)
				So(b.cells[0].worker.Status().CurrentTime, ShouldEqual, 498)
			})

			Convey("The mute key should reach the playing backend", func() {
				b.Update(runes("m"))
				flush(b)
				So(b.cells[0].worker.Status().Muted, ShouldBeFalse)
				So(backends[0].muted, ShouldBeFalse)
			})

			Convey("Leaving the grid should stop playback", func() {
				b.Update(motion(0, 0))
				So(b.pointer, ShouldEqual, -1)
				So(phase(0), ShouldEqual, preview.Idle)
			})
		})

		Convey("The mute control should only exist while playing", func() {
			b.Update(motion(2+27, 4))
			So(b.pointer, ShouldEqual, 0)
			So(b.pointerTarget, ShouldEqual, preview.TargetSurface)
			So(phase(0), ShouldEqual, preview.Armed)

			sched.fire()
			So(phase(0), ShouldEqual, preview.Playing)

			Convey("Clicking it should toggle mute and keep playing", func() {
				b.Update(click(2+27, 4))
				So(b.pointerTarget, ShouldEqual, preview.TargetMuteControl)
				So(phase(0), ShouldEqual, preview.Playing)
				So(b.cells[0].worker.Status().Muted, ShouldBeFalse)
				So(backends[0].muted, ShouldBeFalse)
			})

			Convey("Returning to the surface should not re-arm", func() {
				b.Update(click(2+27, 4))
				b.Update(motion(10, 5))
				So(b.pointerTarget, ShouldEqual, preview.TargetSurface)
				So(phase(0), ShouldEqual, preview.Playing)
				So(sched.pending, ShouldBeEmpty)
			})
		})

		Convey("Arrow keys should move the pointer between cells", func() {
			b.Update(tea.KeyMsg{Type: tea.KeyRight})
			So(b.pointer, ShouldEqual, 0)
			b.Update(tea.KeyMsg{Type: tea.KeyRight})
			So(b.pointer, ShouldEqual, 1)
			So(phase(0), ShouldEqual, preview.Idle)
			So(phase(1), ShouldEqual, preview.Armed)

			b.Update(tea.KeyMsg{Type: tea.KeyEsc})
			So(b.pointer, ShouldEqual, -1)
			So(phase(1), ShouldEqual, preview.Idle)
		})

		Convey("Filtering should narrow the grid", func() {
			b.Update(runes("/"))
			So(b.state, ShouldEqual, filterState)

			b.Update(runes("bunny"))
			So(len(b.visible), ShouldEqual, 1)
			So(b.query, ShouldEqual, "")

			b.Update(tea.KeyMsg{Type: tea.KeyEnter})
			So(b.state, ShouldEqual, gridState)
			So(b.query, ShouldEqual, "bunny")
			So(len(b.visible), ShouldEqual, 1)
			So(b.visible[0].item.ID, ShouldEqual, "1")
			So(b.View(), ShouldContainSubstring, `1 video matching "bunny"`)

			Convey("Escape should clear it", func() {
				b.Update(tea.KeyMsg{Type: tea.KeyEsc})
				So(b.query, ShouldEqual, "")
				So(len(b.visible), ShouldEqual, 3)
			})
		})

		Convey("Shutdown should close every worker", func() {
			b.Update(motion(10, 5))
			So(phase(0), ShouldEqual, preview.Armed)
			sched.fire()
			So(phase(0), ShouldEqual, preview.Playing)

			b.shutdown()
			So(b.cells[0].worker.Status().Phase, ShouldEqual, preview.Idle)
			So(backends[0].mounted, ShouldBeFalse)
			So(b.cells[0].worker.Close(), ShouldEqual, preview.ErrClosed)
		})
	})

	Convey("Given a static grid", t, func() {
		options := &Options{Mode: preview.ModeStatic, Surface: preview.SurfacePointer, Columns: 2}
		b := newBubble(options)
		b.resize(80, 30)
		b.Update(catalogLoadedMsg{items: testItems()})
		defer b.shutdown()

		Convey("Hovering should never arm", func() {
			b.Update(motion(10, 5))
			flush(b)
			So(b.cells[0].worker.Status().Phase, ShouldEqual, preview.Idle)
			So(b.cells[0].worker.Status().Pending, ShouldBeFalse)
		})
	})

	Convey("Given a failed catalog", t, func() {
		b := newBubble(&Options{})
		b.resize(80, 30)
		b.Update(catalogFailedMsg{err: &catalog.StatusError{URL: "https://x", Code: 500}})

		Convey("The error view should be shown", func() {
			So(b.state, ShouldEqual, errorState)
			So(b.View(), ShouldContainSubstring, "Error loading Videos. Please try again later.")

			_, cmd := b.Update(runes("q"))
			So(cmd, ShouldNotBeNil)
		})
	})
}

func TestLifecycleMsg(t *testing.T) {
	Convey("Seek notifications should carry the position", t, func() {
		msg := lifecycleMsg{item: &catalog.Item{Title: "Sintel"}, event: "seeked", at: 12.5}
		So(msg.String(), ShouldEqual, "Video seeked to 12.50: Sintel")
		So(strings.HasPrefix(lifecycleMsg{item: msg.item, event: "ended"}.String(), "Video ended"), ShouldBeTrue)
	})
}
