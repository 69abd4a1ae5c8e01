package preview

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/peek-cli/peek/catalog"
	"github.com/peek-cli/peek/log"
)

const workerQueue = 64

// Status is what a host needs to draw an item. Workers publish one after every event.
type Status struct {
	Snapshot
	Elapsed string
	Total   string
	Upper   float64
}

// Worker feeds a Controller from a single goroutine so callers never wait on backend I/O.
// Events are applied strictly in the order they were submitted.
// Listener notifications run on the worker goroutine and must not block.
type Worker struct {
	controller *Controller

	mu     sync.Mutex
	closed bool
	queue  chan func()
	done   chan struct{}
	status atomic.Pointer[Status]
}

// NewWorker starts the goroutine serving c.
func NewWorker(c *Controller) *Worker {
	w := newWorker()
	w.controller = c
	w.start()
	return w
}

// Spawn builds a controller whose timer fires and backend events are all queued on the returned worker.
// newBackend receives the worker as the backend's event sink.
func Spawn(item *catalog.Item, newBackend func(Events) Backend, listener Listener, opts Options) *Worker {
	w := newWorker()

	base := opts.Scheduler
	if base == nil {
		base = ClockScheduler{}
	}
	opts.Scheduler = queuedScheduler{base: base, worker: w}

	var backend Backend
	if newBackend != nil {
		backend = newBackend(w)
	}

	w.controller = New(item, backend, listener, opts)
	w.start()
	return w
}

func newWorker() *Worker {
	return &Worker{
		queue: make(chan func(), workerQueue),
		done:  make(chan struct{}),
	}
}

func (w *Worker) start() {
	w.publish()
	go w.run()
}

func (w *Worker) run() {
	defer close(w.done)

	for fn := range w.queue {
		fn()
		w.publish()
	}
}

func (w *Worker) publish() {
	c := w.controller
	elapsed, total := c.Display()
	upper, _ := c.SeekRange()

	w.status.Store(&Status{
		Snapshot: c.Snapshot(),
		Elapsed:  elapsed,
		Total:    total,
		Upper:    upper,
	})
}

// submit queues fn unless the worker is closed.
func (w *Worker) submit(fn func()) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return false
	}

	w.queue <- fn
	return true
}

// Controller returns the wrapped controller.
func (w *Worker) Controller() *Controller {
	return w.controller
}

// Status returns the state published after the last applied event. It never blocks.
func (w *Worker) Status() Status {
	return *w.status.Load()
}

func (w *Worker) PointerEnter(target Target) {
	w.submit(func() { w.controller.PointerEnter(target) })
}

func (w *Worker) PointerLeave() {
	w.submit(func() { w.controller.PointerLeave() })
}

func (w *Worker) Seek(seconds float64) {
	w.submit(func() {
		if err := w.controller.Seek(seconds); err != nil {
			log.Warnf("seek %v: %v", seconds, err)
		}
	})
}

func (w *Worker) ToggleMute() {
	w.submit(func() { w.controller.ToggleMute() })
}

// TimeUpdate implements Events.
func (w *Worker) TimeUpdate(seconds float64) {
	w.submit(func() { w.controller.TimeUpdate(seconds) })
}

// CanPlay implements Events.
func (w *Worker) CanPlay(d float64) {
	w.submit(func() { w.controller.CanPlay(d) })
}

// Ended implements Events.
func (w *Worker) Ended() {
	w.submit(func() { w.controller.Ended() })
}

// Flush blocks until every event submitted before it has been applied.
func (w *Worker) Flush() {
	applied := make(chan struct{})
	if !w.submit(func() { close(applied) }) {
		return
	}
	<-applied
}

// Close drains the queue, closes the controller and waits for the goroutine to exit.
func (w *Worker) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}
	w.closed = true
	close(w.queue)
	w.mu.Unlock()

	<-w.done
	err := w.controller.Close()
	w.publish()
	return err
}

// queuedScheduler delivers timer fires through the worker queue.
type queuedScheduler struct {
	base   Scheduler
	worker *Worker
}

func (s queuedScheduler) Schedule(d time.Duration, fn func()) Timer {
	return s.base.Schedule(d, func() { s.worker.submit(fn) })
}
