package catalog

import (
	"context"
	"sync"
)

// Loader runs one asynchronous fetch and exposes its progress as flags.
type Loader struct {
	url string

	mu      sync.RWMutex
	loading bool
	failed  bool
	err     error
	items   []*Item
	done    chan struct{}
}

// NewLoader prepares a loader for url. Nothing happens until Start.
func NewLoader(url string) *Loader {
	return &Loader{
		url:  url,
		done: make(chan struct{}),
	}
}

// Start begins the fetch in the background. Calling Start twice has no effect.
func (l *Loader) Start(ctx context.Context) {
	l.mu.Lock()
	if l.loading || l.failed || l.items != nil {
		l.mu.Unlock()
		return
	}
	l.loading = true
	l.mu.Unlock()

	go func() {
		items, err := Fetch(ctx, l.url)

		l.mu.Lock()
		l.loading = false
		if err != nil {
			l.failed = true
			l.err = err
		} else {
			if items == nil {
				items = []*Item{}
			}
			l.items = items
		}
		l.mu.Unlock()

		close(l.done)
	}()
}

// Wait blocks until the fetch finished or ctx is done.
func (l *Loader) Wait(ctx context.Context) error {
	select {
	case <-l.done:
		return l.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Loading reports whether the fetch is in flight.
func (l *Loader) Loading() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loading
}

// Failed reports whether the fetch ended with an error.
func (l *Loader) Failed() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.failed
}

func (l *Loader) Err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.err
}

// Items returns the fetched items, or nil while loading or after a failure.
func (l *Loader) Items() []*Item {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.items
}

// URL returns the source this loader reads.
func (l *Loader) URL() string {
	return l.url
}
