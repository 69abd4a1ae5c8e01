// Package filesystem holds the swappable afero backend every package reads and writes through.
// Tests switch it to memory with SetMemMapFs.
package filesystem

import (
	"sync"

	"github.com/spf13/afero"
)

var (
	mu      sync.RWMutex
	backend = afero.Afero{Fs: afero.NewOsFs()}
)

// API returns the active backend.
func API() afero.Afero {
	mu.RLock()
	defer mu.RUnlock()
	return backend
}

func set(fs afero.Fs) {
	mu.Lock()
	defer mu.Unlock()
	backend = afero.Afero{Fs: fs}
}

// SetOsFs restores the operating system backend.
func SetOsFs() {
	set(afero.NewOsFs())
}

// SetMemMapFs switches to a fresh in-memory backend.
func SetMemMapFs() {
	set(afero.NewMemMapFs())
}
