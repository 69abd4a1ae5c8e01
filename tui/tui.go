// Package tui renders the catalog as a grid whose cells preview on hover.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/peek-cli/peek/preview"
)

// Options configures the grid host.
type Options struct {
	CatalogURL string
	Mode       preview.Mode
	Surface    preview.Surface
	Columns    int
	HoverDelay time.Duration
	StartMuted bool
	SeekStep   float64

	// NewBackend builds the media backend of one cell. Nil uses mpv.
	NewBackend func(preview.Events) preview.Backend

	// Scheduler overrides the hover timer clock.
	Scheduler preview.Scheduler
}

// Run starts the program and blocks until the user quits.
func Run(options *Options) error {
	bubble := newBubble(options)
	defer bubble.shutdown()

	bubble.setState(loadingState)

	_, err := tea.NewProgram(bubble, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
