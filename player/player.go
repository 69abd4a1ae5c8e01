// Package player drives external media engines as preview backends.
// The only engine is mpv, controlled through its JSON-IPC socket.
package player

import (
	"fmt"
	"os/exec"

	"github.com/peek-cli/peek/key"
	"github.com/peek-cli/peek/preview"
	"github.com/spf13/viper"
)

// Player is a preview backend that owns an external process.
type Player interface {
	preview.Backend

	// Close terminates the engine and releases its resources.
	Close() error

	// Socket returns the IPC endpoint, empty until the engine started.
	Socket() string
}

// New returns the engine selected by player.default. events receives playback progress.
func New(events preview.Events) (Player, error) {
	switch name := viper.GetString(key.Player); name {
	case "", "mpv":
		return NewMPV(events, DefaultOptions()), nil
	default:
		return nil, fmt.Errorf("unsupported player %q", name)
	}
}

// Available reports whether the engine selected by player.default can be found on PATH.
func Available() (string, error) {
	name := viper.GetString(key.Player)
	if name == "" {
		name = "mpv"
	}
	return exec.LookPath(name)
}
