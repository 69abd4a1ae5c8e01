package player

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/peek-cli/peek/constant"
	"github.com/peek-cli/peek/log"
	"github.com/peek-cli/peek/preview"
	"github.com/peek-cli/peek/where"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
	quitTimeout       = 3 * time.Second
)

// ErrNotMounted is returned by playback commands before Mount.
var ErrNotMounted = errors.New("no media mounted")

// Options tunes the mpv process.
type Options struct {
	Binary string
	Args   []string
}

// DefaultOptions places a small borderless window in the top right corner.
func DefaultOptions() Options {
	return Options{
		Binary: "mpv",
		Args: []string{
			"--geometry=480x270-32+32",
			"--ontop",
			"--no-border",
		},
	}
}

// MPV implements preview.Backend with a dedicated mpv process.
// The process starts on the first Mount and stays idle between previews.
type MPV struct {
	opts   Options
	events preview.Events

	mu         sync.Mutex
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{}
	listener   *EventListener

	ref     string
	title   string
	start   float64
	loaded  bool
	mounted bool
}

// NewMPV creates a backend reporting progress to events. Nothing is spawned yet.
func NewMPV(events preview.Events, opts Options) *MPV {
	if opts.Binary == "" {
		opts.Binary = "mpv"
	}

	return &MPV{
		opts:   opts,
		events: events,
	}
}

// Mount validates ref and makes sure the process runs. Loading happens on Play
// so that the start position and mute flag are in effect before the first frame.
func (m *MPV) Mount(ref, title string) error {
	safe, err := sanitizeMediaTarget(ref)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureRunning(); err != nil {
		return err
	}

	m.ref = safe
	m.title = sanitizeTitle(title)
	m.start = 0
	m.loaded = false
	m.mounted = true
	return nil
}

// Unmount stops the current file. The process stays idle for the next Mount.
func (m *MPV) Unmount() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	wasLoaded := m.loaded
	m.mounted = false
	m.loaded = false

	if !wasLoaded {
		return nil
	}

	_, err := m.sendCommand([]interface{}{"stop"})
	return err
}

// Play loads the mounted file on first use and unpauses it.
func (m *MPV) Play() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.mounted {
		return ErrNotMounted
	}

	if !m.loaded {
		if err := m.set("start", strconv.FormatFloat(m.start, 'f', 3, 64)); err != nil {
			return fmt.Errorf("start position: %w", err)
		}
		if err := m.set("force-media-title", m.title); err != nil {
			return fmt.Errorf("title: %w", err)
		}
		if _, err := m.sendCommand([]interface{}{"loadfile", m.ref, "replace"}); err != nil {
			return fmt.Errorf("loadfile: %w", err)
		}
		m.loaded = true
	}

	return m.set("pause", false)
}

// Pause suspends playback. It is a no-op while nothing is loaded.
func (m *MPV) Pause() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.loaded {
		return nil
	}
	return m.set("pause", true)
}

// SetCurrentTime seeks the loaded file, or sets the start position of the next load.
func (m *MPV) SetCurrentTime(seconds float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.mounted {
		return ErrNotMounted
	}

	if !m.loaded {
		m.start = seconds
		return nil
	}

	_, err := m.sendCommand([]interface{}{"seek", seconds, "absolute"})
	return err
}

// SetMuted applies the mute flag. mpv keeps it across files.
func (m *MPV) SetMuted(muted bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running() {
		return ErrNotMounted
	}
	return m.set("mute", muted)
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.socketPath
}

// Close shuts the process down and removes its socket.
func (m *MPV) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.listener != nil {
		m.listener.Stop()
		m.listener = nil
	}

	if m.cmd == nil {
		return nil
	}

	_, _ = m.sendCommand([]interface{}{"quit"})

	select {
	case <-m.exited:
	case <-time.After(quitTimeout):
		_ = killProcess(m.cmd)
	}

	_ = os.Remove(m.socketPath)
	m.cmd = nil
	m.mounted = false
	m.loaded = false
	return nil
}

// running reports whether the process is alive. Caller holds mu.
func (m *MPV) running() bool {
	if m.cmd == nil {
		return false
	}

	select {
	case <-m.exited:
		return false
	default:
		return true
	}
}

// ensureRunning spawns mpv in idle mode and attaches the event listener. Caller holds mu.
func (m *MPV) ensureRunning() error {
	if m.running() {
		return nil
	}

	if m.listener != nil {
		m.listener.Stop()
		m.listener = nil
	}

	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return fmt.Errorf("generate socket name: %w", err)
	}
	m.socketPath = filepath.Join(where.Temp(), fmt.Sprintf("%s-%x.sock", constant.App, randomBytes))

	m.cmd = exec.Command(m.opts.Binary, m.args()...)
	m.cmd.SysProcAttr = sysProcAttr()
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		m.cmd = nil
		return fmt.Errorf("start mpv: %w", err)
	}

	exited := make(chan struct{})
	m.exited = exited
	cmd := m.cmd
	go func() {
		_ = cmd.Wait()
		close(exited)
	}()

	if err := m.waitForSocket(); err != nil {
		select {
		case <-m.exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(m.cmd)
		}
		m.cmd = nil
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	if m.events != nil {
		m.listener = NewEventListener(m.socketPath, Dispatch(m.events))
		if err := m.listener.Start(); err != nil {
			log.Warnf("mpv events unavailable: %v", err)
			m.listener = nil
		}
	}

	log.With(log.Fields{"socket": m.socketPath, "pid": m.cmd.Process.Pid}).Infof("mpv started")
	return nil
}

// args builds the command line. The IPC socket, idle mode and keep-open are fixed;
// keep-open makes mpv report eof-reached instead of unloading the file.
func (m *MPV) args() []string {
	args := []string{
		"--no-terminal",
		"--really-quiet",
		"--idle=yes",
		"--keep-open=yes",
		"--force-window=no",
		"--pause=yes",
		"--mute=yes",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
	}
	return append(args, m.opts.Args...)
}

// waitForSocket polls until the IPC socket accepts connections.
func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

// set writes an mpv property.
func (m *MPV) set(property string, value interface{}) error {
	_, err := m.sendCommand([]interface{}{"set_property", property, value})
	return err
}

// sanitizeMediaTarget keeps catalog data from injecting mpv flags or odd schemes.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in URL")
	}

	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("url must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}

func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
