package player

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/peek-cli/peek/log"
	"github.com/peek-cli/peek/preview"
)

// EventCallback receives observed property changes and other mpv events.
type EventCallback func(property string, data interface{})

// observed lists the properties the listener subscribes to.
var observed = []string{"time-pos", "duration", "eof-reached"}

// EventListener keeps one connection open to mpv and reads property-change events from it.
// mpv only reports observed properties to the client that asked, so subscriptions share the connection.
type EventListener struct {
	socketPath string
	conn       net.Conn
	callback   EventCallback
	stopCh     chan struct{}
	mu         sync.Mutex
	listening  bool
}

// NewEventListener creates a listener for the given socket.
func NewEventListener(socketPath string, callback EventCallback) *EventListener {
	return &EventListener{
		socketPath: socketPath,
		callback:   callback,
		stopCh:     make(chan struct{}),
	}
}

// Start subscribes to the observed properties and starts the read loop.
func (el *EventListener) Start() error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.listening {
		return nil
	}

	conn, err := net.Dial("unix", el.socketPath)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}

	for i, name := range observed {
		payload, err := json.Marshal(ipcCommand{Command: []interface{}{"observe_property", i + 1, name}})
		if err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
		if _, err := conn.Write(append(payload, '\n')); err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
	}

	el.conn = conn
	el.listening = true
	go el.readLoop(conn)

	log.Debugf("mpv event listener started on %s (observing: %s)", el.socketPath, strings.Join(observed, ", "))
	return nil
}

// Stop terminates the listener. It is safe to call more than once.
func (el *EventListener) Stop() {
	el.mu.Lock()
	defer el.mu.Unlock()

	if !el.listening {
		return
	}

	close(el.stopCh)
	if el.conn != nil {
		el.conn.Close()
	}
	el.listening = false
}

// readLoop reads newline-delimited JSON events until the connection closes.
func (el *EventListener) readLoop(conn net.Conn) {
	defer func() {
		el.mu.Lock()
		el.listening = false
		el.mu.Unlock()
	}()

	buf := make([]byte, readBufSize)
	var remainder []byte

	for {
		select {
		case <-el.stopCh:
			return
		default:
		}

		if err := conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
			return
		}

		n, err := conn.Read(buf)
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			select {
			case <-el.stopCh:
			default:
				log.Warnf("event listener read error: %v", err)
			}
			return
		}

		data := append(remainder, buf[:n]...)
		remainder = nil

		lines := strings.Split(string(data), "\n")
		for i, line := range lines {
			// The last segment is incomplete unless the chunk ended with a newline.
			if i == len(lines)-1 {
				if line != "" {
					remainder = []byte(line)
				}
				continue
			}

			if line = strings.TrimSpace(line); line != "" {
				el.processEvent(line)
			}
		}
	}
}

// processEvent parses and dispatches a single event line. Command replies are skipped.
func (el *EventListener) processEvent(line string) {
	var event map[string]interface{}
	if err := json.Unmarshal([]byte(line), &event); err != nil {
		return
	}

	eventType, ok := event["event"].(string)
	if !ok || el.callback == nil {
		return
	}

	switch eventType {
	case "property-change":
		if name, _ := event["name"].(string); name != "" {
			el.callback(name, event["data"])
		}
	default:
		el.callback(eventType, event)
	}
}

// Dispatch translates mpv property changes into preview events.
func Dispatch(events preview.Events) EventCallback {
	return func(property string, data interface{}) {
		switch property {
		case "time-pos":
			if seconds, ok := data.(float64); ok {
				events.TimeUpdate(seconds)
			}
		case "duration":
			if seconds, ok := data.(float64); ok {
				events.CanPlay(seconds)
			}
		case "eof-reached":
			if reached, ok := data.(bool); ok && reached {
				events.Ended()
			}
		}
	}
}
