// Package ui keeps the transient notification line shown under the grid.
package ui

import (
	"strings"
	"time"

	"github.com/peek-cli/peek/style"
	tea "github.com/charmbracelet/bubbletea"
)

// Lifetime is how long a notification stays on screen.
const Lifetime = 3 * time.Second

// Model holds the current notification.
type Model struct {
	notification string
	notifiedAt   time.Time
}

// NotificationMsg replaces the current notification.
type NotificationMsg string

// ClearNotificationMsg clears the notification if it has outlived Lifetime.
type ClearNotificationMsg struct{}

// Notify returns a command that shows text.
func Notify(text string) tea.Cmd {
	return func() tea.Msg {
		return NotificationMsg(text)
	}
}

// ClearNotification returns a delayed command that clears the notification.
func ClearNotification() tea.Cmd {
	return tea.Tick(Lifetime, func(time.Time) tea.Msg {
		return ClearNotificationMsg{}
	})
}

// Update processes notification messages.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NotificationMsg:
		m.notification = string(msg)
		m.notifiedAt = time.Now()
		return ClearNotification()
	case ClearNotificationMsg:
		// A newer notification restarted the clock.
		if time.Since(m.notifiedAt) >= Lifetime {
			m.notification = ""
		}
	}
	return nil
}

// Current returns the notification text, empty when nothing is shown.
func (m *Model) Current() string {
	return m.notification
}

// View appends the notification to the last line of mainContent.
func (m *Model) View(mainContent string) string {
	if m.notification == "" {
		return mainContent
	}

	lines := strings.Split(mainContent, "\n")
	lines[len(lines)-1] += "  " + style.Faint(m.notification)
	return strings.Join(lines, "\n")
}
