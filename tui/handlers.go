package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/peek-cli/peek/catalog"
	"github.com/peek-cli/peek/util"
)

const refreshInterval = 250 * time.Millisecond

type (
	catalogLoadedMsg struct{ items []*catalog.Item }
	catalogFailedMsg struct{ err error }
	refreshMsg       struct{}
	lifecycleMsg     struct {
		item  *catalog.Item
		event string
		at    float64
	}
)

func (m lifecycleMsg) String() string {
	switch m.event {
	case "seeked":
		return fmt.Sprintf("Video seeked to %.2f: %s", m.at, m.item.Title)
	default:
		return fmt.Sprintf("Video %s: %s", m.event, m.item.Title)
	}
}

func (b *statefulBubble) loadCatalog() tea.Cmd {
	b.loader.Start(b.ctx)

	return func() tea.Msg {
		if err := b.loader.Wait(b.ctx); err != nil {
			return catalogFailedMsg{err}
		}
		return catalogLoadedMsg{b.loader.Items()}
	}
}

func (b *statefulBubble) waitForLifecycle() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-b.lifecycleChannel:
			return msg
		case <-b.ctx.Done():
			return nil
		}
	}
}

// refresh repaints playing cells whose progress changed off the update loop.
func refresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg {
		return refreshMsg{}
	})
}

func (b *statefulBubble) filterSummary() string {
	if b.query == "" {
		return util.Quantify(len(b.visible), "video", "videos")
	}
	return fmt.Sprintf("%s matching %q", util.Quantify(len(b.visible), "video", "videos"), b.query)
}
