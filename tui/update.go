package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/peek-cli/peek/internal/ui"
	"github.com/peek-cli/peek/log"
	"github.com/peek-cli/peek/open"
	"github.com/peek-cli/peek/preview"
	"github.com/peek-cli/peek/query"
	"github.com/spf13/viper"

	keys "github.com/peek-cli/peek/key"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	notifierCmd := b.notifier.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, notifierCmd
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, b.keymap.forceQuit):
			return b, tea.Quit
		case key.Matches(msg, b.keymap.showHelp) && b.state != filterState:
			b.helpC.ShowAll = !b.helpC.ShowAll
			return b, nil
		}
	case lifecycleMsg:
		var cmd tea.Cmd
		if viper.GetBool(keys.TUINotifications) {
			cmd = ui.Notify(msg.String())
		}
		return b, tea.Batch(cmd, b.waitForLifecycle())
	case ui.NotificationMsg, ui.ClearNotificationMsg:
		return b, notifierCmd
	}

	switch b.state {
	case loadingState:
		return b.updateLoading(msg)
	case errorState:
		return b.updateError(msg)
	case gridState:
		return b.updateGrid(msg)
	case filterState:
		return b.updateFilter(msg)
	}

	return b, nil
}

func (b *statefulBubble) updateLoading(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case catalogLoadedMsg:
		b.populate(msg.items)
		b.newState(gridState)
		return b, refresh()
	case catalogFailedMsg:
		b.err = msg.err
		b.newState(errorState)
		return b, nil
	}

	var cmd tea.Cmd
	b.spinnerC, cmd = b.spinnerC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, b.keymap.quit, b.keymap.back) {
		return b, tea.Quit
	}

	return b, nil
}

func (b *statefulBubble) updateGrid(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		return b, refresh()
	case tea.MouseMsg:
		b.handleMouse(msg)
		return b, nil
	case tea.KeyMsg:
		columns := b.layout().columns

		switch {
		case key.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		case key.Matches(msg, b.keymap.back):
			if b.pointer >= 0 {
				b.leave()
				return b, nil
			}
			if b.query != "" {
				b.applyFilter("")
				return b, nil
			}
		case key.Matches(msg, b.keymap.up):
			b.move(-columns)
		case key.Matches(msg, b.keymap.down):
			b.move(columns)
		case key.Matches(msg, b.keymap.left):
			b.move(-1)
		case key.Matches(msg, b.keymap.right):
			b.move(1)
		case key.Matches(msg, b.keymap.top):
			b.move(-len(b.visible))
		case key.Matches(msg, b.keymap.bottom):
			b.move(len(b.visible))
		case key.Matches(msg, b.keymap.mute):
			if c := b.hovered(); c != nil {
				c.worker.ToggleMute()
			}
		case key.Matches(msg, b.keymap.seekBack):
			b.seekBy(-b.seekStep())
		case key.Matches(msg, b.keymap.seekForward):
			b.seekBy(b.seekStep())
		case key.Matches(msg, b.keymap.openURL):
			if c := b.hovered(); c != nil {
				if err := open.Start(c.item.VideoURL); err != nil {
					return b, ui.Notify("Could not open: " + err.Error())
				}
			}
		case key.Matches(msg, b.keymap.filter):
			b.leave()
			b.inputC.SetValue(b.query)
			b.inputC.CursorEnd()
			b.newState(filterState)
			return b, b.inputC.Focus()
		}
	}

	return b, nil
}

func (b *statefulBubble) updateFilter(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		return b, refresh()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, b.keymap.back):
			b.inputC.Blur()
			b.applyFilter(b.query)
			b.lastState()
			return b, nil
		case key.Matches(msg, b.keymap.confirm):
			value := b.inputC.Value()
			b.inputC.Blur()
			b.applyFilter(value)
			if err := query.Remember(value, 1); err != nil {
				log.Warn(err)
			}
			b.lastState()
			return b, nil
		case key.Matches(msg, b.keymap.acceptSuggestion):
			if suggestion, ok := query.Suggest(b.inputC.Value()).Get(); ok {
				b.inputC.SetValue(suggestion)
				b.inputC.CursorEnd()
				b.preview(suggestion)
			}
			return b, nil
		}
	}

	var cmd tea.Cmd
	before := b.inputC.Value()
	b.inputC, cmd = b.inputC.Update(msg)
	if value := b.inputC.Value(); value != before {
		b.preview(value)
	}

	return b, cmd
}

// preview narrows the grid while the filter is being typed without committing the query.
func (b *statefulBubble) preview(value string) {
	committed := b.query
	b.applyFilter(value)
	b.query = committed
}

func (b *statefulBubble) handleMouse(msg tea.MouseMsg) {
	if msg.Action == tea.MouseActionPress {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			b.scroll(-1)
			return
		case tea.MouseButtonWheelDown:
			b.scroll(1)
			return
		}
	}

	h, ok := b.layout().hitTest(msg.X, msg.Y)
	if !ok {
		b.leave()
		return
	}

	// the mute control and seek bar exist only while playing
	status := b.visible[h.index].worker.Status()
	if status.Phase != preview.Playing {
		h.region = regionSurface
	}

	target := preview.TargetSurface
	if h.region == regionMute {
		target = preview.TargetMuteControl
	}
	b.pointAt(h.index, target)

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}

	c := b.hovered()
	switch h.region {
	case regionMute:
		c.worker.ToggleMute()
	case regionSeek:
		if status.Upper > 0 {
			c.worker.Seek(h.fraction * status.Upper)
		}
	}
}

func (b *statefulBubble) seekStep() float64 {
	if b.options.SeekStep > 0 {
		return b.options.SeekStep
	}
	if step := viper.GetFloat64(keys.PreviewSeekStep); step > 0 {
		return step
	}
	return 5
}
