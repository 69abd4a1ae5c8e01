package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wrap"
	"github.com/peek-cli/peek/constant"
	"github.com/peek-cli/peek/icon"
	"github.com/peek-cli/peek/key"
	"github.com/peek-cli/peek/preview"
	"github.com/peek-cli/peek/style"
	"github.com/peek-cli/peek/util"
	"github.com/spf13/viper"
)

var paddingStyle = style.New().Padding(1, 2)

func (b *statefulBubble) View() string {
	switch b.state {
	case loadingState:
		return b.viewLoading()
	case errorState:
		return b.viewError()
	case gridState, filterState:
		return b.viewGrid()
	}

	panic("unknown state")
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(true, []string{
		style.Title("Loading Videos..."),
		"",
		b.spinnerC.View() + " " + style.Faint(b.options.CatalogURL),
	})
}

func (b *statefulBubble) viewError() string {
	width := util.Max(b.width-paddingStyle.GetHorizontalPadding(), 20)

	lines := []string{
		style.ErrorTitle("Error"),
		"",
		icon.Get(icon.Fail) + " Error loading Videos. Please try again later.",
	}
	if b.err != nil {
		lines = append(lines, "", style.Faint(wrap.String(b.err.Error(), width)))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewGrid() string {
	l := b.layout()

	header := style.Title(constant.App) + " " + style.Faint(b.filterSummary())
	var second string
	if b.state == filterState {
		second = b.inputC.View()
	}

	var rows []string
	from, to := l.visible()
	for i := from; i < to; i += l.columns {
		var cells []string
		for j := i; j < util.Min(i+l.columns, to); j++ {
			cells = append(cells, b.renderCell(l, j))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	if len(rows) == 0 {
		rows = append(rows, style.Faint("No videos"))
	}

	return b.renderLines(true, []string{
		header,
		second,
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	})
}

func (b *statefulBubble) renderCell(l layout, index int) string {
	c := b.visible[index]
	status := c.worker.Status()
	width := l.contentWidth()

	fit := func(s string) string {
		return truncate.StringWithTail(s, uint(width), "…")
	}

	lines := []string{
		b.renderStatusLine(status, width),
		fit(icon.Get(icon.Avatar) + " " + style.Bold(c.item.Title)),
		fit(style.Faint(c.item.Author)),
		fit(style.Faint(c.item.Subtitle())),
		fit(b.renderSeekLine(l, status)),
	}
	if viper.GetBool(key.TUIShowURLs) {
		lines = append(lines, fit(style.Faint(c.item.VideoURL)))
	}

	borderColor := style.BorderColor
	if index == b.pointer {
		borderColor = style.ActiveBorderColor
	}

	return style.New().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(l.cellWidth - 2).
		Render(strings.Join(lines, "\n"))
}

// renderStatusLine shows the phase on the left and the mute control on the right.
func (b *statefulBubble) renderStatusLine(status preview.Status, width int) string {
	var left string
	switch status.Phase {
	case preview.Playing:
		left = style.Fg(style.SuccessColor)(icon.Get(icon.Play) + " Playing")
	case preview.Armed:
		left = style.Faint(icon.Get(icon.Progress) + " Preview")
	default:
		left = style.Faint(fmt.Sprintf("[%s]", status.Total))
	}

	if status.Phase != preview.Playing {
		return left
	}

	glyph := icon.Get(icon.Unmuted)
	if status.Muted {
		glyph = icon.Get(icon.Muted)
	}
	right := lipgloss.PlaceHorizontal(muteWidth, lipgloss.Right, glyph)

	gap := util.Max(width-lipgloss.Width(left)-muteWidth, 1)
	return left + strings.Repeat(" ", gap) + right
}

func (b *statefulBubble) renderSeekLine(l layout, status preview.Status) string {
	if status.Phase != preview.Playing {
		if b.options.Mode == preview.ModeStatic || b.options.Surface == preview.SurfaceTouch {
			return ""
		}
		return style.Faint("hover to preview")
	}

	var fraction float64
	if status.Upper > 0 {
		fraction = util.Clamp(status.CurrentTime/status.Upper, 0, 1)
	}

	b.progressC.Width = l.barWidth()
	return b.progressC.ViewAs(fraction) + " " + fmt.Sprintf("%s/%s", status.Elapsed, status.Total)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	if addHelp {
		lines = append(lines, "", b.helpC.View(b.keymap))
	}

	return paddingStyle.Render(b.notifier.View(strings.Join(lines, "\n")))
}
