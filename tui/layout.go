package tui

import (
	"github.com/peek-cli/peek/util"
)

const (
	headerLines = 2
	footerLines = 2

	// cardLines is the number of content lines inside a cell's border.
	cardLines = 5

	// seekLine is the row of the seek bar inside a cell, counting the top border.
	seekLine = 5

	muteWidth  = 3
	labelWidth = 11
	minCell    = 24
)

type region int

const (
	regionSurface region = iota
	regionMute
	regionSeek
)

// layout maps between grid cells and terminal coordinates.
type layout struct {
	left, top  int
	columns    int
	cellWidth  int
	cellHeight int
	rows       int
	offset     int
	count      int
}

type hit struct {
	index    int
	region   region
	fraction float64
}

func newLayout(width, height, columns, count, offset int, showURLs bool) layout {
	left, top := paddingStyle.GetPaddingLeft(), paddingStyle.GetPaddingTop()+headerLines

	usable := util.Max(width-paddingStyle.GetHorizontalPadding(), minCell)
	columns = util.Clamp(columns, 1, util.Max(usable/minCell, 1))

	lines := cardLines
	if showURLs {
		lines++
	}
	cellHeight := lines + 2

	rows := util.Max((height-top-footerLines-paddingStyle.GetPaddingBottom())/cellHeight, 1)

	return layout{
		left:       left,
		top:        top,
		columns:    columns,
		cellWidth:  usable / columns,
		cellHeight: cellHeight,
		rows:       rows,
		offset:     offset,
		count:      count,
	}
}

// contentWidth is the width left for text inside border and padding.
func (l layout) contentWidth() int {
	return util.Max(l.cellWidth-4, 1)
}

func (l layout) barWidth() int {
	return util.Max(l.contentWidth()-labelWidth-1, 4)
}

// totalRows is the number of rows needed for every item.
func (l layout) totalRows() int {
	return (l.count + l.columns - 1) / l.columns
}

// maxOffset is the largest scroll offset that still fills the screen.
func (l layout) maxOffset() int {
	return util.Max(l.totalRows()-l.rows, 0)
}

// visible returns the item range drawn on screen.
func (l layout) visible() (from, to int) {
	from = l.offset * l.columns
	to = util.Min(from+l.rows*l.columns, l.count)
	return from, util.Max(from, to)
}

// follow returns the offset that keeps index on screen.
func (l layout) follow(index int) int {
	if index < 0 {
		return l.offset
	}

	row := index / l.columns
	switch {
	case row < l.offset:
		return row
	case row >= l.offset+l.rows:
		return row - l.rows + 1
	default:
		return l.offset
	}
}

// hitTest resolves a terminal cell to a grid item and the region under it.
func (l layout) hitTest(x, y int) (hit, bool) {
	if x < l.left || y < l.top {
		return hit{}, false
	}

	col := (x - l.left) / l.cellWidth
	row := (y - l.top) / l.cellHeight
	if col >= l.columns || row >= l.rows {
		return hit{}, false
	}

	index := (row+l.offset)*l.columns + col
	if index >= l.count {
		return hit{}, false
	}

	lx := (x - l.left) % l.cellWidth
	ly := (y - l.top) % l.cellHeight
	h := hit{index: index, region: regionSurface}

	muteFrom := l.cellWidth - 2 - muteWidth
	barFrom := 2
	switch {
	case ly == 1 && lx >= muteFrom && lx < l.cellWidth-2:
		h.region = regionMute
	case ly == seekLine && lx >= barFrom && lx < barFrom+l.barWidth():
		h.region = regionSeek
		h.fraction = float64(lx-barFrom) / float64(util.Max(l.barWidth()-1, 1))
	}

	return h, true
}
