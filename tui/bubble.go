package tui

import (
	"context"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/peek-cli/peek/catalog"
	"github.com/peek-cli/peek/icon"
	"github.com/peek-cli/peek/internal/ui"
	"github.com/peek-cli/peek/key"
	"github.com/peek-cli/peek/log"
	"github.com/peek-cli/peek/player"
	"github.com/peek-cli/peek/preview"
	"github.com/peek-cli/peek/style"
	"github.com/peek-cli/peek/util"
	"github.com/spf13/viper"
)

const lifecycleBuffer = 32

// cell is one grid entry and the worker driving its preview.
type cell struct {
	item   *catalog.Item
	worker *preview.Worker
}

type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]

	options *Options
	ctx     context.Context
	cancel  context.CancelFunc

	loader *catalog.Loader
	err    error

	cells   []*cell
	visible []*cell
	query   string

	// pointer is the index into visible under the pointer, -1 for none.
	pointer       int
	pointerTarget preview.Target
	offset        int

	players          []player.Player
	lifecycleChannel chan lifecycleMsg

	keymap    *statefulKeymap
	spinnerC  spinner.Model
	inputC    textinput.Model
	progressC progress.Model
	helpC     help.Model
	notifier  ui.Model

	width, height int
}

func newBubble(options *Options) *statefulBubble {
	ctx, cancel := context.WithCancel(context.Background())

	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		statesHistory:    util.Stack[state]{},
		options:          options,
		ctx:              ctx,
		cancel:           cancel,
		loader:           catalog.NewLoader(options.CatalogURL),
		pointer:          -1,
		lifecycleChannel: make(chan lifecycleMsg, lifecycleBuffer),
		keymap:           keymap,
	}

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = style.New().Foreground(style.AccentColor)

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = "Filter videos..."
	bubble.inputC.CharLimit = 80
	bubble.inputC.Prompt = icon.Get(icon.Search) + " "

	bubble.progressC = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())

	bubble.helpC = help.New()

	return &bubble
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

func (b *statefulBubble) newState(s state) {
	// do not push the same state twice
	if b.state == s {
		return
	}

	// transient states are not worth returning to
	if b.state != loadingState && b.state != errorState {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

func (b *statefulBubble) lastState() {
	if b.statesHistory.Len() > 0 {
		b.setState(b.statesHistory.Pop())
		return
	}

	b.setState(gridState)
}

func (b *statefulBubble) resize(width, height int) {
	b.width = width
	b.height = height
	b.helpC.Width = width
	b.inputC.Width = util.Max(width/2, 20)
	b.offset = util.Clamp(b.offset, 0, b.layout().maxOffset())
}

func (b *statefulBubble) columns() int {
	if b.options.Columns > 0 {
		return b.options.Columns
	}
	return util.Max(viper.GetInt(key.TUIColumns), 1)
}

func (b *statefulBubble) layout() layout {
	return newLayout(b.width, b.height, b.columns(), len(b.visible), b.offset, viper.GetBool(key.TUIShowURLs))
}

// populate spawns a worker for each catalog item.
func (b *statefulBubble) populate(items []*catalog.Item) {
	opts := preview.DefaultOptions()
	opts.Mode = b.options.Mode
	opts.Surface = b.options.Surface
	opts.Muted = b.options.StartMuted
	opts.Scheduler = b.options.Scheduler
	if b.options.HoverDelay > 0 {
		opts.HoverDelay = b.options.HoverDelay
	}

	b.cells = make([]*cell, len(items))
	for i, item := range items {
		listener := preview.Multi(preview.LogListener{Item: item}, b.lifecycleListener(item))
		b.cells[i] = &cell{
			item:   item,
			worker: preview.Spawn(item, b.backendFactory(), listener, opts),
		}
	}

	b.visible = b.cells
}

func (b *statefulBubble) backendFactory() func(preview.Events) preview.Backend {
	if b.options.Mode == preview.ModeStatic {
		return nil
	}

	if b.options.NewBackend != nil {
		return b.options.NewBackend
	}

	return func(events preview.Events) preview.Backend {
		p, err := player.New(events)
		if err != nil {
			log.Error(err)
			return nil
		}

		b.players = append(b.players, p)
		return p
	}
}

// lifecycleListener forwards preview notifications to the update loop without blocking the worker.
func (b *statefulBubble) lifecycleListener(item *catalog.Item) preview.Listener {
	post := func(event string, at float64) {
		select {
		case b.lifecycleChannel <- lifecycleMsg{item: item, event: event, at: at}:
		default:
			log.Debugf("dropped %s notification for %q", event, item.Title)
		}
	}

	return preview.ListenerFuncs{
		Start:   func() { post("started", 0) },
		Ended:   func() { post("ended", 0) },
		Resumed: func() { post("resumed", 0) },
		Seeked:  func(t float64) { post("seeked", t) },
	}
}

func (b *statefulBubble) cellAt(index int) *cell {
	if index < 0 || index >= len(b.visible) {
		return nil
	}
	return b.visible[index]
}

func (b *statefulBubble) hovered() *cell {
	return b.cellAt(b.pointer)
}

// pointAt moves the pointer to index and target, emitting leave and enter as needed.
func (b *statefulBubble) pointAt(index int, target preview.Target) {
	if index == b.pointer && target == b.pointerTarget {
		return
	}

	if index != b.pointer {
		if old := b.hovered(); old != nil {
			old.worker.PointerLeave()
		}
		b.pointer = index
	}

	b.pointerTarget = target
	if c := b.hovered(); c != nil {
		c.worker.PointerEnter(target)
	}
}

func (b *statefulBubble) leave() {
	b.pointAt(-1, preview.TargetSurface)
}

// move shifts the pointer by delta cells, keeping it on screen.
func (b *statefulBubble) move(delta int) {
	if len(b.visible) == 0 {
		return
	}

	index := b.pointer + delta
	if b.pointer < 0 {
		index = 0
	}
	index = util.Clamp(index, 0, len(b.visible)-1)

	b.pointAt(index, preview.TargetSurface)
	b.offset = b.layout().follow(index)
}

func (b *statefulBubble) scroll(delta int) {
	b.offset = util.Clamp(b.offset+delta, 0, b.layout().maxOffset())
}

// seekBy moves the hovered preview by delta seconds within its seek range.
func (b *statefulBubble) seekBy(delta float64) {
	c := b.hovered()
	if c == nil {
		return
	}

	status := c.worker.Status()
	if status.Phase != preview.Playing {
		return
	}

	target := util.Max(status.CurrentTime+delta, 0)
	if status.Upper > 0 {
		target = util.Min(target, status.Upper)
	}
	c.worker.Seek(target)
}

// applyFilter narrows the grid to items matching query.
func (b *statefulBubble) applyFilter(query string) {
	b.leave()
	b.query = query
	b.offset = 0

	items := make([]*catalog.Item, len(b.cells))
	byItem := make(map[*catalog.Item]*cell, len(b.cells))
	for i, c := range b.cells {
		items[i] = c.item
		byItem[c.item] = c
	}

	filtered := catalog.Filter(items, query)
	b.visible = make([]*cell, len(filtered))
	for i, item := range filtered {
		b.visible[i] = byItem[item]
	}
}

// shutdown stops every worker, then the engines they drove.
func (b *statefulBubble) shutdown() {
	b.cancel()

	var wg sync.WaitGroup
	for _, c := range b.cells {
		wg.Add(1)
		go func(c *cell) {
			defer wg.Done()
			_ = c.worker.Close()
		}(c)
	}
	wg.Wait()

	for _, p := range b.players {
		wg.Add(1)
		go func(p player.Player) {
			defer wg.Done()
			if err := p.Close(); err != nil {
				log.Warn(err)
			}
		}(p)
	}
	wg.Wait()
}
