// Package terminal runs the page in a text terminal. Each character cell is
// split into two vertical half-block pixels, and the page's pixel coordinates
// are mapped onto cells with a fixed cell size.
package terminal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/backdrop/host"
)

// Options configure a terminal host.
type Options struct {
	CellWidth  int     // Virtual pixels per cell column
	CellHeight int     // Virtual pixels per cell row, split into two half blocks
	FPS        int     // Frame rate; 0 disables pacing
	ScrollStep float64 // Page pixels per wheel notch or arrow key
	Links      []string
	Background host.Color
}

// Terminal is a tcell screen acting as both Host and Surface.
type Terminal struct {
	screen tcell.Screen
	opts   Options

	mu         sync.Mutex
	cols, rows int
	queued     []host.Event
	pointerCol int
	pointerRow int

	// Loop goroutine only
	raster     []host.Color // cols x rows*2
	rasterCols int
	rasterRows int
	text       []textRun

	interval time.Duration
	ticker   *time.Ticker
	closed   bool
}

type textRun struct {
	col, row int
	s        string
	fg       host.Color
	bold     bool
}

// Open initializes the terminal screen and starts reading input.
func Open(opts Options) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	t, err := newTerminal(screen, opts)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	go t.readEvents()
	return t, nil
}

// newTerminal wraps an initialized screen without reading its events.
func newTerminal(screen tcell.Screen, opts Options) (*Terminal, error) {
	if opts.CellWidth <= 0 || opts.CellHeight < 2 {
		return nil, fmt.Errorf("invalid cell size %dx%d", opts.CellWidth, opts.CellHeight)
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	t := &Terminal{
		screen:     screen,
		opts:       opts,
		pointerCol: -1,
		pointerRow: -1,
	}
	t.cols, t.rows = screen.Size()
	if opts.FPS > 0 {
		t.interval = time.Second / time.Duration(opts.FPS)
	}
	t.resizeRaster()
	return t, nil
}

// readEvents feeds screen events into the queue until the screen is closed.
func (t *Terminal) readEvents() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		evs := t.translate(ev)
		if len(evs) == 0 {
			continue
		}
		t.mu.Lock()
		t.queued = append(t.queued, evs...)
		t.mu.Unlock()
	}
}

// translate converts one tcell event into host events.
func (t *Terminal) translate(ev tcell.Event) []host.Event {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		cols, rows := ev.Size()
		t.mu.Lock()
		changed := cols != t.cols || rows != t.rows
		t.cols, t.rows = cols, rows
		t.mu.Unlock()
		if !changed {
			return nil
		}
		return []host.Event{{Type: host.EventResize, W: cols * t.opts.CellWidth, H: rows * t.opts.CellHeight}}

	case *tcell.EventMouse:
		return t.translateMouse(ev)

	case *tcell.EventKey:
		return t.translateKey(ev)
	}
	return nil
}

func (t *Terminal) translateMouse(ev *tcell.EventMouse) []host.Event {
	var out []host.Event
	col, row := ev.Position()

	t.mu.Lock()
	moved := col != t.pointerCol || row != t.pointerRow
	t.pointerCol, t.pointerRow = col, row
	t.mu.Unlock()

	if moved {
		// Pointer sits at the cell centre
		out = append(out, host.Event{
			Type: host.EventPointerMove,
			X:    float64(col*t.opts.CellWidth + t.opts.CellWidth/2),
			Y:    float64(row*t.opts.CellHeight + t.opts.CellHeight/2),
		})
	}

	buttons := ev.Buttons()
	if buttons&tcell.WheelUp != 0 {
		out = append(out, host.Event{Type: host.EventScroll, DY: -t.opts.ScrollStep})
	}
	if buttons&tcell.WheelDown != 0 {
		out = append(out, host.Event{Type: host.EventScroll, DY: t.opts.ScrollStep})
	}
	return out
}

func (t *Terminal) translateKey(ev *tcell.EventKey) []host.Event {
	_, h := t.Size()
	page := float64(h) * 0.9

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return []host.Event{{Type: host.EventQuit}}
	case tcell.KeyUp:
		return []host.Event{{Type: host.EventScroll, DY: -t.opts.ScrollStep}}
	case tcell.KeyDown:
		return []host.Event{{Type: host.EventScroll, DY: t.opts.ScrollStep}}
	case tcell.KeyPgUp:
		return []host.Event{{Type: host.EventScroll, DY: -page}}
	case tcell.KeyPgDn:
		return []host.Event{{Type: host.EventScroll, DY: page}}
	case tcell.KeyRune:
	default:
		return nil
	}

	switch r := ev.Rune(); {
	case r == 'q':
		return []host.Event{{Type: host.EventQuit}}
	case r == 'm':
		return []host.Event{{Type: host.EventToggleMenu}}
	case r == 's':
		return []host.Event{{Type: host.EventSubmit, Target: "contact-form"}}
	case r == ' ':
		return []host.Event{{Type: host.EventScroll, DY: page}}
	case r >= '1' && r <= '9':
		i := int(r - '1')
		if i < len(t.opts.Links) {
			return []host.Event{{Type: host.EventClick, Target: t.opts.Links[i]}}
		}
	}
	return nil
}

func (t *Terminal) Surface() (host.Surface, error) {
	if t.closed {
		return nil, host.ErrNoSurface
	}
	return t, nil
}

// Size returns the virtual pixel size of the screen.
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cols * t.opts.CellWidth, t.rows * t.opts.CellHeight
}

func (t *Terminal) Poll(bus *host.Bus) {
	t.mu.Lock()
	queued := t.queued
	t.queued = nil
	t.mu.Unlock()

	for _, ev := range queued {
		bus.Publish(ev)
	}
}

func (t *Terminal) BeginFrame() {
	t.resizeRaster()
	t.text = t.text[:0]
}

// EndFrame writes the raster and text to the screen.
func (t *Terminal) EndFrame() {
	for row := 0; row < t.rasterRows/2; row++ {
		for col := 0; col < t.rasterCols; col++ {
			top := t.raster[(row*2)*t.rasterCols+col]
			bottom := t.raster[(row*2+1)*t.rasterCols+col]
			style := tcell.StyleDefault.Foreground(toTcell(top)).Background(toTcell(bottom))
			t.screen.SetContent(col, row, '▀', nil, style)
		}
	}
	for _, run := range t.text {
		t.flushText(run)
	}
	t.screen.Show()
}

func (t *Terminal) flushText(run textRun) {
	if run.row < 0 || run.row >= t.rasterRows/2 {
		return
	}
	col := run.col
	for _, r := range run.s {
		if col >= t.rasterCols {
			return
		}
		if col >= 0 {
			bg := t.raster[(run.row*2+1)*t.rasterCols+col]
			style := tcell.StyleDefault.Foreground(toTcell(run.fg)).Background(toTcell(bg)).Bold(run.bold)
			t.screen.SetContent(col, run.row, r, nil, style)
		}
		col++
	}
}

func (t *Terminal) WaitFrame(ctx context.Context) error {
	if t.interval == 0 {
		return ctx.Err()
	}
	if t.ticker == nil {
		t.ticker = time.NewTicker(t.interval)
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.ticker.C:
		return nil
	}
}

// Close restores the terminal.
func (t *Terminal) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	if t.ticker != nil {
		t.ticker.Stop()
	}
	t.screen.Fini()
	return nil
}

// resizeRaster reallocates the raster when the screen size changed.
func (t *Terminal) resizeRaster() {
	t.mu.Lock()
	cols, rows := t.cols, t.rows
	t.mu.Unlock()
	if cols == t.rasterCols && rows*2 == t.rasterRows {
		return
	}
	t.rasterCols, t.rasterRows = cols, rows*2
	t.raster = make([]host.Color, cols*rows*2)
	for i := range t.raster {
		t.raster[i] = t.opts.Background
	}
}

// Text draws s at a virtual pixel position, snapped to the containing cell.
func (t *Terminal) Text(x, y float64, s string, fg host.Color, bold bool) {
	t.text = append(t.text, textRun{
		col:  int(x) / t.opts.CellWidth,
		row:  int(y) / t.opts.CellHeight,
		s:    s,
		fg:   fg,
		bold: bold,
	})
}

// Cols returns the screen width in cells.
func (t *Terminal) Cols() int {
	return t.rasterCols
}

func toTcell(c host.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
