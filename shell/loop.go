package shell

import (
	"io"

	"pkt.systems/pslog"

	"github.com/lixenwraith/tabshell/terminal"
	"github.com/lixenwraith/tabshell/terminal/tui"
)

// State is the loop lifecycle state
type State uint8

const (
	StateRunning State = iota
	StateStopped
)

func (s State) String() string {
	if s == StateStopped {
		return "stopped"
	}
	return "running"
}

// Renderer paints frame descriptions
type Renderer interface {
	Viewport() tui.Rect
	Paint(f tui.Frame) error
}

// EventSource delivers input events, blocking until one is available
type EventSource interface {
	PollEvent() (terminal.Event, error)
}

// FrameBuilder describes the screen for a viewport and tab selection
type FrameBuilder func(area tui.Rect, selected int) tui.Frame

// Screen is a cell-based display such as terminal.Session or tcellscreen.Screen
type Screen interface {
	Size() (int, int)
	Flush(cells []terminal.Cell, width, height int) error
}

// ScreenRenderer rasterizes frames onto a Screen
type ScreenRenderer struct {
	screen Screen
}

// NewScreenRenderer wraps s as a Renderer
func NewScreenRenderer(s Screen) *ScreenRenderer {
	return &ScreenRenderer{screen: s}
}

// Viewport returns the full screen, queried on every call
func (r *ScreenRenderer) Viewport() tui.Rect {
	w, h := r.screen.Size()
	return tui.Rect{W: w, H: h}
}

// Paint rasterizes f and flushes it
func (r *ScreenRenderer) Paint(f tui.Frame) error {
	return r.screen.Flush(f.Rasterize(), max(f.Area.W, 0), max(f.Area.H, 0))
}

// Option configures a Loop
type Option func(*Loop)

// WithTabs enables tab selection over n tabs with arrow and tab keys
func WithTabs(n int) Option {
	return func(l *Loop) { l.tabs = max(n, 0) }
}

// WithLogger sets the logger for lifecycle messages; discarded events are logged at debug level
func WithLogger(logger pslog.Logger) Option {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Loop drives one render/read cycle per tick until 'q' or a failure.
// Only Run's goroutine may touch it.
type Loop struct {
	renderer Renderer
	source   EventSource
	build    FrameBuilder
	logger   pslog.Logger

	state    State
	ticks    int
	tabs     int // Selectable tab count, 0 disables selection
	selected int
}

// NewLoop creates a loop in the running state
func NewLoop(r Renderer, src EventSource, build FrameBuilder, opts ...Option) *Loop {
	l := &Loop{
		renderer: r,
		source:   src,
		build:    build,
		logger:   pslog.NewWithOptions(io.Discard, pslog.Options{Mode: pslog.ModeStructured, NoColor: true}),
		state:    StateRunning,
		selected: tui.NoSelection,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run ticks until 'q' is pressed (nil) or a paint or read fails (*RenderError).
// Each tick paints before it blocks for input. Run on a stopped loop returns nil at once.
func (l *Loop) Run() error {
	for l.state == StateRunning {
		l.ticks++

		frame := l.build(l.renderer.Viewport(), l.selected)
		if err := l.renderer.Paint(frame); err != nil {
			return l.fail("paint", err)
		}

		ev, err := l.source.PollEvent()
		if err != nil {
			return l.fail("read", err)
		}
		l.handle(ev)
	}
	return nil
}

// State returns the current lifecycle state
func (l *Loop) State() State {
	return l.state
}

// Ticks returns the number of ticks started
func (l *Loop) Ticks() int {
	return l.ticks
}

// Selected returns the highlighted tab index, tui.NoSelection if none
func (l *Loop) Selected() int {
	return l.selected
}

func (l *Loop) fail(op string, err error) error {
	l.state = StateStopped
	rerr := &RenderError{Op: op, Tick: l.ticks, Err: err}
	l.logger.Error("loop failed", "op", op, "tick", l.ticks, "err", err)
	return rerr
}

// handle applies one event; everything but 'q' and tab navigation is discarded
func (l *Loop) handle(ev terminal.Event) {
	if ev.IsRune('q') {
		l.state = StateStopped
		l.logger.Info("loop stopped", "ticks", l.ticks)
		return
	}

	if ev.Type == terminal.EventKey {
		switch ev.Key {
		case terminal.KeyRight, terminal.KeyTab:
			l.step(1)
			return
		case terminal.KeyLeft, terminal.KeyBacktab:
			l.step(-1)
			return
		}
	}
	l.logger.Debug("event discarded", "event", ev.String(), "tick", l.ticks)
}

// step moves the selection by delta with wrap-around; from no selection it lands on the first or last tab
func (l *Loop) step(delta int) {
	if l.tabs == 0 {
		return
	}
	switch {
	case l.selected == tui.NoSelection && delta > 0:
		l.selected = 0
	case l.selected == tui.NoSelection:
		l.selected = l.tabs - 1
	default:
		l.selected = ((l.selected+delta)%l.tabs + l.tabs) % l.tabs
	}
}
