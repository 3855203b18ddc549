// Package tcellscreen provides a terminal session backed by tcell.
//
// Screen offers the same surface as terminal.Session (Size, Flush, PollEvent, Close)
// so the render loop can drive either backend unchanged.
package tcellscreen

import (
	"errors"
	"fmt"
	"io"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/tabshell/terminal"
)

// Screen owns a tcell screen for the lifetime of a session
type Screen struct {
	screen    tcell.Screen
	colorMode terminal.ColorMode
	modes     terminal.Mode
	closed    bool
	buttons   tcell.ButtonMask // Last reported button state, for release detection
}

type config struct {
	screen    tcell.Screen
	colorMode terminal.ColorMode
}

// Option configures Open
type Option func(*config)

// WithScreen uses s instead of the process terminal
func WithScreen(s tcell.Screen) Option {
	return func(c *config) { c.screen = s }
}

// WithColorMode selects the color depth used when translating cells
func WithColorMode(m terminal.ColorMode) Option {
	return func(c *config) { c.colorMode = m }
}

// Open initializes the screen: raw mode and alternate screen via Init, then cursor hidden and mouse enabled
func Open(opts ...Option) (*Screen, error) {
	cfg := config{colorMode: terminal.ColorMode256}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := cfg.screen
	if s == nil {
		var err error
		if s, err = tcell.NewScreen(); err != nil {
			return nil, &terminal.InitError{Step: "raw mode", Err: err}
		}
	}
	if err := s.Init(); err != nil {
		return nil, &terminal.InitError{Step: "raw mode", Err: err}
	}

	if err := protect(func() {
		s.HideCursor()
		s.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
		s.EnablePaste()
		s.Clear()
	}); err != nil {
		rbErr := protect(s.Fini)
		return nil, &terminal.InitError{Step: "mouse capture", Err: err, Rollback: rbErr}
	}

	return &Screen{
		screen:    s,
		colorMode: cfg.colorMode,
		modes:     terminal.ModeAll,
	}, nil
}

// Close restores the terminal, running every step even if an earlier one fails
func (s *Screen) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.modes = 0

	var errs []error
	step := func(name string, fn func()) {
		if err := protect(fn); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	step("mouse capture", s.screen.DisableMouse)
	step("paste", s.screen.DisablePaste)
	step("cursor", func() { s.screen.ShowCursor(0, 0) })
	// Fini leaves the alternate screen and restores the saved termios
	step("raw mode", s.screen.Fini)

	if len(errs) > 0 {
		return &terminal.RestoreError{Err: errors.Join(errs...)}
	}
	return nil
}

// Modes reports the active terminal modes, all or none
func (s *Screen) Modes() terminal.Mode {
	return s.modes
}

// Size returns current screen dimensions
func (s *Screen) Size() (int, int) {
	return s.screen.Size()
}

// Flush paints a row-major cell buffer (cells[y*width + x]) and shows it
func (s *Screen) Flush(cells []terminal.Cell, width, height int) error {
	if s.closed {
		return terminal.ErrNotOpen
	}
	if len(cells) < width*height {
		return fmt.Errorf("flush: %d cells for %dx%d", len(cells), width, height)
	}

	for y := 0; y < height; y++ {
		row := cells[y*width : (y+1)*width]
		for x := 0; x < width; x++ {
			c := row[x]
			ch := c.Rune
			if ch == 0 {
				ch = ' '
			}
			s.screen.SetContent(x, y, ch, nil, s.style(c))
			if runewidth.RuneWidth(ch) == 2 {
				x++ // Continuation cell is covered by the wide rune
			}
		}
	}

	return protect(s.screen.Show)
}

// PollEvent blocks until the next input event; io.EOF once the screen is finalized
func (s *Screen) PollEvent() (terminal.Event, error) {
	if s.closed {
		return terminal.Event{}, terminal.ErrNotOpen
	}
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return terminal.Event{}, io.EOF
		}
		if out, ok := s.translate(ev); ok {
			return out, nil
		}
	}
}

// translate converts a tcell event; ok is false for events with no terminal equivalent
func (s *Screen) translate(ev tcell.Event) (terminal.Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		mods := modifiers(ev.Modifiers())
		if ev.Key() == tcell.KeyRune {
			return terminal.Event{Type: terminal.EventKey, Key: terminal.KeyRune, Rune: ev.Rune(), Modifiers: mods}, true
		}
		key, ok := keyMap[ev.Key()]
		if !ok {
			return terminal.Event{}, false
		}
		return terminal.Event{Type: terminal.EventKey, Key: key, Modifiers: mods}, true

	case *tcell.EventResize:
		w, h := ev.Size()
		return terminal.Event{Type: terminal.EventResize, Width: w, Height: h}, true

	case *tcell.EventMouse:
		x, y := ev.Position()
		out := terminal.Event{
			Type:      terminal.EventMouse,
			MouseX:    x,
			MouseY:    y,
			Modifiers: modifiers(ev.Modifiers()),
		}
		out.MouseBtn, out.MouseAction = s.mouse(ev.Buttons())
		return out, true

	case *tcell.EventPaste:
		if ev.Start() {
			return terminal.Event{Type: terminal.EventPaste}, true
		}
	}
	return terminal.Event{}, false
}

// mouse derives button and action from successive button masks
func (s *Screen) mouse(buttons tcell.ButtonMask) (terminal.MouseButton, terminal.MouseAction) {
	prev := s.buttons
	switch {
	case buttons&tcell.WheelUp != 0:
		return terminal.MouseBtnWheelUp, terminal.MouseActionPress
	case buttons&tcell.WheelDown != 0:
		return terminal.MouseBtnWheelDown, terminal.MouseActionPress
	}
	s.buttons = buttons

	switch {
	case buttons == tcell.ButtonNone && prev != tcell.ButtonNone:
		return button(prev), terminal.MouseActionRelease
	case buttons == tcell.ButtonNone:
		return terminal.MouseBtnNone, terminal.MouseActionMove
	case buttons == prev:
		return button(buttons), terminal.MouseActionDrag
	default:
		return button(buttons), terminal.MouseActionPress
	}
}

func button(b tcell.ButtonMask) terminal.MouseButton {
	switch {
	case b&tcell.Button1 != 0:
		return terminal.MouseBtnLeft
	case b&tcell.Button3 != 0:
		return terminal.MouseBtnMiddle
	case b&tcell.Button2 != 0:
		return terminal.MouseBtnRight
	}
	return terminal.MouseBtnNone
}

func modifiers(m tcell.ModMask) terminal.Modifier {
	var out terminal.Modifier
	if m&tcell.ModShift != 0 {
		out |= terminal.ModShift
	}
	if m&(tcell.ModAlt|tcell.ModMeta) != 0 {
		out |= terminal.ModAlt
	}
	if m&tcell.ModCtrl != 0 {
		out |= terminal.ModCtrl
	}
	return out
}

// protect runs fn and converts a panic into an error
func protect(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	fn()
	return nil
}
