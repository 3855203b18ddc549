package tcellscreen

import (
	"errors"
	"io"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tabshell/terminal"
)

func openSim(t *testing.T, opts ...Option) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	s, err := Open(append([]Option{WithScreen(sim)}, opts...)...)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	sim.SetSize(10, 3)
	return s, sim
}

// nextInput skips resize notifications the simulation may post on its own
func nextInput(t *testing.T, s *Screen) terminal.Event {
	t.Helper()
	for {
		ev, err := s.PollEvent()
		if err != nil {
			t.Fatalf("PollEvent: %v", err)
		}
		if ev.Type != terminal.EventResize {
			return ev
		}
	}
}

func TestOpenClose(t *testing.T) {
	s, _ := openSim(t)

	if got := s.Modes(); got != terminal.ModeAll {
		t.Fatalf("Modes() after Open = %v, want all", got)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got := s.Modes(); got != 0 {
		t.Errorf("Modes() after Close = %v, want 0", got)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if err := s.Flush(nil, 0, 0); !errors.Is(err, terminal.ErrNotOpen) {
		t.Errorf("Flush after Close = %v, want ErrNotOpen", err)
	}
	if _, err := s.PollEvent(); !errors.Is(err, terminal.ErrNotOpen) {
		t.Errorf("PollEvent after Close = %v, want ErrNotOpen", err)
	}
}

func TestFlushTranslatesCells(t *testing.T) {
	yellow := terminal.Cell{Rune: 'a', Fg: terminal.RGBYellow, Attrs: terminal.AttrBgDefault | terminal.AttrBold}
	tests := []struct {
		name   string
		mode   terminal.ColorMode
		cell   terminal.Cell
		wantFg tcell.Color
		wantBg tcell.Color
	}{
		{"default colors", terminal.ColorMode256, terminal.BlankCell, tcell.ColorDefault, tcell.ColorDefault},
		{"truecolor", terminal.ColorModeTrueColor, yellow, tcell.NewRGBColor(255, 255, 0), tcell.ColorDefault},
		{"downsampled", terminal.ColorMode256, yellow, tcell.PaletteColor(int(terminal.RGBTo256(terminal.RGBYellow))), tcell.ColorDefault},
		{"palette", terminal.ColorModeTrueColor, terminal.Cell{Rune: 'b', Fg: terminal.RGB{R: 42}, Attrs: terminal.AttrFg256 | terminal.AttrBgDefault}, tcell.PaletteColor(42), tcell.ColorDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, sim := openSim(t, WithColorMode(tt.mode))
			defer s.Close()

			cells := make([]terminal.Cell, 10*3)
			for i := range cells {
				cells[i] = terminal.BlankCell
			}
			cells[10+4] = tt.cell
			if err := s.Flush(cells, 10, 3); err != nil {
				t.Fatalf("Flush: %v", err)
			}

			mainc, _, style, _ := sim.GetContent(4, 1)
			if mainc != tt.cell.Rune {
				t.Errorf("rune = %q, want %q", mainc, tt.cell.Rune)
			}
			fg, bg, attrs := style.Decompose()
			if fg != tt.wantFg || bg != tt.wantBg {
				t.Errorf("colors = %v/%v, want %v/%v", fg, bg, tt.wantFg, tt.wantBg)
			}
			if wantBold := tt.cell.Attrs&terminal.AttrBold != 0; (attrs&tcell.AttrBold != 0) != wantBold {
				t.Errorf("bold = %v, want %v", attrs&tcell.AttrBold != 0, wantBold)
			}
		})
	}
}

func TestFlushShortBuffer(t *testing.T) {
	s, _ := openSim(t)
	defer s.Close()

	if err := s.Flush(make([]terminal.Cell, 5), 10, 3); err == nil {
		t.Fatal("Flush with short buffer succeeded")
	}
}

func TestPollEventKeys(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		ch   rune
		mod  tcell.ModMask
		want terminal.Event
	}{
		{"rune", tcell.KeyRune, 'q', tcell.ModNone, terminal.Event{Type: terminal.EventKey, Key: terminal.KeyRune, Rune: 'q'}},
		{"alt rune", tcell.KeyRune, 'q', tcell.ModAlt, terminal.Event{Type: terminal.EventKey, Key: terminal.KeyRune, Rune: 'q', Modifiers: terminal.ModAlt}},
		{"left", tcell.KeyLeft, 0, tcell.ModNone, terminal.Event{Type: terminal.EventKey, Key: terminal.KeyLeft}},
		{"ctrl right", tcell.KeyRight, 0, tcell.ModCtrl, terminal.Event{Type: terminal.EventKey, Key: terminal.KeyRight, Modifiers: terminal.ModCtrl}},
		{"backtab", tcell.KeyBacktab, 0, tcell.ModNone, terminal.Event{Type: terminal.EventKey, Key: terminal.KeyBacktab}},
		{"f5", tcell.KeyF5, 0, tcell.ModNone, terminal.Event{Type: terminal.EventKey, Key: terminal.KeyF5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, sim := openSim(t)
			defer s.Close()

			sim.InjectKey(tt.key, tt.ch, tt.mod)
			if got := nextInput(t, s); got != tt.want {
				t.Errorf("event = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPollEventMouse(t *testing.T) {
	s, sim := openSim(t)
	defer s.Close()

	sim.InjectMouse(2, 1, tcell.Button1, tcell.ModNone)
	sim.InjectMouse(3, 1, tcell.Button1, tcell.ModNone)
	sim.InjectMouse(3, 1, tcell.ButtonNone, tcell.ModNone)

	want := []struct {
		x      int
		btn    terminal.MouseButton
		action terminal.MouseAction
	}{
		{2, terminal.MouseBtnLeft, terminal.MouseActionPress},
		{3, terminal.MouseBtnLeft, terminal.MouseActionDrag},
		{3, terminal.MouseBtnLeft, terminal.MouseActionRelease},
	}
	for i, w := range want {
		ev := nextInput(t, s)
		if ev.Type != terminal.EventMouse || ev.MouseX != w.x || ev.MouseY != 1 ||
			ev.MouseBtn != w.btn || ev.MouseAction != w.action {
			t.Errorf("event %d = %v, want %v %v at %d,1", i, ev, w.btn, w.action, w.x)
		}
	}
}

func TestPollEventAfterFini(t *testing.T) {
	s, sim := openSim(t)
	sim.Fini()

	for range 4 {
		_, err := s.PollEvent()
		if err == nil {
			continue // Drain anything queued before Fini
		}
		if !errors.Is(err, io.EOF) {
			t.Fatalf("PollEvent = %v, want io.EOF", err)
		}
		return
	}
	t.Fatal("PollEvent never reported io.EOF")
}
