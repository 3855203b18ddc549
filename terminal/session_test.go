package terminal

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

var errBoom = errors.New("boom")

func failOn(seq []byte) func([]byte) error {
	return func(p []byte) error {
		if bytes.Contains(p, seq) {
			return errBoom
		}
		return nil
	}
}

func TestOpenEntersAllModes(t *testing.T) {
	fb := newFakeBackend()
	s, err := Open(WithBackend(fb))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if s.Modes() != ModeAll {
		t.Errorf("Modes() = %b, want %b", s.Modes(), ModeAll)
	}
	if fb.inits != 1 {
		t.Errorf("backend Init called %d times, want 1", fb.inits)
	}
	out := fb.out.Bytes()
	for name, seq := range map[string][]byte{
		"alt screen":  csiAltScreenEnter,
		"cursor hide": csiCursorHide,
		"mouse sgr":   csiMouseSGROn,
		"mouse click": csiMouseClickOn,
	} {
		if !bytes.Contains(out, seq) {
			t.Errorf("Open output missing %s sequence", name)
		}
	}
}

func TestOpenFailureRollsBack(t *testing.T) {
	tests := []struct {
		name      string
		initErr   error
		failWrite func([]byte) error
		lateFail  bool
		wantStep  string
		wantFinis int
		wantOut   [][]byte
	}{
		{"raw mode", errBoom, nil, false, "raw mode", 0, nil},
		{"alternate screen", nil, failOn(csiAltScreenEnter), false, "alternate screen", 1, [][]byte{csiAltScreenExit}},
		{"mouse capture", nil, failOn(csiMouseSGROn), false, "mouse capture", 1, [][]byte{csiMouseSGROff, csiAltScreenExit}},
		// The sequence reached the terminal before the write reported failure
		{"alternate screen written", nil, failOn(csiAltScreenEnter), true, "alternate screen", 1, [][]byte{csiAltScreenEnter, csiAltScreenExit, csiCursorShow}},
		{"mouse capture written", nil, failOn(csiMouseSGROn), true, "mouse capture", 1, [][]byte{csiMouseSGROn, csiMouseSGROff, csiMouseClickOff, csiAltScreenExit}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := newFakeBackend()
			fb.initErr = tt.initErr
			fb.failWrite = tt.failWrite
			fb.lateFail = tt.lateFail

			s, err := Open(WithBackend(fb))
			if s != nil {
				t.Fatal("Open returned a session on failure")
			}

			var initErr *InitError
			if !errors.As(err, &initErr) {
				t.Fatalf("Open error = %v, want *InitError", err)
			}
			if initErr.Step != tt.wantStep {
				t.Errorf("Step = %q, want %q", initErr.Step, tt.wantStep)
			}
			if !errors.Is(err, errBoom) {
				t.Errorf("InitError does not wrap cause: %v", err)
			}
			if fb.finis != tt.wantFinis {
				t.Errorf("backend Fini called %d times, want %d", fb.finis, tt.wantFinis)
			}
			for _, seq := range tt.wantOut {
				if !bytes.Contains(fb.out.Bytes(), seq) {
					t.Errorf("output missing %q", seq)
				}
			}
		})
	}
}

func TestCloseRestoresAndClearsModes(t *testing.T) {
	fb := newFakeBackend()
	s, err := Open(WithBackend(fb))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	fb.out.Reset()

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if s.Modes() != 0 {
		t.Errorf("Modes() after Close = %b, want 0", s.Modes())
	}
	if fb.finis != 1 {
		t.Errorf("backend Fini called %d times, want 1", fb.finis)
	}

	out := fb.out.String()
	for _, seq := range [][]byte{csiMouseSGROff, csiCursorShow, csiAltScreenExit, csiAutoWrapOn} {
		if !strings.Contains(out, string(seq)) {
			t.Errorf("Close output missing %q", seq)
		}
	}
}

func TestCloseAttemptsEveryStep(t *testing.T) {
	fb := newFakeBackend()
	s, err := Open(WithBackend(fb))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	fb.writes = 0
	fb.failWrite = func([]byte) error { return errBoom }
	fb.finiErr = errors.New("tcsetattr")

	err = s.Close()
	var restoreErr *RestoreError
	if !errors.As(err, &restoreErr) {
		t.Fatalf("Close error = %v, want *RestoreError", err)
	}
	if fb.writes != 4 {
		t.Errorf("Close attempted %d writes, want 4", fb.writes)
	}
	if fb.finis != 1 {
		t.Errorf("raw mode restore skipped after write failures")
	}
	if !errors.Is(err, errBoom) || !errors.Is(err, fb.finiErr) {
		t.Errorf("RestoreError does not join step failures: %v", err)
	}
	if s.Modes() != 0 {
		t.Errorf("Modes() after failed Close = %b, want 0", s.Modes())
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	fb := newFakeBackend()
	s, err := Open(WithBackend(fb))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if fb.finis != 1 {
		t.Errorf("backend Fini called %d times, want 1", fb.finis)
	}

	if err := s.Flush(nil, 0, 0); !errors.Is(err, ErrNotOpen) {
		t.Errorf("Flush after Close = %v, want ErrNotOpen", err)
	}
	if _, err := s.PollEvent(); !errors.Is(err, ErrNotOpen) {
		t.Errorf("PollEvent after Close = %v, want ErrNotOpen", err)
	}
}

func TestFlushDiffsAgainstFrontBuffer(t *testing.T) {
	fb := newFakeBackend()
	fb.w, fb.h = 3, 1
	s, err := Open(WithBackend(fb))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	cells := []Cell{
		{Rune: 'a', Attrs: AttrDefaultColors},
		{Rune: 'b', Attrs: AttrDefaultColors},
		{Rune: 'c', Attrs: AttrDefaultColors},
	}

	fb.out.Reset()
	if err := s.Flush(cells, 3, 1); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if !strings.Contains(fb.out.String(), "abc") {
		t.Errorf("first flush output %q missing cell text", fb.out.String())
	}

	fb.out.Reset()
	if err := s.Flush(cells, 3, 1); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got := fb.out.String(); got != string(csiSGR0) {
		t.Errorf("unchanged flush wrote %q, want only SGR reset", got)
	}

	cells[1].Rune = 'x'
	fb.out.Reset()
	if err := s.Flush(cells, 3, 1); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	got := fb.out.String()
	if !strings.Contains(got, "x") || strings.Contains(got, "a") || strings.Contains(got, "c") {
		t.Errorf("diff flush wrote %q, want only the changed cell", got)
	}
}

func TestFlushReportsWriteError(t *testing.T) {
	fb := newFakeBackend()
	fb.w, fb.h = 1, 1
	s, err := Open(WithBackend(fb))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	fb.failWrite = func([]byte) error { return errBoom }
	if err := s.Flush([]Cell{{Rune: 'z'}}, 1, 1); !errors.Is(err, errBoom) {
		t.Errorf("Flush error = %v, want wrapped write failure", err)
	}
}

func TestSizeCapturedAtOpenAndOnResize(t *testing.T) {
	fb := newFakeBackend(fakeRead{resize: true})
	fb.w, fb.h = 100, 30
	s, err := Open(WithBackend(fb))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	fb.w, fb.h = 60, 20
	if w, h := s.Size(); w != 100 || h != 30 {
		t.Errorf("Size() = %dx%d, want size at Open 100x30", w, h)
	}

	ev, err := s.PollEvent()
	if err != nil || ev.Type != EventResize {
		t.Fatalf("PollEvent = %v, %v, want resize", ev, err)
	}
	if w, h := s.Size(); w != 60 || h != 20 {
		t.Errorf("Size() after resize = %dx%d, want 60x20", w, h)
	}
}

func TestFlushRejectsShortBuffer(t *testing.T) {
	fb := newFakeBackend()
	s, err := Open(WithBackend(fb))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	fb.out.Reset()
	if err := s.Flush(make([]Cell, 5), 10, 3); err == nil {
		t.Fatal("Flush with short buffer succeeded")
	}
	if fb.out.Len() != 0 {
		t.Errorf("short flush wrote %q", fb.out.String())
	}
}
