package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Session owns the terminal device in raw, alternate-screen, mouse-capture mode.
// It is created by Open and must be released by exactly one Close.
// A Session is not safe for concurrent use; one goroutine drives paint and input.
type Session struct {
	backend Backend
	output  *outputBuffer
	input   *decoder
	modes   Mode
	closed  bool

	// Viewport captured at Open, refreshed by each EventResize
	width, height int
}

type config struct {
	backend   Backend
	colorMode ColorMode
}

// Option configures Open
type Option func(*config)

// WithBackend replaces the platform backend (stdin/stdout)
func WithBackend(b Backend) Option {
	return func(c *config) { c.backend = b }
}

// WithColorMode selects 256-color or 24-bit output
func WithColorMode(m ColorMode) Option {
	return func(c *config) { c.colorMode = m }
}

// Open enters raw mode, the alternate screen and mouse capture.
// On failure every step that already succeeded is undone and the returned *InitError
// names the failing step; there is nothing to Close.
func Open(opts ...Option) (*Session, error) {
	cfg := config{colorMode: ColorMode256}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.backend == nil {
		cfg.backend = newBackend()
	}
	b := cfg.backend

	if err := b.Init(); err != nil {
		return nil, &InitError{Step: "raw mode", Err: err}
	}

	// Rollback for each attempted step, unwound in reverse.
	// A step's undo is registered before its write: a write can reach the
	// terminal and still report an error.
	undo := []func() error{b.Fini}
	fail := func(step string, err error) (*Session, error) {
		var errs []error
		for i := len(undo) - 1; i >= 0; i-- {
			if rerr := undo[i](); rerr != nil {
				errs = append(errs, rerr)
			}
		}
		return nil, &InitError{Step: step, Err: err, Rollback: errors.Join(errs...)}
	}

	undo = append(undo, func() error {
		return writeSeq(b, csiSGR0, csiAutoWrapOn, csiCursorShow, csiAltScreenExit)
	})
	if err := writeSeq(b, csiAltScreenEnter, csiCursorHide, csiAutoWrapOff, csiSGR0, csiClear); err != nil {
		return fail("alternate screen", err)
	}

	undo = append(undo, func() error {
		return writeSeq(b, csiMouseDragOff, csiMouseClickOff, csiMouseSGROff)
	})
	if err := writeSeq(b, csiMouseSGROn, csiMouseClickOn, csiMouseDragOn); err != nil {
		return fail("mouse capture", err)
	}

	w, h := b.Size()
	return &Session{
		backend: b,
		output:  newOutputBuffer(b, cfg.colorMode),
		input:   newDecoder(b),
		modes:   ModeAll,
		width:   w,
		height:  h,
	}, nil
}

// Close leaves every mode entered by Open.
// Each restoration step runs even if an earlier one failed; failures are joined in a *RestoreError.
// Calls after the first are no-ops.
func (s *Session) Close() error {
	if s == nil || s.closed {
		return nil
	}
	s.closed = true
	s.modes = 0

	var errs []error
	step := func(name string, seqs ...[]byte) {
		if err := writeSeq(s.backend, seqs...); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	step("mouse capture", csiMouseMotionOff, csiMouseDragOff, csiMouseClickOff, csiMouseSGROff)
	step("cursor", csiSGR0, csiCursorShow)
	step("alternate screen", csiAltScreenExit)
	step("auto-wrap", csiAutoWrapOn)
	if err := s.backend.Fini(); err != nil {
		errs = append(errs, fmt.Errorf("raw mode: %w", err))
	}

	if len(errs) > 0 {
		return &RestoreError{Err: errors.Join(errs...)}
	}
	return nil
}

// Modes reports the held terminal modes: ModeAll while open, 0 otherwise
func (s *Session) Modes() Mode {
	return s.modes
}

// Size returns the viewport as of Open or the latest resize event
func (s *Session) Size() (int, int) {
	return s.width, s.height
}

// Flush paints a row-major cell buffer (cells[y*width + x])
func (s *Session) Flush(cells []Cell, width, height int) error {
	if s.closed {
		return ErrNotOpen
	}
	if err := s.output.flush(cells, width, height); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// PollEvent blocks until the next input event
func (s *Session) PollEvent() (Event, error) {
	if s.closed {
		return Event{}, ErrNotOpen
	}
	ev, err := s.input.next()
	if err == nil && ev.Type == EventResize {
		s.width, s.height = ev.Width, ev.Height
	}
	return ev, err
}

// writeSeq sends control sequences in a single unbuffered write
func writeSeq(w io.Writer, seqs ...[]byte) error {
	n := 0
	for _, s := range seqs {
		n += len(s)
	}
	buf := make([]byte, 0, n)
	for _, s := range seqs {
		buf = append(buf, s...)
	}
	_, err := w.Write(buf)
	return err
}

// EmergencyReset attempts to restore terminal to sane state.
// Call this from panic recovery if Close cannot be called normally.
func EmergencyReset(w io.Writer) {
	w.Write(csiMouseMotionOff)
	w.Write(csiMouseDragOff)
	w.Write(csiMouseClickOff)
	w.Write(csiMouseSGROff)

	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}
