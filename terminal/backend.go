package terminal

import (
	"io"
	"time"
)

// Backend abstracts platform-specific terminal operations.
// Init and Fini cover raw input mode only; screen modes are written through Write by Session.
type Backend interface {
	// Init enters raw input mode
	Init() error

	// Fini restores the input mode saved by Init
	Fini() error

	// Size returns the viewport in columns and rows
	Size() (width, height int)

	// Write writes raw bytes to the terminal output
	io.Writer

	// Read blocks until input bytes are available, the terminal is resized, or timeout elapses.
	// A negative timeout blocks indefinitely. Timeout and resize both report n == 0.
	// End of input is io.EOF.
	Read(p []byte, timeout time.Duration) (n int, resized bool, err error)
}
