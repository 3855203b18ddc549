//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package terminal

import (
	"errors"
	"io"
	"time"
)

var errUnsupported = errors.New("native terminal backend requires a unix platform")

type unsupportedBackend struct{}

func newBackend() Backend { return unsupportedBackend{} }

func (unsupportedBackend) Init() error               { return errUnsupported }
func (unsupportedBackend) Fini() error               { return nil }
func (unsupportedBackend) Size() (int, int)          { return 80, 24 }
func (unsupportedBackend) Write([]byte) (int, error) { return 0, errUnsupported }
func (unsupportedBackend) Read([]byte, time.Duration) (int, bool, error) {
	return 0, false, io.EOF
}

func resetTerminalMode() {}
