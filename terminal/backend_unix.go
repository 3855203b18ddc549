//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

type unixBackend struct {
	in      *os.File
	out     *os.File
	inFd    int
	outFd   int
	oldTerm *term.State

	resize *resizeHandler
}

func newBackend() Backend {
	return &unixBackend{
		in:    os.Stdin,
		out:   os.Stdout,
		inFd:  int(os.Stdin.Fd()),
		outFd: int(os.Stdout.Fd()),
	}
}

func (b *unixBackend) Init() error {
	if !term.IsTerminal(b.inFd) {
		return errors.New("stdin is not a terminal")
	}
	if !isatty.IsTerminal(b.out.Fd()) {
		return errors.New("stdout is not a terminal")
	}

	old, err := term.MakeRaw(b.inFd)
	if err != nil {
		return fmt.Errorf("make raw: %w", err)
	}

	rh, err := newResizeHandler()
	if err != nil {
		term.Restore(b.inFd, old)
		return err
	}

	b.oldTerm = old
	b.resize = rh
	rh.start()
	return nil
}

func (b *unixBackend) Fini() error {
	var errs []error
	if b.resize != nil {
		if err := b.resize.stop(); err != nil {
			errs = append(errs, err)
		}
		b.resize = nil
	}
	if b.oldTerm != nil {
		if err := term.Restore(b.inFd, b.oldTerm); err != nil {
			errs = append(errs, fmt.Errorf("restore input mode: %w", err))
		}
		b.oldTerm = nil
	}
	return errors.Join(errs...)
}

func (b *unixBackend) Size() (int, int) {
	return getTerminalSize(b.outFd)
}

func (b *unixBackend) Write(p []byte) (int, error) {
	return b.out.Write(p)
}

// Read polls stdin together with the resize pipe, so a SIGWINCH wakes the same blocking call
func (b *unixBackend) Read(p []byte, timeout time.Duration) (int, bool, error) {
	ms := -1
	if timeout >= 0 {
		ms = int(timeout / time.Millisecond)
	}

	fds := []unix.PollFd{
		{Fd: int32(b.inFd), Events: unix.POLLIN},
	}
	if b.resize != nil {
		fds = append(fds, unix.PollFd{Fd: int32(b.resize.readFd), Events: unix.POLLIN})
	}

	for {
		n, err := unix.Poll(fds, ms)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return 0, false, fmt.Errorf("poll: %w", err)
		}

		if n == 0 {
			return 0, false, nil // Timeout
		}

		if len(fds) > 1 && fds[1].Revents&unix.POLLIN != 0 {
			b.resize.drain()
			return 0, true, nil
		}

		if fds[0].Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) == 0 {
			continue
		}

		rn, err := unix.Read(b.inFd, p)
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			return 0, false, fmt.Errorf("read: %w", err)
		}
		if rn == 0 {
			return 0, false, io.EOF
		}
		return rn, false, nil
	}
}

// getTerminalSize returns the terminal size for a given fd
func getTerminalSize(fd int) (int, int) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 80, 24 // Fallback
	}
	return int(ws.Col), int(ws.Row)
}

// resetTerminalMode attempts to restore terminal to cooked mode
// Best-effort for crash recovery; errors ignored
func resetTerminalMode() {
	// /dev/tty works even if stdin is redirected
	if tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0); err == nil {
		defer tty.Close()
		fd := int(tty.Fd())
		if termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios); err == nil {
			termios.Lflag |= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
			termios.Iflag |= unix.ICRNL
			unix.IoctlSetTermios(fd, ioctlSetTermios, termios)
		}
	}
}
