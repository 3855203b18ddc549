//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"golang.org/x/sys/unix"
)

// resizeHandler forwards SIGWINCH into a non-blocking self-pipe polled next to stdin
type resizeHandler struct {
	readFd  int
	writeFd int
	sigCh   chan os.Signal
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// newResizeHandler creates the pipe; start must be called to begin forwarding
func newResizeHandler() (*resizeHandler, error) {
	var p [2]int
	if err := unix.Pipe(p[:]); err != nil {
		return nil, fmt.Errorf("resize pipe: %w", err)
	}
	for _, fd := range p {
		unix.CloseOnExec(fd)
		if err := unix.SetNonblock(fd, true); err != nil {
			unix.Close(p[0])
			unix.Close(p[1])
			return nil, fmt.Errorf("resize pipe: %w", err)
		}
	}

	return &resizeHandler{
		readFd:  p[0],
		writeFd: p[1],
		sigCh:   make(chan os.Signal, 1),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}, nil
}

// start begins listening for SIGWINCH
func (r *resizeHandler) start() {
	signal.Notify(r.sigCh, syscall.SIGWINCH)
	go r.watchLoop()
}

// stop stops forwarding and closes the pipe
func (r *resizeHandler) stop() error {
	signal.Stop(r.sigCh)
	close(r.stopCh)
	<-r.doneCh

	var errs []error
	if err := unix.Close(r.readFd); err != nil {
		errs = append(errs, fmt.Errorf("close resize pipe: %w", err))
	}
	if err := unix.Close(r.writeFd); err != nil {
		errs = append(errs, fmt.Errorf("close resize pipe: %w", err))
	}
	return errors.Join(errs...)
}

// drain empties the pipe so one poll wakeup reports every pending resize at once
func (r *resizeHandler) drain() {
	var buf [64]byte
	for {
		n, err := unix.Read(r.readFd, buf[:])
		if n <= 0 || err != nil {
			return
		}
	}
}

// watchLoop monitors for resize signals
func (r *resizeHandler) watchLoop() {
	defer close(r.doneCh)

	defer func() {
		if rec := recover(); rec != nil {
			EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mRESIZE HANDLER CRASHED: %v\x1b[0m\r\n", rec)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	wake := []byte{1}
	for {
		select {
		case <-r.stopCh:
			return
		case <-r.sigCh:
			// EAGAIN means a wakeup is already pending
			unix.Write(r.writeFd, wake)
		}
	}
}
