package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"pkt.systems/pslog"
)

// maxLogSize triggers rotation of an existing log file on startup
const maxLogSize = 10 * 1024 * 1024

func newLogger(w io.Writer) pslog.Logger {
	return pslog.NewWithOptions(w, pslog.Options{
		Mode:     pslog.ModeStructured,
		NoColor:  true,
		MinLevel: pslog.DebugLevel,
	})
}

// setupLogging returns a structured logger writing to path, or a discarding one when path is empty.
// The standard logger is bridged to the same destination.
// stdout and stderr belong to the screen while the session is open, so they are never log targets.
func setupLogging(path string) (pslog.Logger, *os.File, error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return newLogger(io.Discard), nil, nil
	}

	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		rotated := fmt.Sprintf("%s.%s.log", path, time.Now().Format("20060102-150405"))
		if err := os.Rename(path, rotated); err != nil {
			return nil, nil, fmt.Errorf("rotate log: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	logger := newLogger(f)
	log.SetOutput(pslog.LogLogger(logger).Writer())
	log.SetFlags(0)
	return logger, f, nil
}
