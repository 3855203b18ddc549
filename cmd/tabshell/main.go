package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/lixenwraith/tabshell/shell"
	"github.com/lixenwraith/tabshell/terminal"
	"github.com/lixenwraith/tabshell/terminal/tcellscreen"
)

// Exit codes
const (
	exitOK      = 0
	exitOpen    = 1 // Session open failure or usage error
	exitRender  = 2 // Paint or read failure, or a crash inside the loop
	exitRestore = 3 // Terminal could not be fully restored
)

const (
	backendNative = "native"
	backendTcell  = "tcell"
)

// session is the terminal surface the shell drives
type session interface {
	shell.Screen
	shell.EventSource
	Close() error
}

// opener acquires a session for a backend name
type opener func(backend string, mode terminal.ColorMode) (session, error)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, openSession))
}

// run parses args and runs the shell, returning the process exit code
func run(args []string, stdout, stderr io.Writer, open opener) int {
	code := exitOK
	root := newRootCmd(func(backend string, mode terminal.ColorMode, logger pslog.Logger) {
		code = runShell(open, backend, mode, logger, stdout, stderr)
	})
	root.SetArgs(args)
	root.SetOut(stderr)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "tabshell: %v\n", err)
		return exitOpen
	}
	return code
}

func newRootCmd(start func(backend string, mode terminal.ColorMode, logger pslog.Logger)) *cobra.Command {
	var backend, color, logPath string

	root := &cobra.Command{
		Use:           "tabshell",
		Short:         "Full-screen tab bar; arrows or tab to select, q to quit",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if backend != backendNative && backend != backendTcell {
				return fmt.Errorf("unknown backend %q (want %s or %s)", backend, backendNative, backendTcell)
			}
			mode, err := terminal.ParseColorMode(color)
			if err != nil {
				return err
			}

			logger, logFile, err := setupLogging(logPath)
			if err != nil {
				return err
			}
			if logFile != nil {
				defer logFile.Close()
			}

			start(backend, mode, logger)
			return nil
		},
	}

	flags := root.Flags()
	flags.StringVar(&backend, "backend", backendNative, "terminal backend: native or tcell")
	flags.StringVar(&color, "color", terminal.ColorMode256.String(), "color mode: 256 or truecolor")
	flags.StringVar(&logPath, "log", "", "append log output to `file`")

	return root
}

func openSession(backend string, mode terminal.ColorMode) (session, error) {
	if backend == backendTcell {
		s, err := tcellscreen.Open(tcellscreen.WithColorMode(mode))
		if err != nil {
			return nil, err
		}
		return s, nil
	}

	s, err := terminal.Open(terminal.WithColorMode(mode))
	if err != nil {
		return nil, err
	}
	return s, nil
}

// runShell pairs one Close with every successful open, including when the loop fails or panics
func runShell(open opener, backend string, mode terminal.ColorMode, logger pslog.Logger, stdout, stderr io.Writer) (code int) {
	s, err := open(backend, mode)
	if err != nil {
		fmt.Fprintf(stderr, "tabshell: %v\n", err)
		return exitOpen
	}
	logger = logger.With("backend", backend, "color", mode.String())
	logger.Info("session open")

	var loopErr error
	defer func() {
		crash := recover()

		restoreErr := s.Close()
		if restoreErr != nil {
			logger.Error("session restore failed", "err", restoreErr)
		} else {
			logger.Info("session closed")
		}

		if crash != nil {
			if restoreErr != nil {
				terminal.EmergencyReset(stdout)
			}
			logger.Error("loop panicked", "panic", fmt.Sprint(crash))
			fmt.Fprintf(stderr, "tabshell crashed: %v\n%s\n", crash, debug.Stack())
			loopErr = fmt.Errorf("panic: %v", crash)
		}
		code = exitCode(loopErr, restoreErr, stderr)
	}()

	bar := shell.DefaultTabBar()
	loop := shell.NewLoop(
		shell.NewScreenRenderer(s),
		s,
		bar.Build,
		shell.WithTabs(len(bar.Titles)),
		shell.WithLogger(logger),
	)
	loopErr = loop.Run()
	return exitOK
}

// exitCode reports every failure and picks the code; a loop failure outranks a restore failure
func exitCode(loopErr, restoreErr error, stderr io.Writer) int {
	code := exitOK

	if restoreErr != nil {
		fmt.Fprintf(stderr, "tabshell: %v\n", restoreErr)
		var rerr *terminal.RestoreError
		if errors.As(restoreErr, &rerr) {
			fmt.Fprintln(stderr, "tabshell: terminal may be left in raw mode, run `reset` to recover")
		}
		code = exitRestore
	}

	if loopErr != nil {
		fmt.Fprintf(stderr, "tabshell: %v\n", loopErr)
		code = exitRender
	}
	return code
}
