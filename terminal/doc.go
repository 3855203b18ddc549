// Package terminal provides direct ANSI terminal control for a single owned session.
//
// Features:
//   - Raw mode, alternate screen and SGR mouse reporting entered and left as one unit
//   - Double-buffered output with cell-level diffing
//   - Synchronous stdin parsing with escape sequence handling
//   - SIGWINCH resize detection delivered through the input path
//   - Independent restoration steps on Close, EmergencyReset for panics
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI sequences.
// Target environments: Linux, macOS, BSDs with xterm-compatible terminals.
package terminal
