package terminal

import (
	"errors"
	"fmt"
)

// ErrNotOpen is returned by operations on a session that is not open
var ErrNotOpen = errors.New("terminal session not open")

// InitError reports a failed mode switch while opening a session.
// Steps that succeeded before the failure have been rolled back; Rollback holds any rollback failure.
type InitError struct {
	Step     string
	Err      error
	Rollback error
}

func (e *InitError) Error() string {
	msg := fmt.Sprintf("terminal init: %s: %v", e.Step, e.Err)
	if e.Rollback != nil {
		msg += fmt.Sprintf(" (rollback: %v)", e.Rollback)
	}
	return msg
}

func (e *InitError) Unwrap() error { return e.Err }

// RestoreError reports restoration steps that failed while closing a session.
// Err joins one error per failed step; the remaining steps still ran.
type RestoreError struct {
	Err error
}

func (e *RestoreError) Error() string {
	return fmt.Sprintf("terminal restore: %v", e.Err)
}

func (e *RestoreError) Unwrap() error { return e.Err }
