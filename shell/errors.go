package shell

import "fmt"

// RenderError reports a paint or input read failure that stopped the loop
type RenderError struct {
	Op   string // "paint" or "read"
	Tick int    // 1-based tick during which the failure happened
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render loop: %s on tick %d: %v", e.Op, e.Tick, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
