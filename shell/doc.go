// Package shell runs the tick cycle of the tab shell: build a frame, paint it,
// block for one input event, then stop on 'q' or go around again.
//
// The loop owns no terminal state. It talks to a Renderer and an EventSource,
// both satisfied by terminal.Session and tcellscreen.Screen through NewScreenRenderer.
package shell
