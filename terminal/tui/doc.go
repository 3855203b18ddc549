// Package tui describes frames as plain widget values and rasterizes them into cell buffers.
//
// A Frame is a renderer-agnostic description: a viewport Rect and the widgets placed in it.
// Widgets are value types, so two frames built from the same inputs compare equal with
// reflect.DeepEqual. Rasterize draws the description into a row-major []terminal.Cell that
// any cell-based screen can flush.
//
// Core drawing abstraction is Region, a rectangular window into the cell buffer.
// All drawing operations are relative to region bounds with automatic clipping.
//
// Usage pattern:
//
//	frame := tui.NewFrame(tui.Rect{W: w, H: h})
//	frame.Place(frame.Area, tui.Tabs{
//	    Block:  &tui.Block{Title: "Tabs", Borders: true},
//	    Titles: []string{"One", "Two"},
//	    Selected: tui.NoSelection,
//	    Divider:  tui.DotDivider,
//	})
//	screen.Flush(frame.Rasterize(), w, h)
package tui
