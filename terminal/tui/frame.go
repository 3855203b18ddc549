package tui

import "github.com/lixenwraith/tabshell/terminal"

// Rect is a rectangle in screen cells
type Rect struct {
	X, Y int
	W, H int
}

// Empty reports whether the rectangle covers no cells
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Widget draws itself into a region
type Widget interface {
	Render(r Region)
}

// Placement positions a widget within a frame
type Placement struct {
	Area   Rect
	Widget Widget
}

// Frame describes one screen of output: a viewport and the widgets placed in it, in draw order
type Frame struct {
	Area       Rect
	Placements []Placement
}

// NewFrame creates an empty frame over area
func NewFrame(area Rect) Frame {
	return Frame{Area: area}
}

// Place appends a widget; later placements draw over earlier ones
func (f *Frame) Place(area Rect, w Widget) {
	f.Placements = append(f.Placements, Placement{Area: area, Widget: w})
}

// Rasterize draws the frame into a row-major buffer of Area.W*Area.H cells.
// Placements are clipped to the frame area.
func (f Frame) Rasterize() []terminal.Cell {
	if f.Area.Empty() {
		return nil
	}

	w, h := f.Area.W, f.Area.H
	cells := make([]terminal.Cell, w*h)
	for i := range cells {
		cells[i] = terminal.BlankCell
	}

	root := NewRegion(cells, w, 0, 0, w, h)
	for _, p := range f.Placements {
		if p.Widget == nil {
			continue
		}
		p.Widget.Render(root.Sub(p.Area.X-f.Area.X, p.Area.Y-f.Area.Y, p.Area.W, p.Area.H))
	}
	return cells
}
