package tui

// boxChars holds the single-line box drawing set
var boxChars = [6]rune{'┌', '─', '┐', '│', '└', '┘'}

const (
	boxTL = 0 // top-left
	boxH  = 1 // horizontal
	boxTR = 2 // top-right
	boxV  = 3 // vertical
	boxBL = 4 // bottom-left
	boxBR = 5 // bottom-right
)

// Box draws a single-line border around region edge
func (r Region) Box(st Style) {
	if r.W < 2 || r.H < 2 {
		return
	}

	chars := boxChars

	// Corners
	r.Cell(0, 0, chars[boxTL], st)
	r.Cell(r.W-1, 0, chars[boxTR], st)
	r.Cell(0, r.H-1, chars[boxBL], st)
	r.Cell(r.W-1, r.H-1, chars[boxBR], st)

	// Horizontal edges
	for x := 1; x < r.W-1; x++ {
		r.Cell(x, 0, chars[boxH], st)
		r.Cell(x, r.H-1, chars[boxH], st)
	}

	// Vertical edges
	for y := 1; y < r.H-1; y++ {
		r.Cell(0, y, chars[boxV], st)
		r.Cell(r.W-1, y, chars[boxV], st)
	}
}

// Block is a bordered container with an optional title on its top edge
type Block struct {
	Title   string
	Borders bool
	Style   Style
}

// Render draws the border and title; the interior is left untouched
func (b Block) Render(r Region) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	if b.Borders {
		r.Box(b.Style)
	}
	if b.Title == "" {
		return
	}

	// Title sits on the top edge, inside the corners when bordered
	x, w := 0, r.W
	if b.Borders {
		x, w = 1, r.W-2
	}
	if w <= 0 {
		return
	}
	r.Sub(x, 0, w, 1).Text(0, 0, b.Title, b.Style)
}

// Inner returns the area left for content inside the border
func (b Block) Inner(r Region) Region {
	if !b.Borders {
		return r
	}
	return r.Inset(1)
}
