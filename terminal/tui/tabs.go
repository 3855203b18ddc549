package tui

// NoSelection marks a tab strip with no highlighted title
const NoSelection = -1

// DotDivider is the conventional separator between tab titles
const DotDivider = "•"

// Tabs is a single-row strip of titles inside an optional block.
// Each title is preceded by one space and followed by one space and the divider,
// so four titles render as " A • B • C • D", clipped at the right edge.
type Tabs struct {
	Block          *Block
	Titles         []string
	Selected       int // Index into Titles, NoSelection for none
	Style          Style
	HighlightStyle Style
	Divider        string
}

// Render draws the strip into r
func (t Tabs) Render(r Region) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	r.Fill(t.Style)

	area := r
	if t.Block != nil {
		t.Block.Render(r)
		area = t.Block.Inner(r)
	}
	if area.W <= 0 || area.H <= 0 {
		return
	}

	x := 0
	last := len(t.Titles) - 1
	for i, title := range t.Titles {
		x++
		if x >= area.W {
			break
		}

		style := t.Style
		if i == t.Selected {
			style = t.HighlightStyle
		}
		x = area.Text(x, 0, title, style)

		x++
		if x >= area.W || i == last {
			break
		}
		x = area.Text(x, 0, t.Divider, t.Style)
	}
}
