package tui

import (
	"reflect"
	"strings"
	"testing"

	"github.com/lixenwraith/tabshell/terminal"
)

var (
	plain     = NewStyle().Foreground(terminal.RGBWhite)
	highlight = NewStyle().Foreground(terminal.RGBYellow)
)

func tabStrip(selected int) Tabs {
	return Tabs{
		Block:          &Block{Title: "Tabs", Borders: true, Style: plain},
		Titles:         []string{"Tab1", "Tab2", "Tab3", "Tab4"},
		Selected:       selected,
		Style:          plain,
		HighlightStyle: highlight,
		Divider:        DotDivider,
	}
}

func rasterize(w, h int, widget Widget) []terminal.Cell {
	f := NewFrame(Rect{W: w, H: h})
	f.Place(f.Area, widget)
	return f.Rasterize()
}

// row renders one line of a cell buffer as text, skipping wide-rune continuations
func row(cells []terminal.Cell, w, y int) string {
	var sb strings.Builder
	for _, c := range cells[y*w : (y+1)*w] {
		if c.Rune == 0 {
			continue
		}
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

func TestTabsLayout(t *testing.T) {
	tests := []struct {
		name string
		w    int
		want [3]string
	}{
		{
			name: "fits",
			w:    30,
			want: [3]string{
				"┌Tabs────────────────────────┐",
				"│ Tab1 • Tab2 • Tab3 • Tab4  │",
				"└────────────────────────────┘",
			},
		},
		{
			name: "clipped",
			w:    12,
			want: [3]string{
				"┌Tabs──────┐",
				"│ Tab1 • Ta│",
				"└──────────┘",
			},
		},
		{
			name: "title clipped",
			w:    4,
			want: [3]string{
				"┌Ta┐",
				"│ T│",
				"└──┘",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := rasterize(tt.w, 3, tabStrip(NoSelection))
			if len(cells) != tt.w*3 {
				t.Fatalf("len(cells) = %d, want %d", len(cells), tt.w*3)
			}
			for y, want := range tt.want {
				if got := row(cells, tt.w, y); got != want {
					t.Errorf("row %d = %q, want %q", y, got, want)
				}
			}
		})
	}
}

func TestTabsHighlight(t *testing.T) {
	const w = 30
	tests := []struct {
		name     string
		selected int
		spans    [][2]int // highlighted [from, to) columns on row 1
	}{
		{"none", NoSelection, nil},
		{"first", 0, [][2]int{{2, 6}}},
		{"second", 1, [][2]int{{9, 13}}},
		{"out of range", 7, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := rasterize(w, 3, tabStrip(tt.selected))
			for x := 0; x < w; x++ {
				want := plain.Fg
				for _, s := range tt.spans {
					if x >= s[0] && x < s[1] {
						want = highlight.Fg
					}
				}
				if got := cells[w+x].Fg; got != want {
					t.Errorf("col %d fg = %v, want %v", x, got, want)
				}
			}
		})
	}
}

func TestFrameEmptyArea(t *testing.T) {
	for _, area := range []Rect{{}, {W: 10}, {H: 3}, {W: -1, H: 4}} {
		f := NewFrame(area)
		f.Place(area, tabStrip(0))
		if cells := f.Rasterize(); len(cells) != 0 {
			t.Errorf("Rasterize(%+v) = %d cells, want 0", area, len(cells))
		}
	}
}

func TestFrameBlankBackground(t *testing.T) {
	cells := NewFrame(Rect{W: 3, H: 2}).Rasterize()
	for i, c := range cells {
		if c != terminal.BlankCell {
			t.Fatalf("cell %d = %+v, want blank", i, c)
		}
	}
}

func TestFrameClipsPlacement(t *testing.T) {
	f := NewFrame(Rect{W: 4, H: 2})
	f.Place(Rect{X: 2, Y: 1, W: 10, H: 10}, Block{Title: "abcdef", Style: plain})
	cells := f.Rasterize()

	if got := row(cells, 4, 0); got != "    " {
		t.Errorf("row 0 = %q", got)
	}
	if got := row(cells, 4, 1); got != "  ab" {
		t.Errorf("row 1 = %q", got)
	}
}

func TestFrameDeterministic(t *testing.T) {
	a := NewFrame(Rect{W: 20, H: 3})
	a.Place(a.Area, tabStrip(2))
	b := NewFrame(Rect{W: 20, H: 3})
	b.Place(b.Area, tabStrip(2))

	if !reflect.DeepEqual(a, b) {
		t.Fatal("frames built from equal inputs differ")
	}
	if !reflect.DeepEqual(a.Rasterize(), b.Rasterize()) {
		t.Fatal("rasterized frames differ")
	}
}

func TestRegionTextWide(t *testing.T) {
	cells := make([]terminal.Cell, 3)
	r := NewRegion(cells, 3, 0, 0, 3, 1)

	if next := r.Text(0, 0, "日本", plain); next != 2 {
		t.Errorf("next = %d, want 2", next)
	}
	if cells[0].Rune != '日' || cells[1].Rune != 0 || cells[2].Rune != 0 {
		t.Errorf("cells = %+v", cells)
	}
}
