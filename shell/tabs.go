package shell

import (
	"github.com/lixenwraith/tabshell/terminal"
	"github.com/lixenwraith/tabshell/terminal/tui"
)

// TabBar describes the bordered tab strip
type TabBar struct {
	Titles    []string
	Title     string // Block title on the top border
	Style     tui.Style
	Highlight tui.Style
	Divider   string
}

// DefaultTabBar returns the Tab1..Tab4 strip titled "Tabs": white text, yellow highlight, dot divider
func DefaultTabBar() TabBar {
	return TabBar{
		Titles:    []string{"Tab1", "Tab2", "Tab3", "Tab4"},
		Title:     "Tabs",
		Style:     tui.NewStyle().Foreground(terminal.RGBWhite),
		Highlight: tui.NewStyle().Foreground(terminal.RGBYellow),
		Divider:   tui.DotDivider,
	}
}

// Build describes one frame: the tab strip covering area.
// Pure: equal inputs yield reflect.DeepEqual frames. Degenerate areas still produce a frame.
func (b TabBar) Build(area tui.Rect, selected int) tui.Frame {
	frame := tui.NewFrame(area)
	frame.Place(area, tui.Tabs{
		Block: &tui.Block{
			Title:   b.Title,
			Borders: true,
			Style:   b.Style,
		},
		Titles:         b.Titles,
		Selected:       selected,
		Style:          b.Style,
		HighlightStyle: b.Highlight,
		Divider:        b.Divider,
	})
	return frame
}
