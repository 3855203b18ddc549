package tcellscreen

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tabshell/terminal"
)

// style converts cell colors and attributes to a tcell style
func (s *Screen) style(c terminal.Cell) tcell.Style {
	fg := s.color(c.Fg, c.Attrs&terminal.AttrFgDefault != 0, c.Attrs&terminal.AttrFg256 != 0)
	bg := s.color(c.Bg, c.Attrs&terminal.AttrBgDefault != 0, c.Attrs&terminal.AttrBg256 != 0)

	return tcell.StyleDefault.
		Foreground(fg).
		Background(bg).
		Bold(c.Attrs&terminal.AttrBold != 0).
		Dim(c.Attrs&terminal.AttrDim != 0).
		Italic(c.Attrs&terminal.AttrItalic != 0).
		Underline(c.Attrs&terminal.AttrUnderline != 0).
		Blink(c.Attrs&terminal.AttrBlink != 0).
		Reverse(c.Attrs&terminal.AttrReverse != 0)
}

func (s *Screen) color(c terminal.RGB, def, palette bool) tcell.Color {
	switch {
	case def:
		return tcell.ColorDefault
	case palette:
		return tcell.PaletteColor(int(c.R))
	case s.colorMode == terminal.ColorModeTrueColor:
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	default:
		return tcell.PaletteColor(int(terminal.RGBTo256(c)))
	}
}
