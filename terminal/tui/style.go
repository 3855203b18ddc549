package tui

import (
	"github.com/lixenwraith/tabshell/terminal"
)

// Style bundles foreground, background, and attributes for text rendering
type Style struct {
	Fg   terminal.RGB
	Bg   terminal.RGB
	Attr terminal.Attr
}

// NewStyle returns a style in the terminal's default colors
func NewStyle() Style {
	return Style{Attr: terminal.AttrDefaultColors}
}

// Foreground returns a copy with an explicit foreground color
func (s Style) Foreground(c terminal.RGB) Style {
	s.Fg = c
	s.Attr &^= terminal.AttrFgDefault | terminal.AttrFg256
	return s
}

// cell builds a terminal cell in this style
func (s Style) cell(ch rune) terminal.Cell {
	return terminal.Cell{Rune: ch, Fg: s.Fg, Bg: s.Bg, Attrs: s.Attr}
}
