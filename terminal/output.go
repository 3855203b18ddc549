package terminal

import (
	"bufio"
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
)

// outputBuffer manages double-buffered terminal output with diffing
type outputBuffer struct {
	front     []Cell
	width     int
	height    int
	colorMode ColorMode
	writer    *bufio.Writer

	cursorX     int
	cursorY     int
	cursorValid bool

	// Style state for coalescing
	lastFg    RGB
	lastBg    RGB
	lastAttr  Attr
	lastValid bool
}

// newOutputBuffer creates a new output buffer
func newOutputBuffer(w io.Writer, colorMode ColorMode) *outputBuffer {
	return &outputBuffer{
		writer:    bufio.NewWriterSize(w, 64*1024),
		colorMode: colorMode,
	}
}

// resize updates buffer dimensions; front content is unknown afterwards
func (o *outputBuffer) resize(width, height int) {
	size := width * height
	if cap(o.front) < size {
		o.front = make([]Cell, size)
	} else {
		o.front = o.front[:size]
	}
	o.width = width
	o.height = height
	o.forceFullRedraw()
}

// cellEqual compares two cells for equality (standalone for inlining)
func cellEqual(a, b Cell) bool {
	return a.Rune == b.Rune && a.Attrs == b.Attrs && a.Fg == b.Fg && a.Bg == b.Bg
}

// flush writes the back buffer to terminal, diffing against front buffer.
// A dimension change clears the screen and redraws every cell.
func (o *outputBuffer) flush(cells []Cell, width, height int) error {
	if len(cells) < width*height {
		return fmt.Errorf("%d cells for %dx%d", len(cells), width, height)
	}

	if width != o.width || height != o.height {
		o.resize(width, height)
		if err := o.clear(); err != nil {
			return err
		}
	}

	w := o.writer

	for y := 0; y < height; y++ {
		rowStart := y * width
		x := 0

		for x < width {
			idx := rowStart + x
			if cellEqual(cells[idx], o.front[idx]) {
				x++
				continue
			}

			// Position cursor once for this dirty region
			if !o.cursorValid || x != o.cursorX || y != o.cursorY {
				if o.cursorValid && y == o.cursorY && x > o.cursorX {
					writeCursorForward(w, x-o.cursorX)
				} else {
					writeCursorPos(w, x, y)
				}
				o.cursorX = x
				o.cursorY = y
				o.cursorValid = true
			}

			// Write all contiguous dirty cells, emitting style only when changed
			for x < width {
				cidx := rowStart + x
				c := cells[cidx]

				if cellEqual(c, o.front[cidx]) {
					break
				}

				o.writeStyleCoalesced(w, c.Fg, c.Bg, c.Attrs)

				r := c.Rune
				rw := runewidth.RuneWidth(r)
				if r == 0 || rw == 0 || (rw == 2 && x+1 >= width) {
					r = ' '
					rw = 1
				}
				if r < 0x80 {
					w.WriteByte(byte(r))
				} else {
					w.WriteRune(r)
				}

				o.front[cidx] = c
				o.cursorX += rw
				x++
				if rw == 2 {
					// Right half of a wide rune is covered by the terminal
					o.front[cidx+1] = cells[cidx+1]
					x++
				}
			}
		}
	}

	w.Write(csiSGR0)
	o.lastValid = false

	return w.Flush()
}

// writeStyleCoalesced emits a single combined SGR sequence when style changes
func (o *outputBuffer) writeStyleCoalesced(w *bufio.Writer, fg, bg RGB, attr Attr) {
	fgChanged := !o.lastValid || fg != o.lastFg || (attr&(AttrFg256|AttrFgDefault)) != (o.lastAttr&(AttrFg256|AttrFgDefault))
	bgChanged := !o.lastValid || bg != o.lastBg || (attr&(AttrBg256|AttrBgDefault)) != (o.lastAttr&(AttrBg256|AttrBgDefault))
	styleAttr := attr & AttrStyle
	attrChanged := !o.lastValid || styleAttr != o.lastAttr&AttrStyle

	if !fgChanged && !bgChanged && !attrChanged {
		return
	}

	w.Write(csi)
	if attrChanged {
		// Attributes cannot be removed individually, reset then rebuild
		w.WriteByte('0')
		for _, a := range sgrAttrs {
			if styleAttr&a.attr != 0 {
				w.WriteByte(';')
				w.WriteByte(a.code)
			}
		}
		w.WriteByte(';')
		o.writeFg(w, fg, attr)
		w.WriteByte(';')
		o.writeBg(w, bg, attr)
	} else {
		first := true
		if fgChanged {
			o.writeFg(w, fg, attr)
			first = false
		}
		if bgChanged {
			if !first {
				w.WriteByte(';')
			}
			o.writeBg(w, bg, attr)
		}
	}
	w.WriteByte('m')

	o.lastFg = fg
	o.lastBg = bg
	o.lastAttr = attr
	o.lastValid = true
}

// sgrAttrs lists SGR parameter digits in emission order
var sgrAttrs = [...]struct {
	attr Attr
	code byte
}{
	{AttrBold, '1'},
	{AttrDim, '2'},
	{AttrItalic, '3'},
	{AttrUnderline, '4'},
	{AttrBlink, '5'},
	{AttrReverse, '7'},
}

// writeFg writes fg color parameters (no CSI prefix, no 'm' suffix)
func (o *outputBuffer) writeFg(w *bufio.Writer, fg RGB, attr Attr) {
	switch {
	case attr&AttrFgDefault != 0:
		w.WriteString("39")
	case attr&AttrFg256 != 0:
		w.WriteString("38;5;")
		writeInt(w, int(fg.R))
	case o.colorMode == ColorModeTrueColor:
		w.WriteString("38;2;")
		writeRGB(w, fg)
	default:
		w.WriteString("38;5;")
		writeInt(w, int(RGBTo256(fg)))
	}
}

// writeBg writes bg color parameters (no CSI prefix, no 'm' suffix)
func (o *outputBuffer) writeBg(w *bufio.Writer, bg RGB, attr Attr) {
	switch {
	case attr&AttrBgDefault != 0:
		w.WriteString("49")
	case attr&AttrBg256 != 0:
		w.WriteString("48;5;")
		writeInt(w, int(bg.R))
	case o.colorMode == ColorModeTrueColor:
		w.WriteString("48;2;")
		writeRGB(w, bg)
	default:
		w.WriteString("48;5;")
		writeInt(w, int(RGBTo256(bg)))
	}
}

func writeRGB(w *bufio.Writer, c RGB) {
	writeInt(w, int(c.R))
	w.WriteByte(';')
	writeInt(w, int(c.G))
	w.WriteByte(';')
	writeInt(w, int(c.B))
}

// forceFullRedraw invalidates the front buffer so the next flush rewrites every cell
func (o *outputBuffer) forceFullRedraw() {
	for i := range o.front {
		o.front[i] = Cell{Rune: -1}
	}
	o.lastValid = false
	o.cursorValid = false
}

// clear blanks the screen in default colors
func (o *outputBuffer) clear() error {
	w := o.writer
	w.Write(csiSGR0)
	w.Write(csiClear)

	o.lastValid = false
	o.cursorValid = false

	for i := range o.front {
		o.front[i] = BlankCell
	}
	return w.Flush()
}
