package terminal

// Attr represents text attributes and color interpretation flags (bitmask)
type Attr uint16

const (
	AttrNone      Attr = 0
	AttrBold      Attr = 1 << 0
	AttrDim       Attr = 1 << 1
	AttrItalic    Attr = 1 << 2
	AttrUnderline Attr = 1 << 3
	AttrBlink     Attr = 1 << 4
	AttrReverse   Attr = 1 << 5
	AttrFg256     Attr = 1 << 6 // Fg.R is 256-color palette index
	AttrBg256     Attr = 1 << 7 // Bg.R is 256-color palette index
	AttrFgDefault Attr = 1 << 8 // Fg ignored, terminal default foreground
	AttrBgDefault Attr = 1 << 9 // Bg ignored, terminal default background
)

// AttrStyle masks only the style bits (excludes color mode flags)
const AttrStyle Attr = AttrBold | AttrDim | AttrItalic | AttrUnderline | AttrBlink | AttrReverse

// AttrDefaultColors selects the terminal's own foreground and background
const AttrDefaultColors Attr = AttrFgDefault | AttrBgDefault

// Cell represents a single terminal cell
type Cell struct {
	Rune  rune
	Fg    RGB
	Bg    RGB
	Attrs Attr
}

// BlankCell is a space in the terminal's default colors
var BlankCell = Cell{Rune: ' ', Attrs: AttrDefaultColors}

// Mode is a bitmask of terminal modes held by an open session
type Mode uint8

const (
	ModeRaw       Mode = 1 << 0 // Unbuffered input, no local echo
	ModeAltScreen Mode = 1 << 1 // Alternate screen buffer, cursor hidden
	ModeMouse     Mode = 1 << 2 // SGR mouse reporting

	// ModeAll is the only non-zero value a session reports
	ModeAll = ModeRaw | ModeAltScreen | ModeMouse
)
