package tcellscreen

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tabshell/terminal"
)

// keyMap translates tcell special keys.
// tcell aliases Ctrl+H/I/M/[ to Backspace/Tab/Enter/Escape, so those appear once.
var keyMap = map[tcell.Key]terminal.Key{
	tcell.KeyEnter:      terminal.KeyEnter,
	tcell.KeyCtrlJ:      terminal.KeyEnter,
	tcell.KeyTab:        terminal.KeyTab,
	tcell.KeyBacktab:    terminal.KeyBacktab,
	tcell.KeyEscape:     terminal.KeyEscape,
	tcell.KeyBackspace:  terminal.KeyBackspace,
	tcell.KeyBackspace2: terminal.KeyBackspace,
	tcell.KeyDelete:     terminal.KeyDelete,

	tcell.KeyUp:     terminal.KeyUp,
	tcell.KeyDown:   terminal.KeyDown,
	tcell.KeyLeft:   terminal.KeyLeft,
	tcell.KeyRight:  terminal.KeyRight,
	tcell.KeyHome:   terminal.KeyHome,
	tcell.KeyEnd:    terminal.KeyEnd,
	tcell.KeyPgUp:   terminal.KeyPageUp,
	tcell.KeyPgDn:   terminal.KeyPageDown,
	tcell.KeyInsert: terminal.KeyInsert,

	tcell.KeyF1:  terminal.KeyF1,
	tcell.KeyF2:  terminal.KeyF2,
	tcell.KeyF3:  terminal.KeyF3,
	tcell.KeyF4:  terminal.KeyF4,
	tcell.KeyF5:  terminal.KeyF5,
	tcell.KeyF6:  terminal.KeyF6,
	tcell.KeyF7:  terminal.KeyF7,
	tcell.KeyF8:  terminal.KeyF8,
	tcell.KeyF9:  terminal.KeyF9,
	tcell.KeyF10: terminal.KeyF10,
	tcell.KeyF11: terminal.KeyF11,
	tcell.KeyF12: terminal.KeyF12,

	tcell.KeyCtrlSpace:      terminal.KeyCtrlSpace,
	tcell.KeyCtrlA:          terminal.KeyCtrlA,
	tcell.KeyCtrlB:          terminal.KeyCtrlB,
	tcell.KeyCtrlC:          terminal.KeyCtrlC,
	tcell.KeyCtrlD:          terminal.KeyCtrlD,
	tcell.KeyCtrlE:          terminal.KeyCtrlE,
	tcell.KeyCtrlF:          terminal.KeyCtrlF,
	tcell.KeyCtrlG:          terminal.KeyCtrlG,
	tcell.KeyCtrlK:          terminal.KeyCtrlK,
	tcell.KeyCtrlL:          terminal.KeyCtrlL,
	tcell.KeyCtrlN:          terminal.KeyCtrlN,
	tcell.KeyCtrlO:          terminal.KeyCtrlO,
	tcell.KeyCtrlP:          terminal.KeyCtrlP,
	tcell.KeyCtrlQ:          terminal.KeyCtrlQ,
	tcell.KeyCtrlR:          terminal.KeyCtrlR,
	tcell.KeyCtrlS:          terminal.KeyCtrlS,
	tcell.KeyCtrlT:          terminal.KeyCtrlT,
	tcell.KeyCtrlU:          terminal.KeyCtrlU,
	tcell.KeyCtrlV:          terminal.KeyCtrlV,
	tcell.KeyCtrlW:          terminal.KeyCtrlW,
	tcell.KeyCtrlX:          terminal.KeyCtrlX,
	tcell.KeyCtrlY:          terminal.KeyCtrlY,
	tcell.KeyCtrlZ:          terminal.KeyCtrlZ,
	tcell.KeyCtrlBackslash:  terminal.KeyCtrlBackslash,
	tcell.KeyCtrlRightSq:    terminal.KeyCtrlBracketRight,
	tcell.KeyCtrlCarat:      terminal.KeyCtrlCaret,
	tcell.KeyCtrlUnderscore: terminal.KeyCtrlUnderscore,
}
