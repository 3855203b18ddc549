package terminal

import (
	"fmt"
	"strings"
)

// keyToName maps Key constants to canonical names used in logs
var keyToName = map[Key]string{
	KeyEscape:    "escape",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBacktab:   "backtab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",

	KeyUp:       "up",
	KeyDown:     "down",
	KeyLeft:     "left",
	KeyRight:    "right",
	KeyHome:     "home",
	KeyEnd:      "end",
	KeyPageUp:   "page_up",
	KeyPageDown: "page_down",
	KeyInsert:   "insert",

	KeyF1:  "f1",
	KeyF2:  "f2",
	KeyF3:  "f3",
	KeyF4:  "f4",
	KeyF5:  "f5",
	KeyF6:  "f6",
	KeyF7:  "f7",
	KeyF8:  "f8",
	KeyF9:  "f9",
	KeyF10: "f10",
	KeyF11: "f11",
	KeyF12: "f12",

	KeyCtrlA:            "ctrl_a",
	KeyCtrlB:            "ctrl_b",
	KeyCtrlC:            "ctrl_c",
	KeyCtrlD:            "ctrl_d",
	KeyCtrlE:            "ctrl_e",
	KeyCtrlF:            "ctrl_f",
	KeyCtrlG:            "ctrl_g",
	KeyCtrlK:            "ctrl_k",
	KeyCtrlL:            "ctrl_l",
	KeyCtrlN:            "ctrl_n",
	KeyCtrlO:            "ctrl_o",
	KeyCtrlP:            "ctrl_p",
	KeyCtrlQ:            "ctrl_q",
	KeyCtrlR:            "ctrl_r",
	KeyCtrlS:            "ctrl_s",
	KeyCtrlT:            "ctrl_t",
	KeyCtrlU:            "ctrl_u",
	KeyCtrlV:            "ctrl_v",
	KeyCtrlW:            "ctrl_w",
	KeyCtrlX:            "ctrl_x",
	KeyCtrlY:            "ctrl_y",
	KeyCtrlZ:            "ctrl_z",
	KeyCtrlSpace:        "ctrl_space",
	KeyCtrlBackslash:    "ctrl_backslash",
	KeyCtrlBracketRight: "ctrl_bracket_right",
	KeyCtrlCaret:        "ctrl_caret",
	KeyCtrlUnderscore:   "ctrl_underscore",
}

// String renders the event for logs, e.g. "key alt+q", "resize 80x24"
func (e Event) String() string {
	switch e.Type {
	case EventKey:
		var b strings.Builder
		b.WriteString("key ")
		if e.Modifiers&ModCtrl != 0 {
			b.WriteString("ctrl+")
		}
		if e.Modifiers&ModAlt != 0 {
			b.WriteString("alt+")
		}
		if e.Modifiers&ModShift != 0 {
			b.WriteString("shift+")
		}
		switch {
		case e.Key == KeyRune:
			b.WriteRune(e.Rune)
		case keyToName[e.Key] != "":
			b.WriteString(keyToName[e.Key])
		default:
			b.WriteString("none")
		}
		return b.String()
	case EventResize:
		return fmt.Sprintf("resize %dx%d", e.Width, e.Height)
	case EventMouse:
		return fmt.Sprintf("mouse %s %s %d,%d", e.MouseBtn, e.MouseAction, e.MouseX, e.MouseY)
	case EventPaste:
		return "paste"
	}
	return "unknown"
}
