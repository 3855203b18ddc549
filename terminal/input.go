package terminal

import (
	"time"
	"unicode/utf8"
)

// escapeTimeout is the duration to wait after ESC to distinguish
// standalone ESC from escape sequence start
const escapeTimeout = 50 * time.Millisecond

// maxCSILen bounds the scan for a CSI final byte; longer runs are discarded as garbage
const maxCSILen = 32

// controlKeys maps C0 control bytes to keys; Ctrl+H/I/J/M arrive as Backspace/Tab/Enter/Enter
var controlKeys = [0x20]Key{
	0x00: KeyCtrlSpace,
	0x01: KeyCtrlA,
	0x02: KeyCtrlB,
	0x03: KeyCtrlC,
	0x04: KeyCtrlD,
	0x05: KeyCtrlE,
	0x06: KeyCtrlF,
	0x07: KeyCtrlG,
	0x08: KeyBackspace,
	0x09: KeyTab,
	0x0a: KeyEnter,
	0x0b: KeyCtrlK,
	0x0c: KeyCtrlL,
	0x0d: KeyEnter,
	0x0e: KeyCtrlN,
	0x0f: KeyCtrlO,
	0x10: KeyCtrlP,
	0x11: KeyCtrlQ,
	0x12: KeyCtrlR,
	0x13: KeyCtrlS,
	0x14: KeyCtrlT,
	0x15: KeyCtrlU,
	0x16: KeyCtrlV,
	0x17: KeyCtrlW,
	0x18: KeyCtrlX,
	0x19: KeyCtrlY,
	0x1a: KeyCtrlZ,
	0x1b: KeyEscape,
	0x1c: KeyCtrlBackslash,
	0x1d: KeyCtrlBracketRight,
	0x1e: KeyCtrlCaret,
	0x1f: KeyCtrlUnderscore,
}

// decoder turns raw input bytes into events on the caller's goroutine.
// One read can carry several events; the surplus is queued for later calls.
type decoder struct {
	backend Backend
	scratch []byte
	buf     []byte // Unparsed bytes, possibly a partial sequence
	queue   []Event
}

func newDecoder(b Backend) *decoder {
	return &decoder{
		backend: b,
		scratch: make([]byte, 256),
		buf:     make([]byte, 0, 256),
		queue:   make([]Event, 0, 16),
	}
}

// next blocks until exactly one event is available
func (d *decoder) next() (Event, error) {
	for {
		if len(d.queue) > 0 {
			ev := d.queue[0]
			d.queue = d.queue[:copy(d.queue, d.queue[1:])]
			return ev, nil
		}

		timeout := time.Duration(-1)
		if len(d.buf) > 0 {
			timeout = escapeTimeout
		}

		n, resized, err := d.backend.Read(d.scratch, timeout)
		if err != nil {
			return Event{}, err
		}
		if resized {
			w, h := d.backend.Size()
			return Event{Type: EventResize, Width: w, Height: h}, nil
		}
		if n == 0 {
			d.flushPending()
			continue
		}

		d.buf = append(d.buf, d.scratch[:n]...)
		consumed := d.parse(d.buf)
		if consumed >= len(d.buf) {
			d.buf = d.buf[:0]
		} else if consumed > 0 {
			d.buf = d.buf[:copy(d.buf, d.buf[consumed:])]
		}
	}
}

// flushPending resolves bytes left incomplete after escapeTimeout
func (d *decoder) flushPending() {
	switch {
	case len(d.buf) == 1 && d.buf[0] == 0x1b:
		d.emit(Event{Type: EventKey, Key: KeyEscape})
	case len(d.buf) == 2 && d.buf[0] == 0x1b && (d.buf[1] == '[' || d.buf[1] == 'O'):
		// Alt+[ and Alt+O look like sequence introducers until the timeout
		d.emit(Event{Type: EventKey, Key: KeyRune, Rune: rune(d.buf[1]), Modifiers: ModAlt})
	}
	d.buf = d.buf[:0]
}

func (d *decoder) emit(ev Event) {
	d.queue = append(d.queue, ev)
}

// parse decodes as many events as possible and returns bytes consumed (stops on incomplete sequence)
func (d *decoder) parse(data []byte) int {
	i := 0
	n := len(data)

	for i < n {
		b := data[i]

		switch {
		case b >= 0x20 && b < 0x7f:
			d.emit(Event{Type: EventKey, Key: KeyRune, Rune: rune(b)})
			i++

		case b == 0x1b:
			if i+1 >= n {
				return i // Wait for more data or the escape timeout
			}
			consumed, ev, ok := d.parseEscape(data[i:])
			if consumed == 0 {
				return i
			}
			if ok {
				d.emit(ev)
			}
			i += consumed

		case b < 0x20:
			d.emit(Event{Type: EventKey, Key: controlKeys[b]})
			i++

		case b == 0x7f:
			d.emit(Event{Type: EventKey, Key: KeyBackspace})
			i++

		default:
			if !utf8.FullRune(data[i:]) {
				return i // Incomplete UTF-8
			}
			r, size := utf8.DecodeRune(data[i:])
			if r != utf8.RuneError || size > 1 {
				d.emit(Event{Type: EventKey, Key: KeyRune, Rune: r})
			}
			i += size
		}
	}
	return i
}

// parseEscape parses a sequence starting at ESC.
// consumed == 0 means incomplete; ok == false means a recognised but ignored sequence.
func (d *decoder) parseEscape(data []byte) (consumed int, ev Event, ok bool) {
	switch c := data[1]; {
	case c == '[':
		return d.parseCSI(data)
	case c == 'O':
		return d.parseSS3(data)
	case c == 0x1b:
		return 2, Event{Type: EventKey, Key: KeyEscape, Modifiers: ModAlt}, true
	case c < 0x20:
		return 2, Event{Type: EventKey, Key: controlKeys[c], Modifiers: ModAlt}, true
	case c < 0x7f:
		return 2, Event{Type: EventKey, Key: KeyRune, Rune: rune(c), Modifiers: ModAlt}, true
	}
	// ESC followed by DEL or a non-ASCII byte: report ESC alone
	return 1, Event{Type: EventKey, Key: KeyEscape}, true
}

// parseCSI parses ESC [ params intermediates final
func (d *decoder) parseCSI(data []byte) (int, Event, bool) {
	if len(data) < 3 {
		return 0, Event{}, false
	}

	switch data[2] {
	case '<':
		return d.parseSGRMouse(data)
	case '[':
		// Linux console F1-F5: ESC [ [ A..E
		if len(data) < 4 {
			return 0, Event{}, false
		}
		if key, mod, found := lookupCSI(data[2:4]); found {
			return 4, Event{Type: EventKey, Key: key, Modifiers: mod}, true
		}
		return 4, Event{}, false
	}

	for end := 2; end < len(data); end++ {
		b := data[end]
		if b >= 0x40 && b <= 0x7e {
			if key, mod, found := lookupCSI(data[2:end+1]); found {
				return end + 1, Event{Type: EventKey, Key: key, Modifiers: mod}, true
			}
			// Unknown but well-formed, swallow
			return end + 1, Event{}, false
		}
		if b < 0x20 || b > 0x7e {
			// Malformed, drop the introducer and resume at the offending byte
			return end, Event{}, false
		}
		if end-2 >= maxCSILen {
			return end, Event{}, false
		}
	}
	return 0, Event{}, false
}

// parseSS3 parses ESC O X
func (d *decoder) parseSS3(data []byte) (int, Event, bool) {
	if len(data) < 3 {
		return 0, Event{}, false
	}
	if key, mod, found := lookupSS3(data[2:3]); found {
		return 3, Event{Type: EventKey, Key: key, Modifiers: mod}, true
	}
	return 3, Event{}, false
}

// parseSGRMouse parses ESC [ < Btn ; X ; Y M/m
func (d *decoder) parseSGRMouse(data []byte) (int, Event, bool) {
	end := 3
	for end < len(data) && data[end] != 'M' && data[end] != 'm' {
		if end-3 >= maxCSILen {
			return end, Event{}, false
		}
		end++
	}
	if end >= len(data) {
		return 0, Event{}, false
	}

	btn, x, y, valid := parseSGRParams(data[3:end])
	if !valid {
		return end + 1, Event{}, false
	}

	ev := Event{Type: EventMouse, MouseX: x - 1, MouseY: y - 1}

	// Bits 0-1: button (0=left, 1=middle, 2=right, 3=release)
	// Bit 5 (32): motion, bit 6 (64): wheel
	buttonID := btn & 0x03
	isMotion := btn&32 != 0
	isScroll := btn&64 != 0

	switch {
	case isScroll:
		ev.MouseBtn = MouseBtnWheelUp
		if buttonID != 0 {
			ev.MouseBtn = MouseBtnWheelDown
		}
		ev.MouseAction = MouseActionPress
	default:
		ev.MouseBtn = [4]MouseButton{MouseBtnLeft, MouseBtnMiddle, MouseBtnRight, MouseBtnNone}[buttonID]
		switch {
		case data[end] == 'm':
			ev.MouseAction = MouseActionRelease
		case isMotion && ev.MouseBtn != MouseBtnNone:
			ev.MouseAction = MouseActionDrag
		case isMotion:
			ev.MouseAction = MouseActionMove
		default:
			ev.MouseAction = MouseActionPress
		}
	}

	if btn&4 != 0 {
		ev.Modifiers |= ModShift
	}
	if btn&8 != 0 {
		ev.Modifiers |= ModAlt
	}
	if btn&16 != 0 {
		ev.Modifiers |= ModCtrl
	}

	return end + 1, ev, true
}

// parseSGRParams extracts btn, x, y from "Btn;X;Y" format
func parseSGRParams(data []byte) (btn, x, y int, ok bool) {
	state := 0 // 0=btn, 1=x, 2=y
	val := 0

	for _, b := range data {
		switch {
		case b == ';':
			switch state {
			case 0:
				btn = val
			case 1:
				x = val
			default:
				return 0, 0, 0, false
			}
			state++
			val = 0
		case b >= '0' && b <= '9':
			val = val*10 + int(b-'0')
			if val > 9999 {
				return 0, 0, 0, false
			}
		default:
			return 0, 0, 0, false
		}
	}

	if state != 2 {
		return 0, 0, 0, false
	}
	return btn, x, val, true
}
