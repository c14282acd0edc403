package terminal

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
	"time"
	"unicode/utf8"
)

// EventType distinguishes input event categories
type EventType uint8

const (
	EventKey EventType = iota
	EventResize
	EventMouse
	EventError  // Read error
	EventClosed // Input closed
)

// Event represents a terminal input event
type Event struct {
	Type      EventType
	Key       Key
	Rune      rune
	Modifiers Modifier
	Cols      int   // For EventResize
	Rows      int   // For EventResize
	Err       error // For EventError

	// Mouse event fields
	MouseX      int
	MouseY      int
	MouseBtn    MouseButton
	MouseAction MouseAction
}

// inputReader handles raw stdin parsing
type inputReader struct {
	backend Backend
	eventCh chan Event
	stopCh  chan struct{}
	doneCh  chan struct{}
	mu      sync.Mutex
	running bool

	// Persistent buffer for stream assembly; partial UTF-8 and escape
	// sequences at a read boundary stay queued until completed
	buf []byte
}

// newInputReader creates a new input reader
func newInputReader(backend Backend) *inputReader {
	return &inputReader{
		backend: backend,
		eventCh: make(chan Event, 256),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
		buf:     make([]byte, 0, 256),
	}
}

// start begins reading input in a goroutine
func (r *inputReader) start() {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	go r.readLoop()
}

// stop signals the reader to stop
func (r *inputReader) stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	r.mu.Unlock()

	close(r.stopCh)
	// Wait with timeout, don't block forever if read is stuck
	select {
	case <-r.doneCh:
	case <-time.After(200 * time.Millisecond):
	}
}

// events returns the event channel
func (r *inputReader) events() <-chan Event {
	return r.eventCh
}

// readLoop is the main input reading goroutine
func (r *inputReader) readLoop() {
	defer close(r.doneCh)

	// Panic recovery for raw input reader
	defer func() {
		if rec := recover(); rec != nil {
			EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mINPUT READER CRASHED: %v\x1b[0m\r\n", rec)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	for {
		data, err := r.backend.Read(r.stopCh)
		if err != nil {
			if err == io.EOF {
				r.sendEvent(Event{Type: EventClosed})
			} else {
				r.sendEvent(Event{Type: EventError, Err: err})
			}
			return
		}

		select {
		case <-r.stopCh:
			r.sendEvent(Event{Type: EventClosed})
			return
		default:
		}

		if len(data) == 0 {
			// Poll timeout, emit a pending standalone ESC so it is
			// usable as a key rather than waiting as a sequence prefix
			if len(r.buf) == 1 && r.buf[0] == 0x1b {
				r.sendEvent(Event{Type: EventKey, Key: KeyEscape})
				r.buf = r.buf[:0]
			}
			continue
		}

		r.buf = append(r.buf, data...)

		consumed := r.parseInput(r.buf)

		// Compact buffer
		if consumed > 0 {
			if consumed >= len(r.buf) {
				r.buf = r.buf[:0]
			} else {
				copy(r.buf, r.buf[consumed:])
				r.buf = r.buf[:len(r.buf)-consumed]
			}
		}
	}
}

// parseInput parses raw bytes into events and returns bytes consumed
// (stops on an incomplete trailing sequence)
func (r *inputReader) parseInput(data []byte) int {
	i := 0
	n := len(data)

	for i < n {
		b := data[i]

		// Fast path: printable ASCII
		if b >= 0x20 && b < 0x7f {
			r.sendEvent(Event{Type: EventKey, Key: KeyRune, Rune: rune(b)})
			i++
			continue
		}

		// Escape sequence
		if b == 0x1b {
			if i+1 >= n {
				return i // Wait for more data
			}

			consumed, ev := r.parseEscape(data[i:])
			if consumed == 0 {
				return i // Incomplete sequence, wait for more data
			}

			// Swallow unknown-but-consumed sequences
			if ev.Key != KeyNone || ev.Type != EventKey {
				r.sendEvent(ev)
			}
			i += consumed
			continue
		}

		// Control characters
		if b < 0x20 {
			r.sendEvent(r.parseControl(b))
			i++
			continue
		}

		// DEL
		if b == 0x7f {
			r.sendEvent(Event{Type: EventKey, Key: KeyBackspace})
			i++
			continue
		}

		// UTF-8 multibyte
		if !utf8.FullRune(data[i:]) {
			return i // Incomplete UTF-8, wait for more data
		}
		rn, size := utf8.DecodeRune(data[i:])
		if rn == utf8.RuneError && size == 1 {
			i++ // Invalid byte, skip
			continue
		}
		r.sendEvent(Event{Type: EventKey, Key: KeyRune, Rune: rn})
		i += size
	}
	return i
}

// parseEscape attempts to parse an escape sequence, returns 0 on incomplete
func (r *inputReader) parseEscape(data []byte) (int, Event) {
	if len(data) < 2 {
		return 0, Event{}
	}

	// ESC ESC -> Alt+Escape
	if data[1] == 0x1b {
		return 2, Event{Type: EventKey, Key: KeyEscape, Modifiers: ModAlt}
	}

	if data[1] == '[' {
		return r.parseCSI(data)
	}
	if data[1] == 'O' {
		return r.parseSS3(data)
	}

	// Alt+control character
	if data[1] < 0x20 {
		ev := r.parseControl(data[1])
		ev.Modifiers |= ModAlt
		return 2, ev
	}

	// Alt+printable
	if data[1] >= 0x20 && data[1] < 0x7f {
		return 2, Event{Type: EventKey, Key: KeyRune, Rune: rune(data[1]), Modifiers: ModAlt}
	}

	return 0, Event{}
}

// maxCSILen bounds sequence scanning so malformed input cannot
// wedge the buffer
const maxCSILen = 24

// parseCSI parses a CSI sequence without allocation
func (r *inputReader) parseCSI(data []byte) (int, Event) {
	if len(data) < 3 {
		return 0, Event{}
	}

	// SGR mouse: ESC [ < Btn ; X ; Y M/m
	if data[2] == '<' {
		return r.parseSGRMouse(data)
	}

	limit := len(data)
	if limit > maxCSILen {
		limit = maxCSILen
	}

	for end := 2; end < limit; end++ {
		b := data[end]
		if (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~' {
			seq := data[2 : end+1]
			if key, mod, ok := lookupCSI(seq); ok {
				return end + 1, Event{Type: EventKey, Key: key, Modifiers: mod}
			}
			// Unknown but well-formed, consume silently
			return end + 1, Event{Type: EventKey, Key: KeyNone}
		}
		if b < 0x20 || b > 0x7e {
			// Malformed, drop the ESC [ prefix and resync
			return 2, Event{Type: EventKey, Key: KeyNone}
		}
	}

	if limit == maxCSILen {
		// Runaway sequence, drop the prefix and resync
		return 2, Event{Type: EventKey, Key: KeyNone}
	}
	return 0, Event{} // Incomplete
}

// parseSS3 parses an SS3 sequence, consuming unknown finals to
// prevent garbage
func (r *inputReader) parseSS3(data []byte) (int, Event) {
	if len(data) < 3 {
		return 0, Event{}
	}
	if key, mod, ok := lookupSS3(data[2:3]); ok {
		return 3, Event{Type: EventKey, Key: key, Modifiers: mod}
	}
	return 3, Event{Type: EventKey, Key: KeyNone}
}

// parseControl maps control characters to keys
func (r *inputReader) parseControl(b byte) Event {
	switch b {
	case 0x00:
		return Event{Type: EventKey, Key: KeyCtrlSpace}
	case 0x08: // Ctrl+H or Backspace
		return Event{Type: EventKey, Key: KeyBackspace}
	case 0x09:
		return Event{Type: EventKey, Key: KeyTab}
	case 0x0a, 0x0d: // LF, CR
		return Event{Type: EventKey, Key: KeyEnter}
	case 0x1b:
		return Event{Type: EventKey, Key: KeyEscape}
	case 0x1c:
		return Event{Type: EventKey, Key: KeyCtrlBackslash}
	case 0x1d:
		return Event{Type: EventKey, Key: KeyCtrlBracketRight}
	case 0x1e:
		return Event{Type: EventKey, Key: KeyCtrlCaret}
	case 0x1f:
		return Event{Type: EventKey, Key: KeyCtrlUnderscore}
	}
	if b >= 0x01 && b <= 0x1a {
		return Event{Type: EventKey, Key: KeyCtrlA + Key(b-0x01)}
	}
	return Event{Type: EventKey, Key: KeyNone}
}

// parseSGRMouse parses mouse SGR sequences
// Format: ESC [ < Btn ; X ; Y M/m
func (r *inputReader) parseSGRMouse(data []byte) (int, Event) {
	// Minimum: ESC [ < 0 ; 1 ; 1 M = 9 bytes
	if len(data) < 9 {
		return 0, Event{}
	}

	// Find terminator M or m
	end := 3
	for end < len(data) && end < 32 {
		if data[end] == 'M' || data[end] == 'm' {
			break
		}
		end++
	}
	if end >= len(data) || (data[end] != 'M' && data[end] != 'm') {
		if end >= 32 {
			// Runaway, resync
			return 3, Event{Type: EventKey, Key: KeyNone}
		}
		return 0, Event{}
	}

	btn, x, y, ok := parseSGRParams(data[3:end])
	if !ok {
		return end + 1, Event{Type: EventKey, Key: KeyNone}
	}

	ev := Event{Type: EventMouse, MouseX: x - 1, MouseY: y - 1} // 1-indexed on the wire

	// Bits 0-1: button (0=left, 1=middle, 2=right, 3=none)
	// Bit 5 (32): motion
	// Bit 6 (64): scroll
	buttonID := btn & 0x03
	isMotion := btn&32 != 0
	isScroll := btn&64 != 0

	if isScroll {
		if buttonID == 0 {
			ev.MouseBtn = MouseBtnWheelUp
		} else {
			ev.MouseBtn = MouseBtnWheelDown
		}
		ev.MouseAction = MouseActionPress // Scroll is instantaneous
	} else {
		switch buttonID {
		case 0:
			ev.MouseBtn = MouseBtnLeft
		case 1:
			ev.MouseBtn = MouseBtnMiddle
		case 2:
			ev.MouseBtn = MouseBtnRight
		case 3:
			ev.MouseBtn = MouseBtnNone // Release or motion with no button
		}

		if data[end] == 'M' {
			if isMotion {
				if ev.MouseBtn != MouseBtnNone {
					ev.MouseAction = MouseActionDrag
				} else {
					ev.MouseAction = MouseActionMove
				}
			} else {
				ev.MouseAction = MouseActionPress
			}
		} else {
			ev.MouseAction = MouseActionRelease
		}
	}

	// Modifier bits ride along in the button byte
	if btn&4 != 0 {
		ev.Modifiers |= ModShift
	}
	if btn&8 != 0 {
		ev.Modifiers |= ModAlt
	}
	if btn&16 != 0 {
		ev.Modifiers |= ModCtrl
	}

	return end + 1, ev
}

// parseSGRParams extracts btn, x, y from "Btn;X;Y"
func parseSGRParams(data []byte) (btn, x, y int, ok bool) {
	state := 0 // 0=btn, 1=x, 2=y
	val := 0

	for _, b := range data {
		if b == ';' {
			switch state {
			case 0:
				btn = val
			case 1:
				x = val
			}
			state++
			val = 0
			if state > 2 {
				return 0, 0, 0, false
			}
		} else if b >= '0' && b <= '9' {
			val = val*10 + int(b-'0')
			if val > 9999 { // Sanity limit
				return 0, 0, 0, false
			}
		} else {
			return 0, 0, 0, false
		}
	}

	if state != 2 {
		return 0, 0, 0, false
	}
	y = val
	return btn, x, y, true
}

// sendEvent sends an event to the channel, non-blocking
func (r *inputReader) sendEvent(ev Event) {
	select {
	case r.eventCh <- ev:
	default:
		// Channel full, drop event
	}
}
