package terminal

// Pre-allocated ANSI sequence fragments (avoid allocations during render)
var (
	// CSI sequences
	csi    = []byte("\x1b[")
	csiRIS = []byte("\x1bc") // Reset to Initial State (emergency)

	// Exported fragments for frame composition by renderers
	SeqSGRReset = []byte("\x1b[0m")
	SeqClear    = []byte("\x1b[2J\x1b[H")

	// Cursor control
	csiCursorHide = []byte("\x1b[?25l")
	csiCursorShow = []byte("\x1b[?25h")

	// Screen modes
	csiAltScreenEnter = []byte("\x1b[?1049h")
	csiAltScreenExit  = []byte("\x1b[?1049l")
	// DECAWM: Auto-Wrap Mode
	// ?7l disables wrapping (cursor sticks at right edge), preventing scroll when writing to bottom-right corner
	csiAutoWrapOn  = []byte("\x1b[?7h")
	csiAutoWrapOff = []byte("\x1b[?7l")

	// Mouse reporting modes (X11 click, button-event drag, any-motion, SGR encoding)
	csiMouseClickOn   = []byte("\x1b[?1000h")
	csiMouseClickOff  = []byte("\x1b[?1000l")
	csiMouseDragOn    = []byte("\x1b[?1002h")
	csiMouseDragOff   = []byte("\x1b[?1002l")
	csiMouseMotionOn  = []byte("\x1b[?1003h")
	csiMouseMotionOff = []byte("\x1b[?1003l")
	csiMouseSGROn     = []byte("\x1b[?1006h")
	csiMouseSGROff    = []byte("\x1b[?1006l")

	// SGR parameter fragments (no CSI prefix, no terminator)
	fgRGBParam     = []byte("38;2;")
	bgRGBParam     = []byte("48;2;")
	fg256Param     = []byte("38;5;")
	bg256Param     = []byte("48;5;")
	fgDefaultParam = []byte("39")
	bgDefaultParam = []byte("49")

	cursorForwardOne = []byte("\x1b[C")
)

// Attr represents text attributes (bitmask)
type Attr uint8

const (
	AttrNone Attr = 0
	AttrBold Attr = 1 << 0
	AttrDim  Attr = 1 << 1
)

// SeqWriter is the byte sink sequence composition helpers write into.
// Satisfied by bytes.Buffer and bufio.Writer.
type SeqWriter interface {
	Write(p []byte) (int, error)
	WriteByte(b byte) error
}

// AppendInt writes an integer without allocation
// Optimized for terminal values (0-255 common, 0-999 typical max)
func AppendInt(w SeqWriter, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		w.WriteByte(byte(n/10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	if n < 1000 {
		w.WriteByte(byte(n/100) + '0')
		w.WriteByte(byte(n/10%10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	// Fallback for >999 (rare)
	var buf [10]byte
	i := 9
	for n > 0 {
		buf[i] = byte(n%10) + '0'
		n /= 10
		i--
	}
	w.Write(buf[i+1:])
}

// AppendCursorPos writes a cursor positioning sequence (0-indexed input)
func AppendCursorPos(w SeqWriter, x, y int) {
	w.Write(csi)
	AppendInt(w, y+1)
	w.WriteByte(';')
	AppendInt(w, x+1)
	w.WriteByte('H')
}

// AppendCursorForward writes cursor forward N positions
func AppendCursorForward(w SeqWriter, n int) {
	if n <= 0 {
		return
	}
	if n == 1 {
		w.Write(cursorForwardOne)
		return
	}
	w.Write(csi)
	AppendInt(w, n)
	w.WriteByte('C')
}

// Style is a resolved cell style for SGR emission. Unset colors
// select the surface default (SGR 39/49).
type Style struct {
	Fg, Bg       RGB
	FgSet, BgSet bool
	Attr         Attr
}

// StyleWriter emits minimal SGR transitions between consecutive styles.
// A renderer keeps one per frame walk and calls WriteStyle before each
// glyph; identical consecutive styles emit nothing.
type StyleWriter struct {
	mode  ColorMode
	last  Style
	valid bool
}

// NewStyleWriter creates a style writer for the given color capability
func NewStyleWriter(mode ColorMode) *StyleWriter {
	return &StyleWriter{mode: mode}
}

// Reset invalidates the run state, forcing the next WriteStyle to emit
// a full rebuild. Call after any out-of-band sequence write.
func (sw *StyleWriter) Reset() {
	sw.valid = false
}

// WriteStyle emits the SGR transition from the previous style to st
func (sw *StyleWriter) WriteStyle(w SeqWriter, st Style) {
	if sw.mode == ColorModeMono {
		st.Fg, st.Bg = RGB{}, RGB{}
		st.FgSet, st.BgSet = false, false
	}
	if sw.valid && st == sw.last {
		return
	}

	attrChanged := !sw.valid || st.Attr != sw.last.Attr
	fgChanged := st.FgSet != sw.last.FgSet || st.Fg != sw.last.Fg
	bgChanged := st.BgSet != sw.last.BgSet || st.Bg != sw.last.Bg

	if attrChanged {
		// Attribute transitions require a reset, which also clears
		// colors, so the full style is rebuilt in one sequence
		w.Write(csi)
		w.WriteByte('0')
		if st.Attr&AttrBold != 0 {
			w.WriteByte(';')
			w.WriteByte('1')
		}
		if st.Attr&AttrDim != 0 {
			w.WriteByte(';')
			w.WriteByte('2')
		}
		if st.FgSet {
			w.WriteByte(';')
			sw.writeFgParams(w, st.Fg)
		}
		if st.BgSet {
			w.WriteByte(';')
			sw.writeBgParams(w, st.Bg)
		}
		w.WriteByte('m')
	} else if fgChanged || bgChanged {
		w.Write(csi)
		if fgChanged {
			if st.FgSet {
				sw.writeFgParams(w, st.Fg)
			} else {
				w.Write(fgDefaultParam)
			}
		}
		if bgChanged {
			if fgChanged {
				w.WriteByte(';')
			}
			if st.BgSet {
				sw.writeBgParams(w, st.Bg)
			} else {
				w.Write(bgDefaultParam)
			}
		}
		w.WriteByte('m')
	}

	sw.last = st
	sw.valid = true
}

// writeFgParams writes fg color parameters (no CSI prefix, no 'm' suffix)
func (sw *StyleWriter) writeFgParams(w SeqWriter, fg RGB) {
	if sw.mode == ColorModeTrueColor {
		w.Write(fgRGBParam)
		AppendInt(w, int(fg.R))
		w.WriteByte(';')
		AppendInt(w, int(fg.G))
		w.WriteByte(';')
		AppendInt(w, int(fg.B))
		return
	}
	w.Write(fg256Param)
	AppendInt(w, int(RGBTo256(fg)))
}

// writeBgParams writes bg color parameters (no CSI prefix, no 'm' suffix)
func (sw *StyleWriter) writeBgParams(w SeqWriter, bg RGB) {
	if sw.mode == ColorModeTrueColor {
		w.Write(bgRGBParam)
		AppendInt(w, int(bg.R))
		w.WriteByte(';')
		AppendInt(w, int(bg.G))
		w.WriteByte(';')
		AppendInt(w, int(bg.B))
		return
	}
	w.Write(bg256Param)
	AppendInt(w, int(RGBTo256(bg)))
}
