package terminal

// Key represents a parsed input key
type Key uint16

const (
	KeyNone Key = iota
	KeyRune     // Printable character (check Event.Rune)

	// Control keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab // Shift+Tab
	KeyBackspace
	KeyDelete
	KeyInsert

	// Navigation
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// Ctrl+letter, contiguous so Ctrl+X maps as KeyCtrlA + (X - 'a')
	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlH // Often same as Backspace
	KeyCtrlI // Often same as Tab
	KeyCtrlJ // Often same as Enter
	KeyCtrlK
	KeyCtrlL
	KeyCtrlM // Often same as Enter
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ

	// Ctrl+special
	KeyCtrlSpace
	KeyCtrlBackslash
	KeyCtrlBracketRight
	KeyCtrlCaret
	KeyCtrlUnderscore
)

// Modifier flags
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << 0
	ModAlt   Modifier = 1 << 1
	ModCtrl  Modifier = 1 << 2
)

// escapeSequence maps an escape sequence tail to a key
type escapeSequence struct {
	seq string
	key Key
	mod Modifier
}

// Base CSI sequences (ESC [ ...). Modified variants such as
// "1;5C" or "3;2~" are decomposed in lookupCSI, not tabulated.
var csiSequences = []escapeSequence{
	// Arrows and cursor-style navigation
	{"A", KeyUp, ModNone},
	{"B", KeyDown, ModNone},
	{"C", KeyRight, ModNone},
	{"D", KeyLeft, ModNone},
	{"H", KeyHome, ModNone},
	{"F", KeyEnd, ModNone},
	{"Z", KeyBacktab, ModShift},

	// Tilde-terminated navigation
	{"1~", KeyHome, ModNone},
	{"2~", KeyInsert, ModNone},
	{"3~", KeyDelete, ModNone},
	{"4~", KeyEnd, ModNone},
	{"5~", KeyPageUp, ModNone},
	{"6~", KeyPageDown, ModNone},
	{"7~", KeyHome, ModNone},
	{"8~", KeyEnd, ModNone},

	// Function keys (xterm)
	{"11~", KeyF1, ModNone},
	{"12~", KeyF2, ModNone},
	{"13~", KeyF3, ModNone},
	{"14~", KeyF4, ModNone},
	{"15~", KeyF5, ModNone},
	{"17~", KeyF6, ModNone},
	{"18~", KeyF7, ModNone},
	{"19~", KeyF8, ModNone},
	{"20~", KeyF9, ModNone},
	{"21~", KeyF10, ModNone},
	{"23~", KeyF11, ModNone},
	{"24~", KeyF12, ModNone},

	// F1-F4 final bytes used by the modified form (ESC [ 1 ; mod P..S)
	{"P", KeyF1, ModNone},
	{"Q", KeyF2, ModNone},
	{"R", KeyF3, ModNone},
	{"S", KeyF4, ModNone},
}

// SS3 sequences (ESC O ...)
var ss3Sequences = []escapeSequence{
	{"A", KeyUp, ModNone},
	{"B", KeyDown, ModNone},
	{"C", KeyRight, ModNone},
	{"D", KeyLeft, ModNone},
	{"H", KeyHome, ModNone},
	{"F", KeyEnd, ModNone},
	{"P", KeyF1, ModNone},
	{"Q", KeyF2, ModNone},
	{"R", KeyF3, ModNone},
	{"S", KeyF4, ModNone},
	{"M", KeyEnter, ModNone}, // Keypad Enter
}

var csiMap = buildSequenceMap(csiSequences)
var ss3Map = buildSequenceMap(ss3Sequences)

func buildSequenceMap(seqs []escapeSequence) map[string]escapeSequence {
	m := make(map[string]escapeSequence, len(seqs))
	for _, s := range seqs {
		m[s.seq] = s
	}
	return m
}

// lookupCSI resolves a CSI sequence tail to a key. Plain sequences hit
// the table; xterm modified sequences ("1;5C", "5;2~") are split into
// base sequence + modifier parameter. The string([]byte) conversions
// inline in map access do not allocate.
func lookupCSI(seq []byte) (Key, Modifier, bool) {
	if s, ok := csiMap[string(seq)]; ok {
		return s.key, s.mod, true
	}

	n := len(seq)
	if n < 4 {
		return KeyNone, ModNone, false
	}
	semi := -1
	for i := n - 2; i > 0; i-- {
		if seq[i] == ';' {
			semi = i
			break
		}
	}
	if semi < 0 {
		return KeyNone, ModNone, false
	}

	param := 0
	for _, b := range seq[semi+1 : n-1] {
		if b < '0' || b > '9' {
			return KeyNone, ModNone, false
		}
		param = param*10 + int(b-'0')
	}
	if param < 2 || param > 16 {
		return KeyNone, ModNone, false
	}
	mod := decodeModifier(param)

	// Rebuild the unmodified base sequence on the stack
	var buf [8]byte
	var base []byte
	final := seq[n-1]
	if final == '~' {
		// "5;2~" -> "5~"
		if semi >= len(buf) {
			return KeyNone, ModNone, false
		}
		k := copy(buf[:], seq[:semi])
		buf[k] = '~'
		base = buf[:k+1]
	} else {
		// "1;5A" -> "A"
		if semi != 1 || seq[0] != '1' {
			return KeyNone, ModNone, false
		}
		buf[0] = final
		base = buf[:1]
	}

	if s, ok := csiMap[string(base)]; ok {
		return s.key, s.mod | mod, true
	}
	return KeyNone, ModNone, false
}

// lookupSS3 performs zero-alloc map lookup
func lookupSS3(seq []byte) (Key, Modifier, bool) {
	if s, ok := ss3Map[string(seq)]; ok {
		return s.key, s.mod, true
	}
	return KeyNone, ModNone, false
}

// decodeModifier converts an xterm modifier parameter to flags.
// The parameter minus one is a bitfield: Shift(1), Alt(2), Ctrl(4).
func decodeModifier(param int) Modifier {
	bits := param - 1
	var mod Modifier
	if bits&1 != 0 {
		mod |= ModShift
	}
	if bits&2 != 0 {
		mod |= ModAlt
	}
	if bits&4 != 0 {
		mod |= ModCtrl
	}
	return mod
}
