package terminal

import (
	"testing"
	"time"
)

// newTestReader builds an inputReader without a backend for direct
// parseInput calls
func newTestReader() *inputReader {
	return &inputReader{
		eventCh: make(chan Event, 256),
	}
}

// drainEvents collects all buffered events without blocking
func drainEvents(r *inputReader) []Event {
	var evs []Event
	for {
		select {
		case ev := <-r.eventCh:
			evs = append(evs, ev)
		default:
			return evs
		}
	}
}

// TestParseInputPrintable tests the printable ASCII fast path
func TestParseInputPrintable(t *testing.T) {
	r := newTestReader()

	consumed := r.parseInput([]byte("abc"))
	if consumed != 3 {
		t.Fatalf("consumed = %d, want 3", consumed)
	}

	evs := drainEvents(r)
	if len(evs) != 3 {
		t.Fatalf("got %d events, want 3", len(evs))
	}
	for i, want := range []rune{'a', 'b', 'c'} {
		if evs[i].Key != KeyRune || evs[i].Rune != want {
			t.Errorf("event %d = (%v, %q), want (KeyRune, %q)", i, evs[i].Key, evs[i].Rune, want)
		}
	}
}

// TestParseInputKeys tests escape sequence decoding across CSI, SS3,
// and control bytes
func TestParseInputKeys(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantKey Key
		wantMod Modifier
	}{
		{"up", "\x1b[A", KeyUp, ModNone},
		{"down", "\x1b[B", KeyDown, ModNone},
		{"right", "\x1b[C", KeyRight, ModNone},
		{"left", "\x1b[D", KeyLeft, ModNone},
		{"home", "\x1b[H", KeyHome, ModNone},
		{"end", "\x1b[F", KeyEnd, ModNone},
		{"backtab", "\x1b[Z", KeyBacktab, ModShift},
		{"delete", "\x1b[3~", KeyDelete, ModNone},
		{"page_up", "\x1b[5~", KeyPageUp, ModNone},
		{"shift_up", "\x1b[1;2A", KeyUp, ModShift},
		{"alt_down", "\x1b[1;3B", KeyDown, ModAlt},
		{"ctrl_right", "\x1b[1;5C", KeyRight, ModCtrl},
		{"all_mods_left", "\x1b[1;8D", KeyLeft, ModShift | ModAlt | ModCtrl},
		{"ctrl_page_down", "\x1b[6;5~", KeyPageDown, ModCtrl},
		{"shift_delete", "\x1b[3;2~", KeyDelete, ModShift},
		{"f1_xterm", "\x1b[11~", KeyF1, ModNone},
		{"f5", "\x1b[15~", KeyF5, ModNone},
		{"f12", "\x1b[24~", KeyF12, ModNone},
		{"alt_f5", "\x1b[15;3~", KeyF5, ModAlt},
		{"shift_f1", "\x1b[1;2P", KeyF1, ModShift},
		{"ss3_up", "\x1bOA", KeyUp, ModNone},
		{"ss3_f1", "\x1bOP", KeyF1, ModNone},
		{"ss3_keypad_enter", "\x1bOM", KeyEnter, ModNone},
		{"ctrl_c", "\x03", KeyCtrlC, ModNone},
		{"ctrl_z", "\x1a", KeyCtrlZ, ModNone},
		{"enter_cr", "\r", KeyEnter, ModNone},
		{"enter_lf", "\n", KeyEnter, ModNone},
		{"tab", "\t", KeyTab, ModNone},
		{"del_as_backspace", "\x7f", KeyBackspace, ModNone},
		{"ctrl_space", "\x00", KeyCtrlSpace, ModNone},
		{"alt_escape", "\x1b\x1b", KeyEscape, ModAlt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestReader()
			consumed := r.parseInput([]byte(tt.input))
			if consumed != len(tt.input) {
				t.Fatalf("consumed = %d, want %d", consumed, len(tt.input))
			}

			evs := drainEvents(r)
			if len(evs) != 1 {
				t.Fatalf("got %d events, want 1", len(evs))
			}
			ev := evs[0]
			if ev.Type != EventKey || ev.Key != tt.wantKey || ev.Modifiers != tt.wantMod {
				t.Errorf("got key=%v mod=%v, want key=%v mod=%v",
					ev.Key, ev.Modifiers, tt.wantKey, tt.wantMod)
			}
		})
	}
}

// TestParseInputAltRune tests ESC-prefixed printable characters
func TestParseInputAltRune(t *testing.T) {
	r := newTestReader()
	r.parseInput([]byte("\x1bx"))

	evs := drainEvents(r)
	if len(evs) != 1 {
		t.Fatalf("got %d events, want 1", len(evs))
	}
	if evs[0].Key != KeyRune || evs[0].Rune != 'x' || evs[0].Modifiers != ModAlt {
		t.Errorf("got (%v, %q, %v), want (KeyRune, 'x', ModAlt)", evs[0].Key, evs[0].Rune, evs[0].Modifiers)
	}
}

// TestParseInputUTF8 tests multibyte decoding and boundary handling
func TestParseInputUTF8(t *testing.T) {
	r := newTestReader()

	consumed := r.parseInput([]byte("é日"))
	if want := len("é日"); consumed != want {
		t.Fatalf("consumed = %d, want %d", consumed, want)
	}
	evs := drainEvents(r)
	if len(evs) != 2 {
		t.Fatalf("got %d events, want 2", len(evs))
	}
	if evs[0].Rune != 'é' || evs[1].Rune != '日' {
		t.Errorf("runes = %q, %q, want é, 日", evs[0].Rune, evs[1].Rune)
	}

	// Trailing partial sequence stays unconsumed
	full := []byte("日")
	consumed = r.parseInput(full[:2])
	if consumed != 0 {
		t.Errorf("partial UTF-8 consumed = %d, want 0", consumed)
	}
	if evs := drainEvents(r); len(evs) != 0 {
		t.Errorf("partial UTF-8 emitted %d events, want 0", len(evs))
	}

	// Stray continuation byte is skipped without an event
	consumed = r.parseInput([]byte{0xa9, 'z'})
	if consumed != 2 {
		t.Errorf("invalid byte consumed = %d, want 2", consumed)
	}
	evs = drainEvents(r)
	if len(evs) != 1 || evs[0].Rune != 'z' {
		t.Errorf("after invalid byte got %v, want single 'z'", evs)
	}
}

// TestParseInputIncomplete tests that partial escape sequences wait
// for more data
func TestParseInputIncomplete(t *testing.T) {
	tests := []string{"\x1b", "\x1b[", "\x1b[1;5", "\x1b[<0;10;5", "\x1bO"}

	for _, input := range tests {
		r := newTestReader()
		if consumed := r.parseInput([]byte(input)); consumed != 0 {
			t.Errorf("parseInput(%q) consumed %d, want 0", input, consumed)
		}
		if evs := drainEvents(r); len(evs) != 0 {
			t.Errorf("parseInput(%q) emitted %d events, want 0", input, len(evs))
		}
	}
}

// TestParseInputMalformedCSI tests resync after a corrupt sequence
func TestParseInputMalformedCSI(t *testing.T) {
	r := newTestReader()

	// Control byte inside CSI aborts the sequence; the prefix is
	// dropped and parsing resumes at the control byte
	consumed := r.parseInput([]byte("\x1b[\x01A"))
	if consumed != 4 {
		t.Fatalf("consumed = %d, want 4", consumed)
	}

	evs := drainEvents(r)
	if len(evs) != 2 {
		t.Fatalf("got %d events, want 2", len(evs))
	}
	if evs[0].Key != KeyCtrlA {
		t.Errorf("event 0 = %v, want KeyCtrlA", evs[0].Key)
	}
	if evs[1].Key != KeyRune || evs[1].Rune != 'A' {
		t.Errorf("event 1 = (%v, %q), want (KeyRune, 'A')", evs[1].Key, evs[1].Rune)
	}
}

// TestParseSGRMouse tests SGR 1006 mouse decoding
func TestParseSGRMouse(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantX      int
		wantY      int
		wantBtn    MouseButton
		wantAction MouseAction
		wantMod    Modifier
	}{
		{"left_press", "\x1b[<0;10;5M", 9, 4, MouseBtnLeft, MouseActionPress, ModNone},
		{"left_release", "\x1b[<0;10;5m", 9, 4, MouseBtnLeft, MouseActionRelease, ModNone},
		{"corner_press", "\x1b[<0;1;1M", 0, 0, MouseBtnLeft, MouseActionPress, ModNone},
		{"right_press", "\x1b[<2;3;4M", 2, 3, MouseBtnRight, MouseActionPress, ModNone},
		{"middle_press", "\x1b[<1;2;2M", 1, 1, MouseBtnMiddle, MouseActionPress, ModNone},
		{"left_drag", "\x1b[<32;3;3M", 2, 2, MouseBtnLeft, MouseActionDrag, ModNone},
		{"motion", "\x1b[<35;7;2M", 6, 1, MouseBtnNone, MouseActionMove, ModNone},
		{"wheel_up", "\x1b[<64;1;1M", 0, 0, MouseBtnWheelUp, MouseActionPress, ModNone},
		{"wheel_down", "\x1b[<65;1;1M", 0, 0, MouseBtnWheelDown, MouseActionPress, ModNone},
		{"ctrl_press", "\x1b[<16;2;2M", 1, 1, MouseBtnLeft, MouseActionPress, ModCtrl},
		{"shift_release", "\x1b[<4;1;1m", 0, 0, MouseBtnLeft, MouseActionRelease, ModShift},
		{"wide_coords", "\x1b[<0;120;40M", 119, 39, MouseBtnLeft, MouseActionPress, ModNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestReader()
			consumed := r.parseInput([]byte(tt.input))
			if consumed != len(tt.input) {
				t.Fatalf("consumed = %d, want %d", consumed, len(tt.input))
			}

			evs := drainEvents(r)
			if len(evs) != 1 {
				t.Fatalf("got %d events, want 1", len(evs))
			}
			ev := evs[0]
			if ev.Type != EventMouse {
				t.Fatalf("type = %v, want EventMouse", ev.Type)
			}
			if ev.MouseX != tt.wantX || ev.MouseY != tt.wantY {
				t.Errorf("pos = (%d, %d), want (%d, %d)", ev.MouseX, ev.MouseY, tt.wantX, tt.wantY)
			}
			if ev.MouseBtn != tt.wantBtn {
				t.Errorf("button = %v, want %v", ev.MouseBtn, tt.wantBtn)
			}
			if ev.MouseAction != tt.wantAction {
				t.Errorf("action = %v, want %v", ev.MouseAction, tt.wantAction)
			}
			if ev.Modifiers != tt.wantMod {
				t.Errorf("modifiers = %v, want %v", ev.Modifiers, tt.wantMod)
			}
		})
	}
}

// TestParseSGRParams tests the parameter splitter
func TestParseSGRParams(t *testing.T) {
	tests := []struct {
		input   string
		btn     int
		x, y    int
		ok      bool
	}{
		{"0;10;5", 0, 10, 5, true},
		{"12;345;678", 12, 345, 678, true},
		{"1;2", 0, 0, 0, false},
		{"1;2;3;4", 0, 0, 0, false},
		{"a;1;1", 0, 0, 0, false},
		{"0;99999;1", 0, 0, 0, false},
	}

	for _, tt := range tests {
		btn, x, y, ok := parseSGRParams([]byte(tt.input))
		if ok != tt.ok {
			t.Errorf("parseSGRParams(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if ok && (btn != tt.btn || x != tt.x || y != tt.y) {
			t.Errorf("parseSGRParams(%q) = (%d, %d, %d), want (%d, %d, %d)",
				tt.input, btn, x, y, tt.btn, tt.x, tt.y)
		}
	}
}

// TestDecodeModifier tests the xterm modifier parameter bitfield
func TestDecodeModifier(t *testing.T) {
	tests := []struct {
		param int
		want  Modifier
	}{
		{2, ModShift},
		{3, ModAlt},
		{4, ModShift | ModAlt},
		{5, ModCtrl},
		{6, ModShift | ModCtrl},
		{7, ModAlt | ModCtrl},
		{8, ModShift | ModAlt | ModCtrl},
	}

	for _, tt := range tests {
		if got := decodeModifier(tt.param); got != tt.want {
			t.Errorf("decodeModifier(%d) = %v, want %v", tt.param, got, tt.want)
		}
	}
}

// TestKeyNames tests config name round-trips
func TestKeyNames(t *testing.T) {
	if k, ok := KeyByName("escape"); !ok || k != KeyEscape {
		t.Errorf("KeyByName(escape) = (%v, %v), want (KeyEscape, true)", k, ok)
	}
	if k, ok := KeyByName("esc"); !ok || k != KeyEscape {
		t.Errorf("KeyByName(esc) = (%v, %v), want (KeyEscape, true)", k, ok)
	}
	if k, ok := KeyByName("ctrl_c"); !ok || k != KeyCtrlC {
		t.Errorf("KeyByName(ctrl_c) = (%v, %v), want (KeyCtrlC, true)", k, ok)
	}
	if _, ok := KeyByName("hyper_q"); ok {
		t.Error("KeyByName(hyper_q) resolved, want miss")
	}
	if got := KeyName(KeyF5); got != "f5" {
		t.Errorf("KeyName(KeyF5) = %q, want f5", got)
	}
	if got := KeyName(KeyNone); got != "" {
		t.Errorf("KeyName(KeyNone) = %q, want empty", got)
	}
}

// scriptBackend feeds canned reads to the input reader. A nil entry
// simulates a poll timeout; after the script it blocks until stop.
type scriptBackend struct {
	reads [][]byte
	idx   int
}

func (b *scriptBackend) Init() error          { return nil }
func (b *scriptBackend) Fini()                {}
func (b *scriptBackend) Size() (int, int)     { return 80, 24 }
func (b *scriptBackend) Write(p []byte) (int, error) { return len(p), nil }
func (b *scriptBackend) SetResizeHandler(func(int, int)) {}

func (b *scriptBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	if b.idx >= len(b.reads) {
		<-stopCh
		return nil, nil
	}
	r := b.reads[b.idx]
	b.idx++
	return r, nil
}

// waitEvent receives one event with a deadline
func waitEvent(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

// TestReadLoopStandaloneEscape tests that a lone ESC is flushed as a
// key on the next poll timeout instead of waiting forever
func TestReadLoopStandaloneEscape(t *testing.T) {
	backend := &scriptBackend{reads: [][]byte{[]byte("\x1b"), nil}}
	r := newInputReader(backend)
	r.start()
	defer r.stop()

	ev := waitEvent(t, r.events())
	if ev.Type != EventKey || ev.Key != KeyEscape {
		t.Errorf("got (%v, %v), want standalone KeyEscape", ev.Type, ev.Key)
	}
}

// TestReadLoopSplitSequence tests sequence assembly across read
// boundaries
func TestReadLoopSplitSequence(t *testing.T) {
	backend := &scriptBackend{reads: [][]byte{[]byte("\x1b[1;"), []byte("5C")}}
	r := newInputReader(backend)
	r.start()
	defer r.stop()

	ev := waitEvent(t, r.events())
	if ev.Key != KeyRight || ev.Modifiers != ModCtrl {
		t.Errorf("got key=%v mod=%v, want KeyRight with ModCtrl", ev.Key, ev.Modifiers)
	}
}

// TestReadLoopStop tests that stopping delivers EventClosed
func TestReadLoopStop(t *testing.T) {
	backend := &scriptBackend{}
	r := newInputReader(backend)
	r.start()

	r.stop()

	ev := waitEvent(t, r.events())
	if ev.Type != EventClosed {
		t.Errorf("got type %v, want EventClosed", ev.Type)
	}
}
