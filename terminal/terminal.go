package terminal

import (
	"errors"
	"io"
	"os"
	"sync"
)

// ErrNotRunning reports a write against a terminal that is not
// initialized or already finalized
var ErrNotRunning = errors.New("terminal: not running")

// Terminal provides low-level terminal access. Frame composition is
// the renderer's job; the terminal carries raw mode, the alternate
// screen, input decoding, and frame delivery.
type Terminal interface {
	// Init enters raw mode, alternate screen buffer, hides cursor
	Init() error

	// Fini restores terminal state. Safe to call multiple times
	Fini()

	// Size returns current terminal dimensions in cells
	Size() (cols, rows int)

	// ColorMode returns detected color capability
	ColorMode() ColorMode

	// Events returns the unified input channel. Key, mouse, resize,
	// and lifecycle events all arrive here.
	Events() <-chan Event

	// WriteFrame writes one composed frame of escape sequences and
	// glyphs in a single backend write. Screen clears ride inside the
	// frame; renderers compose them on dimension changes.
	WriteFrame(frame []byte) (int, error)

	// SetMouseMode enables/disables mouse event reporting.
	// Modes can be combined: MouseModeClick | MouseModeDrag
	SetMouseMode(mode MouseMode) error
}

// termImpl implements Terminal using the Backend interface
type termImpl struct {
	backend   Backend
	colorMode ColorMode

	input *inputReader

	mu          sync.Mutex
	initialized bool
	finalized   bool
	mouseMode   MouseMode
}

// New creates a Terminal over the platform backend. The color mode is
// detected from the environment unless given explicitly.
func New(colorMode ...ColorMode) Terminal {
	c := DetectColorMode()
	if len(colorMode) > 0 {
		c = colorMode[0]
	}
	return &termImpl{
		backend:   newBackend(),
		colorMode: c,
	}
}

// Init enters raw mode and sets up the terminal
func (t *termImpl) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}

	if err := t.backend.Init(); err != nil {
		return err
	}

	t.input = newInputReader(t.backend)

	// Resize notifications join the input stream so consumers drain
	// one channel
	t.backend.SetResizeHandler(func(cols, rows int) {
		t.input.sendEvent(Event{Type: EventResize, Cols: cols, Rows: rows})
	})

	t.writeSeq(csiAltScreenEnter)
	t.writeSeq(csiCursorHide)

	// DISABLE AUTO-WRAP
	// Prevents terminal scroll/wrap on bottom-right corner write
	t.writeSeq(csiAutoWrapOff)

	t.writeSeq(SeqSGRReset)
	t.writeSeq(SeqClear)

	t.input.start()

	t.initialized = true
	return nil
}

// Fini restores terminal state
func (t *termImpl) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	// Disable mouse before other cleanup
	if t.mouseMode != MouseModeNone {
		t.writeSeq(csiMouseMotionOff)
		t.writeSeq(csiMouseDragOff)
		t.writeSeq(csiMouseClickOff)
		t.writeSeq(csiMouseSGROff)
	}

	if t.input != nil {
		t.input.stop()
	}

	t.writeSeq(csiCursorShow)
	t.writeSeq(csiAltScreenExit)

	// Re-enable auto-wrap AFTER exiting the alt screen so the main
	// buffer has wrap enabled
	t.writeSeq(csiAutoWrapOn)

	t.writeSeq(SeqSGRReset)

	t.backend.Fini()

	t.finalized = true
}

// Size returns current terminal dimensions
func (t *termImpl) Size() (int, int) {
	return t.backend.Size()
}

// ColorMode returns detected color capability
func (t *termImpl) ColorMode() ColorMode {
	return t.colorMode
}

// Events returns the unified event channel
func (t *termImpl) Events() <-chan Event {
	return t.input.events()
}

// WriteFrame writes a composed frame to the terminal
func (t *termImpl) WriteFrame(frame []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return 0, ErrNotRunning
	}
	return t.backend.Write(frame)
}

// SetMouseMode enables or disables mouse reporting modes
func (t *termImpl) SetMouseMode(mode MouseMode) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return ErrNotRunning
	}

	oldMode := t.mouseMode
	t.mouseMode = mode

	// Disable modes no longer wanted
	if oldMode&MouseModeMotion != 0 && mode&MouseModeMotion == 0 {
		t.writeSeq(csiMouseMotionOff)
	}
	if oldMode&MouseModeDrag != 0 && mode&MouseModeDrag == 0 {
		t.writeSeq(csiMouseDragOff)
	}
	if oldMode&MouseModeClick != 0 && mode&MouseModeClick == 0 {
		t.writeSeq(csiMouseClickOff)
	}

	if mode == MouseModeNone && oldMode != MouseModeNone {
		t.writeSeq(csiMouseSGROff)
	}

	// SGR encoding first, then the tracking modes that use it
	if mode != MouseModeNone && oldMode == MouseModeNone {
		t.writeSeq(csiMouseSGROn)
	}
	if mode&MouseModeClick != 0 && oldMode&MouseModeClick == 0 {
		t.writeSeq(csiMouseClickOn)
	}
	if mode&MouseModeDrag != 0 && oldMode&MouseModeDrag == 0 {
		t.writeSeq(csiMouseDragOn)
	}
	if mode&MouseModeMotion != 0 && oldMode&MouseModeMotion == 0 {
		t.writeSeq(csiMouseMotionOn)
	}

	return nil
}

// writeSeq writes a control sequence, best-effort
func (t *termImpl) writeSeq(data []byte) {
	t.backend.Write(data)
}

// EmergencyReset attempts to restore the terminal to a sane state.
// Call from panic recovery when Fini cannot run normally.
func EmergencyReset(w io.Writer) {
	// Disable mouse tracking
	w.Write(csiMouseMotionOff)
	w.Write(csiMouseDragOff)
	w.Write(csiMouseClickOff)
	w.Write(csiMouseSGROff)

	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(SeqSGRReset)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios; best-effort
	// cooked mode reset, errors ignored in crash context
	resetTerminalMode()
}
