package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/runic/buffer"
	"github.com/lixenwraith/runic/core"
	"github.com/lixenwraith/runic/engine"
	"github.com/lixenwraith/runic/terminal"
)

// TcellTarget drives a tcell-managed screen: the portable fallback for
// hosts where the raw unix backend is unavailable. Tcell events are
// converted into terminal events so the runner and pointer tracker
// consume one event type regardless of backend.
type TcellTarget struct {
	screen  tcell.Screen
	events  chan terminal.Event
	metrics engine.Metrics

	lastButtons tcell.ButtonMask
}

// NewTcellTarget creates and initializes a tcell screen
func NewTcellTarget(s engine.Settings) (*TcellTarget, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("render: tcell screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("render: tcell init: %w", err)
	}
	screen.SetStyle(tcell.StyleDefault)

	cellW := s.FontSize*monoAspect + s.LetterSpacing
	lineH := s.FontSize * s.LineHeight

	t := &TcellTarget{
		screen:  screen,
		events:  make(chan terminal.Event, 256),
		metrics: engine.NewMetrics(cellW, lineH, s.FontFamily, s.FontSize),
	}
	core.Go(t.pollLoop)
	return t, nil
}

// Kind returns the tcell target kind
func (t *TcellTarget) Kind() engine.TargetKind { return engine.TargetTcell }

// Size returns the screen dimensions in cells
func (t *TcellTarget) Size() (cols, rows int) { return t.screen.Size() }

// Metrics returns synthesized cell metrics, as for the raw terminal
func (t *TcellTarget) Metrics() engine.Metrics { return t.metrics }

// Events returns the converted event channel
func (t *TcellTarget) Events() <-chan terminal.Event { return t.events }

// Close finalizes the screen; the poll loop exits on the nil event
// tcell delivers after Fini
func (t *TcellTarget) Close() error {
	t.screen.Fini()
	return nil
}

// SetMouseMode maps the reporting bitmask onto tcell's all-or-nothing
// mouse capture
func (t *TcellTarget) SetMouseMode(mode terminal.MouseMode) error {
	if mode == terminal.MouseModeNone {
		t.screen.DisableMouse()
	} else {
		t.screen.EnableMouse()
	}
	return nil
}

// Screen exposes the underlying tcell screen to the renderer
func (t *TcellTarget) Screen() tcell.Screen { return t.screen }

// pollLoop converts tcell events until the screen finalizes
func (t *TcellTarget) pollLoop() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			t.send(terminal.Event{Type: terminal.EventClosed})
			return
		}
		if converted, ok := t.convert(ev); ok {
			t.send(converted)
		}
	}
}

func (t *TcellTarget) send(ev terminal.Event) {
	select {
	case t.events <- ev:
	default:
		// Channel full, drop event
	}
}

func (t *TcellTarget) convert(ev tcell.Event) (terminal.Event, bool) {
	switch e := ev.(type) {
	case *tcell.EventResize:
		cols, rows := e.Size()
		return terminal.Event{Type: terminal.EventResize, Cols: cols, Rows: rows}, true

	case *tcell.EventKey:
		return convertKey(e)

	case *tcell.EventMouse:
		return t.convertMouse(e), true
	}
	return terminal.Event{}, false
}

func convertKey(e *tcell.EventKey) (terminal.Event, bool) {
	out := terminal.Event{Type: terminal.EventKey}

	switch e.Key() {
	case tcell.KeyRune:
		out.Key = terminal.KeyRune
		out.Rune = e.Rune()
	case tcell.KeyEscape:
		out.Key = terminal.KeyEscape
	case tcell.KeyEnter:
		out.Key = terminal.KeyEnter
	case tcell.KeyTab:
		out.Key = terminal.KeyTab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		out.Key = terminal.KeyBackspace
	case tcell.KeyUp:
		out.Key = terminal.KeyUp
	case tcell.KeyDown:
		out.Key = terminal.KeyDown
	case tcell.KeyLeft:
		out.Key = terminal.KeyLeft
	case tcell.KeyRight:
		out.Key = terminal.KeyRight
	case tcell.KeyCtrlC:
		out.Key = terminal.KeyCtrlC
	default:
		return out, false
	}

	if e.Modifiers()&tcell.ModAlt != 0 {
		out.Modifiers |= terminal.ModAlt
	}
	if e.Modifiers()&tcell.ModCtrl != 0 {
		out.Modifiers |= terminal.ModCtrl
	}
	if e.Modifiers()&tcell.ModShift != 0 {
		out.Modifiers |= terminal.ModShift
	}
	return out, true
}

// convertMouse synthesizes press/release/move/drag transitions from
// tcell's button mask snapshots
func (t *TcellTarget) convertMouse(e *tcell.EventMouse) terminal.Event {
	x, y := e.Position()
	buttons := e.Buttons() &^ tcell.ButtonNone

	out := terminal.Event{Type: terminal.EventMouse, MouseX: x, MouseY: y}

	pressed := buttons & (tcell.Button1 | tcell.Button2 | tcell.Button3)
	wasPressed := t.lastButtons & (tcell.Button1 | tcell.Button2 | tcell.Button3)
	t.lastButtons = buttons

	switch {
	case buttons&tcell.WheelUp != 0:
		out.MouseBtn = terminal.MouseBtnWheelUp
		out.MouseAction = terminal.MouseActionPress
	case buttons&tcell.WheelDown != 0:
		out.MouseBtn = terminal.MouseBtnWheelDown
		out.MouseAction = terminal.MouseActionPress
	case pressed != 0 && wasPressed == 0:
		out.MouseBtn = buttonFor(pressed)
		out.MouseAction = terminal.MouseActionPress
	case pressed == 0 && wasPressed != 0:
		out.MouseBtn = terminal.MouseBtnNone
		out.MouseAction = terminal.MouseActionRelease
	case pressed != 0:
		out.MouseBtn = buttonFor(pressed)
		out.MouseAction = terminal.MouseActionDrag
	default:
		out.MouseBtn = terminal.MouseBtnNone
		out.MouseAction = terminal.MouseActionMove
	}
	return out
}

func buttonFor(buttons tcell.ButtonMask) terminal.MouseButton {
	switch {
	case buttons&tcell.Button1 != 0:
		return terminal.MouseBtnLeft
	case buttons&tcell.Button2 != 0:
		return terminal.MouseBtnMiddle
	case buttons&tcell.Button3 != 0:
		return terminal.MouseBtnRight
	}
	return terminal.MouseBtnNone
}

// TcellRenderer synchronizes the screen with the grid under the same
// renderer-owned shadow contract as the text renderer: only changed
// cells reach SetContent, Show runs once per frame.
type TcellRenderer struct {
	target *TcellTarget

	defStyle tcell.Style

	shadow     []buffer.Cell
	cols, rows int
}

// NewTcellRenderer creates a renderer over the tcell target
func NewTcellRenderer(t *TcellTarget, s engine.Settings) *TcellRenderer {
	style := tcell.StyleDefault
	if s.Color.Set {
		style = style.Foreground(tcell.NewRGBColor(int32(s.Color.R), int32(s.Color.G), int32(s.Color.B)))
	}
	if s.Background.Set {
		style = style.Background(tcell.NewRGBColor(int32(s.Background.R), int32(s.Background.G), int32(s.Background.B)))
	}
	return &TcellRenderer{target: t, defStyle: style}
}

// Kind returns the tcell target kind
func (r *TcellRenderer) Kind() engine.TargetKind { return engine.TargetTcell }

// Render diffs against the shadow and pushes changed cells
func (r *TcellRenderer) Render(ctx engine.Context, g *buffer.Grid) error {
	screen := r.target.screen
	cols, rows := g.Size()

	if cols != r.cols || rows != r.rows {
		r.resizeShadow(cols, rows)
		screen.Clear()
	}

	cells := g.Cells()
	for i, c := range cells {
		if r.shadow[i] == c {
			continue
		}
		r.shadow[i] = c

		x, y := i%cols, i/cols
		if c.Char == 0 {
			// Continuation cell of a wide glyph; tcell manages the
			// spillover itself
			continue
		}
		screen.SetContent(x, y, c.Char, nil, r.styleFor(c))
	}

	screen.Show()
	return nil
}

func (r *TcellRenderer) styleFor(c buffer.Cell) tcell.Style {
	style := r.defStyle
	if c.Fg.Set {
		style = style.Foreground(tcell.NewRGBColor(int32(c.Fg.R), int32(c.Fg.G), int32(c.Fg.B)))
	}
	if c.Bg.Set {
		style = style.Background(tcell.NewRGBColor(int32(c.Bg.R), int32(c.Bg.G), int32(c.Bg.B)))
	}
	switch c.Weight {
	case buffer.WeightBold:
		style = style.Bold(true)
	case buffer.WeightDim:
		style = style.Dim(true)
	}
	return style
}

func (r *TcellRenderer) resizeShadow(cols, rows int) {
	size := cols * rows
	if cap(r.shadow) >= size {
		r.shadow = r.shadow[:size]
	} else {
		r.shadow = make([]buffer.Cell, size)
	}
	for i := range r.shadow {
		r.shadow[i] = buffer.Cell{Char: 0, Weight: ^buffer.Weight(0)}
	}
	r.cols = cols
	r.rows = rows
}
