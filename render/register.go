package render

import (
	"fmt"

	"github.com/lixenwraith/runic/engine"
	"github.com/lixenwraith/runic/terminal"
)

// Renderer registration. Importing this package makes the three
// built-in backends available by name; the runner resolves the pairing
// and enforces the kind match.
func init() {
	engine.Register("text", engine.TargetTerminal, newTextRenderer, newTerminalTarget)
	engine.Register("canvas", engine.TargetCanvas, newCanvasRenderer, newCanvasTarget)
	engine.Register("tcell", engine.TargetTcell, newTcellRendererFor, newTcellTargetFor)
}

func newTerminalTarget(s engine.Settings) (engine.Target, error) {
	term := terminal.New()
	if err := term.Init(); err != nil {
		return nil, fmt.Errorf("render: terminal init: %w", err)
	}
	return NewTerminalTarget(term, s), nil
}

func newTextRenderer(t engine.Target, s engine.Settings) (engine.Renderer, error) {
	sink, ok := t.(FrameSink)
	if !ok {
		return nil, fmt.Errorf("render: target %T does not accept composed frames", t)
	}
	return NewTextRenderer(sink, s), nil
}

func newCanvasTarget(s engine.Settings) (engine.Target, error) {
	return NewCanvasTarget(s, 1), nil
}

func newCanvasRenderer(t engine.Target, s engine.Settings) (engine.Renderer, error) {
	ct, ok := t.(*CanvasTarget)
	if !ok {
		return nil, fmt.Errorf("render: target %T is not a canvas", t)
	}
	return NewCanvasRenderer(ct, s), nil
}

func newTcellTargetFor(s engine.Settings) (engine.Target, error) {
	return NewTcellTarget(s)
}

func newTcellRendererFor(t engine.Target, s engine.Settings) (engine.Renderer, error) {
	tt, ok := t.(*TcellTarget)
	if !ok {
		return nil, fmt.Errorf("render: target %T is not a tcell screen", t)
	}
	return NewTcellRenderer(tt, s), nil
}
