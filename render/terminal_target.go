// Package render implements the output backends: a diff-based ANSI
// text renderer, a full-repaint pixel canvas renderer, and a tcell
// fallback. All three register with the engine renderer registry at
// init.
package render

import (
	"github.com/lixenwraith/runic/core"
	"github.com/lixenwraith/runic/engine"
	"github.com/lixenwraith/runic/terminal"
)

// monoAspect approximates the width/height ratio of monospace glyphs;
// terminal cells cannot be measured, only synthesized
const monoAspect = 0.6

// TerminalTarget adapts the raw ANSI terminal host to the engine
// target contract
type TerminalTarget struct {
	term    terminal.Terminal
	metrics engine.Metrics
}

// NewTerminalTarget wraps an initialized terminal. Metrics are
// synthesized from the configured font size since a terminal exposes
// no pixel measurements.
func NewTerminalTarget(term terminal.Terminal, s engine.Settings) *TerminalTarget {
	cellW := s.FontSize*monoAspect + s.LetterSpacing
	lineH := s.FontSize * s.LineHeight
	core.RegisterCrashTerminal(term)
	return &TerminalTarget{
		term:    term,
		metrics: engine.NewMetrics(cellW, lineH, s.FontFamily, s.FontSize),
	}
}

// Kind returns the terminal target kind
func (t *TerminalTarget) Kind() engine.TargetKind { return engine.TargetTerminal }

// Size returns the terminal dimensions in cells
func (t *TerminalTarget) Size() (cols, rows int) { return t.term.Size() }

// Metrics returns the synthesized cell metrics
func (t *TerminalTarget) Metrics() engine.Metrics { return t.metrics }

// Events returns the terminal's unified input channel
func (t *TerminalTarget) Events() <-chan terminal.Event { return t.term.Events() }

// Close restores the terminal
func (t *TerminalTarget) Close() error {
	core.RegisterCrashTerminal(nil)
	t.term.Fini()
	return nil
}

// SetMouseMode forwards mouse reporting control to the terminal
func (t *TerminalTarget) SetMouseMode(mode terminal.MouseMode) error {
	return t.term.SetMouseMode(mode)
}

// WriteFrame forwards a composed frame to the terminal
func (t *TerminalTarget) WriteFrame(frame []byte) (int, error) {
	return t.term.WriteFrame(frame)
}

// ColorMode returns the detected color capability
func (t *TerminalTarget) ColorMode() terminal.ColorMode {
	return t.term.ColorMode()
}
