package engine

import (
	"github.com/lixenwraith/runic/buffer"
	"github.com/lixenwraith/runic/terminal"
)

// TargetKind classifies output surfaces. A renderer declares the kind
// it draws to; pairing a renderer with a target of another kind is a
// reported configuration mismatch, not a crash.
type TargetKind uint8

const (
	TargetTerminal TargetKind = iota
	TargetCanvas
	TargetTcell
)

// String returns a human-readable kind name
func (k TargetKind) String() string {
	switch k {
	case TargetCanvas:
		return "canvas"
	case TargetTcell:
		return "tcell"
	default:
		return "terminal"
	}
}

// Target is an output surface the runner drives. Implementations feed
// input through the unified terminal event channel; surfaces without
// input return a nil channel.
type Target interface {
	Kind() TargetKind

	// Size returns the surface dimensions in cells, used when settings
	// leave cols/rows on auto-fit
	Size() (cols, rows int)

	// Metrics returns the measured cell dimensions
	Metrics() Metrics

	// Events returns the input stream; may be nil
	Events() <-chan terminal.Event

	Close() error
}

// Renderer synchronizes a target with the frame's cell grid
type Renderer interface {
	// Kind is the target kind this renderer draws to
	Kind() TargetKind

	// Render commits the grid to the target. The grid is read-only for
	// the duration of the call.
	Render(ctx Context, g *buffer.Grid) error
}

// MouseModer is optionally implemented by targets that can toggle
// mouse reporting. The runner enables reporting at start unless the
// allow-select setting keeps native text selection working.
type MouseModer interface {
	SetMouseMode(mode terminal.MouseMode) error
}
