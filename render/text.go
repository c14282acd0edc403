package render

import (
	"bytes"
	"sync/atomic"

	"github.com/lixenwraith/runic/buffer"
	"github.com/lixenwraith/runic/engine"
	"github.com/lixenwraith/runic/status"
	"github.com/lixenwraith/runic/terminal"
)

// FrameSink receives composed ANSI frames. Satisfied by
// TerminalTarget; tests substitute a byte-capturing fake.
type FrameSink interface {
	WriteFrame(frame []byte) (int, error)
	ColorMode() terminal.ColorMode
}

// RenderStats counts the text renderer's work since creation
type RenderStats struct {
	Frames         int64
	RowsScanned    int64
	RowsRewritten  int64
	CellsRewritten int64
	BytesWritten   int64
}

// TextRenderer synchronizes a terminal with the cell grid using a
// renderer-owned shadow buffer as the diff baseline. Rows that match
// the shadow cost one comparison pass and zero writes; changed rows
// are rebuilt in full with minimal SGR transitions.
//
// The shadow lives on the renderer, not in package state, so multiple
// independent grids never cross-talk.
type TextRenderer struct {
	sink FrameSink

	defFg     buffer.Color
	defBg     buffer.Color
	defWeight buffer.Weight

	shadow     []buffer.Cell
	cols, rows int

	frame bytes.Buffer
	sw    *terminal.StyleWriter

	stats RenderStats

	statRows  *atomic.Int64
	statCells *atomic.Int64
	statBytes *status.Float
}

// NewTextRenderer creates a text renderer writing to sink. Settings
// supply the surface default style; cells with unset fields render as
// the default and emit no SGR parameters for it.
func NewTextRenderer(sink FrameSink, s engine.Settings) *TextRenderer {
	return &TextRenderer{
		sink:      sink,
		defFg:     s.Color,
		defBg:     s.Background,
		defWeight: s.Weight,
		sw:        terminal.NewStyleWriter(sink.ColorMode()),
		statRows:  status.Int(status.KeyRowsRewritten),
		statCells: status.Int(status.KeyCellsChanged),
		statBytes: status.FloatGauge(status.KeyBytesWritten),
	}
}

// Kind returns the terminal target kind
func (r *TextRenderer) Kind() engine.TargetKind { return engine.TargetTerminal }

// Stats returns cumulative work counters
func (r *TextRenderer) Stats() RenderStats { return r.stats }

// Render diffs the grid against the shadow and writes one composed
// frame. A dimension change clears the shadow and forces a full
// repaint behind a screen clear.
func (r *TextRenderer) Render(ctx engine.Context, g *buffer.Grid) error {
	cols, rows := g.Size()
	r.frame.Reset()

	full := false
	if cols != r.cols || rows != r.rows {
		r.resizeShadow(cols, rows)
		r.frame.Write(terminal.SeqSGRReset)
		r.frame.Write(terminal.SeqClear)
		r.sw.Reset()
		full = true
	}

	r.stats.Frames++
	if cols == 0 || rows == 0 {
		return r.commit()
	}

	cells := g.Cells()
	for y := 0; y < rows; y++ {
		r.stats.RowsScanned++

		row := cells[y*cols : (y+1)*cols]
		shadow := r.shadow[y*cols : (y+1)*cols]

		if !full && rowEqual(row, shadow) {
			continue
		}

		r.writeRow(y, row)

		changed := int64(0)
		for x := range row {
			if shadow[x] != row[x] {
				shadow[x] = row[x]
				changed++
			}
		}
		r.stats.RowsRewritten++
		r.stats.CellsRewritten += changed
		r.statRows.Add(1)
		r.statCells.Add(changed)
	}

	return r.commit()
}

// commit flushes the composed frame, if any, in a single write
func (r *TextRenderer) commit() error {
	if r.frame.Len() == 0 {
		return nil
	}
	r.frame.Write(terminal.SeqSGRReset)
	r.sw.Reset()

	n, err := r.sink.WriteFrame(r.frame.Bytes())
	r.stats.BytesWritten += int64(n)
	r.statBytes.Add(float64(n))
	return err
}

// writeRow rebuilds one row: position once, then walk left to right
// opening a new styled run only when the effective style changes
func (r *TextRenderer) writeRow(y int, row []buffer.Cell) {
	terminal.AppendCursorPos(&r.frame, 0, y)

	for _, c := range row {
		// NUL marks the continuation cell of a wide glyph; the glyph
		// before it already advanced the cursor two columns
		if c.Char == 0 {
			continue
		}

		r.sw.WriteStyle(&r.frame, r.styleFor(c))

		if c.Raw != "" {
			r.frame.WriteString(c.Raw)
		}
		r.frame.WriteRune(c.Char)
	}
}

// styleFor resolves a cell's effective style against the surface
// defaults. Fields equal to the default stay unset so no SGR
// parameters are emitted for them.
func (r *TextRenderer) styleFor(c buffer.Cell) terminal.Style {
	fg := c.Fg
	if !fg.Set {
		fg = r.defFg
	}
	bg := c.Bg
	if !bg.Set {
		bg = r.defBg
	}
	w := c.Weight
	if w == buffer.WeightDefault {
		w = r.defWeight
	}

	var st terminal.Style
	if fg.Set {
		st.FgSet = true
		st.Fg = terminal.RGB{R: fg.R, G: fg.G, B: fg.B}
	}
	if bg.Set {
		st.BgSet = true
		st.Bg = terminal.RGB{R: bg.R, G: bg.G, B: bg.B}
	}
	switch w {
	case buffer.WeightBold:
		st.Attr |= terminal.AttrBold
	case buffer.WeightDim:
		st.Attr |= terminal.AttrDim
	}
	return st
}

// resizeShadow resets the shadow to an impossible cell state so every
// comparison fails and the next frame repaints fully
func (r *TextRenderer) resizeShadow(cols, rows int) {
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

// rowEqual compares a grid row against its shadow
func rowEqual(row, shadow []buffer.Cell) bool {
	for i := range row {
		if row[i] != shadow[i] {
			return false
		}
	}
	return true
}
