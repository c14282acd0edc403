package engine

// Metrics describes the pixel dimensions of one grid cell, derived
// from the target's font. Terminal targets synthesize these from the
// configured font size; canvas targets measure the loaded face.
type Metrics struct {
	CellWidth  float64
	LineHeight float64
	Aspect     float64 // CellWidth / LineHeight
	FontFamily string
	FontSize   float64
}

// NewMetrics builds Metrics with the aspect ratio filled in
func NewMetrics(cellWidth, lineHeight float64, fontFamily string, fontSize float64) Metrics {
	aspect := 1.0
	if lineHeight > 0 {
		aspect = cellWidth / lineHeight
	}
	return Metrics{
		CellWidth:  cellWidth,
		LineHeight: lineHeight,
		Aspect:     aspect,
		FontFamily: fontFamily,
		FontSize:   fontSize,
	}
}

// PrevCursor is the previous frame's pointer snapshot. A distinct type
// with no Prev field of its own, so history deeper than one frame is
// unrepresentable.
type PrevCursor struct {
	X, Y    float64
	Pressed bool
}

// Cursor is the pointer state sampled at the start of an accepted
// frame. X and Y are fractional grid coordinates clamped to the last
// valid column and row.
type Cursor struct {
	X, Y    float64
	Pressed bool
	Prev    PrevCursor
}

// snapshot captures the current values as the next frame's Prev
func (c Cursor) snapshot() PrevCursor {
	return PrevCursor{X: c.X, Y: c.Y, Pressed: c.Pressed}
}

// Context is the read-only per-frame composite passed to every hook.
// Passed by value: hooks cannot mutate runner state through it.
type Context struct {
	// Time is elapsed milliseconds since boot plus any restored offset
	Time float64

	// Frame increments once per accepted tick
	Frame int64

	// Cycle increments once per process start when state restoration
	// is enabled; a change across persisted runs signals a reload
	Cycle int64

	Cols, Rows int
	Metrics    Metrics

	// FPS is the observed frame rate, not the configured target
	FPS float64

	Settings Settings
}
