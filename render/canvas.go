package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/lixenwraith/runic/buffer"
	"github.com/lixenwraith/runic/engine"
	"github.com/lixenwraith/runic/status"
	"github.com/lixenwraith/runic/terminal"
)

// Canvas surface defaults when settings leave dimensions on auto
const (
	defaultCanvasCols = 80
	defaultCanvasRows = 24
)

// CanvasTarget is an off-screen pixel surface: an RGBA image sized to
// the grid, rasterized with a measured monospace face. No input; the
// event channel is nil.
type CanvasTarget struct {
	cols, rows int
	scale      float64

	face     font.Face
	boldFace font.Face
	ascent   float64

	cellW, lineH float64
	metrics      engine.Metrics

	img *image.RGBA
}

// NewCanvasTarget creates a canvas sized cols×rows cells at the given
// pixel scale (device pixel ratio or export scale; values <= 0 mean
// 1). Font loading failure falls back to the basic bitmap face with a
// reported warning, never an error.
func NewCanvasTarget(s engine.Settings, scale float64) *CanvasTarget {
	cols, rows := s.Cols, s.Rows
	if cols <= 0 {
		cols = defaultCanvasCols
	}
	if rows <= 0 {
		rows = defaultCanvasRows
	}
	if scale <= 0 {
		scale = 1
	}

	t := &CanvasTarget{cols: cols, rows: rows, scale: scale}
	t.loadFaces(s.FontSize * scale)

	t.cellW = t.measureAdvance('M') + s.LetterSpacing*scale
	fm := t.face.Metrics()
	t.lineH = f26ToFloat(fm.Ascent+fm.Descent) * s.LineHeight
	t.ascent = f26ToFloat(fm.Ascent)

	t.metrics = engine.NewMetrics(t.cellW, t.lineH, "Go Mono", s.FontSize)
	t.resize()
	return t
}

// loadFaces parses the embedded Go Mono faces; on failure the basic
// bitmap face stands in and the condition is recorded as a warning
func (t *CanvasTarget) loadFaces(size float64) {
	regular, err := loadFace(gomono.TTF, size)
	if err != nil {
		status.TextGauge(status.KeyLastWarning).Store(fmt.Sprintf("canvas: font load failed: %v", err))
		t.face = basicfont.Face7x13
		t.boldFace = basicfont.Face7x13
		return
	}
	t.face = regular

	if bold, err := loadFace(gomonobold.TTF, size); err == nil {
		t.boldFace = bold
	} else {
		t.boldFace = regular
	}
}

func loadFace(ttf []byte, size float64) (font.Face, error) {
	parsed, err := opentype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

func (t *CanvasTarget) measureAdvance(r rune) float64 {
	adv, ok := t.face.GlyphAdvance(r)
	if !ok {
		adv, _ = t.face.GlyphAdvance(' ')
	}
	return f26ToFloat(adv)
}

func (t *CanvasTarget) resize() {
	w := int(math.Ceil(float64(t.cols) * t.cellW))
	h := int(math.Ceil(float64(t.rows) * t.lineH))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	t.img = image.NewRGBA(image.Rect(0, 0, w, h))
}

// Kind returns the canvas target kind
func (t *CanvasTarget) Kind() engine.TargetKind { return engine.TargetCanvas }

// Size returns the grid dimensions in cells
func (t *CanvasTarget) Size() (cols, rows int) { return t.cols, t.rows }

// Metrics returns the measured cell metrics
func (t *CanvasTarget) Metrics() engine.Metrics { return t.metrics }

// Events returns nil; a canvas has no input
func (t *CanvasTarget) Events() <-chan terminal.Event { return nil }

// Close releases the font faces
func (t *CanvasTarget) Close() error {
	if c, ok := t.face.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// Image exposes the backing surface for export
func (t *CanvasTarget) Image() *image.RGBA { return t.img }

// setGrid resizes the backing surface when the grid dimensions change
func (t *CanvasTarget) setGrid(cols, rows int) {
	if cols == t.cols && rows == t.rows {
		return
	}
	t.cols, t.rows = cols, rows
	t.resize()
}

// CanvasRenderer rasterizes the full grid every frame. A pixel
// surface has no cheap partial-update primitive, so there is no
// diffing here.
type CanvasRenderer struct {
	target *CanvasTarget

	defFg     color.RGBA
	defBg     color.RGBA
	defWeight buffer.Weight
	center    bool
}

// NewCanvasRenderer creates a renderer over the canvas target.
// Unset settings colors default to black glyphs on a white surface,
// the readable choice for exported images.
func NewCanvasRenderer(t *CanvasTarget, s engine.Settings) *CanvasRenderer {
	fg := color.RGBA{A: 255}
	if s.Color.Set {
		fg = color.RGBA{R: s.Color.R, G: s.Color.G, B: s.Color.B, A: 255}
	}
	bg := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if s.Background.Set {
		bg = color.RGBA{R: s.Background.R, G: s.Background.G, B: s.Background.B, A: 255}
	}
	return &CanvasRenderer{
		target:    t,
		defFg:     fg,
		defBg:     bg,
		defWeight: s.Weight,
		center:    s.Align == engine.AlignCenter,
	}
}

// Kind returns the canvas target kind
func (r *CanvasRenderer) Kind() engine.TargetKind { return engine.TargetCanvas }

// Render repaints the whole surface: background fill, then per cell a
// background rectangle when it differs from the default, then the
// glyph at a top-aligned baseline. Default mode places cell x at
// col×CellWidth, bit-compatible with the text renderer's block
// layout; center mode measures per-glyph advances and offsets the
// whole row.
func (r *CanvasRenderer) Render(ctx engine.Context, g *buffer.Grid) error {
	t := r.target
	cols, rows := g.Size()
	t.setGrid(cols, rows)

	draw.Draw(t.img, t.img.Bounds(), image.NewUniform(r.defBg), image.Point{}, draw.Src)

	for y := 0; y < rows; y++ {
		if r.center {
			r.drawRowCentered(g, y)
		} else {
			r.drawRow(g, y)
		}
	}
	return nil
}

func (r *CanvasRenderer) drawRow(g *buffer.Grid, y int) {
	t := r.target
	cols, _ := g.Size()
	top := float64(y) * t.lineH

	for x := 0; x < cols; x++ {
		c := g.Get(x, y)
		if c.Char == 0 {
			continue
		}
		left := float64(x) * t.cellW
		r.drawCell(c, left, top, t.cellW)
	}
}

// drawRowCentered measures every glyph first, then draws with
// accumulated per-glyph offsets from the centering origin
func (r *CanvasRenderer) drawRowCentered(g *buffer.Grid, y int) {
	t := r.target
	cols, _ := g.Size()
	top := float64(y) * t.lineH

	advances := make([]float64, cols)
	total := 0.0
	for x := 0; x < cols; x++ {
		c := g.Get(x, y)
		if c.Char == 0 {
			continue
		}
		advances[x] = t.measureAdvance(c.Char)
		total += advances[x]
	}

	left := (float64(t.img.Bounds().Dx()) - total) / 2
	for x := 0; x < cols; x++ {
		c := g.Get(x, y)
		if c.Char == 0 {
			continue
		}
		r.drawCell(c, left, top, advances[x])
		left += advances[x]
	}
}

func (r *CanvasRenderer) drawCell(c buffer.Cell, left, top, width float64) {
	t := r.target

	if c.Bg.Set {
		bg := color.RGBA{R: c.Bg.R, G: c.Bg.G, B: c.Bg.B, A: 255}
		if bg != r.defBg {
			rect := image.Rect(
				int(math.Floor(left)), int(math.Floor(top)),
				int(math.Ceil(left+width)), int(math.Ceil(top+t.lineH)),
			)
			draw.Draw(t.img, rect, image.NewUniform(bg), image.Point{}, draw.Src)
		}
	}

	if c.Char == buffer.EmptyChar {
		return
	}

	fg := r.defFg
	if c.Fg.Set {
		fg = color.RGBA{R: c.Fg.R, G: c.Fg.G, B: c.Fg.B, A: 255}
	}

	weight := c.Weight
	if weight == buffer.WeightDefault {
		weight = r.defWeight
	}
	face := t.face
	switch weight {
	case buffer.WeightBold:
		face = t.boldFace
	case buffer.WeightDim:
		fg = dimColor(fg, r.defBg)
	}

	d := font.Drawer{
		Dst:  t.img,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot: fixed.Point26_6{
			X: floatToF26(left),
			Y: floatToF26(top + t.ascent),
		},
	}
	d.DrawString(string(c.Char))
}

// dimColor halves the glyph color toward the surface background
func dimColor(fg, bg color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8((int(fg.R) + int(bg.R)) / 2),
		G: uint8((int(fg.G) + int(bg.G)) / 2),
		B: uint8((int(fg.B) + int(bg.B)) / 2),
		A: 255,
	}
}

func f26ToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func floatToF26(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
