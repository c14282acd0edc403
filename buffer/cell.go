// Package buffer models the character grid: styled cells, typed partial
// updates with a pure merge, and bounds-safe row-major storage.
package buffer

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an optional 8-bit RGB value
// The zero value is "unset": the cell inherits the surface default
type Color struct {
	R, G, B uint8
	Set     bool
}

// RGB constructs a set Color from 8-bit channels
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Set: true}
}

// Hex parses a "#rrggbb" or "#rgb" string
// Returns the unset Color on parse failure
func Hex(s string) Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b, Set: true}
}

// Lerp blends toward o by t in RGB space
// Unset endpoints short-circuit to the other color
func (c Color) Lerp(o Color, t float64) Color {
	if !c.Set {
		return o
	}
	if !o.Set {
		return c
	}
	a := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	b := colorful.Color{R: float64(o.R) / 255, G: float64(o.G) / 255, B: float64(o.B) / 255}
	r8, g8, b8 := a.BlendRgb(b, t).Clamped().RGB255()
	return Color{R: r8, G: g8, B: b8, Set: true}
}

// Weight selects the glyph rendering weight
type Weight uint8

const (
	// WeightDefault inherits the settings default
	WeightDefault Weight = iota
	WeightNormal
	WeightBold
	WeightDim
)

// EmptyChar is the glyph of an empty cell
const EmptyChar = ' '

// Cell is one grid position: a glyph plus optional visual style
// Comparable; frame diffing relies on == equality
type Cell struct {
	Char   rune
	Fg     Color
	Bg     Color
	Weight Weight

	// Raw carries literal markup the text renderer splices immediately
	// before the glyph (hyperlink escapes and similar)
	Raw string
}

// Empty returns the default empty cell
func Empty() Cell {
	return Cell{Char: EmptyChar}
}

// Field selects which Patch fields are present
type Field uint8

const (
	FieldChar Field = 1 << iota
	FieldFg
	FieldBg
	FieldWeight
	FieldRaw
)

// Patch is a typed partial cell update. Fields marks which values are
// present; absent fields leave the target cell untouched under Merge.
// The zero Patch carries nothing and stands for the "no output" case:
// the runner coerces it to a bare empty glyph.
type Patch struct {
	Char   rune
	Fg     Color
	Bg     Color
	Weight Weight
	Raw    string
	Fields Field
}

// Glyph builds a char-only patch
func Glyph(r rune) Patch {
	return Patch{Char: r, Fields: FieldChar}
}

// Styled builds a full visual patch without touching the glyph
func Styled(fg, bg Color, w Weight) Patch {
	return Patch{Fg: fg, Bg: bg, Weight: w, Fields: FieldFg | FieldBg | FieldWeight}
}

// WithChar returns p with the glyph set
func (p Patch) WithChar(r rune) Patch {
	p.Char = r
	p.Fields |= FieldChar
	return p
}

// WithFg returns p with the foreground set
func (p Patch) WithFg(c Color) Patch {
	p.Fg = c
	p.Fields |= FieldFg
	return p
}

// WithBg returns p with the background set
func (p Patch) WithBg(c Color) Patch {
	p.Bg = c
	p.Fields |= FieldBg
	return p
}

// WithWeight returns p with the weight set
func (p Patch) WithWeight(w Weight) Patch {
	p.Weight = w
	p.Fields |= FieldWeight
	return p
}

// WithRaw returns p with spliced raw markup set
func (p Patch) WithRaw(raw string) Patch {
	p.Raw = raw
	p.Fields |= FieldRaw
	return p
}

// IsZero reports whether the patch carries no fields
func (p Patch) IsZero() bool {
	return p.Fields == 0
}

// Merge applies the present fields of p onto c and returns the new cell
// Pure: neither input is mutated, so merging twice equals merging once.
// NUL glyphs normalize to the empty glyph; no target renders them
func Merge(c Cell, p Patch) Cell {
	if p.Fields&FieldChar != 0 {
		if p.Char == 0 {
			c.Char = EmptyChar
		} else {
			c.Char = p.Char
		}
	}
	if p.Fields&FieldFg != 0 {
		c.Fg = p.Fg
	}
	if p.Fields&FieldBg != 0 {
		c.Bg = p.Bg
	}
	if p.Fields&FieldWeight != 0 {
		c.Weight = p.Weight
	}
	if p.Fields&FieldRaw != 0 {
		c.Raw = p.Raw
	}
	return c
}
