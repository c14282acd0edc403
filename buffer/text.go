package buffer

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// LineExtent brackets one line of inserted text by backing-slice index
// First/Last are -1 when the line produced no in-bounds cells
type LineExtent struct {
	First, Last int
}

// TextExtent reports where MergeText finished
// Col/Row is the coordinate of the last inserted glyph; Lines carries the
// first/last inserted cell per line, useful to splice raw markup around
// inserted runs (hyperlink escapes and similar)
type TextExtent struct {
	Col, Row int
	Lines    []LineExtent
}

// MergeText merges text into the grid starting at (x, y)
// Lines split on '\n'; each line advances y by one and restarts at x.
// Iteration is by grapheme cluster; a double-width cluster occupies two
// cells, with the continuation cell holding a NUL glyph that renderers
// skip. The style patch is applied to every inserted cell; its Char field,
// if any, is ignored. Out-of-bounds cells are dropped silently.
// No wrapping is applied; wrap long text beforehand (textwrap package)
func (g *Grid) MergeText(text string, x, y int, style Patch) TextExtent {
	ext := TextExtent{Col: x, Row: y}
	style.Fields &^= FieldChar

	lines := strings.Split(text, "\n")
	ext.Lines = make([]LineExtent, len(lines))

	for li, line := range lines {
		cy := y + li
		cx := x
		ext.Lines[li] = LineExtent{First: -1, Last: -1}

		gr := uniseg.NewGraphemes(line)
		for gr.Next() {
			cluster := gr.Str()
			w := runewidth.StringWidth(cluster)
			if w == 0 {
				continue
			}

			runes := gr.Runes()
			p := style.WithChar(runes[0])
			if g.In(cx, cy) {
				g.Merge(p, cx, cy)
				idx := cx + cy*g.cols
				if ext.Lines[li].First < 0 {
					ext.Lines[li].First = idx
				}
				ext.Lines[li].Last = idx
				ext.Col, ext.Row = cx, cy
			}

			if w == 2 {
				// Continuation cell: carry the style, glyph NUL
				if g.In(cx+1, cy) {
					cont := Merge(g.Get(cx+1, cy), style)
					cont.Char = 0
					g.Set(cont, cx+1, cy)
				}
			}
			cx += w
		}
	}
	return ext
}
