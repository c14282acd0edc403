// Package textwrap provides display-width-aware word wrapping and
// measurement for grid text. Pure functions, no grid dependency.
package textwrap

import (
	"strings"

	"github.com/clipperhouse/uax29/v2/words"
	"github.com/mattn/go-runewidth"
)

// Result describes wrapped text
type Result struct {
	Text     string
	Lines    int
	MaxWidth int
}

// Wrap breaks text into lines no wider than width display columns.
// Word boundaries follow UAX #29 segmentation; widths are display
// columns, so CJK and other wide glyphs count as two. Existing
// newlines are preserved as hard breaks, trailing spaces are trimmed
// from emitted lines, and words wider than the limit are broken at
// the column boundary. A width of zero or less measures without
// reflowing.
func Wrap(text string, width int) Result {
	if width <= 0 {
		return measure(text)
	}

	var out []string
	for _, line := range strings.Split(text, "\n") {
		out = append(out, wrapLine(line, width)...)
	}

	res := Result{Text: strings.Join(out, "\n"), Lines: len(out)}
	for _, l := range out {
		if w := runewidth.StringWidth(l); w > res.MaxWidth {
			res.MaxWidth = w
		}
	}
	return res
}

// Width returns the widest line of text in display columns
func Width(text string) int {
	maxw := 0
	for _, line := range strings.Split(text, "\n") {
		if w := runewidth.StringWidth(line); w > maxw {
			maxw = w
		}
	}
	return maxw
}

func measure(text string) Result {
	lines := strings.Split(text, "\n")
	res := Result{Text: text, Lines: len(lines)}
	for _, l := range lines {
		if w := runewidth.StringWidth(l); w > res.MaxWidth {
			res.MaxWidth = w
		}
	}
	return res
}

func wrapLine(line string, width int) []string {
	if line == "" {
		return []string{""}
	}

	var lines []string
	var cur strings.Builder
	curWidth := 0

	flush := func() {
		lines = append(lines, strings.TrimRight(cur.String(), " "))
		cur.Reset()
		curWidth = 0
	}

	tokens := words.FromString(line)
	for tokens.Next() {
		tok := tokens.Value()
		w := runewidth.StringWidth(tok)

		if curWidth+w > width && curWidth > 0 {
			flush()
			if strings.TrimSpace(tok) == "" {
				continue // the break point swallows its whitespace
			}
		}

		if w > width {
			// Token wider than the limit, break at column boundaries
			for _, r := range tok {
				rw := runewidth.RuneWidth(r)
				if curWidth+rw > width && curWidth > 0 {
					flush()
				}
				cur.WriteRune(r)
				curWidth += rw
			}
			continue
		}

		cur.WriteString(tok)
		curWidth += w
	}

	if cur.Len() > 0 || len(lines) == 0 {
		flush()
	}
	return lines
}
