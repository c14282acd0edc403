package demo

import (
	"testing"

	"github.com/lixenwraith/runic/buffer"
	"github.com/lixenwraith/runic/engine"
)

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		p, ok := Lookup(name)
		if !ok || p == nil {
			t.Errorf("Lookup(%q) = %v, %v", name, p, ok)
		}
	}
	if _, ok := Lookup("no-such-demo"); ok {
		t.Error("Lookup of unknown name succeeded")
	}
}

func runCell(p engine.Program, x, y int, ctx engine.Context) buffer.Patch {
	return p.Main(buffer.Coord{X: x, Y: y}, ctx, engine.Cursor{}, nil, nil)
}

func TestPlasmaProducesStyledGlyphs(t *testing.T) {
	p := Plasma()
	ctx := engine.Context{Time: 1500, Cols: 40, Rows: 20}

	patch := runCell(p, 10, 5, ctx)
	if patch.IsZero() {
		t.Fatal("plasma emitted a zero patch for an in-field cell")
	}
	if !patch.Fg.Set {
		t.Error("plasma patch has no foreground color")
	}
}

func TestFizzleCycleExtremes(t *testing.T) {
	p := Fizzle()

	// Cycle start: no progress, every cell empty
	empty := engine.Context{Time: 0, Cols: 10, Rows: 10}
	for x := 0; x < 10; x++ {
		if got := runCell(p, x, 3, empty); got.Char != buffer.EmptyChar {
			t.Fatalf("cell (%d,3) = %q at cycle start, want empty", x, got.Char)
		}
	}

	// Mid-cycle: full progress, every cell filled
	full := engine.Context{Time: 4000, Cols: 10, Rows: 10}
	for x := 0; x < 10; x++ {
		if got := runCell(p, x, 3, full); got.Char != '█' {
			t.Fatalf("cell (%d,3) = %q at full progress, want filled", x, got.Char)
		}
	}
}

func TestFizzleThresholdStable(t *testing.T) {
	if cellHash(7, 3) != cellHash(7, 3) {
		t.Error("cell threshold is not stable across calls")
	}
	if cellHash(7, 3) == cellHash(3, 7) {
		t.Error("transposed coordinates share a threshold")
	}
}

func TestDonutRingShape(t *testing.T) {
	p := Donut()
	ctx := engine.Context{
		Time: 0, Cols: 41, Rows: 21,
		Metrics: engine.NewMetrics(8, 16, "monospace", 12),
	}

	// The exact grid center is inside the hole
	if got := runCell(p, 20, 10, ctx); got.Char != buffer.EmptyChar {
		t.Errorf("center cell = %q, want hole", got.Char)
	}

	// A cell at the ring radius is part of the donut
	if got := runCell(p, 20, 2, ctx); got.Char == buffer.EmptyChar && !got.IsZero() {
		t.Errorf("ring cell is empty, want donut body")
	}
}
