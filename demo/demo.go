// Package demo holds the built-in showcase programs shared by the
// runnable commands. Each program is a pure per-cell function driven
// by frame time, so the same program runs on any registered renderer.
package demo

import (
	"math"
	"sort"

	"github.com/lixenwraith/runic/buffer"
	"github.com/lixenwraith/runic/engine"
	"github.com/lixenwraith/runic/sdf"
	"github.com/lixenwraith/runic/vmath"
)

var builtins = map[string]func() engine.Program{
	"plasma": Plasma,
	"fizzle": Fizzle,
	"donut":  Donut,
}

// Lookup returns a named built-in program
func Lookup(name string) (engine.Program, bool) {
	f, ok := builtins[name]
	if !ok {
		return nil, false
	}
	return f(), true
}

// Names lists the built-in program names, sorted
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var intensityRamp = []rune(" .:-=+*#%@")

func rampGlyph(i float64) rune {
	idx := int(vmath.Clamp(i, 0, 1) * float64(len(intensityRamp)-1))
	return intensityRamp[idx]
}

// Plasma is the classic summed-sine interference field, colored by a
// two-stop gradient
func Plasma() engine.Program {
	cold := buffer.RGB(20, 40, 120)
	hot := buffer.RGB(255, 140, 40)

	return engine.MainFunc(func(pos buffer.Coord, ctx engine.Context, cur engine.Cursor, g *buffer.Grid, vars any) buffer.Patch {
		if ctx.Cols == 0 || ctx.Rows == 0 {
			return buffer.Patch{}
		}
		t := ctx.Time / 1000
		x := float64(pos.X) / float64(ctx.Cols)
		y := float64(pos.Y) / float64(ctx.Rows)

		v := math.Sin(x*10 + t)
		v += math.Sin((y*10 + t) / 2)
		v += math.Sin((x+y)*10 + t*0.7)
		v += math.Sin(math.Hypot(x-0.5, y-0.5)*20 - t*2)

		i := vmath.MapClamp(v, -4, 4, 0, 1)
		return buffer.Glyph(rampGlyph(i)).WithFg(cold.Lerp(hot, i))
	})
}

// Fizzle is a FizzleFade-style dissolve: every cell gets a stable
// pseudo-random threshold and fills once the cycling progress passes
// it, then the screen melts back
func Fizzle() engine.Program {
	fill := buffer.RGB(200, 30, 30)

	return engine.MainFunc(func(pos buffer.Coord, ctx engine.Context, cur engine.Cursor, g *buffer.Grid, vars any) buffer.Patch {
		cycle := vmath.Fract(ctx.Time / 8000)
		// Triangle wave: dissolve in for half the cycle, out for the rest
		progress := 1 - math.Abs(cycle*2-1)

		if cellHash(pos.X, pos.Y) < progress {
			return buffer.Glyph('█').WithFg(fill)
		}
		return buffer.Glyph(buffer.EmptyChar)
	})
}

// cellHash maps a coordinate to a stable value in [0, 1)
func cellHash(x, y int) float64 {
	h := uint32(x)*374761393 + uint32(y)*668265263
	h = (h ^ (h >> 13)) * 1274126177
	h ^= h >> 16
	return float64(h) / float64(math.MaxUint32)
}

// Donut is a spinning annulus built from two circle fields, shaded by
// a rotating highlight. Cell aspect correction keeps it round on
// terminal surfaces.
func Donut() engine.Program {
	base := buffer.RGB(90, 60, 30)
	glaze := buffer.RGB(250, 180, 90)

	return engine.MainFunc(func(pos buffer.Coord, ctx engine.Context, cur engine.Cursor, g *buffer.Grid, vars any) buffer.Patch {
		if ctx.Cols == 0 || ctx.Rows == 0 {
			return buffer.Patch{}
		}
		aspect := ctx.Metrics.Aspect
		if aspect <= 0 {
			aspect = 0.5
		}

		p := vmath.V2(
			(float64(pos.X)-float64(ctx.Cols-1)/2)*aspect,
			float64(pos.Y)-float64(ctx.Rows-1)/2,
		)

		outer := math.Min(float64(ctx.Cols)*aspect, float64(ctx.Rows)) * 0.45
		d := sdf.Subtract(sdf.Circle(p, outer*0.45), sdf.Circle(p, outer))
		if d >= 0 {
			return buffer.Glyph(buffer.EmptyChar)
		}

		t := ctx.Time / 1000
		ang := math.Atan2(p.Y, p.X)
		bright := 0.5 + 0.5*math.Cos(ang-t*2)
		// Soften toward both edges of the ring
		edge := vmath.Smoothstep(0, outer*0.12, -d)
		i := bright * edge

		return buffer.Glyph(rampGlyph(i)).WithFg(base.Lerp(glaze, i))
	})
}
