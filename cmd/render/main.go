// Command render rasterizes a built-in program offline through the
// canvas path: one frame to PNG, or a frame sequence to an animated
// GIF. Frame time is synthesized from the frame index, so output is
// reproducible.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/lixenwraith/runic/buffer"
	"github.com/lixenwraith/runic/demo"
	"github.com/lixenwraith/runic/engine"
	"github.com/lixenwraith/runic/export"
	"github.com/lixenwraith/runic/render"
)

func main() {
	var (
		program = flag.String("program", "plasma", "built-in program to render")
		out     = flag.String("o", "out.png", "output file; .png for a still, .gif for animation")
		frames  = flag.Int("frames", 1, "frame count (>1 implies .gif)")
		fps     = flag.Float64("fps", 30, "synthesized frame rate")
		cols    = flag.Int("cols", 80, "grid columns")
		rows    = flag.Int("rows", 24, "grid rows")
		scale   = flag.Float64("scale", 1, "pixel scale factor")
		config  = flag.String("config", "", "TOML settings file")
	)
	flag.Parse()

	settings := engine.Settings{}
	if *config != "" {
		s, err := engine.LoadSettings(*config)
		if err != nil {
			fail(err)
		}
		settings = s
	}
	settings.Renderer = "canvas"
	settings.Cols = *cols
	settings.Rows = *rows
	if *fps > 0 {
		settings.FPS = *fps
	}

	prog, ok := demo.Lookup(*program)
	if !ok {
		fail(fmt.Errorf("unknown program %q, have: %s", *program, strings.Join(demo.Names(), ", ")))
	}

	target := render.NewCanvasTarget(settings, *scale)
	renderer := render.NewCanvasRenderer(target, settings)
	grid := buffer.NewGrid(*cols, *rows)

	animated := *frames > 1 || strings.HasSuffix(*out, ".gif")
	var rec *export.GIFRecorder
	if animated {
		rec = export.NewGIFRecorder(settings.FPS)
	}

	for i := 0; i < *frames; i++ {
		ctx := engine.Context{
			Time:     float64(i) * 1000 / settings.FPS,
			Frame:    int64(i + 1),
			Cols:     *cols,
			Rows:     *rows,
			Metrics:  target.Metrics(),
			FPS:      settings.FPS,
			Settings: settings,
		}

		for idx := 0; idx < grid.Len(); idx++ {
			pos := grid.CoordOf(idx)
			p := prog.Main(pos, ctx, engine.Cursor{}, grid, nil)
			if p.IsZero() {
				p = buffer.Glyph(buffer.EmptyChar)
			}
			grid.Merge(p, pos.X, pos.Y)
		}

		if err := renderer.Render(ctx, grid); err != nil {
			fail(err)
		}
		if animated {
			rec.AddFrame(target.Image())
		}
	}

	var err error
	if animated {
		err = rec.Save(*out)
	} else {
		err = export.PNG(*out, target.Image())
	}
	if err != nil {
		fail(err)
	}
	fmt.Printf("wrote %s (%d frame(s), %dx%d cells)\n", *out, *frames, *cols, *rows)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "render:", err)
	os.Exit(1)
}
