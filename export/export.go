// Package export writes rendered output to files: raw bytes, single
// PNG stills, and animated GIFs assembled frame by frame from the
// canvas surface.
package export

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"os"
)

// Save writes raw bytes to a file
func Save(name string, data []byte) error {
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return fmt.Errorf("export: save %s: %w", name, err)
	}
	return nil
}

// PNG encodes an image to a PNG file
func PNG(name string, img image.Image) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("export: png %s: %w", name, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("export: png %s: %w", name, err)
	}
	return f.Close()
}

// GIFRecorder accumulates frames into an animated GIF. Each added
// frame is quantized onto the Plan9 palette with Floyd-Steinberg
// dithering at add time, so memory holds paletted frames only.
type GIFRecorder struct {
	delay  int // per-frame delay in hundredths of a second
	frames []*image.Paletted
	delays []int
}

// NewGIFRecorder creates a recorder targeting the given frame rate
func NewGIFRecorder(fps float64) *GIFRecorder {
	if fps <= 0 {
		fps = 30
	}
	delay := int(100/fps + 0.5)
	if delay < 1 {
		delay = 1
	}
	return &GIFRecorder{delay: delay}
}

// AddFrame quantizes and appends one frame
func (g *GIFRecorder) AddFrame(img image.Image) {
	b := img.Bounds()
	p := image.NewPaletted(b, palette.Plan9)
	draw.FloydSteinberg.Draw(p, b, img, b.Min)
	g.frames = append(g.frames, p)
	g.delays = append(g.delays, g.delay)
}

// Frames returns the number of recorded frames
func (g *GIFRecorder) Frames() int {
	return len(g.frames)
}

// Save encodes the recorded frames as a looping animated GIF
func (g *GIFRecorder) Save(name string) error {
	if len(g.frames) == 0 {
		return fmt.Errorf("export: gif %s: no frames recorded", name)
	}

	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("export: gif %s: %w", name, err)
	}
	defer f.Close()

	anim := &gif.GIF{
		Image:     g.frames,
		Delay:     g.delays,
		LoopCount: 0,
	}
	if err := gif.EncodeAll(f, anim); err != nil {
		return fmt.Errorf("export: gif %s: %w", name, err)
	}
	return f.Close()
}
