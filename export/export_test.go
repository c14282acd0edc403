package export

import (
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func solidFrame(c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.bin")
	if err := Save(path, []byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 3 || data[0] != 1 {
		t.Errorf("saved bytes = %v", data)
	}
}

func TestPNGRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "still.png")
	if err := PNG(path, solidFrame(color.RGBA{R: 255, A: 255})); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode written png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Errorf("bounds = %v, want 8x8", b)
	}
}

func TestGIFRecorder(t *testing.T) {
	rec := NewGIFRecorder(10)
	rec.AddFrame(solidFrame(color.RGBA{R: 255, A: 255}))
	rec.AddFrame(solidFrame(color.RGBA{B: 255, A: 255}))

	if rec.Frames() != 2 {
		t.Fatalf("Frames() = %d, want 2", rec.Frames())
	}

	path := filepath.Join(t.TempDir(), "anim.gif")
	if err := rec.Save(path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	anim, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode written gif: %v", err)
	}
	if len(anim.Image) != 2 {
		t.Errorf("decoded %d frames, want 2", len(anim.Image))
	}
	// 10 fps is a 10-hundredths delay per frame
	if anim.Delay[0] != 10 {
		t.Errorf("delay = %d, want 10", anim.Delay[0])
	}
	if anim.LoopCount != 0 {
		t.Errorf("LoopCount = %d, want 0 (loop forever)", anim.LoopCount)
	}
}

func TestGIFRecorderEmptySave(t *testing.T) {
	rec := NewGIFRecorder(30)
	if err := rec.Save(filepath.Join(t.TempDir(), "empty.gif")); err == nil {
		t.Error("Save with no frames succeeded, want error")
	}
}
