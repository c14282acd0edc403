package terminal

import (
	"testing"

	"github.com/muesli/termenv"
)

// TestRGBTo256 tests nearest-palette mapping for cube and grayscale colors
func TestRGBTo256(t *testing.T) {
	tests := []struct {
		name string
		c    RGB
		want uint8
	}{
		{"black", RGB{0, 0, 0}, 16},
		{"near_black", RGB{2, 2, 2}, 16},
		{"white", RGB{255, 255, 255}, 231},
		{"near_white", RGB{250, 250, 250}, 231},
		{"red", RGB{255, 0, 0}, 196},
		{"green", RGB{0, 255, 0}, 46},
		{"blue", RGB{0, 0, 255}, 21},
		{"orange", RGB{255, 135, 0}, 208},
		{"mid_gray", RGB{128, 128, 128}, 244},
		{"cool_gray", RGB{100, 100, 108}, 241},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RGBTo256(tt.c); got != tt.want {
				t.Errorf("RGBTo256(%v) = %d, want %d", tt.c, got, tt.want)
			}
		})
	}
}

// TestRGBTo256Range verifies every mapped index lands in the extended palette
func TestRGBTo256Range(t *testing.T) {
	for r := 0; r < 256; r += 17 {
		for g := 0; g < 256; g += 17 {
			for b := 0; b < 256; b += 17 {
				idx := RGBTo256(RGB{uint8(r), uint8(g), uint8(b)})
				if idx < 16 {
					t.Fatalf("RGBTo256(%d,%d,%d) = %d, below extended palette", r, g, b, idx)
				}
			}
		}
	}
}

// TestProfileColorMode tests the termenv profile mapping
func TestProfileColorMode(t *testing.T) {
	tests := []struct {
		profile termenv.Profile
		want    ColorMode
	}{
		{termenv.TrueColor, ColorModeTrueColor},
		{termenv.ANSI256, ColorMode256},
		{termenv.ANSI, ColorMode256},
		{termenv.Ascii, ColorModeMono},
	}

	for _, tt := range tests {
		if got := profileColorMode(tt.profile); got != tt.want {
			t.Errorf("profileColorMode(%v) = %v, want %v", tt.profile, got, tt.want)
		}
	}
}

// TestColorModeString tests the diagnostic names
func TestColorModeString(t *testing.T) {
	if got := ColorModeTrueColor.String(); got != "truecolor" {
		t.Errorf("got %q, want %q", got, "truecolor")
	}
	if got := ColorMode256.String(); got != "256" {
		t.Errorf("got %q, want %q", got, "256")
	}
	if got := ColorModeMono.String(); got != "mono" {
		t.Errorf("got %q, want %q", got, "mono")
	}
}
