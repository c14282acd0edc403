package terminal

import (
	"github.com/muesli/termenv"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorModeMono      ColorMode = iota // no color, attributes only
	ColorMode256                        // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
)

// String returns a human-readable mode name
func (m ColorMode) String() string {
	switch m {
	case ColorMode256:
		return "256"
	case ColorModeTrueColor:
		return "truecolor"
	default:
		return "mono"
	}
}

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

// RGBBlack is the zero value black color
var RGBBlack = RGB{0, 0, 0}

// Color cube values for 6x6x6 palette (indices 16-231)
// Levels: 0, 95, 135, 175, 215, 255
var cubeValues = [6]uint8{0, 95, 135, 175, 215, 255}

// cubeIndex maps 0-255 to nearest cube index 0-5
// Pre-computed at init time
var cubeIndex [256]uint8

// grayscaleStart is the first grayscale index (232-255 = 24 shades)
const grayscaleStart = 232

func init() {
	for i := 0; i < 256; i++ {
		best := 0
		bestDist := abs(i - int(cubeValues[0]))
		for j := 1; j < 6; j++ {
			d := abs(i - int(cubeValues[j]))
			if d < bestDist {
				bestDist = d
				best = j
			}
		}
		cubeIndex[i] = uint8(best)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// RGBTo256 finds the nearest 256-color palette index for an RGB value
func RGBTo256(c RGB) uint8 {
	r, g, b := c.R, c.G, c.B

	// Check if grayscale is a better match (when r ≈ g ≈ b)
	// Grayscale ramp: 232-255 maps to luminance 8, 18, 28, ..., 238
	gray := (int(r) + int(g) + int(b)) / 3
	maxDiff := max(abs(int(r)-gray), abs(int(g)-gray), abs(int(b)-gray))

	if maxDiff < 10 {
		if gray < 4 {
			return 16 // cube (0,0,0), darker than the first gray shade
		}
		if gray > 243 {
			return 231 // cube (5,5,5), lighter than the last gray shade
		}
		grayIdx := uint8(grayscaleStart + (gray-8)/10)

		// Compare grayscale match vs color cube match
		grayLevel := 8 + int(grayIdx-grayscaleStart)*10
		grayDist := abs(int(r)-grayLevel) + abs(int(g)-grayLevel) + abs(int(b)-grayLevel)

		cubeDist := abs(int(r)-int(cubeValues[cubeIndex[r]])) +
			abs(int(g)-int(cubeValues[cubeIndex[g]])) +
			abs(int(b)-int(cubeValues[cubeIndex[b]]))

		if grayDist < cubeDist {
			return grayIdx
		}
	}

	return 16 + 36*cubeIndex[r] + 6*cubeIndex[g] + cubeIndex[b]
}

// DetectColorMode determines terminal color capability from the environment
func DetectColorMode() ColorMode {
	return profileColorMode(termenv.ColorProfile())
}

// profileColorMode maps a termenv profile to a ColorMode
func profileColorMode(p termenv.Profile) ColorMode {
	switch p {
	case termenv.TrueColor:
		return ColorModeTrueColor
	case termenv.ANSI256, termenv.ANSI:
		return ColorMode256
	default:
		return ColorModeMono
	}
}
