package buffer

import (
	"fmt"
	"strings"
)

// MarshalText encodes the color as "#rrggbb"; the unset color encodes
// as the empty string
func (c Color) MarshalText() ([]byte, error) {
	if !c.Set {
		return nil, nil
	}
	return []byte(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)), nil
}

// UnmarshalText parses "#rrggbb"/"#rgb" hex notation. An empty string
// yields the unset color; anything unparseable is an error so settings
// files fail loudly instead of silently dropping a color.
func (c *Color) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		*c = Color{}
		return nil
	}
	parsed := Hex(s)
	if !parsed.Set {
		return fmt.Errorf("buffer: invalid color %q", s)
	}
	*c = parsed
	return nil
}

// MarshalText encodes the weight name
func (w Weight) MarshalText() ([]byte, error) {
	switch w {
	case WeightNormal:
		return []byte("normal"), nil
	case WeightBold:
		return []byte("bold"), nil
	case WeightDim:
		return []byte("dim"), nil
	default:
		return nil, nil
	}
}

// UnmarshalText parses a weight name; empty means the default weight
func (w *Weight) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "":
		*w = WeightDefault
	case "normal":
		*w = WeightNormal
	case "bold":
		*w = WeightBold
	case "dim":
		*w = WeightDim
	default:
		return fmt.Errorf("buffer: invalid weight %q", string(text))
	}
	return nil
}
