package motion

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RGB is an 8-bit color
type RGB struct {
	R, G, B uint8
}

// ParseHex parses #rrggbb or #rgb
func ParseHex(s string) (RGB, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// MustParseHex is ParseHex for literals; it panics on malformed input
func MustParseHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats c as lowercase #rrggbb
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// InterpolateColor blends between colors over the input range, clamped on
// both sides. colors are hex strings; len(colors) must equal len(in).
func InterpolateColor(x float64, in []float64, colors []string) string {
	if len(colors) != len(in) {
		panic(fmt.Sprintf("motion.InterpolateColor: %d inputs, %d colors", len(in), len(colors)))
	}

	rs := make([]float64, len(colors))
	gs := make([]float64, len(colors))
	bs := make([]float64, len(colors))
	for i, hex := range colors {
		c := MustParseHex(hex)
		rs[i], gs[i], bs[i] = float64(c.R), float64(c.G), float64(c.B)
	}

	channel := func(out []float64) uint8 {
		v := Interpolate(x, in, out, Clamped())
		return uint8(math.Round(math.Max(0, math.Min(255, v))))
	}
	return RGB{R: channel(rs), G: channel(gs), B: channel(bs)}.Hex()
}
