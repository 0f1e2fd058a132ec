// Package colors provides the float-component color type used for shapes
// and the editor scheme, with hex parsing and HSV conversions.
package colors

import (
	"image/color"
	"math"
)

// Color holds red, green, blue, and alpha components in the range [0, 1].
type Color struct {
	R, G, B, A float64
}

// New returns a color from components in [0, 1].
func New(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// White is opaque white.
func White() Color {
	return Color{R: 1, G: 1, B: 1, A: 1}
}

// FromHex parses "#RGB", "#RGBA", "#RRGGBB", or "#RRGGBBAA". Anything
// malformed degrades to transparent black instead of reporting an error.
func FromHex(hex string) Color {
	if len(hex) == 0 || hex[0] != '#' {
		return Color{}
	}
	digits := hex[1:]

	nibbles := make([]uint8, len(digits))
	for i := 0; i < len(digits); i++ {
		n, ok := hexNibble(digits[i])
		if !ok {
			return Color{}
		}
		nibbles[i] = n
	}

	switch len(nibbles) {
	case 3:
		return fromBytes(nibbles[0]*17, nibbles[1]*17, nibbles[2]*17, 255)
	case 4:
		return fromBytes(nibbles[0]*17, nibbles[1]*17, nibbles[2]*17, nibbles[3]*17)
	case 6:
		return fromBytes(nibbles[0]<<4|nibbles[1], nibbles[2]<<4|nibbles[3], nibbles[4]<<4|nibbles[5], 255)
	case 8:
		return fromBytes(nibbles[0]<<4|nibbles[1], nibbles[2]<<4|nibbles[3], nibbles[4]<<4|nibbles[5], nibbles[6]<<4|nibbles[7])
	default:
		return Color{}
	}
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func fromBytes(r, g, b, a uint8) Color {
	return Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}
}

// FromHSV builds an opaque color from hue, saturation, and value, each in
// [0, 1]. The hue wraps.
func FromHSV(h, s, v float64) Color {
	h = h - math.Floor(h)
	sector := h * 6
	i := int(sector) % 6
	f := sector - math.Floor(sector)

	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	switch i {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return Color{R: r, G: g, B: b, A: 1}
}

// HSV returns hue, saturation, and value, each in [0, 1). A gray color
// reports hue zero.
func (c Color) HSV() (h, s, v float64) {
	max := math.Max(c.R, math.Max(c.G, c.B))
	min := math.Min(c.R, math.Min(c.G, c.B))
	delta := max - min

	v = max
	if max > 0 {
		s = delta / max
	}
	if delta == 0 {
		return 0, s, v
	}

	switch max {
	case c.R:
		h = (c.G - c.B) / delta
	case c.G:
		h = (c.B-c.R)/delta + 2
	default:
		h = (c.R-c.G)/delta + 4
	}
	h /= 6
	if h < 0 {
		h++
	}
	if h >= 1 {
		h = 0
	}
	return h, s, v
}

// Lerp interpolates between two colors in HSV space, taking the short way
// around the hue wheel. The result is opaque.
func (c Color) Lerp(other Color, t float64) Color {
	h0, s0, v0 := c.HSV()
	h1, s1, v1 := other.HSV()

	dh := h1 - h0
	if dh > 0.5 {
		dh--
	} else if dh < -0.5 {
		dh++
	}
	h := h0 + dh*t
	h = h - math.Floor(h)

	return FromHSV(h, s0+(s1-s0)*t, v0+(v1-v0)*t)
}

// NRGBA converts to the 8-bit non-premultiplied form used by the software
// renderer.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: clamp8(c.R),
		G: clamp8(c.G),
		B: clamp8(c.B),
		A: clamp8(c.A),
	}
}

// WithAlpha returns the color with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

func clamp8(f float64) uint8 {
	v := math.Round(f * 255)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
