// Package appearance resolves the flat color or texture shown on each
// panel face from the feature's appearance settings and banding flags.
package appearance

import (
	"fmt"
	"math"
)

// Color is an RGB triple with components in [0,1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

var (
	White = Color{1, 1, 1}
	Gray  = Color{0.5, 0.5, 0.5}
	Red   = Color{1, 0, 0}

	// Neutral is used when a color value cannot be read at all.
	Neutral = Color{0.8, 0.8, 0.8}
)

// RGB returns a clamped color.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}.Clamp()
}

// Clamp limits every component to [0,1]. NaN becomes 0.
func (c Color) Clamp() Color {
	return Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}
}

func clamp01(x float64) float64 {
	switch {
	case math.IsNaN(x), x < 0:
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}

// Bytes returns the color as 8-bit channels.
func (c Color) Bytes() (r, g, b int) {
	c = c.Clamp()
	return int(math.Round(c.R * 255)), int(math.Round(c.G * 255)), int(math.Round(c.B * 255))
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	r, g, b := c.Bytes()
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// ParseColor reads a color from a slice of at least three components, the
// shape host color properties arrive in. Anything unreadable yields Neutral.
func ParseColor(v []float64) Color {
	if len(v) < 3 {
		return Neutral
	}
	return RGB(v[0], v[1], v[2])
}
