package panel

import "fmt"

// SkinThickness is the thickness of the front and back laminate skins.
const SkinThickness = 0.01

// Side identifies one of the four side faces that can carry edge banding.
type Side int

const (
	SideL1 Side = iota // along the length, far edge (y = Width)
	SideL2             // along the length, near edge (y = 0)
	SideW1             // along the width, near edge (x = 0)
	SideW2             // along the width, far edge (x = Length)
)

// Sides lists every side in a stable order.
var Sides = [...]Side{SideL1, SideL2, SideW1, SideW2}

func (s Side) String() string {
	switch s {
	case SideL1:
		return "L1"
	case SideL2:
		return "L2"
	case SideW1:
		return "W1"
	case SideW2:
		return "W2"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// AlongLength reports whether the side runs along the length (X) axis.
func (s Side) AlongLength() bool {
	return s == SideL1 || s == SideL2
}

// Config is the immutable input of one recompute cycle.
type Config struct {
	Length           float64 `json:"length"`            // X, mm
	Width            float64 `json:"width"`             // Y, mm
	Thickness        float64 `json:"thickness"`         // Z, mm
	BandingThickness float64 `json:"banding_thickness"` // ABS strip thickness, mm
	Banding          [4]bool `json:"banding"`           // indexed by Side
	SkinThickness    float64 `json:"skin_thickness"`    // front/back laminate, mm
	BackMirrorsFront bool    `json:"back_mirrors_front"`
}

// Banded reports whether side s carries edge banding.
func (c Config) Banded(s Side) bool {
	if s < 0 || int(s) >= len(c.Banding) {
		return false
	}
	return c.Banding[s]
}

// WithBanding returns a copy of c with side s set to on.
func (c Config) WithBanding(s Side, on bool) Config {
	c.Banding[s] = on
	return c
}

// Degenerate reports whether any dimension or the banding thickness is not
// strictly positive. Degenerate configs derive to the empty result.
func (c Config) Degenerate() bool {
	return c.Length <= 0 || c.Width <= 0 || c.Thickness <= 0 || c.BandingThickness <= 0
}

// BandingLength returns the linear length of edge banding the panel needs.
func (c Config) BandingLength() float64 {
	if c.Degenerate() {
		return 0
	}
	var total float64
	for _, s := range Sides {
		if !c.Banded(s) {
			continue
		}
		if s.AlongLength() {
			total += c.Length
		} else {
			total += c.Width
		}
	}
	return total
}

// BandedCount returns how many sides carry banding.
func (c Config) BandedCount() int {
	n := 0
	for _, on := range c.Banding {
		if on {
			n++
		}
	}
	return n
}
