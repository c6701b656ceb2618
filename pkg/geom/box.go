package geom

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

// Epsilon is the tolerance used when comparing derived coordinates.
const Epsilon = 1e-9

// Box is an axis-aligned solid. A nil *Box is the empty shape.
type Box struct {
	Origin r3.Vec `json:"origin"`
	Size   r3.Vec `json:"size"`
}

// NewBox returns a box at origin with the given extents, or nil when any
// extent is not strictly positive. Callers never see negative boxes.
func NewBox(origin, size r3.Vec) *Box {
	if size.X <= Epsilon || size.Y <= Epsilon || size.Z <= Epsilon {
		return nil
	}
	return &Box{Origin: origin, Size: size}
}

// Vec is shorthand for r3.Vec{X: x, Y: y, Z: z}.
func Vec(x, y, z float64) r3.Vec {
	return r3.Vec{X: x, Y: y, Z: z}
}

// IsEmpty reports whether b is the empty shape.
func (b *Box) IsEmpty() bool {
	return b == nil
}

// Min returns the minimum corner.
func (b *Box) Min() r3.Vec {
	if b == nil {
		return r3.Vec{}
	}
	return b.Origin
}

// Max returns the maximum corner.
func (b *Box) Max() r3.Vec {
	if b == nil {
		return r3.Vec{}
	}
	return r3.Add(b.Origin, b.Size)
}

// Center returns the center of mass.
func (b *Box) Center() r3.Vec {
	if b == nil {
		return r3.Vec{}
	}
	return r3.Add(b.Origin, r3.Scale(0.5, b.Size))
}

// Volume returns the enclosed volume; zero for the empty shape.
func (b *Box) Volume() float64 {
	if b == nil {
		return 0
	}
	return b.Size.X * b.Size.Y * b.Size.Z
}

// Overlap returns the volume shared by b and o.
func (b *Box) Overlap(o *Box) float64 {
	if b == nil || o == nil {
		return 0
	}
	bmin, bmax := b.Min(), b.Max()
	omin, omax := o.Min(), o.Max()
	dx := math.Min(bmax.X, omax.X) - math.Max(bmin.X, omin.X)
	dy := math.Min(bmax.Y, omax.Y) - math.Max(bmin.Y, omin.Y)
	dz := math.Min(bmax.Z, omax.Z) - math.Max(bmin.Z, omin.Z)
	if dx <= 0 || dy <= 0 || dz <= 0 {
		return 0
	}
	return dx * dy * dz
}

// Equal reports whether b and o describe the same box within tol.
func (b *Box) Equal(o *Box, tol float64) bool {
	if b == nil || o == nil {
		return b == nil && o == nil
	}
	return vecEqual(b.Origin, o.Origin, tol) && vecEqual(b.Size, o.Size, tol)
}

// Contains reports whether o lies inside b within tol.
func (b *Box) Contains(o *Box, tol float64) bool {
	if b == nil || o == nil {
		return o == nil
	}
	bmin, bmax := b.Min(), b.Max()
	omin, omax := o.Min(), o.Max()
	return omin.X >= bmin.X-tol && omin.Y >= bmin.Y-tol && omin.Z >= bmin.Z-tol &&
		omax.X <= bmax.X+tol && omax.Y <= bmax.Y+tol && omax.Z <= bmax.Z+tol
}

func (b *Box) String() string {
	if b == nil {
		return "box(empty)"
	}
	return fmt.Sprintf("box(at %.4g,%.4g,%.4g size %.4gx%.4gx%.4g)",
		b.Origin.X, b.Origin.Y, b.Origin.Z, b.Size.X, b.Size.Y, b.Size.Z)
}

func vecEqual(a, b r3.Vec, tol float64) bool {
	return scalar.EqualWithinAbs(a.X, b.X, tol) &&
		scalar.EqualWithinAbs(a.Y, b.Y, tol) &&
		scalar.EqualWithinAbs(a.Z, b.Z, tol)
}
