package panel

import (
	"math"

	"github.com/chazu/lignin-panel/pkg/geom"
)

// Derive decomposes the panel into a base body, the front and back skins
// and up to four banding strips. The bodies tile the outer
// Length x Width x Thickness box without gaps or overlaps for every
// positive input.
//
// Corners belong to the L strips: an L strip spans the full length, while
// W strips span only the base's Y extent.
//
// Degenerate configs return the zero Bodies. Oversized banding or skins
// never fail: the near side (L2, W1) and the front skin take what they
// need first, the opposite body gets what is left, and bodies whose extent
// collapses are returned as nil.
func Derive(cfg Config) Bodies {
	if cfg.Degenerate() {
		return Bodies{}
	}

	l, w, t := cfg.Length, cfg.Width, cfg.Thickness
	b := cfg.BandingThickness

	// Skins: the front is always reserved, the back only when it mirrors
	// the front. Neither may leave the panel or cross the other.
	front := clampSpan(cfg.SkinThickness, t)
	back := 0.0
	if cfg.BackMirrorsFront {
		back = clampSpan(cfg.SkinThickness, t-front)
	}
	z0, z1 := back, t-front
	h := z1 - z0

	// Banding thickness actually available on each side.
	var bw1, bw2, bl2, bl1 float64
	if cfg.Banded(SideW1) {
		bw1 = clampSpan(b, l)
	}
	if cfg.Banded(SideW2) {
		bw2 = clampSpan(b, l-bw1)
	}
	if cfg.Banded(SideL2) {
		bl2 = clampSpan(b, w)
	}
	if cfg.Banded(SideL1) {
		bl1 = clampSpan(b, w-bl2)
	}
	x0, x1 := bw1, l-bw2
	y0, y1 := bl2, w-bl1

	var out Bodies
	out.Base = geom.NewBox(geom.Vec(x0, y0, z0), geom.Vec(x1-x0, y1-y0, h))
	if cfg.Banded(SideL2) {
		out.Strips[SideL2] = geom.NewBox(geom.Vec(0, 0, z0), geom.Vec(l, bl2, h))
	}
	if cfg.Banded(SideL1) {
		out.Strips[SideL1] = geom.NewBox(geom.Vec(0, y1, z0), geom.Vec(l, bl1, h))
	}
	if cfg.Banded(SideW1) {
		out.Strips[SideW1] = geom.NewBox(geom.Vec(0, y0, z0), geom.Vec(bw1, y1-y0, h))
	}
	if cfg.Banded(SideW2) {
		out.Strips[SideW2] = geom.NewBox(geom.Vec(x1, y0, z0), geom.Vec(bw2, y1-y0, h))
	}

	out.Front = geom.NewBox(geom.Vec(0, 0, z1), geom.Vec(l, w, front))
	if cfg.BackMirrorsFront {
		out.Back = geom.NewBox(geom.Vec(0, 0, 0), geom.Vec(l, w, back))
	}
	return out
}

// clampSpan limits want to [0, avail].
func clampSpan(want, avail float64) float64 {
	return math.Max(0, math.Min(want, avail))
}

// Monolithic returns the single outer box used by the monolithic variant,
// or nil for a degenerate config.
func Monolithic(cfg Config) *geom.Box {
	if cfg.Degenerate() {
		return nil
	}
	return geom.NewBox(geom.Vec(0, 0, 0), geom.Vec(cfg.Length, cfg.Width, cfg.Thickness))
}
