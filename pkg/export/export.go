// Package export writes panel features to workshop file formats: a DXF
// plan view, a PDF data sheet and an XLSX cut list.
package export

import (
	"errors"
	"math"

	"github.com/chazu/lignin-panel/pkg/feature"
	"github.com/chazu/lignin-panel/pkg/panel"
)

// ErrNothingToExport is returned when no panel has any body.
var ErrNothingToExport = errors.New("export: no panel bodies to export")

// Part is one body of one panel as it appears in a cut list.
type Part struct {
	Panel     string
	Role      panel.BodyRole
	Length    float64 // X, mm
	Width     float64 // Y, mm
	Thickness float64 // Z, mm
	Color     string  // #RRGGBB
	Texture   string
}

// Volume returns the part volume in mm³.
func (p Part) Volume() float64 {
	return p.Length * p.Width * p.Thickness
}

// Parts lists the present bodies of every panel in body order.
func Parts(panels []*feature.Panel) []Part {
	var parts []Part
	for _, p := range panels {
		if p == nil {
			continue
		}
		bodies := p.Bodies()
		for _, role := range bodies.Present() {
			b := bodies.Get(role)
			look := p.BodyAppearance(role)
			parts = append(parts, Part{
				Panel:     p.Name(),
				Role:      role,
				Length:    round(b.Size.X),
				Width:     round(b.Size.Y),
				Thickness: round(b.Size.Z),
				Color:     look.Tint().Hex(),
				Texture:   look.Texture,
			})
		}
	}
	return parts
}

// round trims derived sizes to a micrometre so subtraction noise does not
// reach the files.
func round(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// hasBodies reports whether any panel has a present body.
func hasBodies(panels []*feature.Panel) bool {
	for _, p := range panels {
		if p != nil && !p.Bodies().Empty() {
			return true
		}
	}
	return false
}
