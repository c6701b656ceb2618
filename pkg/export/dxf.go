package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/chazu/lignin-panel/pkg/feature"
	"github.com/chazu/lignin-panel/pkg/geom"
	"github.com/chazu/lignin-panel/pkg/panel"
)

// DXFGap is the spacing between panels in the DXF plan view, mm.
const DXFGap = 50.0

// ExportDXF writes the plan view (XY) of every present body as a closed
// outline of four lines, one layer per body role. Panels are laid out
// along X, DXFGap apart.
func ExportDXF(path string, panels []*feature.Panel) error {
	if !hasBodies(panels) {
		return ErrNothingToExport
	}

	d := dxf.NewDrawing()
	for _, role := range panel.BodyRoles {
		col := dxf.DefaultColor
		if _, ok := role.Side(); ok {
			col = color.Red
		}
		if _, err := d.AddLayer(role.String(), col, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("export: dxf layer %s: %w", role, err)
		}
	}

	var x float64
	for _, p := range panels {
		if p == nil {
			continue
		}
		bodies := p.Bodies()
		for _, role := range bodies.Present() {
			if err := d.ChangeLayer(role.String()); err != nil {
				return fmt.Errorf("export: dxf layer %s: %w", role, err)
			}
			if err := outline(d, bodies.Get(role), x); err != nil {
				return fmt.Errorf("export: dxf %s/%s: %w", p.Name(), role, err)
			}
		}
		if length := p.Config().Length; length > 0 {
			x += length + DXFGap
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("export: save dxf: %w", err)
	}
	return nil
}

// outline draws the XY rectangle of b shifted by dx.
func outline(d *drawing.Drawing, b *geom.Box, dx float64) error {
	m, M := b.Min(), b.Max()
	pts := [5][2]float64{
		{m.X + dx, m.Y},
		{M.X + dx, m.Y},
		{M.X + dx, M.Y},
		{m.X + dx, M.Y},
		{m.X + dx, m.Y},
	}
	for i := 0; i < 4; i++ {
		if _, err := d.Line(pts[i][0], pts[i][1], 0, pts[i+1][0], pts[i+1][1], 0); err != nil {
			return err
		}
	}
	return nil
}
