package export

import (
	"fmt"
	"math"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/chazu/lignin-panel/pkg/feature"
	"github.com/chazu/lignin-panel/pkg/geom"
	"github.com/chazu/lignin-panel/pkg/panel"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	rowHeight    = 6.0
	drawHeight   = 110.0
)

// ExportPDF writes one data sheet page per panel: dimensions, banding and
// a plan drawing of its bodies in their display colors.
func ExportPDF(path string, panels []*feature.Panel) error {
	if !hasBodies(panels) {
		return ErrNothingToExport
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, p := range panels {
		if p == nil || p.Bodies().Empty() {
			continue
		}
		pdf.AddPage()
		renderPanelPage(pdf, p)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("export: write pdf: %w", err)
	}
	return nil
}

// renderPanelPage draws a single panel data sheet on the current page.
func renderPanelPage(pdf *fpdf.Fpdf, p *feature.Panel) {
	cfg := p.Config()
	contentWidth := pageWidth - marginLeft - marginRight

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s (%.1f x %.1f x %.1f mm, %s)", p.Name(), cfg.Length, cfg.Width, cfg.Thickness, p.Variant())
	pdf.CellFormat(contentWidth, headerHeight, title, "", 0, "L", false, 0, "")

	y := marginTop + headerHeight + 2
	y = drawPlan(pdf, p, y, contentWidth)
	y = drawBandingTable(pdf, cfg, y+4)
	drawBodyTable(pdf, p, y+4)
}

// drawPlan renders the XY outline of every present body, scaled to fit,
// and returns the y below the drawing.
func drawPlan(pdf *fpdf.Fpdf, p *feature.Panel, top, width float64) float64 {
	cfg := p.Config()
	scale := math.Min(width/cfg.Length, drawHeight/cfg.Width)
	canvasW := cfg.Length * scale
	canvasH := cfg.Width * scale
	offsetX := marginLeft + (width-canvasW)/2

	bodies := p.Bodies()
	// Skins cover the whole footprint; draw them first so strips and the
	// base outline stay visible.
	order := []panel.BodyRole{panel.BodyBack, panel.BodyFront, panel.BodyBase,
		panel.BodyStripL1, panel.BodyStripL2, panel.BodyStripW1, panel.BodyStripW2}
	for _, role := range order {
		b := bodies.Get(role)
		if b == nil {
			continue
		}
		r, g, bl := p.BodyAppearance(role).Tint().Bytes()
		pdf.SetFillColor(r, g, bl)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.2)
		x, y, w, h := planRect(b, scale)
		// PDF y grows downward; flip so y=0 (L2) is at the bottom.
		pdf.Rect(offsetX+x, top+canvasH-y-h, w, h, "FD")
	}

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)
	label := fmt.Sprintf("%.1f mm", cfg.Length)
	lw := pdf.GetStringWidth(label)
	pdf.SetXY(offsetX+(canvasW-lw)/2, top+canvasH+1)
	pdf.CellFormat(lw, 4, label, "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	return top + canvasH + 5
}

func planRect(b *geom.Box, scale float64) (x, y, w, h float64) {
	return b.Origin.X * scale, b.Origin.Y * scale, b.Size.X * scale, b.Size.Y * scale
}

// drawBandingTable lists each side with its banding state and returns the
// y below the table.
func drawBandingTable(pdf *fpdf.Fpdf, cfg panel.Config, top float64) float64 {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(marginLeft, top)
	pdf.CellFormat(30, rowHeight, "Side", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, rowHeight, "Banded", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, rowHeight, "Length (mm)", "1", 0, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	y := top + rowHeight
	for _, s := range panel.Sides {
		length := cfg.Width
		if s.AlongLength() {
			length = cfg.Length
		}
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(30, rowHeight, s.String(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, rowHeight, yesNo(cfg.Banded(s)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, rowHeight, strconv.FormatFloat(length, 'f', 1, 64), "1", 0, "R", false, 0, "")
		y += rowHeight
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(marginLeft, y)
	total := fmt.Sprintf("Banding %.1f mm thick, %.1f mm total", cfg.BandingThickness, cfg.BandingLength())
	pdf.CellFormat(100, rowHeight, total, "", 0, "L", false, 0, "")
	return y + rowHeight
}

// drawBodyTable lists the size and color of every present body.
func drawBodyTable(pdf *fpdf.Fpdf, p *feature.Panel, top float64) {
	widths := []float64{30, 30, 30, 30, 30}
	headers := []string{"Body", "Length", "Width", "Thickness", "Color"}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(marginLeft, top)
	for i, h := range headers {
		pdf.CellFormat(widths[i], rowHeight, h, "1", 0, "L", false, 0, "")
	}

	pdf.SetFont("Helvetica", "", 10)
	y := top + rowHeight
	for _, part := range Parts([]*feature.Panel{p}) {
		if y > pageHeight-marginBottom-rowHeight {
			break
		}
		pdf.SetXY(marginLeft, y)
		cells := []string{
			part.Role.String(),
			strconv.FormatFloat(part.Length, 'f', 2, 64),
			strconv.FormatFloat(part.Width, 'f', 2, 64),
			strconv.FormatFloat(part.Thickness, 'f', 2, 64),
			part.Color,
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], rowHeight, c, "1", 0, "L", false, 0, "")
		}
		y += rowHeight
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
