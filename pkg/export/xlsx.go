package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/chazu/lignin-panel/pkg/feature"
	"github.com/chazu/lignin-panel/pkg/panel"
)

// Sheet names of the cut list workbook.
const (
	SheetCutList = "Cut List"
	SheetBanding = "Banding"
)

var (
	cutListHeader = []any{"Panel", "Body", "Length (mm)", "Width (mm)", "Thickness (mm)", "Volume (mm3)", "Color", "Texture"}
	bandingHeader = []any{"Panel", "Side", "Banded", "Length (mm)", "Thickness (mm)"}
)

// ExportXLSX writes a cut list workbook: one row per present body on the
// cut list sheet, and one row per panel side plus a total on the banding
// sheet.
func ExportXLSX(path string, panels []*feature.Panel) error {
	if !hasBodies(panels) {
		return ErrNothingToExport
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetCutList); err != nil {
		return fmt.Errorf("export: xlsx: %w", err)
	}
	if _, err := f.NewSheet(SheetBanding); err != nil {
		return fmt.Errorf("export: xlsx: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("export: xlsx style: %w", err)
	}

	rows := [][]any{cutListHeader}
	for _, part := range Parts(panels) {
		rows = append(rows, []any{
			part.Panel, part.Role.String(),
			part.Length, part.Width, part.Thickness, round(part.Volume()),
			part.Color, part.Texture,
		})
	}
	if err := writeRows(f, SheetCutList, rows, bold); err != nil {
		return err
	}

	rows = [][]any{bandingHeader}
	var total float64
	for _, p := range panels {
		if p == nil {
			continue
		}
		cfg := p.Config()
		for _, s := range panel.Sides {
			length := 0.0
			if cfg.Banded(s) && !cfg.Degenerate() {
				length = cfg.Width
				if s.AlongLength() {
					length = cfg.Length
				}
			}
			rows = append(rows, []any{p.Name(), s.String(), yesNo(cfg.Banded(s)), length, cfg.BandingThickness})
		}
		total += cfg.BandingLength()
	}
	rows = append(rows, []any{"Total", "", "", total, ""})
	if err := writeRows(f, SheetBanding, rows, bold); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("export: save xlsx: %w", err)
	}
	return nil
}

// writeRows fills sheet from A1 and bolds the first row.
func writeRows(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("export: xlsx: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("export: xlsx %s row %d: %w", sheet, i+1, err)
		}
	}
	if len(rows) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return fmt.Errorf("export: xlsx: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("export: xlsx style: %w", err)
	}
	return f.SetColWidth(sheet, "A", "H", 16)
}
