package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"solar_telemetry/internal/pipeline"
)

const defaultSheet = "Sheet1"

// Workbook serializes a snapshot as a multi-sheet spreadsheet: one
// sheet per panel (fixed export order, sheet name without the "Panel "
// prefix), same row content and ordering as the CSV target.
func Workbook(snap *pipeline.Snapshot) (*excelize.File, error) {
	f := excelize.NewFile()

	for i, section := range BuildDocument(snap, TargetXLSX) {
		sheet := section.Panel.SheetName()
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet); err != nil {
				return nil, fmt.Errorf("rename default sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("create sheet %q: %w", sheet, err)
		}

		if err := writeSection(f, sheet, section, snap.Policy().ValueLabel); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func writeSection(f *excelize.File, sheet string, section Section, valueLabel string) error {
	rowNum := 1
	write := func(cells []interface{}) error {
		cell := fmt.Sprintf("A%d", rowNum)
		rowNum++
		return f.SetSheetRow(sheet, cell, &cells)
	}

	for _, block := range section.Blocks {
		if err := write([]interface{}{block.Date}); err != nil {
			return fmt.Errorf("sheet %q date row: %w", sheet, err)
		}
		if err := write([]interface{}{"Hora", valueLabel}); err != nil {
			return fmt.Errorf("sheet %q header row: %w", sheet, err)
		}
		for _, row := range block.Rows {
			if err := write([]interface{}{row.Time, row.Value}); err != nil {
				return fmt.Errorf("sheet %q reading row: %w", sheet, err)
			}
		}
		// blank separator row between dates
		rowNum++
	}
	return nil
}
