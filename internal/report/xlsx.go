package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	domainErrors "github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/errors"
)

const sheetName = "Retiradas"

// WriteXLSX renders r as a spreadsheet with the same table as the PDF.
func WriteXLSX(w io.Writer, r *Result) error {
	if r.State() != StateReady {
		return domainErrors.ErrNothingToExport
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"0D6EFD"}},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	set := func(col, row int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheetName, cell, v)
	}

	lines := []string{Title, r.PeriodLine(), r.GeneratedLine()}
	for i, line := range lines {
		if err := set(1, i+1, line); err != nil {
			return fmt.Errorf("write heading: %w", err)
		}
	}

	headerRow := len(lines) + 2
	for i, col := range Columns {
		if err := set(i+1, headerRow, col); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	first, _ := excelize.CoordinatesToCellName(1, headerRow)
	last, _ := excelize.CoordinatesToCellName(len(Columns), headerRow)
	if err := f.SetCellStyle(sheetName, first, last, headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, row := range r.Rows() {
		for j, cell := range row {
			if err := set(j+1, headerRow+1+i, cell); err != nil {
				return fmt.Errorf("write row: %w", err)
			}
		}
	}

	if err := f.SetColWidth(sheetName, "A", "D", 28); err != nil {
		return fmt.Errorf("column width: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("render xlsx: %w", err)
	}
	return nil
}
