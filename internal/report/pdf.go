package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	domainErrors "github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/errors"
)

var (
	headerFill = [3]int{13, 110, 253}
	colWidths  = []float64{45, 60, 35, 50}

	pdfCompression = true
)

const (
	lineHeight  = 5.0
	cellPadding = 1.0
)

// WritePDF renders r as an A4 table document.
func WritePDF(w io.Writer, r *Result) error {
	if r.State() != StateReady {
		return domainErrors.ErrNothingToExport
	}

	enc := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder())
	text := func(s string) string {
		out, err := enc.String(s)
		if err != nil {
			return s
		}
		return out
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(pdfCompression)
	pdf.SetTitle(Title, true)
	pdf.SetCreator("sysretirada", true)
	pdf.SetMargins(10, 14, 10)
	pdf.SetAutoPageBreak(true, 14)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 8, text(Title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, text(r.PeriodLine()), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, text(r.GeneratedLine()), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	header := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(headerFill[0], headerFill[1], headerFill[2])
		pdf.SetTextColor(255, 255, 255)
		for i, col := range Columns {
			pdf.CellFormat(colWidths[i], 8, text(col), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
	}

	header()
	_, pageHeight := pdf.GetPageSize()
	left, _, _, bottom := pdf.GetMargins()
	for _, row := range r.Rows() {
		cells := make([][]string, len(row))
		lines := 1
		for i, cell := range row {
			cells[i] = splitCell(pdf, text(cell), colWidths[i]-2*cellPadding)
			lines = max(lines, len(cells[i]))
		}
		rowHeight := float64(lines)*lineHeight + 2*cellPadding

		if pdf.GetY()+rowHeight > pageHeight-bottom {
			pdf.AddPage()
			header()
		}
		x, y := left, pdf.GetY()
		for i, cellLines := range cells {
			pdf.Rect(x, y, colWidths[i], rowHeight, "D")
			for j, line := range cellLines {
				pdf.SetXY(x+cellPadding, y+cellPadding+float64(j)*lineHeight)
				pdf.CellFormat(colWidths[i]-2*cellPadding, lineHeight, line, "", 0, "L", false, 0, "")
			}
			x += colWidths[i]
		}
		pdf.SetXY(left, y+rowHeight)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// splitCell wraps cp1252 text to width w. SplitText indexes glyph widths by
// rune, so each byte is lifted to the rune of the same value and lowered back.
func splitCell(pdf *fpdf.Fpdf, s string, w float64) []string {
	runes := make([]rune, len(s))
	for i := 0; i < len(s); i++ {
		runes[i] = rune(s[i])
	}
	lines := pdf.SplitText(string(runes), w)
	for i, line := range lines {
		b := make([]byte, 0, len(line))
		for _, r := range line {
			b = append(b, byte(r))
		}
		lines[i] = string(b)
	}
	return lines
}
