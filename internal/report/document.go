package report

import (
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/pkg/locale"
)

// Document labels.
const (
	Title          = "Relatório de Retiradas"
	periodLabel    = "Período: "
	generatedLabel = "Gerado em: "
)

// Columns heads the exported table.
var Columns = []string{"Data/Hora", "Responsável", "NF", "Localização (Lat/Lng)"}

// PeriodLine states the queried range.
func (r *Result) PeriodLine() string {
	loc := r.Period.Location
	return periodLabel + locale.Date(r.Period.Start, loc) + " a " + locale.Date(r.Period.End, loc)
}

// GeneratedLine states when the result was produced.
func (r *Result) GeneratedLine() string {
	return generatedLabel + locale.DateTime(r.GeneratedAt, r.Period.Location)
}

// Rows renders the records as table cells in column order.
func (r *Result) Rows() [][]string {
	rows := make([][]string, 0, len(r.Records))
	for _, w := range r.Records {
		rows = append(rows, []string{
			locale.DateTime(w.Timestamp, r.Period.Location),
			w.RecipientName,
			w.NFNumber,
			locale.Coordinates(w.Location),
		})
	}
	return rows
}
