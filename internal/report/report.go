package report

import (
	"sort"
	"time"

	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/model"
)

// State distinguishes what a report view has to show.
type State string

const (
	StateNoPeriod State = "no_period"
	StateEmpty    State = "empty"
	StateReady    State = "ready"
)

// Result is the outcome of one report query. Exports render exactly these
// records.
type Result struct {
	StartDate   string
	EndDate     string
	Period      Period
	Records     []model.Withdrawal
	GeneratedAt time.Time
}

// Build filters records to the period and orders them newest first.
func Build(startDate, endDate string, period Period, records []model.Withdrawal, now time.Time) *Result {
	return &Result{
		StartDate:   startDate,
		EndDate:     endDate,
		Period:      period,
		Records:     Filter(records, period),
		GeneratedAt: now,
	}
}

// Filter keeps records whose timestamp lies in p, newest first. The input is
// left untouched.
func Filter(records []model.Withdrawal, p Period) []model.Withdrawal {
	out := make([]model.Withdrawal, 0, len(records))
	for _, w := range records {
		if p.Contains(w.Timestamp) {
			out = append(out, w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// State reports the view state. A nil result means no period was chosen yet.
func (r *Result) State() State {
	switch {
	case r == nil:
		return StateNoPeriod
	case len(r.Records) == 0:
		return StateEmpty
	default:
		return StateReady
	}
}

// Filename names an export of the result with extension ext.
func (r *Result) Filename(ext string) string {
	return "relatorio_retiradas_" + r.StartDate + "_" + r.EndDate + "." + ext
}
