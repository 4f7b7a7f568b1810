// Package report selects withdrawals inside a calendar date range and renders
// them as documents.
package report

import (
	"strings"
	"time"

	domainErrors "github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/errors"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/pkg/locale"
)

// Field names reported by validation.
const (
	FieldStart = "start"
	FieldEnd   = "end"
)

// Period is an inclusive instant range covering whole calendar days.
type Period struct {
	Start    time.Time
	End      time.Time
	Location *time.Location
}

// NewPeriod parses two YYYY-MM-DD dates and stretches them to the first and
// last millisecond of their days in loc. A start after end is accepted and
// matches nothing.
func NewPeriod(start, end string, loc *time.Location) (Period, error) {
	if loc == nil {
		loc = time.UTC
	}

	var invalid []string
	startDay, err := time.ParseInLocation(locale.ISODateLayout, strings.TrimSpace(start), loc)
	if err != nil {
		invalid = append(invalid, FieldStart)
	}
	endDay, err := time.ParseInLocation(locale.ISODateLayout, strings.TrimSpace(end), loc)
	if err != nil {
		invalid = append(invalid, FieldEnd)
	}
	if len(invalid) > 0 {
		return Period{}, &domainErrors.ValidationError{Fields: invalid}
	}

	return Period{
		Start:    startDay,
		End:      time.Date(endDay.Year(), endDay.Month(), endDay.Day(), 23, 59, 59, int(999*time.Millisecond), loc),
		Location: loc,
	}, nil
}

// Contains reports whether t lies within the period, both ends included.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// Inverted reports whether start falls after end, which matches nothing.
func (p Period) Inverted() bool {
	return p.Start.After(p.End)
}
