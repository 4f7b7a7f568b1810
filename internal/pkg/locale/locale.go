// Package locale renders values the way Brazilian Portuguese users read them.
package locale

import (
	"fmt"
	"time"

	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/model"
)

const (
	DateLayout     = "02/01/2006"
	DateTimeLayout = "02/01/2006 15:04:05"
	ISODateLayout  = "2006-01-02"
)

// NotAvailable marks a missing value in documents.
const NotAvailable = "N/A"

// DateTime formats t as dd/mm/yyyy hh:mm:ss in loc. A nil loc means UTC.
func DateTime(t time.Time, loc *time.Location) string {
	return t.In(orUTC(loc)).Format(DateTimeLayout)
}

// Date formats t as dd/mm/yyyy in loc. A nil loc means UTC.
func Date(t time.Time, loc *time.Location) string {
	return t.In(orUTC(loc)).Format(DateLayout)
}

// Coordinates formats c with five decimals, or NotAvailable when absent.
func Coordinates(c *model.Coordinates) string {
	if c == nil {
		return NotAvailable
	}
	return fmt.Sprintf("%.5f, %.5f", c.Latitude, c.Longitude)
}

func orUTC(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}
