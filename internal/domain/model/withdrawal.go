package model

import "time"

// Coordinates is a geolocation fix. Latitude and longitude only travel together.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Withdrawal records merchandise handed over against an invoice.
type Withdrawal struct {
	ID            string
	UserID        string
	UserName      string
	RecipientName string
	NFNumber      string
	ImageURL      string
	Timestamp     time.Time
	Location      *Coordinates
}

// HasLocation reports whether a geolocation fix was captured.
func (w Withdrawal) HasLocation() bool {
	return w.Location != nil
}

// LatLng splits the optional location into nullable columns.
func (w Withdrawal) LatLng() (lat, lng *float64) {
	if w.Location == nil {
		return nil, nil
	}
	la, lo := w.Location.Latitude, w.Location.Longitude
	return &la, &lo
}

// CoordinatesFrom rebuilds a location from nullable columns. A half-present
// pair yields no location.
func CoordinatesFrom(lat, lng *float64) *Coordinates {
	if lat == nil || lng == nil {
		return nil
	}
	return &Coordinates{Latitude: *lat, Longitude: *lng}
}
