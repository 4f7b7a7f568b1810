package capture

import (
	"context"
	"math"

	domainErrors "github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/errors"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/model"
)

// Locator obtains a geolocation fix. Implementations should honour ctx.
type Locator interface {
	Locate(ctx context.Context) (model.Coordinates, error)
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func(ctx context.Context) (model.Coordinates, error)

func (f LocatorFunc) Locate(ctx context.Context) (model.Coordinates, error) {
	return f(ctx)
}

// FixedLocator reports a fix already taken by the device. A missing or
// half-present pair means the device had no fix.
type FixedLocator struct {
	Latitude  *float64
	Longitude *float64
}

func (l FixedLocator) Locate(ctx context.Context) (model.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return model.Coordinates{}, err
	}
	if l.Latitude == nil || l.Longitude == nil {
		return model.Coordinates{}, domainErrors.ErrGeolocationUnavailable
	}
	lat, lng := *l.Latitude, *l.Longitude
	if math.IsNaN(lat) || math.IsNaN(lng) || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return model.Coordinates{}, domainErrors.ErrGeolocationUnavailable
	}
	return model.Coordinates{Latitude: lat, Longitude: lng}, nil
}
