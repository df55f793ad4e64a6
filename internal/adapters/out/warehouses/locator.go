// Package warehouses implements the WarehouseLocator port over a static
// list of warehouse sites. The marketplace currently operates a handful of
// fixed facilities; a facility-management lookup can replace this adapter
// without touching the order flow.
package warehouses

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// StaticLocator picks the nearest warehouse from a fixed list.
type StaticLocator struct {
	sites []kernel.Address
}

// NewStaticLocator creates a locator over the given warehouse addresses.
func NewStaticLocator(sites []kernel.Address) (*StaticLocator, error) {
	if len(sites) == 0 {
		return nil, errs.NewValueIsRequiredError("sites")
	}
	for _, site := range sites {
		if err := site.Validate(); err != nil {
			return nil, err
		}
	}

	return &StaticLocator{sites: sites}, nil
}

// Nearest returns the warehouse closest to the point by great-circle
// distance.
func (l *StaticLocator) Nearest(_ context.Context, point kernel.GeoPoint) (kernel.Address, error) {
	if err := point.Validate(); err != nil {
		return kernel.Address{}, err
	}

	best := l.sites[0]
	bestDistance, err := point.DistanceKm(best.Point())
	if err != nil {
		return kernel.Address{}, err
	}

	for _, site := range l.sites[1:] {
		distance, distErr := point.DistanceKm(site.Point())
		if distErr != nil {
			return kernel.Address{}, distErr
		}
		if distance < bestDistance {
			best, bestDistance = site, distance
		}
	}

	return best, nil
}
