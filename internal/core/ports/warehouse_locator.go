package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// WarehouseLocator resolves the warehouse nearest to a point. The current
// adapter returns a fixed default; the port exists so a real lookup can be
// plugged in without touching the order flow.
type WarehouseLocator interface {
	Nearest(ctx context.Context, point kernel.GeoPoint) (kernel.Address, error)
}
