package queries

import (
	"context"
	"math"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// GetQuoteQueryHandler prices a prospective order: the transport component
// from the haversine distance to the nearest warehouse, plus the daily
// storage rate the student will pay while the goods sit in storage.
type GetQuoteQueryHandler struct {
	warehouses ports.WarehouseLocator
	pricePerKm kernel.Money
	dailyRate  kernel.Money
}

// NewGetQuoteQueryHandler creates a handler for quote queries.
func NewGetQuoteQueryHandler(
	warehouses ports.WarehouseLocator,
	pricePerKm kernel.Money,
	dailyRate kernel.Money,
) (GetQuoteQueryHandler, error) {
	if warehouses == nil {
		return GetQuoteQueryHandler{}, errs.NewValueIsRequiredError("warehouses")
	}
	if pricePerKm <= 0 {
		return GetQuoteQueryHandler{}, errs.NewValueIsInvalidError("pricePerKm")
	}
	if dailyRate <= 0 {
		return GetQuoteQueryHandler{}, errs.NewValueIsInvalidError("dailyRate")
	}

	return GetQuoteQueryHandler{
		warehouses: warehouses,
		pricePerKm: pricePerKm,
		dailyRate:  dailyRate,
	}, nil
}

// Handle computes the quote. Distance is billed in whole started
// kilometers, so a 9.3 km trip pays for 10.
func (h GetQuoteQueryHandler) Handle(
	ctx context.Context,
	query GetQuoteQuery,
) (GetQuoteQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetQuoteQueryResponse{}, err
	}

	warehouse, err := h.warehouses.Nearest(ctx, query.StudentAddress().Point())
	if err != nil {
		return GetQuoteQueryResponse{}, err
	}

	distanceKm, err := query.StudentAddress().Point().DistanceKm(warehouse.Point())
	if err != nil {
		return GetQuoteQueryResponse{}, err
	}

	billedKm := int64(math.Ceil(distanceKm))
	distancePrice, err := kernel.NewMoney(h.pricePerKm.Cents() * billedKm)
	if err != nil {
		return GetQuoteQueryResponse{}, err
	}

	return GetQuoteQueryResponse{
		WarehouseAddress: warehouse,
		DistanceKm:       distanceKm,
		DistancePrice:    distancePrice,
		DailyRate:        h.dailyRate,
	}, nil
}
