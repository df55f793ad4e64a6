package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrGetQuoteQueryIsNotConstructed is returned when the query was not
	// created via NewGetQuoteQuery.
	ErrGetQuoteQueryIsNotConstructed = errors.New(
		"GetQuoteQuery must be created via NewGetQuoteQuery constructor",
	)
)

// GetQuoteQuery asks for a storage price quote for a student address.
//
// Example:
//
//	query, err := NewGetQuoteQuery(address)
//	if err != nil {
//	    return err
//	}
//	quote, err := handler.Handle(ctx, query)
type GetQuoteQuery struct {
	studentAddress kernel.Address
	guard          guard.ConstructorGuard
}

// NewGetQuoteQuery creates a quote query for the given student address.
func NewGetQuoteQuery(studentAddress kernel.Address) (GetQuoteQuery, error) {
	if err := studentAddress.Validate(); err != nil {
		return GetQuoteQuery{}, err
	}

	return GetQuoteQuery{
		studentAddress: studentAddress,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetQuoteQuery) Validate() error {
	return q.guard.Validate(ErrGetQuoteQueryIsNotConstructed)
}

// StudentAddress returns the address the quote is computed for.
func (q GetQuoteQuery) StudentAddress() kernel.Address {
	return q.studentAddress
}

// GetQuoteQueryResponse is the price breakdown returned to the student
// before an order is placed.
type GetQuoteQueryResponse struct {
	WarehouseAddress kernel.Address
	DistanceKm       float64

	// DistancePrice is the one-off transport component: the distance
	// rounded up to whole kilometers times the per-kilometer rate.
	DistancePrice kernel.Money

	// DailyRate is the storage component charged per day of storage.
	DailyRate kernel.Money
}
