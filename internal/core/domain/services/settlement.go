package services

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Settlement is a domain service computing the monetary consequences of
// lifecycle transitions: how an order's total price splits between the
// storage and return jobs, and what fee or refund a return date shift
// produces.
//
// Business rules:
//   - The storage job earns a configurable share of the order total
//     (60% by default); the return job earns the complement.
//   - Returning d whole days after the expected date costs d x the daily
//     late-fee rate, added to the return job's price.
//   - Returning d whole days early refunds d x the same daily rate. The
//     rate is deliberately shared between fee and refund.
//   - Settlement is pure: refunds are issued elsewhere, and a failed
//     refund never reverses a transition that has already been decided.
type Settlement struct {
	storageSharePercent int64
	lateFeePerDay       kernel.Money
}

// NewSettlement creates a Settlement service.
// storageSharePercent must be a whole percentage strictly between 0 and 100;
// lateFeePerDay is the per-day rate in cents.
func NewSettlement(storageSharePercent int64, lateFeePerDay kernel.Money) (Settlement, error) {
	if storageSharePercent <= 0 || storageSharePercent >= 100 {
		return Settlement{}, errs.NewValueIsOutOfRangeError("storageSharePercent", storageSharePercent, 1, 99)
	}
	if lateFeePerDay < 0 {
		return Settlement{}, errs.NewValueIsInvalidError("lateFeePerDay")
	}

	return Settlement{
		storageSharePercent: storageSharePercent,
		lateFeePerDay:       lateFeePerDay,
	}, nil
}

// StorageJobPrice returns the storage job's share of the order total.
func (s Settlement) StorageJobPrice(total kernel.Money) kernel.Money {
	return total.Percent(s.storageSharePercent)
}

// ReturnJobPrice returns the return job's share of the order total plus the
// late fee. Refunds are never folded into the job price; they flow through
// the payment gateway.
func (s Settlement) ReturnJobPrice(total, lateFee kernel.Money) kernel.Money {
	return total.Percent(100 - s.storageSharePercent).Add(lateFee)
}

// ReturnAdjustment is the outcome of comparing the actual return date with
// the expected one. At most one of LateFee and Refund is non-zero.
type ReturnAdjustment struct {
	LateFee kernel.Money
	Refund  kernel.Money
}

// AssessReturn computes the fee or refund for returning at actual instead of
// the expected instant. The difference is counted in whole days; a shift of
// less than a full day in either direction costs nothing.
func (s Settlement) AssessReturn(expected, actual time.Time) ReturnAdjustment {
	days := wholeDaysBetween(expected, actual)

	switch {
	case days > 0:
		return ReturnAdjustment{LateFee: s.lateFeePerDay.MultiplyDays(days)}
	case days < 0:
		return ReturnAdjustment{Refund: s.lateFeePerDay.MultiplyDays(-days)}
	default:
		return ReturnAdjustment{}
	}
}

// wholeDaysBetween returns the number of complete 24h periods from expected
// to actual, negative when actual comes first.
func wholeDaysBetween(expected, actual time.Time) int64 {
	return int64(actual.Sub(expected).Hours() / 24)
}
