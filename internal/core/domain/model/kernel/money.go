package kernel

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Money is a monetary amount in integer cents. Negative amounts are invalid
// everywhere in the domain; fees and refunds are always kept as separate
// non-negative values.
type Money int64

// NewMoney validates that cents is non-negative.
func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("money",
			fmt.Errorf("%d cents is negative", cents))
	}
	return Money(cents), nil
}

// Cents returns the raw amount in cents.
func (m Money) Cents() int64 {
	return int64(m)
}

// Percent returns the given whole-number percentage of the amount,
// truncated toward zero. Used for the storage/return price split.
func (m Money) Percent(p int64) Money {
	return Money(int64(m) * p / 100)
}

// MultiplyDays scales a per-day rate by a whole number of days.
func (m Money) MultiplyDays(days int64) Money {
	return Money(int64(m) * days)
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return m + other
}

// String renders the amount as dollars, e.g. "$60.00".
func (m Money) String() string {
	return fmt.Sprintf("$%d.%02d", int64(m)/100, int64(m)%100)
}
