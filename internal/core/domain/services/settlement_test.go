package services_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSettlement(t *testing.T) services.Settlement {
	t.Helper()
	s, err := services.NewSettlement(60, kernel.Money(500))
	require.NoError(t, err)
	return s
}

func TestNewSettlement(t *testing.T) {
	t.Run("rejects share outside (0,100)", func(t *testing.T) {
		_, err := services.NewSettlement(0, 500)
		require.Error(t, err)

		_, err = services.NewSettlement(100, 500)
		require.Error(t, err)
	})

	t.Run("rejects negative rate", func(t *testing.T) {
		_, err := services.NewSettlement(60, -1)
		require.Error(t, err)
	})
}

func TestSettlement_PriceSplit(t *testing.T) {
	s := newSettlement(t)
	total := kernel.Money(10000) // $100

	assert.Equal(t, kernel.Money(6000), s.StorageJobPrice(total))
	assert.Equal(t, kernel.Money(4000), s.ReturnJobPrice(total, 0))

	t.Run("late fee is added to the return job", func(t *testing.T) {
		// $40 + 2 days x $5
		assert.Equal(t, kernel.Money(5000), s.ReturnJobPrice(total, kernel.Money(1000)))
	})

	t.Run("split always covers the full total", func(t *testing.T) {
		odd := kernel.Money(9900)
		assert.Equal(t, odd, s.StorageJobPrice(odd).Add(s.ReturnJobPrice(odd, 0)))
	})
}

func TestSettlement_AssessReturn(t *testing.T) {
	s := newSettlement(t)
	expected := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)

	testCases := []struct {
		name    string
		actual  time.Time
		lateFee kernel.Money
		refund  kernel.Money
	}{
		{
			name:    "three days late costs three daily fees",
			actual:  time.Date(2024, 1, 13, 10, 0, 0, 0, time.UTC),
			lateFee: 1500,
		},
		{
			name:   "two days early refunds two daily fees",
			actual: time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC),
			refund: 1000,
		},
		{
			name:   "on time costs nothing",
			actual: expected,
		},
		{
			name:    "a day and a half late counts one whole day",
			actual:  time.Date(2024, 1, 11, 22, 0, 0, 0, time.UTC),
			lateFee: 500,
		},
		{
			name:   "twelve hours early is within the same day",
			actual: time.Date(2024, 1, 9, 22, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			adjustment := s.AssessReturn(expected, tc.actual)

			assert.Equal(t, tc.lateFee, adjustment.LateFee)
			assert.Equal(t, tc.refund, adjustment.Refund)
		})
	}
}
