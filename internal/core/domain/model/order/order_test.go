package order_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAddress(t *testing.T, lat, lon float64, text string) kernel.Address {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	address, err := kernel.NewAddress(point, text)
	require.NoError(t, err)
	return address
}

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		20,
		kernel.Money(10000),
		testAddress(t, 40.7128, -74.0060, "12 Dorm Lane"),
		testAddress(t, 40.7306, -73.9866, "Warehouse 1"),
		time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 8, 20, 10, 0, 0, 0, time.UTC),
		"",
		"",
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("creates pending order", func(t *testing.T) {
		o := newPendingOrder(t)

		assert.Equal(t, order.StatusPending, o.Status())
		assert.Nil(t, o.Mover())
		assert.Nil(t, o.ReturnAddress())
		assert.True(t, o.IsActive())
		require.NoError(t, o.Validate())
	})

	t.Run("rejects return time before pickup time", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), 20, 10000,
			testAddress(t, 1, 1, "a"), testAddress(t, 2, 2, "b"),
			time.Date(2024, 8, 20, 10, 0, 0, 0, time.UTC),
			time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC),
			"", "",
		)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects non-positive volume and price", func(t *testing.T) {
		pickup := time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)
		ret := time.Date(2024, 8, 20, 10, 0, 0, 0, time.UTC)

		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), 0, 10000,
			testAddress(t, 1, 1, "a"), testAddress(t, 2, 2, "b"), pickup, ret, "", "")
		require.Error(t, err)

		_, err = order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), 20, 0,
			testAddress(t, 1, 1, "a"), testAddress(t, 2, 2, "b"), pickup, ret, "", "")
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_AssignMover(t *testing.T) {
	t.Run("moves pending order to accepted", func(t *testing.T) {
		o := newPendingOrder(t)
		moverID := kernel.NewUUID()

		require.NoError(t, o.AssignMover(moverID))

		assert.Equal(t, order.StatusAccepted, o.Status())
		require.NotNil(t, o.Mover())
		assert.True(t, o.Mover().IsEqual(moverID))
	})

	t.Run("rejected once already accepted", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.AssignMover(kernel.NewUUID()))

		err := o.AssignMover(kernel.NewUUID())
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("cancels a pending order", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.Cancel())
		assert.Equal(t, order.StatusCancelled, o.Status())
		assert.False(t, o.IsActive())
	})

	t.Run("rejected after acceptance", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.AssignMover(kernel.NewUUID()))

		require.ErrorIs(t, o.Cancel(), errs.ErrInvalidTransition)
	})
}

func TestOrder_ScheduleReturn(t *testing.T) {
	t.Run("records resolved return address and time", func(t *testing.T) {
		o := newPendingOrder(t)
		address := testAddress(t, 41.0, -73.5, "New Apartment")
		at := time.Date(2024, 8, 22, 10, 0, 0, 0, time.UTC)

		require.NoError(t, o.ScheduleReturn(address, at))

		require.NotNil(t, o.ReturnAddress())
		assert.Equal(t, "New Apartment", o.ReturnAddress().Text())
		assert.Equal(t, at, o.ReturnTime())
	})

	t.Run("rejected on a terminal order", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.Cancel())

		err := o.ScheduleReturn(testAddress(t, 1, 1, "x"), time.Now())
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("rejects a return instant at or before pickup", func(t *testing.T) {
		o := newPendingOrder(t)
		address := testAddress(t, 41.0, -73.5, "New Apartment")

		err := o.ScheduleReturn(address, o.PickupTime().Add(-48*time.Hour))
		require.ErrorIs(t, err, order.ErrReturnBeforePickup)

		err = o.ScheduleReturn(address, o.PickupTime())
		require.ErrorIs(t, err, order.ErrReturnBeforePickup)

		// The rejected call must not have touched the schedule: the
		// order's fields still restore cleanly.
		assert.Nil(t, o.ReturnAddress())
		_, err = order.RestoreOrder(
			o.ID(), o.StudentID(), nil, o.Status(),
			o.Volume(), o.Price(),
			o.StudentAddress(), o.WarehouseAddress(), o.ReturnAddress(),
			o.PickupTime(), o.ReturnTime(),
			o.IdempotencyKey(), o.PaymentReference(),
		)
		require.NoError(t, err)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("restores full state", func(t *testing.T) {
		moverID := kernel.NewUUID()
		returnAddress := testAddress(t, 41.0, -73.5, "New Apartment")

		o, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), &moverID, order.StatusInStorage,
			20, 10000,
			testAddress(t, 1, 1, "a"), testAddress(t, 2, 2, "b"), &returnAddress,
			time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC),
			time.Date(2024, 8, 20, 10, 0, 0, 0, time.UTC),
			"key-1", "pi_123",
		)

		require.NoError(t, err)
		assert.Equal(t, order.StatusInStorage, o.Status())
		assert.Equal(t, "key-1", o.IdempotencyKey())
		assert.Equal(t, "pi_123", o.PaymentReference())
		require.NotNil(t, o.ReturnAddress())
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), nil, order.StatusUnknown,
			20, 10000,
			testAddress(t, 1, 1, "a"), testAddress(t, 2, 2, "b"), nil,
			time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC),
			time.Date(2024, 8, 20, 10, 0, 0, 0, time.UTC),
			"", "",
		)
		require.Error(t, err)
	})
}
