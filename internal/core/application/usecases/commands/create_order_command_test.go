package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand(t *testing.T) {
	address := testAddress(t, 40.7128, -74.0060, "12 Dorm Lane")

	t.Run("creates valid command", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), 20, 10000, address, testPickupTime, testReturnTime, "key-1", "pi_123",
		)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, "key-1", cmd.IdempotencyKey())
		assert.Equal(t, "pi_123", cmd.PaymentReference())
	})

	t.Run("key and payment reference are optional", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), 20, 10000, address, testPickupTime, testReturnTime, "", "",
		)

		require.NoError(t, err)
		assert.Empty(t, cmd.IdempotencyKey())
	})

	t.Run("rejects non-positive volume", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), 0, 10000, address, testPickupTime, testReturnTime, "", "",
		)
		require.ErrorIs(t, err, commands.ErrOrderVolumeIsInvalid)
	})

	t.Run("rejects non-positive price", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), 20, 0, address, testPickupTime, testReturnTime, "", "",
		)
		require.ErrorIs(t, err, commands.ErrOrderPriceIsInvalid)
	})

	t.Run("rejects return before pickup", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), 20, 10000, address, testReturnTime, testPickupTime, "", "",
		)
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.CreateOrderCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
