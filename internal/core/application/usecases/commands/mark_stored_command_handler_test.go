package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMarkStoredCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	studentID := kernel.NewUUID()
	moverID := kernel.NewUUID()

	t.Run("goods reach the warehouse", func(t *testing.T) {
		parent := restoredOrder(t, studentID, &moverID, order.StatusPickedUp)
		j := restoredJob(t, parent.ID(), studentID, &moverID, job.TypeStorage, job.StatusPickedUp)

		orderRepo := new(MockOrderRepository)
		jobRepo := new(MockJobRepository)
		outboxRepo := new(MockOutboxRepository)
		uow := new(MockUoW)

		jobRepo.On("Get", ctx, j.ID()).Return(j, nil).Once()
		jobRepo.On("Update", ctx, mock.AnythingOfType("*job.Job")).Return(nil).Once()
		orderRepo.On("Get", ctx, parent.ID()).Return(parent, nil).Once()
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
		outboxRepo.On("Add", ctx, mock.AnythingOfType("*outbox.Task")).Return(nil).Twice()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		uow.On("JobRepository").Return(jobRepo).Once()
		uow.On("OrderRepository").Return(orderRepo).Once()
		uow.On("OutboxRepository").Return(outboxRepo).Once()

		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		cmd, err := commands.NewMarkStoredCommand(j.ID(), moverID)
		require.NoError(t, err)

		handler := commands.NewMarkStoredCommandHandler(factory, services.NewNotificationPolicy())
		got, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, job.StatusInStorage, got.Status())
		assert.Equal(t, order.StatusInStorage, parent.Status())
	})

	t.Run("rejected before pickup confirmation", func(t *testing.T) {
		j := restoredJob(t, kernel.NewUUID(), studentID, &moverID, job.TypeStorage, job.StatusAccepted)

		jobRepo := new(MockJobRepository)
		uow := new(MockUoW)

		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("JobRepository").Return(jobRepo).Once(),
			jobRepo.On("Get", ctx, j.ID()).Return(j, nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		cmd, err := commands.NewMarkStoredCommand(j.ID(), moverID)
		require.NoError(t, err)

		handler := commands.NewMarkStoredCommandHandler(factory, services.NewNotificationPolicy())
		_, err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}
