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

func newCreateOrderHandler(
	t *testing.T,
	factory *MockUoWFactory,
	warehouses *MockWarehouseLocator,
) commands.CreateOrderCommandHandler {
	t.Helper()
	settlement, err := services.NewSettlement(60, kernel.Money(500))
	require.NoError(t, err)
	return commands.NewCreateOrderCommandHandler(
		factory, warehouses, settlement, services.NewNotificationPolicy(),
	)
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	studentID := kernel.NewUUID()
	studentAddress := testAddress(t, 40.7128, -74.0060, "12 Dorm Lane")
	warehouse := testAddress(t, 40.7306, -73.9866, "Warehouse 1")

	cmd, err := commands.NewCreateOrderCommand(
		studentID, 20, 10000, studentAddress, testPickupTime, testReturnTime, "", "",
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	jobRepo := new(MockJobRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockUoW)
	warehouses := new(MockWarehouseLocator)

	mock.InOrder(
		warehouses.On("Nearest", ctx, mock.AnythingOfType("kernel.GeoPoint")).Return(warehouse, nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		jobRepo.On("Add", ctx, mock.MatchedBy(func(j *job.Job) bool {
			// storage job gets 60% of the total
			return j.JobType() == job.TypeStorage && j.Price() == kernel.Money(6000)
		})).Return(nil).Once(),
		outboxRepo.On("Add", ctx, mock.AnythingOfType("*outbox.Task")).Return(nil).Twice(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	uow.On("JobRepository").Return(jobRepo).Once()
	uow.On("OutboxRepository").Return(outboxRepo).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := newCreateOrderHandler(t, factory, warehouses)
	created, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.StatusPending, created.Status())
	assert.Equal(t, "Warehouse 1", created.WarehouseAddress().Text())
	orderRepo.AssertExpectations(t)
	jobRepo.AssertExpectations(t)
	outboxRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_IdempotentReplay(t *testing.T) {
	ctx := t.Context()
	studentID := kernel.NewUUID()
	existing := pendingOrder(t, studentID)
	studentAddress := testAddress(t, 40.7128, -74.0060, "12 Dorm Lane")
	warehouse := testAddress(t, 40.7306, -73.9866, "Warehouse 1")

	cmd, err := commands.NewCreateOrderCommand(
		studentID, 20, 10000, studentAddress, testPickupTime, testReturnTime, "key-1", "",
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	warehouses := new(MockWarehouseLocator)

	mock.InOrder(
		warehouses.On("Nearest", ctx, mock.AnythingOfType("kernel.GeoPoint")).Return(warehouse, nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByIdempotencyKey", ctx, "key-1").Return(existing, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := newCreateOrderHandler(t, factory, warehouses)
	got, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, got.ID().IsEqual(existing.ID()))
	orderRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_ConcurrentDuplicateResolvedByReread(t *testing.T) {
	ctx := t.Context()
	studentID := kernel.NewUUID()
	existing := pendingOrder(t, studentID)
	studentAddress := testAddress(t, 40.7128, -74.0060, "12 Dorm Lane")
	warehouse := testAddress(t, 40.7306, -73.9866, "Warehouse 1")

	cmd, err := commands.NewCreateOrderCommand(
		studentID, 20, 10000, studentAddress, testPickupTime, testReturnTime, "key-1", "",
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	rereadRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	rereadUow := new(MockUoW)
	warehouses := new(MockWarehouseLocator)

	// First pass: key unknown yet, then the insert loses the race.
	warehouses.On("Nearest", ctx, mock.AnythingOfType("kernel.GeoPoint")).Return(warehouse, nil).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetByIdempotencyKey", ctx, "key-1").Return(nil, errs.ErrObjectNotFound).Once()
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
		Return(errs.NewConflictError("order", "duplicate idempotency key")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	// Conflict resolution re-reads through a fresh unit of work.
	rereadUow.On("Begin", ctx).Return(nil).Once()
	rereadUow.On("OrderRepository").Return(rereadRepo).Once()
	rereadRepo.On("GetByIdempotencyKey", ctx, "key-1").Return(existing, nil).Once()
	rereadUow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	factory.On("Create").Return(rereadUow).Once()

	handler := newCreateOrderHandler(t, factory, warehouses)
	got, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, got.ID().IsEqual(existing.ID()))
	rereadRepo.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_DuplicatePendingOrderConflict(t *testing.T) {
	ctx := t.Context()
	studentAddress := testAddress(t, 40.7128, -74.0060, "12 Dorm Lane")
	warehouse := testAddress(t, 40.7306, -73.9866, "Warehouse 1")

	// No idempotency key: the one-pending-order constraint stands.
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), 20, 10000, studentAddress, testPickupTime, testReturnTime, "", "",
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	warehouses := new(MockWarehouseLocator)

	mock.InOrder(
		warehouses.On("Nearest", ctx, mock.AnythingOfType("kernel.GeoPoint")).Return(warehouse, nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
			Return(errs.NewConflictError("order", "student already has a pending order")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := newCreateOrderHandler(t, factory, warehouses)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	factory := new(MockUoWFactory)
	warehouses := new(MockWarehouseLocator)

	handler := newCreateOrderHandler(t, factory, warehouses)
	_, err := handler.Handle(ctx, commands.CreateOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
