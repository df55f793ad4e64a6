package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// CreateOrderCommandHandler opens a new storage engagement: it persists a
// Pending order together with its storage job and an order-created
// notification intent, all in one transaction.
//
// Creation is idempotent. A replayed idempotency key returns the order the
// first submission created. A concurrent duplicate trips the store's
// uniqueness constraint instead of a read-before-write check, and the
// handler resolves that conflict by re-reading — the race becomes a
// deterministic "someone already did this".
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	warehouses ports.WarehouseLocator
	settlement services.Settlement
	policy     services.NotificationPolicy
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	warehouses ports.WarehouseLocator,
	settlement services.Settlement,
	policy services.NotificationPolicy,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		warehouses: warehouses,
		settlement: settlement,
		policy:     policy,
	}
}

// Handle processes the order creation command and returns the created
// order, or the previously created one on an idempotent replay.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	warehouse, err := h.warehouses.Nearest(ctx, cmd.StudentAddress().Point())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	if cmd.IdempotencyKey() != "" {
		existing, getErr := orderRepo.GetByIdempotencyKey(ctx, cmd.IdempotencyKey())
		if getErr == nil {
			return existing, nil
		}
		if !errors.Is(getErr, errs.ErrObjectNotFound) {
			return nil, getErr
		}
	}

	newOrder, err := order.NewOrder(
		kernel.NewUUID(),
		cmd.StudentID(),
		cmd.Volume(),
		cmd.TotalPrice(),
		cmd.StudentAddress(),
		warehouse,
		cmd.PickupTime(),
		cmd.ReturnTime(),
		cmd.IdempotencyKey(),
		cmd.PaymentReference(),
	)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, newOrder); err != nil {
		return h.resolveAddConflict(ctx, cmd, err)
	}

	storageJob, err := job.NewJob(
		kernel.NewUUID(),
		newOrder.ID(),
		newOrder.StudentID(),
		job.TypeStorage,
		newOrder.Volume(),
		h.settlement.StorageJobPrice(newOrder.Price()),
		newOrder.StudentAddress(),
		newOrder.WarehouseAddress(),
		newOrder.PickupTime(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.JobRepository().Add(ctx, storageJob); err != nil {
		return nil, err
	}

	outboxRepo := uow.OutboxRepository()
	if err = enqueueOrderEvent(ctx, outboxRepo, h.policy, EventOrderCreated, newOrder); err != nil {
		return nil, err
	}
	if err = enqueueJobEvent(ctx, outboxRepo, h.policy, EventJobCreated, storageJob); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return newOrder, nil
}

// resolveAddConflict turns a uniqueness violation during insert into the
// idempotent outcome: with a key, return the order the concurrent duplicate
// created; without one, the student already has a pending order and the
// conflict stands. The re-read needs a fresh unit of work because the
// violated insert aborted the original transaction.
func (h *CreateOrderCommandHandler) resolveAddConflict(
	ctx context.Context,
	cmd CreateOrderCommand,
	addErr error,
) (*order.Order, error) {
	if !errors.Is(addErr, errs.ErrConflict) || cmd.IdempotencyKey() == "" {
		return nil, addErr
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, addErr
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	existing, err := uow.OrderRepository().GetByIdempotencyKey(ctx, cmd.IdempotencyKey())
	if err != nil {
		return nil, addErr
	}
	return existing, nil
}
