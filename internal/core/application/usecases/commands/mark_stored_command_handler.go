package commands

import (
	"context"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
)

// MarkStoredCommandHandler records a storage job's arrival at the warehouse
// and moves the parent order to InStorage.
type MarkStoredCommandHandler struct {
	uowFactory UoWFactory
	policy     services.NotificationPolicy
}

// NewMarkStoredCommandHandler creates a handler for warehouse arrivals.
func NewMarkStoredCommandHandler(uowFactory UoWFactory, policy services.NotificationPolicy) MarkStoredCommandHandler {
	return MarkStoredCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle processes the warehouse arrival and returns the updated job.
func (h *MarkStoredCommandHandler) Handle(ctx context.Context, cmd MarkStoredCommand) (*job.Job, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	jobRepo := uow.JobRepository()

	j, err := jobRepo.Get(ctx, cmd.JobID())
	if err != nil {
		return nil, err
	}

	if err = j.MarkStored(cmd.MoverID()); err != nil {
		return nil, err
	}
	if err = jobRepo.Update(ctx, j); err != nil {
		return nil, err
	}

	orderRepo := uow.OrderRepository()
	parent, err := orderRepo.Get(ctx, j.OrderID())
	if err != nil {
		return nil, err
	}
	if err = parent.ChangeStatus(order.StatusInStorage); err != nil {
		return nil, err
	}
	if err = orderRepo.Update(ctx, parent); err != nil {
		return nil, err
	}

	outboxRepo := uow.OutboxRepository()
	if err = enqueueJobEvent(ctx, outboxRepo, h.policy, EventJobUpdated, j); err != nil {
		return nil, err
	}
	if err = enqueueOrderEvent(ctx, outboxRepo, h.policy, EventOrderUpdated, parent); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return j, nil
}
