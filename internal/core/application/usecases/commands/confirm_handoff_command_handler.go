package commands

import (
	"context"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
)

// ConfirmHandoffCommandHandler records the student's confirmation of a
// handoff and propagates it to the parent order: a confirmed pickup moves
// the order to PickedUp; a confirmed return delivery completes the job and
// walks the order through Returned to Completed.
type ConfirmHandoffCommandHandler struct {
	uowFactory UoWFactory
	policy     services.NotificationPolicy
}

// NewConfirmHandoffCommandHandler creates a handler for handoff confirmations.
func NewConfirmHandoffCommandHandler(
	uowFactory UoWFactory,
	policy services.NotificationPolicy,
) ConfirmHandoffCommandHandler {
	return ConfirmHandoffCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle processes the confirmation and returns the updated job.
func (h *ConfirmHandoffCommandHandler) Handle(ctx context.Context, cmd ConfirmHandoffCommand) (*job.Job, error) {
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

	if err = j.ConfirmHandoff(cmd.StudentID()); err != nil {
		return nil, err
	}
	if err = jobRepo.Update(ctx, j); err != nil {
		return nil, err
	}

	if err = h.progressOrder(ctx, uow, j); err != nil {
		return nil, err
	}

	if err = enqueueJobEvent(ctx, uow.OutboxRepository(), h.policy, EventJobUpdated, j); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return j, nil
}

// progressOrder applies the order-level consequence of the confirmed
// handoff. The return flow has no separate operator action between Returned
// and Completed, so both transitions apply back to back.
func (h *ConfirmHandoffCommandHandler) progressOrder(ctx context.Context, uow UoW, j *job.Job) error {
	orderRepo := uow.OrderRepository()

	parent, err := orderRepo.Get(ctx, j.OrderID())
	if err != nil {
		return err
	}

	switch j.JobType() {
	case job.TypeStorage:
		if err = parent.ChangeStatus(order.StatusPickedUp); err != nil {
			return err
		}
	case job.TypeReturn:
		if err = parent.ChangeStatus(order.StatusReturned); err != nil {
			return err
		}
		if err = parent.ChangeStatus(order.StatusCompleted); err != nil {
			return err
		}
	case job.TypeUnknown:
	}

	if err = orderRepo.Update(ctx, parent); err != nil {
		return err
	}

	return enqueueOrderEvent(ctx, uow.OutboxRepository(), h.policy, EventOrderUpdated, parent)
}
