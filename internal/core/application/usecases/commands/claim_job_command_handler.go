package commands

import (
	"context"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

// ClaimJobCommandHandler executes the single-claim operation.
//
// The claim itself is one atomic conditional update in the store: set the
// mover and flip the status only where it is still Available. Losing that
// compare-and-swap is a routine outcome under concurrency and surfaces as a
// ConflictError, never as a partial mutation. This is the correctness core
// of the whole dispatch flow; application-level locking is deliberately
// absent.
type ClaimJobCommandHandler struct {
	uowFactory UoWFactory
	policy     services.NotificationPolicy
}

// NewClaimJobCommandHandler creates a handler for job claims.
func NewClaimJobCommandHandler(uowFactory UoWFactory, policy services.NotificationPolicy) ClaimJobCommandHandler {
	return ClaimJobCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle processes the claim and returns the claimed job.
func (h *ClaimJobCommandHandler) Handle(ctx context.Context, cmd ClaimJobCommand) (*job.Job, error) {
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

	won, err := jobRepo.ClaimAvailable(ctx, cmd.JobID(), cmd.MoverID())
	if err != nil {
		return nil, err
	}

	claimed, err := jobRepo.Get(ctx, cmd.JobID())
	if err != nil {
		return nil, err
	}

	if !won {
		return nil, errs.NewConflictError("job", "already accepted")
	}

	if claimed.JobType() == job.TypeStorage {
		if err = h.acceptOrder(ctx, uow, claimed); err != nil {
			return nil, err
		}
	}

	if err = enqueueJobEvent(ctx, uow.OutboxRepository(), h.policy, EventJobUpdated, claimed); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return claimed, nil
}

// acceptOrder propagates a storage-job claim to the parent order: the order
// moves Pending -> Accepted and records the mover.
func (h *ClaimJobCommandHandler) acceptOrder(ctx context.Context, uow UoW, claimed *job.Job) error {
	orderRepo := uow.OrderRepository()

	parent, err := orderRepo.Get(ctx, claimed.OrderID())
	if err != nil {
		return err
	}

	moverID := claimed.Mover()
	if moverID == nil {
		return errs.NewValueIsRequiredError("moverId")
	}

	if err = parent.AssignMover(*moverID); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, parent); err != nil {
		return err
	}

	return enqueueOrderEvent(ctx, uow.OutboxRepository(), h.policy, EventOrderUpdated, parent)
}
