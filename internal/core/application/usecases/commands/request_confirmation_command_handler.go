package commands

import (
	"context"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/services"
)

// RequestConfirmationCommandHandler moves a job to
// AwaitingStudentConfirmation on the assigned mover's arrival signal. The
// matching student confirmation is a separate command; the two-step
// handshake keeps the mover from asserting completion unilaterally.
type RequestConfirmationCommandHandler struct {
	uowFactory UoWFactory
	policy     services.NotificationPolicy
}

// NewRequestConfirmationCommandHandler creates a handler for arrival signals.
func NewRequestConfirmationCommandHandler(
	uowFactory UoWFactory,
	policy services.NotificationPolicy,
) RequestConfirmationCommandHandler {
	return RequestConfirmationCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle processes the arrival signal and returns the updated job.
func (h *RequestConfirmationCommandHandler) Handle(
	ctx context.Context,
	cmd RequestConfirmationCommand,
) (*job.Job, error) {
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

	if err = j.RequestConfirmation(cmd.MoverID()); err != nil {
		return nil, err
	}
	if err = jobRepo.Update(ctx, j); err != nil {
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
