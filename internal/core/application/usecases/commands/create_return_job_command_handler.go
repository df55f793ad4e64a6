package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// ErrNoActiveOrder is returned when the student has no non-terminal order
// to schedule a return for. It unwraps to ErrObjectNotFound so callers
// classify it as a not-found condition.
var ErrNoActiveOrder error = errs.NewObjectNotFoundError("active order", "student")

// CreateReturnJobResult reports the outcome of a return request, including
// the settlement the requested date produced.
type CreateReturnJobResult struct {
	Job           *job.Job
	AlreadyExists bool
	LateFee       kernel.Money
	Refund        kernel.Money
}

// CreateReturnJobCommandHandler schedules the return delivery for a
// student's active order.
//
// The operation is idempotent: an existing non-cancelled return job is
// reported back instead of duplicated, both on the fast-path read and on
// the store's uniqueness constraint when two requests race. Settlement
// compares the requested date with the order's expected return date; a late
// return prices the fee into the return job, an early one enqueues a refund
// intent. The refund is a best-effort side effect — its later failure never
// undoes the job created here.
type CreateReturnJobCommandHandler struct {
	uowFactory UoWFactory
	settlement services.Settlement
	policy     services.NotificationPolicy
}

// NewCreateReturnJobCommandHandler creates a handler for return requests.
func NewCreateReturnJobCommandHandler(
	uowFactory UoWFactory,
	settlement services.Settlement,
	policy services.NotificationPolicy,
) CreateReturnJobCommandHandler {
	return CreateReturnJobCommandHandler{
		uowFactory: uowFactory,
		settlement: settlement,
		policy:     policy,
	}
}

// Handle processes the return request.
func (h *CreateReturnJobCommandHandler) Handle(
	ctx context.Context,
	cmd CreateReturnJobCommand,
) (CreateReturnJobResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateReturnJobResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateReturnJobResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	jobRepo := uow.JobRepository()

	activeOrder, err := orderRepo.GetActiveByStudent(ctx, cmd.StudentID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return CreateReturnJobResult{}, ErrNoActiveOrder
		}
		return CreateReturnJobResult{}, err
	}

	existing, err := jobRepo.GetActiveReturnByOrder(ctx, activeOrder.ID())
	if err == nil {
		return CreateReturnJobResult{Job: existing, AlreadyExists: true}, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return CreateReturnJobResult{}, err
	}

	adjustment := h.settlement.AssessReturn(activeOrder.ReturnTime(), cmd.ReturnTime())

	destination := activeOrder.StudentAddress()
	if cmd.ReturnAddress() != nil {
		destination = *cmd.ReturnAddress()
	}

	if err = activeOrder.ScheduleReturn(destination, cmd.ReturnTime()); err != nil {
		return CreateReturnJobResult{}, err
	}

	returnJob, err := job.NewJob(
		kernel.NewUUID(),
		activeOrder.ID(),
		activeOrder.StudentID(),
		job.TypeReturn,
		activeOrder.Volume(),
		h.settlement.ReturnJobPrice(activeOrder.Price(), adjustment.LateFee),
		activeOrder.WarehouseAddress(),
		destination,
		cmd.ReturnTime(),
	)
	if err != nil {
		return CreateReturnJobResult{}, err
	}

	if err = jobRepo.Add(ctx, returnJob); err != nil {
		return h.resolveAddConflict(ctx, activeOrder.ID(), err)
	}

	if err = h.completeStorageJob(ctx, jobRepo, activeOrder.ID()); err != nil {
		return CreateReturnJobResult{}, err
	}

	if err = orderRepo.Update(ctx, activeOrder); err != nil {
		return CreateReturnJobResult{}, err
	}

	outboxRepo := uow.OutboxRepository()
	if err = enqueueJobEvent(ctx, outboxRepo, h.policy, EventJobCreated, returnJob); err != nil {
		return CreateReturnJobResult{}, err
	}
	if adjustment.Refund > 0 && activeOrder.PaymentReference() != "" {
		refund := adjustment.Refund
		if err = enqueueRefund(ctx, outboxRepo, activeOrder.PaymentReference(), &refund); err != nil {
			return CreateReturnJobResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateReturnJobResult{}, err
	}

	return CreateReturnJobResult{
		Job:     returnJob,
		LateFee: adjustment.LateFee,
		Refund:  adjustment.Refund,
	}, nil
}

// completeStorageJob closes the order's storage job when the goods leave
// the warehouse for the return trip. A storage job that has not reached the
// warehouse yet simply stays where it is.
func (h *CreateReturnJobCommandHandler) completeStorageJob(
	ctx context.Context,
	jobRepo ports.JobRepository,
	orderID kernel.UUID,
) error {
	jobs, err := jobRepo.GetByOrder(ctx, orderID)
	if err != nil {
		return err
	}

	for _, j := range jobs {
		if j.JobType() != job.TypeStorage || j.Status() != job.StatusInStorage {
			continue
		}
		if err = j.Complete(); err != nil {
			return err
		}
		if err = jobRepo.Update(ctx, j); err != nil {
			return err
		}
	}
	return nil
}

// resolveAddConflict handles the race where two return requests pass the
// fast-path read together: the store's partial unique index lets only one
// insert through, and the loser re-reads the winner's job.
func (h *CreateReturnJobCommandHandler) resolveAddConflict(
	ctx context.Context,
	orderID kernel.UUID,
	addErr error,
) (CreateReturnJobResult, error) {
	if !errors.Is(addErr, errs.ErrConflict) {
		return CreateReturnJobResult{}, addErr
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateReturnJobResult{}, addErr
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	existing, err := uow.JobRepository().GetActiveReturnByOrder(ctx, orderID)
	if err != nil {
		return CreateReturnJobResult{}, addErr
	}
	return CreateReturnJobResult{Job: existing, AlreadyExists: true}, nil
}
