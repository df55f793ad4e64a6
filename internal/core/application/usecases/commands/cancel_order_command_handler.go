package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

// CancelOrderResult reports the cancellation outcome. A rejection for an
// already-dispatched order is a normal answer, not an error.
type CancelOrderResult struct {
	Cancelled bool
	Message   string
}

// CancelOrderCommandHandler cancels a student's pending order, cascades the
// cancellation to its jobs and enqueues a full refund when a payment
// reference exists. Cancellation is only legal while the order is Pending;
// after a mover accepts, the student-initiated path is closed.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	policy     services.NotificationPolicy
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory UoWFactory, policy services.NotificationPolicy) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle processes the cancellation command.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (CancelOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CancelOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CancelOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	activeOrder, err := orderRepo.GetActiveByStudent(ctx, cmd.StudentID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return CancelOrderResult{}, ErrNoActiveOrder
		}
		return CancelOrderResult{}, err
	}

	if activeOrder.Status() != order.StatusPending {
		return CancelOrderResult{
			Message: "order is already " + activeOrder.Status().String() + " and can no longer be cancelled",
		}, nil
	}

	if err = activeOrder.Cancel(); err != nil {
		return CancelOrderResult{}, err
	}
	if err = orderRepo.Update(ctx, activeOrder); err != nil {
		return CancelOrderResult{}, err
	}

	jobRepo := uow.JobRepository()
	jobs, err := jobRepo.GetByOrder(ctx, activeOrder.ID())
	if err != nil {
		return CancelOrderResult{}, err
	}

	for _, j := range jobs {
		if j.Status().IsTerminal() {
			continue
		}
		if err = j.Cancel(); err != nil {
			return CancelOrderResult{}, err
		}
		if err = jobRepo.Update(ctx, j); err != nil {
			return CancelOrderResult{}, err
		}
	}

	outboxRepo := uow.OutboxRepository()
	if err = enqueueOrderEvent(ctx, outboxRepo, h.policy, EventOrderUpdated, activeOrder); err != nil {
		return CancelOrderResult{}, err
	}
	if activeOrder.PaymentReference() != "" {
		// nil amount: full refund
		if err = enqueueRefund(ctx, outboxRepo, activeOrder.PaymentReference(), nil); err != nil {
			return CancelOrderResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return CancelOrderResult{}, err
	}

	return CancelOrderResult{Cancelled: true, Message: "order cancelled"}, nil
}
