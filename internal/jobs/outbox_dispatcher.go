package jobs

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/outbox"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// batchSize bounds how many tasks one dispatch round picks up.
const batchSize = 50

// OutboxDispatcher delivers committed side-effect intents: notification
// tasks fan out to their rooms over the realtime transport, refund tasks go
// to the payment gateway.
//
// Delivery is at-least-once. A task that fails keeps its pending status
// with the attempt recorded, until the retry cap parks it as failed. A
// delivery failure never touches the business state that produced the
// task.
type OutboxDispatcher struct {
	tasks    ports.OutboxRepository
	notifier ports.Notifier
	payments ports.PaymentGateway
	logger   *slog.Logger
}

// NewOutboxDispatcher creates a dispatcher over the outbox store and the
// two delivery targets.
func NewOutboxDispatcher(
	tasks ports.OutboxRepository,
	notifier ports.Notifier,
	payments ports.PaymentGateway,
	logger *slog.Logger,
) (*OutboxDispatcher, error) {
	if tasks == nil {
		return nil, errs.NewValueIsRequiredError("tasks")
	}
	if notifier == nil {
		return nil, errs.NewValueIsRequiredError("notifier")
	}
	if payments == nil {
		return nil, errs.NewValueIsRequiredError("payments")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &OutboxDispatcher{
		tasks:    tasks,
		notifier: notifier,
		payments: payments,
		logger:   logger.With("component", "outbox_dispatcher"),
	}, nil
}

// DispatchPending delivers one batch of pending tasks, oldest first. A
// failing task is recorded and skipped, never blocking the rest of the
// batch.
func (d *OutboxDispatcher) DispatchPending(ctx context.Context) error {
	pending, err := d.tasks.GetPending(ctx, batchSize)
	if err != nil {
		return err
	}

	for _, task := range pending {
		if deliverErr := d.deliver(ctx, task); deliverErr != nil {
			task.RecordFailure(deliverErr)
			d.logger.ErrorContext(ctx, "Task delivery failed",
				"task_id", task.ID().String(),
				"kind", string(task.Kind()),
				"attempts", task.Attempts(),
				"error", deliverErr,
			)
		} else {
			task.MarkSent()
		}

		if updateErr := d.tasks.Update(ctx, task); updateErr != nil {
			d.logger.ErrorContext(ctx, "Task bookkeeping failed",
				"task_id", task.ID().String(),
				"error", updateErr,
			)
		}
	}

	return nil
}

func (d *OutboxDispatcher) deliver(ctx context.Context, task *outbox.Task) error {
	switch task.Kind() {
	case outbox.KindNotification:
		return d.deliverNotification(ctx, task)
	case outbox.KindRefund:
		return d.deliverRefund(ctx, task)
	default:
		return errs.NewValueIsInvalidError("kind")
	}
}

// deliverNotification publishes the envelope to every room the policy
// selected when the task was written.
func (d *OutboxDispatcher) deliverNotification(ctx context.Context, task *outbox.Task) error {
	payload, err := outbox.ParseNotificationPayload(task.Payload())
	if err != nil {
		return err
	}

	var failures []error
	for _, room := range payload.Rooms {
		if pubErr := d.notifier.Publish(ctx, services.Room(room), task.Payload()); pubErr != nil {
			failures = append(failures, pubErr)
		}
	}

	return errors.Join(failures...)
}

func (d *OutboxDispatcher) deliverRefund(ctx context.Context, task *outbox.Task) error {
	payload, err := outbox.ParseRefundPayload(task.Payload())
	if err != nil {
		return err
	}

	var amount *kernel.Money
	if payload.AmountCents != nil {
		money, moneyErr := kernel.NewMoney(*payload.AmountCents)
		if moneyErr != nil {
			return moneyErr
		}
		amount = &money
	}

	return d.payments.Refund(ctx, payload.PaymentReference, amount)
}
