package commands

import (
	"context"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/outbox"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// Event names published to realtime rooms.
const (
	EventOrderCreated = "order.created"
	EventOrderUpdated = "order.updated"
	EventJobCreated   = "job.created"
	EventJobUpdated   = "job.updated"
)

type orderEventData struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

type jobEventData struct {
	JobID      string `json:"jobId"`
	OrderID    string `json:"orderId"`
	JobType    string `json:"jobType"`
	Status     string `json:"status"`
	PriceCents int64  `json:"priceCents"`
}

func roomNames(rooms []services.Room) []string {
	names := make([]string, len(rooms))
	for i, room := range rooms {
		names[i] = string(room)
	}
	return names
}

// enqueueOrderEvent stores an order notification intent in the outbox. The
// recipient rooms are resolved now, against the assignment state being
// committed, not at delivery time.
func enqueueOrderEvent(
	ctx context.Context,
	repo ports.OutboxRepository,
	policy services.NotificationPolicy,
	event string,
	o *order.Order,
) error {
	payload, err := outbox.NewNotificationPayload(event, roomNames(policy.OrderRooms(o)), orderEventData{
		OrderID: o.ID().String(),
		Status:  o.Status().String(),
	})
	if err != nil {
		return err
	}

	task, err := outbox.NewTask(outbox.KindNotification, payload)
	if err != nil {
		return err
	}
	return repo.Add(ctx, task)
}

// enqueueJobEvent stores a job notification intent in the outbox.
func enqueueJobEvent(
	ctx context.Context,
	repo ports.OutboxRepository,
	policy services.NotificationPolicy,
	event string,
	j *job.Job,
) error {
	payload, err := outbox.NewNotificationPayload(event, roomNames(policy.JobRooms(j)), jobEventData{
		JobID:      j.ID().String(),
		OrderID:    j.OrderID().String(),
		JobType:    j.JobType().String(),
		Status:     j.Status().String(),
		PriceCents: j.Price().Cents(),
	})
	if err != nil {
		return err
	}

	task, err := outbox.NewTask(outbox.KindNotification, payload)
	if err != nil {
		return err
	}
	return repo.Add(ctx, task)
}

// enqueueRefund stores a refund intent in the outbox. A nil amount means a
// full refund.
func enqueueRefund(
	ctx context.Context,
	repo ports.OutboxRepository,
	paymentReference string,
	amount *kernel.Money,
) error {
	var cents *int64
	if amount != nil {
		c := amount.Cents()
		cents = &c
	}

	payload, err := outbox.NewRefundPayload(paymentReference, cents)
	if err != nil {
		return err
	}

	task, err := outbox.NewTask(outbox.KindRefund, payload)
	if err != nil {
		return err
	}
	return repo.Add(ctx, task)
}
