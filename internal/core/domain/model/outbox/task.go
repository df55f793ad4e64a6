package outbox

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Kind distinguishes the side effect a task carries.
type Kind string

const (
	// KindNotification delivers a lifecycle event to realtime rooms.
	KindNotification Kind = "notification"

	// KindRefund issues a refund through the payment gateway.
	KindRefund Kind = "refund"
)

// Task statuses.
type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
)

// maxAttempts bounds delivery retries before a task is parked as failed.
const maxAttempts = 5

// ErrTaskIsNotConstructed is returned when using an improperly initialized Task.
var ErrTaskIsNotConstructed = errors.New("Task must be created via NewTask or RestoreTask constructor")

// Task is a durable intent persisted in the same transaction as the state
// change that produced it. A background sender delivers pending tasks with
// bounded retries, so a crash between commit and delivery loses nothing.
type Task struct {
	id        kernel.UUID
	kind      Kind
	payload   []byte
	status    Status
	attempts  int
	lastError string
	createdAt time.Time
	guard     guard.ConstructorGuard
}

// NewTask creates a pending task carrying a serialized payload.
func NewTask(kind Kind, payload []byte) (*Task, error) {
	if kind != KindNotification && kind != KindRefund {
		return nil, errs.NewValueIsInvalidError("kind")
	}
	if len(payload) == 0 {
		return nil, errs.NewValueIsRequiredError("payload")
	}

	return &Task{
		id:        kernel.NewUUID(),
		kind:      kind,
		payload:   payload,
		status:    StatusPending,
		createdAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreTask reconstructs a task from persistence.
func RestoreTask(
	id kernel.UUID,
	kind Kind,
	payload []byte,
	status Status,
	attempts int,
	lastError string,
	createdAt time.Time,
) (*Task, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if kind != KindNotification && kind != KindRefund {
		return nil, errs.NewValueIsInvalidError("kind")
	}
	if status != StatusPending && status != StatusSent && status != StatusFailed {
		return nil, errs.NewValueIsInvalidError("status")
	}
	if attempts < 0 {
		return nil, errs.NewValueIsInvalidError("attempts")
	}

	return &Task{
		id:        id,
		kind:      kind,
		payload:   payload,
		status:    status,
		attempts:  attempts,
		lastError: lastError,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Task was constructed via NewTask or RestoreTask.
func (t *Task) Validate() error {
	if t == nil {
		return ErrTaskIsNotConstructed
	}
	return t.guard.Validate(ErrTaskIsNotConstructed)
}

func (t *Task) ID() kernel.UUID      { return t.id }
func (t *Task) Kind() Kind           { return t.kind }
func (t *Task) Payload() []byte      { return t.payload }
func (t *Task) Status() Status       { return t.status }
func (t *Task) Attempts() int        { return t.attempts }
func (t *Task) LastError() string    { return t.lastError }
func (t *Task) CreatedAt() time.Time { return t.createdAt }

// MarkSent records a successful delivery.
func (t *Task) MarkSent() {
	t.status = StatusSent
	t.attempts++
}

// RecordFailure records a failed delivery attempt. After maxAttempts the
// task is parked as failed and no longer picked up by the sender.
func (t *Task) RecordFailure(cause error) {
	t.attempts++
	if cause != nil {
		t.lastError = cause.Error()
	}
	if t.attempts >= maxAttempts {
		t.status = StatusFailed
	}
}
