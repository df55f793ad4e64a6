package ports

import (
	"context"

	"dispatch/internal/core/domain/model/outbox"
)

// OutboxRepository defines the persistence contract for outbox tasks.
// Tasks are added inside the same transaction as the state change that
// produced them; the background sender reads and updates them outside any
// business transaction.
type OutboxRepository interface {
	// Add persists a new task.
	Add(ctx context.Context, task *outbox.Task) error

	// Update persists a task's delivery bookkeeping.
	Update(ctx context.Context, task *outbox.Task) error

	// GetPending retrieves up to limit pending tasks, oldest first.
	GetPending(ctx context.Context, limit int) ([]*outbox.Task, error)
}
