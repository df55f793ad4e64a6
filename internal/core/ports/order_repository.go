// Package ports defines the contracts between the domain layer and
// infrastructure: repositories, the unit of work, and the external
// collaborators (payments, realtime transport, identity, warehouses).
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Add relies on two store-level uniqueness constraints rather than
// read-before-write checks: at most one Pending order per student, and at
// most one order per idempotency key when present. A violated constraint
// surfaces as a ConflictError so callers can resolve the race by re-read.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByIdempotencyKey retrieves the order created under the given
	// idempotency key. Used to resolve duplicate submissions.
	GetByIdempotencyKey(ctx context.Context, key string) (*order.Order, error)

	// GetActiveByStudent retrieves the student's current non-terminal
	// order, if any.
	GetActiveByStudent(ctx context.Context, studentID kernel.UUID) (*order.Order, error)
}
