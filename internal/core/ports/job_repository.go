package ports

import (
	"context"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
)

// JobRepository defines the persistence contract for job aggregates.
type JobRepository interface {
	// Add persists a new job aggregate.
	Add(ctx context.Context, aggregate *job.Job) error

	// Update persists changes to an existing job aggregate.
	Update(ctx context.Context, aggregate *job.Job) error

	// Get retrieves a job by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*job.Job, error)

	// ClaimAvailable executes the single-claim operation as one atomic
	// conditional update: set status=Accepted and assign the mover only
	// where the current status is still Available. It reports whether
	// this caller won the claim; a false result with a nil error means
	// another mover got there first. It never mutates a claimed job.
	ClaimAvailable(ctx context.Context, jobID, moverID kernel.UUID) (bool, error)

	// GetAllAvailable retrieves every job still open for claiming.
	GetAllAvailable(ctx context.Context) ([]*job.Job, error)

	// GetByOrder retrieves all jobs spawned by an order.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*job.Job, error)

	// GetByMover retrieves all jobs assigned to a mover.
	GetByMover(ctx context.Context, moverID kernel.UUID) ([]*job.Job, error)

	// GetByStudent retrieves all jobs belonging to a student's orders.
	GetByStudent(ctx context.Context, studentID kernel.UUID) ([]*job.Job, error)

	// GetActiveReturnByOrder retrieves the order's non-cancelled return
	// job, if one exists. Backs the return-job idempotency rule.
	GetActiveReturnByOrder(ctx context.Context, orderID kernel.UUID) (*job.Job, error)
}
