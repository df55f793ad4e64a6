package jobrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// uniqueViolation is the Postgres error code for a violated unique index.
const uniqueViolation = "23505"

// GormJobRepository implements ports.JobRepository using GORM.
type GormJobRepository struct {
	db *gorm.DB
}

// NewGormJobRepository creates a new GORM job repository.
func NewGormJobRepository(db *gorm.DB) *GormJobRepository {
	return &GormJobRepository{db: db}
}

// Add saves a new job. A violated uniqueness constraint (a second active
// return job for the same order) surfaces as a ConflictError.
func (r *GormJobRepository) Add(ctx context.Context, aggregate *job.Job) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.NewConflictErrorWithCause("job", "already exists", err)
		}
		return err
	}

	return nil
}

// Update saves an existing job.
func (r *GormJobRepository) Update(ctx context.Context, aggregate *job.Job) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&JobDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("job", aggregate.ID().String())
	}

	return nil
}

// Get retrieves a job by ID.
func (r *GormJobRepository) Get(ctx context.Context, id kernel.UUID) (*job.Job, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto JobDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("job", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ClaimAvailable runs the single-claim rule as one conditional update. The
// row transitions to Accepted with the mover assigned only if it is still
// Available when the update lands; everyone else sees zero rows affected.
func (r *GormJobRepository) ClaimAvailable(ctx context.Context, jobID, moverID kernel.UUID) (bool, error) {
	if err := errors.Join(jobID.Validate(), moverID.Validate()); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Model(&JobDTO{}).
		Where("id = ? AND status = ?", jobID.Bytes(), job.StatusAvailable.String()).
		Updates(map[string]any{
			"status":   job.StatusAccepted.String(),
			"mover_id": moverID.Bytes(),
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// GetAllAvailable retrieves every job still open for claiming, soonest
// first.
func (r *GormJobRepository) GetAllAvailable(ctx context.Context) ([]*job.Job, error) {
	return r.find(ctx, "status = ?", job.StatusAvailable.String())
}

// GetByOrder retrieves all jobs spawned by an order.
func (r *GormJobRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*job.Job, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	return r.find(ctx, "order_id = ?", orderID.Bytes())
}

// GetByMover retrieves all jobs assigned to a mover.
func (r *GormJobRepository) GetByMover(ctx context.Context, moverID kernel.UUID) ([]*job.Job, error) {
	if err := moverID.Validate(); err != nil {
		return nil, err
	}
	return r.find(ctx, "mover_id = ?", moverID.Bytes())
}

// GetByStudent retrieves all jobs belonging to a student's orders.
func (r *GormJobRepository) GetByStudent(ctx context.Context, studentID kernel.UUID) ([]*job.Job, error) {
	if err := studentID.Validate(); err != nil {
		return nil, err
	}
	return r.find(ctx, "student_id = ?", studentID.Bytes())
}

// GetActiveReturnByOrder retrieves the order's non-cancelled return job.
func (r *GormJobRepository) GetActiveReturnByOrder(ctx context.Context, orderID kernel.UUID) (*job.Job, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto JobDTO
	err := r.db.WithContext(ctx).
		First(&dto, "order_id = ? AND job_type = ? AND status <> ?",
			orderID.Bytes(), job.TypeReturn.String(), job.StatusCancelled.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("returnJob", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormJobRepository) find(ctx context.Context, condition string, args ...any) ([]*job.Job, error) {
	var dtos []JobDTO
	err := r.db.WithContext(ctx).
		Order("scheduled_time, id").
		Find(&dtos, append([]any{condition}, args...)...).Error
	if err != nil {
		return nil, err
	}

	jobs := make([]*job.Job, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, toErr := toDomain(dto)
		if toErr != nil {
			return nil, toErr
		}
		jobs = append(jobs, aggregate)
	}

	return jobs, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}
