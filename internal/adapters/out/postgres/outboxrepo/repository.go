package outboxrepo

import (
	"context"

	"dispatch/internal/core/domain/model/outbox"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOutboxRepository implements ports.OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add persists a new task.
func (r *GormOutboxRepository) Add(ctx context.Context, task *outbox.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	dto := fromDomain(task)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update persists a task's delivery bookkeeping. Attempts and LastError
// must be written even when they drop back to zero values, so the column
// list is explicit.
func (r *GormOutboxRepository) Update(ctx context.Context, task *outbox.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	dto := fromDomain(task)
	result := r.db.WithContext(ctx).
		Model(&TaskDTO{}).
		Where("id = ?", dto.ID).
		Select("Status", "Attempts", "LastError").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outboxTask", task.ID().String())
	}

	return nil
}

// GetPending retrieves up to limit pending tasks, oldest first.
func (r *GormOutboxRepository) GetPending(ctx context.Context, limit int) ([]*outbox.Task, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsInvalidError("limit")
	}

	var dtos []TaskDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", string(outbox.StatusPending)).
		Order("created_at, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	tasks := make([]*outbox.Task, 0, len(dtos))
	for _, dto := range dtos {
		task, toErr := toDomain(dto)
		if toErr != nil {
			return nil, toErr
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}
