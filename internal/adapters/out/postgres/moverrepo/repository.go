package moverrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/mover"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormMoverRepository implements ports.MoverRepository using GORM.
type GormMoverRepository struct {
	db *gorm.DB
}

// NewGormMoverRepository creates a new GORM mover repository.
func NewGormMoverRepository(db *gorm.DB) *GormMoverRepository {
	return &GormMoverRepository{db: db}
}

// Get retrieves a mover profile by ID.
func (r *GormMoverRepository) Get(ctx context.Context, id kernel.UUID) (*mover.Mover, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto MoverDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("mover", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
