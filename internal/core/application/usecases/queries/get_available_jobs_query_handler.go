package queries

import (
	"context"

	"dispatch/internal/core/domain/model/job"

	"gorm.io/gorm"
)

// GetAvailableJobsQueryHandler reads the open job board straight from the
// store. Anything a mover sees here may already be gone by the time they
// claim it; the claim itself is the only authoritative check.
type GetAvailableJobsQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableJobsQueryHandler creates a handler for job board queries.
func NewGetAvailableJobsQueryHandler(db *gorm.DB) GetAvailableJobsQueryHandler {
	return GetAvailableJobsQueryHandler{db: db}
}

// Handle returns all unclaimed jobs ordered by scheduled time.
func (h GetAvailableJobsQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableJobsQuery,
) ([]JobView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+jobViewColumns+`
		FROM jobs
		WHERE status = ?
		ORDER BY scheduled_time, id
	`, job.StatusAvailable.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanJobViews(rows)
}
