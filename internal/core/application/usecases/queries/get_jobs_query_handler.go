package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetJobsQueryHandler lists jobs belonging to a mover, a student, or an
// order, newest engagement first by scheduled time.
type GetJobsQueryHandler struct {
	db *gorm.DB
}

// NewGetJobsQueryHandler creates a handler for scoped job listings.
func NewGetJobsQueryHandler(db *gorm.DB) GetJobsQueryHandler {
	return GetJobsQueryHandler{db: db}
}

// Handle returns the jobs matching the query's single filter.
func (h GetJobsQueryHandler) Handle(
	ctx context.Context,
	query GetJobsQuery,
) ([]JobView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	column := "order_id"
	value := query.OrderID()
	switch {
	case query.MoverID() != nil:
		column, value = "mover_id", query.MoverID()
	case query.StudentID() != nil:
		column, value = "student_id", query.StudentID()
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+jobViewColumns+`
		FROM jobs
		WHERE `+column+` = ?
		ORDER BY scheduled_time, id
	`, value.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanJobViews(rows)
}
