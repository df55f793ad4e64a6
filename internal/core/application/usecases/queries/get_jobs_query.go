package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrGetJobsQueryIsNotConstructed is returned when the query was not
	// created via NewGetJobsQuery.
	ErrGetJobsQueryIsNotConstructed = errors.New(
		"GetJobsQuery must be created via NewGetJobsQuery constructor",
	)
)

// GetJobsQuery lists jobs scoped to exactly one owner: a mover, a student,
// or an order.
type GetJobsQuery struct {
	moverID   *kernel.UUID
	studentID *kernel.UUID
	orderID   *kernel.UUID
	guard     guard.ConstructorGuard
}

// NewGetJobsQuery creates a scoped job listing query. Exactly one of the
// three filters must be set.
func NewGetJobsQuery(moverID, studentID, orderID *kernel.UUID) (GetJobsQuery, error) {
	filters := 0
	for _, id := range []*kernel.UUID{moverID, studentID, orderID} {
		if id == nil {
			continue
		}
		if err := id.Validate(); err != nil {
			return GetJobsQuery{}, err
		}
		filters++
	}

	if filters != 1 {
		return GetJobsQuery{}, errs.NewValueIsInvalidError(
			"exactly one of moverId, studentId, orderId must be set")
	}

	return GetJobsQuery{
		moverID:   moverID,
		studentID: studentID,
		orderID:   orderID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetJobsQuery) Validate() error {
	return q.guard.Validate(ErrGetJobsQueryIsNotConstructed)
}

// MoverID returns the mover filter, if set.
func (q GetJobsQuery) MoverID() *kernel.UUID { return q.moverID }

// StudentID returns the student filter, if set.
func (q GetJobsQuery) StudentID() *kernel.UUID { return q.studentID }

// OrderID returns the order filter, if set.
func (q GetJobsQuery) OrderID() *kernel.UUID { return q.orderID }
