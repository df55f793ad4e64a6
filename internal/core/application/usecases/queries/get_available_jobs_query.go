package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var (
	// ErrGetAvailableJobsQueryIsNotConstructed is returned when the query
	// was not created via NewGetAvailableJobsQuery.
	ErrGetAvailableJobsQueryIsNotConstructed = errors.New(
		"GetAvailableJobsQuery must be created via NewGetAvailableJobsQuery constructor",
	)
)

// GetAvailableJobsQuery lists the unclaimed jobs the mover marketplace
// shows. This is a parameterless query.
type GetAvailableJobsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAvailableJobsQuery creates a query for the open job board.
func NewGetAvailableJobsQuery() GetAvailableJobsQuery {
	return GetAvailableJobsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableJobsQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableJobsQueryIsNotConstructed)
}
