package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrGetSmartRouteQueryIsNotConstructed is returned when the query was
	// not created via NewGetSmartRouteQuery.
	ErrGetSmartRouteQueryIsNotConstructed = errors.New(
		"GetSmartRouteQuery must be created via NewGetSmartRouteQuery constructor",
	)
)

// GetSmartRouteQuery asks for an earnings-maximizing itinerary suggestion
// for a mover starting from origin at startTime.
//
// maxDuration caps the total elapsed time of the suggested route; zero
// means unbounded.
type GetSmartRouteQuery struct {
	moverID     kernel.UUID
	origin      kernel.GeoPoint
	startTime   time.Time
	maxDuration time.Duration
	guard       guard.ConstructorGuard
}

// NewGetSmartRouteQuery creates a route suggestion query.
func NewGetSmartRouteQuery(
	moverID kernel.UUID,
	origin kernel.GeoPoint,
	startTime time.Time,
	maxDuration time.Duration,
) (GetSmartRouteQuery, error) {
	if err := errors.Join(moverID.Validate(), origin.Validate()); err != nil {
		return GetSmartRouteQuery{}, err
	}
	if startTime.IsZero() {
		return GetSmartRouteQuery{}, errs.NewValueIsRequiredError("startTime")
	}
	if maxDuration < 0 {
		return GetSmartRouteQuery{}, errs.NewValueIsInvalidError("maxDuration")
	}

	return GetSmartRouteQuery{
		moverID:     moverID,
		origin:      origin,
		startTime:   startTime,
		maxDuration: maxDuration,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetSmartRouteQuery) Validate() error {
	return q.guard.Validate(ErrGetSmartRouteQueryIsNotConstructed)
}

// MoverID returns the mover the route is planned for.
func (q GetSmartRouteQuery) MoverID() kernel.UUID { return q.moverID }

// Origin returns the mover's starting point.
func (q GetSmartRouteQuery) Origin() kernel.GeoPoint { return q.origin }

// StartTime returns when the mover starts working.
func (q GetSmartRouteQuery) StartTime() time.Time { return q.startTime }

// MaxDuration returns the time budget, zero meaning unbounded.
func (q GetSmartRouteQuery) MaxDuration() time.Duration { return q.maxDuration }
