package queries

import (
	"context"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetSmartRouteQueryHandler suggests an itinerary over the current open job
// board. Unlike the plain listing queries this one restores full job
// aggregates, because the route planner reasons about scheduled times,
// prices and locations together.
//
// The suggestion claims nothing. Jobs on the itinerary can be lost to other
// movers between planning and claiming.
type GetSmartRouteQueryHandler struct {
	db      *gorm.DB
	movers  ports.MoverRepository
	planner services.RoutePlanner
}

// NewGetSmartRouteQueryHandler creates a handler for route suggestions.
func NewGetSmartRouteQueryHandler(
	db *gorm.DB,
	movers ports.MoverRepository,
	planner services.RoutePlanner,
) (GetSmartRouteQueryHandler, error) {
	if db == nil {
		return GetSmartRouteQueryHandler{}, errs.NewValueIsRequiredError("db")
	}
	if movers == nil {
		return GetSmartRouteQueryHandler{}, errs.NewValueIsRequiredError("movers")
	}

	return GetSmartRouteQueryHandler{
		db:      db,
		movers:  movers,
		planner: planner,
	}, nil
}

// Handle plans the route for the mover against all currently unclaimed
// jobs. An empty plan is a valid answer meaning nothing fits the mover's
// availability and budget.
func (h GetSmartRouteQueryHandler) Handle(
	ctx context.Context,
	query GetSmartRouteQuery,
) (services.RoutePlan, error) {
	if err := query.Validate(); err != nil {
		return services.RoutePlan{}, err
	}

	profile, err := h.movers.Get(ctx, query.MoverID())
	if err != nil {
		return services.RoutePlan{}, err
	}

	candidates, err := h.openJobs(ctx)
	if err != nil {
		return services.RoutePlan{}, err
	}

	return h.planner.Plan(
		query.Origin(),
		query.StartTime(),
		profile.Availability(),
		candidates,
		query.MaxDuration(),
	)
}

// openJobs restores all unclaimed jobs as aggregates for the planner.
func (h GetSmartRouteQueryHandler) openJobs(ctx context.Context) ([]*job.Job, error) {
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

	views, err := scanJobViews(rows)
	if err != nil {
		return nil, err
	}

	jobs := make([]*job.Job, 0, len(views))
	for _, view := range views {
		restored, restoreErr := restoreJob(view)
		if restoreErr != nil {
			return nil, restoreErr
		}
		jobs = append(jobs, restored)
	}

	return jobs, nil
}

func restoreJob(view JobView) (*job.Job, error) {
	jobType, err := job.TypeFromString(view.JobType)
	if err != nil {
		return nil, err
	}

	status, err := job.StatusFromString(view.Status)
	if err != nil {
		return nil, err
	}

	return job.RestoreJob(
		view.ID,
		view.OrderID,
		view.StudentID,
		view.MoverID,
		jobType,
		status,
		view.Volume,
		view.Price,
		view.PickupAddress,
		view.DropoffAddress,
		view.ScheduledTime,
	)
}
