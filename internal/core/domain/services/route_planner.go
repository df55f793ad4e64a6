package services

import (
	"sort"
	"time"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/mover"
	"dispatch/internal/pkg/errs"
)

const (
	// averageSpeedKmh is the assumed travel speed between stops.
	averageSpeedKmh = 28.0

	// handlingDuration is the fixed on-site work time per job.
	handlingDuration = 25 * time.Minute

	// arrivalSlack is how late past a job's scheduled time the mover may
	// still arrive for the stop to count as reachable.
	arrivalSlack = 30 * time.Minute

	// exactSearchLimit is the candidate-pool size up to which the planner
	// runs the exact subset search. Larger pools fall back to the greedy
	// heuristic to keep request latency bounded.
	exactSearchLimit = 16
)

// RouteStop is one job placed on a planned itinerary with its timing and
// travel estimates.
type RouteStop struct {
	Job *job.Job

	// EstimatedArrival is when the mover reaches the pickup location.
	EstimatedArrival time.Time

	// EstimatedStart is when work begins: the later of arrival and the
	// job's scheduled time.
	EstimatedStart time.Time

	// EstimatedDuration covers on-site handling plus the delivery leg to
	// the dropoff location.
	EstimatedDuration time.Duration

	DistanceFromPreviousKm float64
	TravelFromPrevious     time.Duration
}

// RoutePlan is an ordered itinerary of jobs plus aggregate metrics. An empty
// Stops slice is a valid outcome meaning no feasible itinerary exists for
// the given pool and budget.
type RoutePlan struct {
	Stops           []RouteStop
	TotalEarnings   kernel.Money
	TotalDistanceKm float64
	TotalDuration   time.Duration
	EarningsPerHour float64
}

// TotalJobs returns the number of stops on the itinerary.
func (p RoutePlan) TotalJobs() int {
	return len(p.Stops)
}

// RoutePlanner is a domain service that selects and orders a subset of
// available jobs to maximize a mover's earnings under a time budget.
//
// The planner never claims jobs. Claiming is a separate atomic step taken
// per job the mover accepts, so a stale suggestion can lose the claim race
// without ever corrupting state.
//
// Since every stop must be reached near its scheduled time and arrivals only
// move forward, visiting order is fixed by sorting on scheduled time. That
// reduces the problem to subset selection: exact depth-first search with an
// earnings-bound prune for small pools, greedy insertion by marginal
// earnings-per-minute above exactSearchLimit.
type RoutePlanner struct{}

// NewRoutePlanner creates a new RoutePlanner instance.
func NewRoutePlanner() RoutePlanner {
	return RoutePlanner{}
}

// Plan computes the best itinerary from origin starting at startTime.
//
// Candidates are filtered to available jobs whose scheduled time falls
// inside one of the mover's weekly availability windows. maxDuration bounds
// the total elapsed time including waiting; zero means unbounded.
//
// An empty pool or no feasible selection yields an empty plan, not an error.
func (p RoutePlanner) Plan(
	origin kernel.GeoPoint,
	startTime time.Time,
	availability mover.WeeklyAvailability,
	candidates []*job.Job,
	maxDuration time.Duration,
) (RoutePlan, error) {
	if err := origin.Validate(); err != nil {
		return RoutePlan{}, err
	}
	if startTime.IsZero() {
		return RoutePlan{}, errs.NewValueIsRequiredError("startTime")
	}
	if maxDuration < 0 {
		return RoutePlan{}, errs.NewValueIsInvalidError("maxDuration")
	}

	pool, err := p.eligible(availability, candidates)
	if err != nil {
		return RoutePlan{}, err
	}
	if len(pool) == 0 {
		return RoutePlan{}, nil
	}

	sort.SliceStable(pool, func(i, k int) bool {
		if !pool[i].ScheduledTime().Equal(pool[k].ScheduledTime()) {
			return pool[i].ScheduledTime().Before(pool[k].ScheduledTime())
		}
		return pool[i].Price() > pool[k].Price()
	})

	if len(pool) <= exactSearchLimit {
		return p.planExact(origin, startTime, pool, maxDuration)
	}
	return p.planGreedy(origin, startTime, pool, maxDuration)
}

// eligible keeps available jobs whose scheduled time the mover's weekly
// availability covers.
func (p RoutePlanner) eligible(
	availability mover.WeeklyAvailability,
	candidates []*job.Job,
) ([]*job.Job, error) {
	var pool []*job.Job
	for _, c := range candidates {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if c.Status() != job.StatusAvailable {
			continue
		}
		if !availability.Covers(c.ScheduledTime()) {
			continue
		}
		pool = append(pool, c)
	}
	return pool, nil
}

// routeState is the planner's position in time and space after some prefix
// of stops.
type routeState struct {
	at         kernel.GeoPoint
	now        time.Time
	earnings   kernel.Money
	distanceKm float64
}

// advance extends the route with one more job. It returns ok=false when the
// stop is unreachable: arrival past the slack window, or the elapsed time
// would exceed the budget.
func (p RoutePlanner) advance(
	state routeState,
	j *job.Job,
	startTime time.Time,
	maxDuration time.Duration,
) (routeState, RouteStop, bool, error) {
	approachKm, err := state.at.DistanceKm(j.PickupAddress().Point())
	if err != nil {
		return routeState{}, RouteStop{}, false, err
	}
	travel := travelTime(approachKm)
	arrival := state.now.Add(travel)

	if arrival.After(j.ScheduledTime().Add(arrivalSlack)) {
		return routeState{}, RouteStop{}, false, nil
	}

	start := arrival
	if j.ScheduledTime().After(start) {
		start = j.ScheduledTime()
	}

	deliveryKm, err := j.PickupAddress().Point().DistanceKm(j.DropoffAddress().Point())
	if err != nil {
		return routeState{}, RouteStop{}, false, err
	}
	done := start.Add(handlingDuration).Add(travelTime(deliveryKm))

	if maxDuration > 0 && done.Sub(startTime) > maxDuration {
		return routeState{}, RouteStop{}, false, nil
	}

	next := routeState{
		at:         j.DropoffAddress().Point(),
		now:        done,
		earnings:   state.earnings.Add(j.Price()),
		distanceKm: state.distanceKm + approachKm + deliveryKm,
	}
	stop := RouteStop{
		Job:                    j,
		EstimatedArrival:       arrival,
		EstimatedStart:         start,
		EstimatedDuration:      handlingDuration + travelTime(deliveryKm),
		DistanceFromPreviousKm: approachKm,
		TravelFromPrevious:     travel,
	}
	return next, stop, true, nil
}

// planExact runs a depth-first search over include/skip decisions in
// scheduled-time order, pruning branches whose remaining earnings cannot
// beat the best plan found so far.
func (p RoutePlanner) planExact(
	origin kernel.GeoPoint,
	startTime time.Time,
	pool []*job.Job,
	maxDuration time.Duration,
) (RoutePlan, error) {
	suffix := make([]kernel.Money, len(pool)+1)
	for i := len(pool) - 1; i >= 0; i-- {
		suffix[i] = suffix[i+1].Add(pool[i].Price())
	}

	var (
		best     []RouteStop
		bestMade bool
		bestPlan routeState
		walkErr  error
	)

	initial := routeState{at: origin, now: startTime}

	var walk func(i int, state routeState, stops []RouteStop)
	walk = func(i int, state routeState, stops []RouteStop) {
		if walkErr != nil {
			return
		}
		if bestMade && state.earnings.Add(suffix[i]) <= bestPlan.earnings {
			return
		}
		if i == len(pool) {
			if !bestMade || state.earnings > bestPlan.earnings {
				best = append([]RouteStop(nil), stops...)
				bestPlan = state
				bestMade = true
			}
			return
		}

		next, stop, ok, err := p.advance(state, pool[i], startTime, maxDuration)
		if err != nil {
			walkErr = err
			return
		}
		if ok {
			walk(i+1, next, append(stops, stop))
		}
		walk(i+1, state, stops)
	}
	walk(0, initial, nil)

	if walkErr != nil {
		return RoutePlan{}, walkErr
	}
	if !bestMade || len(best) == 0 {
		return RoutePlan{}, nil
	}
	return p.assemble(startTime, best, bestPlan), nil
}

// planGreedy repeatedly adds the candidate with the highest marginal
// earnings per added minute until nothing fits. Ties break toward earlier
// scheduled time, then higher price, then shorter approach distance.
func (p RoutePlanner) planGreedy(
	origin kernel.GeoPoint,
	startTime time.Time,
	pool []*job.Job,
	maxDuration time.Duration,
) (RoutePlan, error) {
	selected := make([]*job.Job, 0, len(pool))
	remaining := append([]*job.Job(nil), pool...)

	current := routeState{at: origin, now: startTime}
	var currentStops []RouteStop

	for {
		type attempt struct {
			idx        int
			state      routeState
			stops      []RouteStop
			perMinute  float64
			approachKm float64
		}
		var bestTry *attempt

		for idx, c := range remaining {
			trial := insertByScheduledTime(selected, c)
			state, stops, ok, err := p.simulate(origin, startTime, trial, maxDuration)
			if err != nil {
				return RoutePlan{}, err
			}
			if !ok {
				continue
			}

			addedMinutes := state.now.Sub(current.now).Minutes()
			perMinute := float64(c.Price().Cents())
			if addedMinutes > 0 {
				perMinute = float64(c.Price().Cents()) / addedMinutes
			}
			approachKm := state.distanceKm - current.distanceKm

			try := attempt{idx: idx, state: state, stops: stops, perMinute: perMinute, approachKm: approachKm}
			if bestTry == nil || greedyBetter(try.perMinute, c, try.approachKm,
				bestTry.perMinute, remaining[bestTry.idx], bestTry.approachKm) {
				bestTry = &try
			}
		}

		if bestTry == nil {
			break
		}

		selected = insertByScheduledTime(selected, remaining[bestTry.idx])
		current = bestTry.state
		currentStops = bestTry.stops
		remaining = append(remaining[:bestTry.idx], remaining[bestTry.idx+1:]...)
	}

	if len(currentStops) == 0 {
		return RoutePlan{}, nil
	}
	return p.assemble(startTime, currentStops, current), nil
}

func greedyBetter(perMinute float64, j *job.Job, approachKm float64,
	bestPerMinute float64, bestJob *job.Job, bestApproachKm float64,
) bool {
	if perMinute != bestPerMinute {
		return perMinute > bestPerMinute
	}
	if !j.ScheduledTime().Equal(bestJob.ScheduledTime()) {
		return j.ScheduledTime().Before(bestJob.ScheduledTime())
	}
	if j.Price() != bestJob.Price() {
		return j.Price() > bestJob.Price()
	}
	return approachKm < bestApproachKm
}

// simulate walks an ordered selection from scratch, failing fast on the
// first unreachable stop.
func (p RoutePlanner) simulate(
	origin kernel.GeoPoint,
	startTime time.Time,
	ordered []*job.Job,
	maxDuration time.Duration,
) (routeState, []RouteStop, bool, error) {
	state := routeState{at: origin, now: startTime}
	stops := make([]RouteStop, 0, len(ordered))

	for _, j := range ordered {
		next, stop, ok, err := p.advance(state, j, startTime, maxDuration)
		if err != nil || !ok {
			return routeState{}, nil, false, err
		}
		state = next
		stops = append(stops, stop)
	}
	return state, stops, true, nil
}

func (p RoutePlanner) assemble(startTime time.Time, stops []RouteStop, final routeState) RoutePlan {
	duration := final.now.Sub(startTime)

	var perHour float64
	if duration > 0 {
		perHour = float64(final.earnings.Cents()) / 100 / duration.Hours()
	}

	return RoutePlan{
		Stops:           stops,
		TotalEarnings:   final.earnings,
		TotalDistanceKm: final.distanceKm,
		TotalDuration:   duration,
		EarningsPerHour: perHour,
	}
}

// insertByScheduledTime returns a copy of selected with c placed at its
// scheduled-time position.
func insertByScheduledTime(selected []*job.Job, c *job.Job) []*job.Job {
	out := make([]*job.Job, 0, len(selected)+1)
	inserted := false
	for _, s := range selected {
		if !inserted && c.ScheduledTime().Before(s.ScheduledTime()) {
			out = append(out, c)
			inserted = true
		}
		out = append(out, s)
	}
	if !inserted {
		out = append(out, c)
	}
	return out
}

func travelTime(distanceKm float64) time.Duration {
	hours := distanceKm / averageSpeedKmh
	return time.Duration(hours * float64(time.Hour))
}
