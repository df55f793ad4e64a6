package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// Handler contracts consumed by the server. Satisfied by the concrete
// command and query handlers; narrowed here so handler tests can substitute
// them.
type (
	createOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	createReturnJobHandler interface {
		Handle(ctx context.Context, cmd commands.CreateReturnJobCommand) (commands.CreateReturnJobResult, error)
	}
	cancelOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CancelOrderCommand) (commands.CancelOrderResult, error)
	}
	claimJobHandler interface {
		Handle(ctx context.Context, cmd commands.ClaimJobCommand) (*job.Job, error)
	}
	requestConfirmationHandler interface {
		Handle(ctx context.Context, cmd commands.RequestConfirmationCommand) (*job.Job, error)
	}
	confirmHandoffHandler interface {
		Handle(ctx context.Context, cmd commands.ConfirmHandoffCommand) (*job.Job, error)
	}
	markStoredHandler interface {
		Handle(ctx context.Context, cmd commands.MarkStoredCommand) (*job.Job, error)
	}
	getQuoteHandler interface {
		Handle(ctx context.Context, query queries.GetQuoteQuery) (queries.GetQuoteQueryResponse, error)
	}
	getAvailableJobsHandler interface {
		Handle(ctx context.Context, query queries.GetAvailableJobsQuery) ([]queries.JobView, error)
	}
	getJobsHandler interface {
		Handle(ctx context.Context, query queries.GetJobsQuery) ([]queries.JobView, error)
	}
	getSmartRouteHandler interface {
		Handle(ctx context.Context, query queries.GetSmartRouteQuery) (services.RoutePlan, error)
	}
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler         createOrderHandler
	createReturnJobHandler     createReturnJobHandler
	cancelOrderHandler         cancelOrderHandler
	claimJobHandler            claimJobHandler
	requestConfirmationHandler requestConfirmationHandler
	confirmHandoffHandler      confirmHandoffHandler
	markStoredHandler          markStoredHandler

	// Query handlers
	getQuoteHandler         getQuoteHandler
	getAvailableJobsHandler getAvailableJobsHandler
	getJobsHandler          getJobsHandler
	getSmartRouteHandler    getSmartRouteHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrder createOrderHandler,
	createReturnJob createReturnJobHandler,
	cancelOrder cancelOrderHandler,
	claimJob claimJobHandler,
	requestConfirmation requestConfirmationHandler,
	confirmHandoff confirmHandoffHandler,
	markStored markStoredHandler,
	getQuote getQuoteHandler,
	getAvailableJobs getAvailableJobsHandler,
	getJobs getJobsHandler,
	getSmartRoute getSmartRouteHandler,
) *Server {
	return &Server{
		createOrderHandler:         createOrder,
		createReturnJobHandler:     createReturnJob,
		cancelOrderHandler:         cancelOrder,
		claimJobHandler:            claimJob,
		requestConfirmationHandler: requestConfirmation,
		confirmHandoffHandler:      confirmHandoff,
		markStoredHandler:          markStored,
		getQuoteHandler:            getQuote,
		getAvailableJobsHandler:    getAvailableJobs,
		getJobsHandler:             getJobs,
		getSmartRouteHandler:       getSmartRoute,
	}
}

// GetQuote handles GET /api/v1/quote - prices a prospective engagement.
func (s *Server) GetQuote(ctx echo.Context) error {
	lat, err := parseFloatParam(ctx, "lat")
	if err != nil {
		return respondError(ctx, err)
	}
	lon, err := parseFloatParam(ctx, "lon")
	if err != nil {
		return respondError(ctx, err)
	}
	text := ctx.QueryParam("address")

	point, err := kernel.NewGeoPoint(lat, lon)
	if err != nil {
		return respondError(ctx, err)
	}
	address, err := kernel.NewAddress(point, text)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetQuoteQuery(address)
	if err != nil {
		return respondError(ctx, err)
	}

	quote, err := s.getQuoteHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, QuoteResponse{
		WarehouseAddress:   addressPayload(quote.WarehouseAddress),
		DistanceKm:         quote.DistanceKm,
		DistancePriceCents: quote.DistancePrice.Cents(),
		DailyRateCents:     quote.DailyRate.Cents(),
	})
}

// CreateOrder handles POST /api/v1/orders - opens a storage engagement for
// the calling student. The Idempotency-Key header makes retries safe.
func (s *Server) CreateOrder(ctx echo.Context) error {
	identity, ok := requireRole(ctx, ports.RoleStudent)
	if !ok {
		return nil
	}

	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}
	if err := ctx.Validate(&req); err != nil {
		return respondError(ctx, err)
	}

	address, err := req.Address.toDomain()
	if err != nil {
		return respondError(ctx, err)
	}
	price, err := kernel.NewMoney(req.TotalPriceCents)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(
		identity.ID,
		req.Volume,
		price,
		address,
		req.PickupTime,
		req.ReturnTime,
		ctx.Request().Header.Get("Idempotency-Key"),
		req.PaymentReference,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderResponse(created))
}

// CreateReturnJob handles POST /api/v1/orders/return - schedules the return
// delivery for the caller's active order.
func (s *Server) CreateReturnJob(ctx echo.Context) error {
	identity, ok := requireRole(ctx, ports.RoleStudent)
	if !ok {
		return nil
	}

	var req CreateReturnRequest
	if err := ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}
	if err := ctx.Validate(&req); err != nil {
		return respondError(ctx, err)
	}

	var returnAddress *kernel.Address
	if req.Address != nil {
		address, err := req.Address.toDomain()
		if err != nil {
			return respondError(ctx, err)
		}
		returnAddress = &address
	}

	cmd, err := commands.NewCreateReturnJobCommand(identity.ID, returnAddress, req.ReturnTime)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.createReturnJobHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	status := http.StatusCreated
	if result.AlreadyExists {
		status = http.StatusOK
	}
	return ctx.JSON(status, ReturnJobResponse{
		Job:           jobResponse(result.Job),
		AlreadyExists: result.AlreadyExists,
		LateFeeCents:  result.LateFee.Cents(),
		RefundCents:   result.Refund.Cents(),
	})
}

// CancelOrder handles POST /api/v1/orders/cancel - cancels the caller's
// pending order.
func (s *Server) CancelOrder(ctx echo.Context) error {
	identity, ok := requireRole(ctx, ports.RoleStudent)
	if !ok {
		return nil
	}

	cmd, err := commands.NewCancelOrderCommand(identity.ID)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CancelOrderResponse{
		Cancelled: result.Cancelled,
		Message:   result.Message,
	})
}

// GetAvailableJobs handles GET /api/v1/jobs/available - lists unclaimed jobs.
func (s *Server) GetAvailableJobs(ctx echo.Context) error {
	views, err := s.getAvailableJobsHandler.Handle(ctx.Request().Context(), queries.NewGetAvailableJobsQuery())
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]JobResponse, len(views))
	for i, view := range views {
		response[i] = jobViewResponse(view)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetJobs handles GET /api/v1/jobs - lists jobs by exactly one of moverId,
// studentId or orderId.
func (s *Server) GetJobs(ctx echo.Context) error {
	moverID, err := optionalUUIDParam(ctx, "moverId")
	if err != nil {
		return respondError(ctx, err)
	}
	studentID, err := optionalUUIDParam(ctx, "studentId")
	if err != nil {
		return respondError(ctx, err)
	}
	orderID, err := optionalUUIDParam(ctx, "orderId")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetJobsQuery(moverID, studentID, orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	views, err := s.getJobsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]JobResponse, len(views))
	for i, view := range views {
		response[i] = jobViewResponse(view)
	}
	return ctx.JSON(http.StatusOK, response)
}

// ClaimJob handles POST /api/v1/jobs/:id/claim - the calling mover claims an
// available job. Exactly one concurrent claimer wins; the rest get 409.
func (s *Server) ClaimJob(ctx echo.Context) error {
	identity, ok := requireRole(ctx, ports.RoleMover)
	if !ok {
		return nil
	}

	jobID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewClaimJobCommand(jobID, identity.ID)
	if err != nil {
		return respondError(ctx, err)
	}

	claimed, err := s.claimJobHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, jobResponse(claimed))
}

// RequestConfirmation handles POST /api/v1/jobs/:id/arrival - the assigned
// mover announces arrival and asks the student to confirm the handoff.
func (s *Server) RequestConfirmation(ctx echo.Context) error {
	identity, ok := requireRole(ctx, ports.RoleMover)
	if !ok {
		return nil
	}

	jobID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewRequestConfirmationCommand(jobID, identity.ID)
	if err != nil {
		return respondError(ctx, err)
	}

	updated, err := s.requestConfirmationHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, jobResponse(updated))
}

// ConfirmHandoff handles POST /api/v1/jobs/:id/confirm - the owning student
// confirms the handoff requested by the mover.
func (s *Server) ConfirmHandoff(ctx echo.Context) error {
	identity, ok := requireRole(ctx, ports.RoleStudent)
	if !ok {
		return nil
	}

	jobID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewConfirmHandoffCommand(jobID, identity.ID)
	if err != nil {
		return respondError(ctx, err)
	}

	updated, err := s.confirmHandoffHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, jobResponse(updated))
}

// MarkStored handles POST /api/v1/jobs/:id/stored - the assigned mover marks
// the goods as placed in the warehouse.
func (s *Server) MarkStored(ctx echo.Context) error {
	identity, ok := requireRole(ctx, ports.RoleMover)
	if !ok {
		return nil
	}

	jobID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewMarkStoredCommand(jobID, identity.ID)
	if err != nil {
		return respondError(ctx, err)
	}

	updated, err := s.markStoredHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, jobResponse(updated))
}

// GetSmartRoute handles GET /api/v1/movers/:id/route - plans the
// earnings-maximizing itinerary for the calling mover. Movers may only plan
// for themselves.
func (s *Server) GetSmartRoute(ctx echo.Context) error {
	identity, ok := requireRole(ctx, ports.RoleMover)
	if !ok {
		return nil
	}

	moverID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}
	if !moverID.IsEqual(identity.ID) {
		return respondError(ctx, errs.NewUnauthorizedError(identity.ID.String(), "plan another mover's route"))
	}

	lat, err := parseFloatParam(ctx, "lat")
	if err != nil {
		return respondError(ctx, err)
	}
	lon, err := parseFloatParam(ctx, "lon")
	if err != nil {
		return respondError(ctx, err)
	}
	origin, err := kernel.NewGeoPoint(lat, lon)
	if err != nil {
		return respondError(ctx, err)
	}

	maxDuration, err := optionalDurationMinutes(ctx, "maxDuration")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetSmartRouteQuery(moverID, origin, time.Now().UTC(), maxDuration)
	if err != nil {
		return respondError(ctx, err)
	}

	plan, err := s.getSmartRouteHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, routePlanResponse(plan))
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func parseFloatParam(ctx echo.Context, name string) (float64, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return 0, errs.NewValueIsRequiredError(name)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return value, nil
}

func optionalUUIDParam(ctx echo.Context, name string) (*kernel.UUID, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return &id, nil
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

// optionalDurationMinutes reads a whole-minute duration query parameter.
// Absent means zero, which the planner treats as unbounded; a supplied
// value must be a positive number of minutes.
func optionalDurationMinutes(ctx echo.Context, name string) (time.Duration, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	minutes, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	if minutes <= 0 {
		return 0, errs.NewValueIsInvalidError(name)
	}
	return time.Duration(minutes) * time.Minute, nil
}
