package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"gorm.io/gorm"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/identity"
	"dispatch/internal/adapters/out/payments"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/jobrepo"
	"dispatch/internal/adapters/out/postgres/moverrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/outboxrepo"
	"dispatch/internal/adapters/out/redispubsub"
	"dispatch/internal/adapters/out/warehouses"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"

	"github.com/labstack/echo/v4"
)

// CompositionRoot wires adapters, domain services and use-case handlers.
// Everything that can fail is constructed here, so a misconfiguration
// aborts startup instead of surfacing on the first request.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	settlement services.Settlement
	policy     services.NotificationPolicy
	planner    services.RoutePlanner
	warehouses *warehouses.StaticLocator
	movers     *moverrepo.GormMoverRepository
	payments   *payments.Client
	verifier   *identity.Verifier
	notifier   *redispubsub.RedisNotifier

	getQuoteHandler      queries.GetQuoteQueryHandler
	getSmartRouteHandler queries.GetSmartRouteQueryHandler
}

// NewCompositionRoot builds the object graph and migrates the schema.
func NewCompositionRoot(configs Config, gormDB *gorm.DB) (*CompositionRoot, error) {
	if err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&jobrepo.JobDTO{},
		&outboxrepo.TaskDTO{},
		&moverrepo.MoverDTO{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	storageShare, err := parseCents(configs.StorageSharePercent, "STORAGE_SHARE_PERCENT")
	if err != nil {
		return nil, err
	}
	lateFee, err := parseMoney(configs.LateFeePerDayCents, "LATE_FEE_PER_DAY_CENTS")
	if err != nil {
		return nil, err
	}
	settlement, err := services.NewSettlement(storageShare, lateFee)
	if err != nil {
		return nil, fmt.Errorf("settlement tariffs: %w", err)
	}

	pricePerKm, err := parseMoney(configs.PricePerKmCents, "PRICE_PER_KM_CENTS")
	if err != nil {
		return nil, err
	}
	dailyRate, err := parseMoney(configs.DailyStorageRateCents, "DAILY_STORAGE_RATE_CENTS")
	if err != nil {
		return nil, err
	}

	locator, err := defaultWarehouses(configs)
	if err != nil {
		return nil, err
	}

	notifier, err := redispubsub.NewRedisNotifier(redispubsub.NewClient(configs.RedisAddr))
	if err != nil {
		return nil, fmt.Errorf("redis notifier: %w", err)
	}

	root := &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		settlement: settlement,
		policy:     services.NewNotificationPolicy(),
		planner:    services.NewRoutePlanner(),
		warehouses: locator,
		movers:     moverrepo.NewGormMoverRepository(gormDB),
		payments:   payments.NewClient(configs.PaymentAPIURL, configs.PaymentAPIKey),
		verifier:   identity.NewVerifier(configs.AuthAPIURL),
		notifier:   notifier,
	}

	root.getQuoteHandler, err = queries.NewGetQuoteQueryHandler(locator, pricePerKm, dailyRate)
	if err != nil {
		return nil, fmt.Errorf("quote handler: %w", err)
	}
	root.getSmartRouteHandler, err = queries.NewGetSmartRouteQueryHandler(gormDB, root.movers, root.planner)
	if err != nil {
		return nil, fmt.Errorf("smart route handler: %w", err)
	}

	return root, nil
}

// Logger returns the application logger.
func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) commandUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.commandUoWFactory(), c.warehouses, c.settlement, c.policy)
}

func (c *CompositionRoot) CreateCreateReturnJobCommandHandler() commands.CreateReturnJobCommandHandler {
	return commands.NewCreateReturnJobCommandHandler(c.commandUoWFactory(), c.settlement, c.policy)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.commandUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateClaimJobCommandHandler() commands.ClaimJobCommandHandler {
	return commands.NewClaimJobCommandHandler(c.commandUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateRequestConfirmationCommandHandler() commands.RequestConfirmationCommandHandler {
	return commands.NewRequestConfirmationCommandHandler(c.commandUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateConfirmHandoffCommandHandler() commands.ConfirmHandoffCommandHandler {
	return commands.NewConfirmHandoffCommandHandler(c.commandUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateMarkStoredCommandHandler() commands.MarkStoredCommandHandler {
	return commands.NewMarkStoredCommandHandler(c.commandUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateGetQuoteQueryHandler() queries.GetQuoteQueryHandler {
	return c.getQuoteHandler
}

func (c *CompositionRoot) CreateGetAvailableJobsQueryHandler() queries.GetAvailableJobsQueryHandler {
	return queries.NewGetAvailableJobsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetJobsQueryHandler() queries.GetJobsQueryHandler {
	return queries.NewGetJobsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSmartRouteQueryHandler() queries.GetSmartRouteQueryHandler {
	return c.getSmartRouteHandler
}

// CreateJobManager builds the background job manager with the outbox sender.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	dispatcher, err := jobs.NewOutboxDispatcher(
		outboxrepo.NewGormOutboxRepository(c.gormDB),
		c.notifier,
		c.payments,
		c.logger,
	)
	if err != nil {
		return nil, fmt.Errorf("outbox dispatcher: %w", err)
	}
	return jobs.NewJobManager(dispatcher, c.logger), nil
}

// CreateRouter builds the HTTP surface over the wired handlers.
func (c *CompositionRoot) CreateRouter() *echo.Echo {
	createOrder := c.CreateCreateOrderCommandHandler()
	createReturnJob := c.CreateCreateReturnJobCommandHandler()
	cancelOrder := c.CreateCancelOrderCommandHandler()
	claimJob := c.CreateClaimJobCommandHandler()
	requestConfirmation := c.CreateRequestConfirmationCommandHandler()
	confirmHandoff := c.CreateConfirmHandoffCommandHandler()
	markStored := c.CreateMarkStoredCommandHandler()

	server := httpin.NewServer(
		&createOrder,
		&createReturnJob,
		&cancelOrder,
		&claimJob,
		&requestConfirmation,
		&confirmHandoff,
		&markStored,
		c.CreateGetQuoteQueryHandler(),
		c.CreateGetAvailableJobsQueryHandler(),
		c.CreateGetJobsQueryHandler(),
		c.CreateGetSmartRouteQueryHandler(),
	)
	return httpin.NewRouter(server, c.verifier)
}

func defaultWarehouses(configs Config) (*warehouses.StaticLocator, error) {
	lat, err := strconv.ParseFloat(configs.WarehouseLat, 64)
	if err != nil {
		return nil, fmt.Errorf("WAREHOUSE_LAT: %w", err)
	}
	lon, err := strconv.ParseFloat(configs.WarehouseLon, 64)
	if err != nil {
		return nil, fmt.Errorf("WAREHOUSE_LON: %w", err)
	}
	point, err := kernel.NewGeoPoint(lat, lon)
	if err != nil {
		return nil, err
	}
	site, err := kernel.NewAddress(point, configs.WarehouseAddress)
	if err != nil {
		return nil, err
	}
	return warehouses.NewStaticLocator([]kernel.Address{site})
}

func parseCents(raw, key string) (int64, error) {
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return value, nil
}

func parseMoney(raw, key string) (kernel.Money, error) {
	cents, err := parseCents(raw, key)
	if err != nil {
		return 0, err
	}
	money, err := kernel.NewMoney(cents)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return money, nil
}

// FuncUoWFactory adapts a closure to the commands.UoWFactory interface.
type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

var _ ports.UnitOfWorkFactory = (*postgres.GormUnitOfWorkFactory)(nil)
