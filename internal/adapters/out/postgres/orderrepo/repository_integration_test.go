package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	// lib/pq as the SQL driver so unique violations surface as *pq.Error
	db, err := gorm.Open(gorm_postgres.New(gorm_postgres.Config{
		DriverName: "postgres",
		DSN:        dsn,
	}), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{})
	suite.Require().NoError(err)

	suite.repo = orderrepo.NewGormOrderRepository(db)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) address(lat, lon float64, text string) kernel.Address {
	point, err := kernel.NewGeoPoint(lat, lon)
	suite.Require().NoError(err)
	address, err := kernel.NewAddress(point, text)
	suite.Require().NoError(err)
	return address
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(studentID kernel.UUID, idempotencyKey string) *order.Order {
	o, err := order.NewOrder(
		kernel.NewUUID(),
		studentID,
		3,
		kernel.Money(10000),
		suite.address(40.7128, -74.0060, "12 Dorm Lane"),
		suite.address(40.7580, -73.9855, "1 Warehouse Way"),
		time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 8, 20, 10, 0, 0, 0, time.UTC),
		idempotencyKey,
		"pi_123",
	)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	o := suite.newOrder(kernel.NewUUID(), "key-1")

	suite.Require().NoError(suite.repo.Add(ctx, o))

	got, err := suite.repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(got.ID().IsEqual(o.ID()))
	suite.Equal(order.StatusPending, got.Status())
	suite.Equal(kernel.Money(10000), got.Price())
	suite.Equal("key-1", got.IdempotencyKey())
	suite.Equal("pi_123", got.PaymentReference())
	suite.Nil(got.ReturnAddress())
	suite.Nil(got.Mover())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateIdempotencyKeyConflicts() {
	ctx := context.Background()

	suite.Require().NoError(suite.repo.Add(ctx, suite.newOrder(kernel.NewUUID(), "dup-key")))

	err := suite.repo.Add(ctx, suite.newOrder(kernel.NewUUID(), "dup-key"))
	suite.Require().ErrorIs(err, errs.ErrConflict)

	got, err := suite.repo.GetByIdempotencyKey(ctx, "dup-key")
	suite.Require().NoError(err)
	suite.Equal("dup-key", got.IdempotencyKey())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_SecondPendingOrderForStudentConflicts() {
	ctx := context.Background()
	studentID := kernel.NewUUID()

	suite.Require().NoError(suite.repo.Add(ctx, suite.newOrder(studentID, "")))

	err := suite.repo.Add(ctx, suite.newOrder(studentID, ""))
	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_MissingKeysNeverCollide() {
	ctx := context.Background()

	suite.Require().NoError(suite.repo.Add(ctx, suite.newOrder(kernel.NewUUID(), "")))
	suite.Require().NoError(suite.repo.Add(ctx, suite.newOrder(kernel.NewUUID(), "")))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsTransitionAndReturnAddress() {
	ctx := context.Background()
	o := suite.newOrder(kernel.NewUUID(), "")
	suite.Require().NoError(suite.repo.Add(ctx, o))

	moverID := kernel.NewUUID()
	suite.Require().NoError(o.AssignMover(moverID))
	returnAddress := suite.address(40.7000, -74.0100, "77 Summer Sublet")
	suite.Require().NoError(o.ScheduleReturn(returnAddress, time.Date(2024, 8, 22, 10, 0, 0, 0, time.UTC)))
	suite.Require().NoError(suite.repo.Update(ctx, o))

	got, err := suite.repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusAccepted, got.Status())
	suite.Require().NotNil(got.Mover())
	suite.True(got.Mover().IsEqual(moverID))
	suite.Require().NotNil(got.ReturnAddress())
	suite.Equal("77 Summer Sublet", got.ReturnAddress().Text())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetActiveByStudent() {
	ctx := context.Background()
	studentID := kernel.NewUUID()

	_, err := suite.repo.GetActiveByStudent(ctx, studentID)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	o := suite.newOrder(studentID, "")
	suite.Require().NoError(suite.repo.Add(ctx, o))

	got, err := suite.repo.GetActiveByStudent(ctx, studentID)
	suite.Require().NoError(err)
	suite.True(got.ID().IsEqual(o.ID()))

	suite.Require().NoError(o.Cancel())
	suite.Require().NoError(suite.repo.Update(ctx, o))

	_, err = suite.repo.GetActiveByStudent(ctx, studentID)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound, "terminal orders are not active")
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
