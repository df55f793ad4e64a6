package commands_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/outbox"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByIdempotencyKey(ctx context.Context, key string) (*order.Order, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetActiveByStudent(ctx context.Context, studentID kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockJobRepository struct{ mock.Mock }

func (m *MockJobRepository) Add(ctx context.Context, j *job.Job) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}

func (m *MockJobRepository) Update(ctx context.Context, j *job.Job) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}

func (m *MockJobRepository) Get(ctx context.Context, id kernel.UUID) (*job.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*job.Job), args.Error(1)
}

func (m *MockJobRepository) ClaimAvailable(ctx context.Context, jobID, moverID kernel.UUID) (bool, error) {
	args := m.Called(ctx, jobID, moverID)
	return args.Bool(0), args.Error(1)
}

func (m *MockJobRepository) GetAllAvailable(ctx context.Context) ([]*job.Job, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*job.Job), args.Error(1)
}

func (m *MockJobRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*job.Job, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*job.Job), args.Error(1)
}

func (m *MockJobRepository) GetByMover(ctx context.Context, moverID kernel.UUID) ([]*job.Job, error) {
	args := m.Called(ctx, moverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*job.Job), args.Error(1)
}

func (m *MockJobRepository) GetByStudent(ctx context.Context, studentID kernel.UUID) ([]*job.Job, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*job.Job), args.Error(1)
}

func (m *MockJobRepository) GetActiveReturnByOrder(ctx context.Context, orderID kernel.UUID) (*job.Job, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*job.Job), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, task *outbox.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockOutboxRepository) Update(ctx context.Context, task *outbox.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockOutboxRepository) GetPending(ctx context.Context, limit int) ([]*outbox.Task, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Task), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) JobRepository() ports.JobRepository {
	args := m.Called()
	return args.Get(0).(ports.JobRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockWarehouseLocator struct{ mock.Mock }

func (m *MockWarehouseLocator) Nearest(ctx context.Context, point kernel.GeoPoint) (kernel.Address, error) {
	args := m.Called(ctx, point)
	return args.Get(0).(kernel.Address), args.Error(1)
}

// Shared fixtures.

func testAddress(t *testing.T, lat, lon float64, text string) kernel.Address {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	address, err := kernel.NewAddress(point, text)
	require.NoError(t, err)
	return address
}

var (
	testPickupTime = time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)
	testReturnTime = time.Date(2024, 8, 20, 10, 0, 0, 0, time.UTC)
)

func pendingOrder(t *testing.T, studentID kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), studentID, 20, kernel.Money(10000),
		testAddress(t, 40.7128, -74.0060, "12 Dorm Lane"),
		testAddress(t, 40.7306, -73.9866, "Warehouse 1"),
		testPickupTime, testReturnTime,
		"", "",
	)
	require.NoError(t, err)
	return o
}

func restoredOrder(t *testing.T, studentID kernel.UUID, moverID *kernel.UUID, status order.Status) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(
		kernel.NewUUID(), studentID, moverID, status, 20, kernel.Money(10000),
		testAddress(t, 40.7128, -74.0060, "12 Dorm Lane"),
		testAddress(t, 40.7306, -73.9866, "Warehouse 1"),
		nil, testPickupTime, testReturnTime,
		"", "pi_123",
	)
	require.NoError(t, err)
	return o
}

func availableStorageJob(t *testing.T, orderID, studentID kernel.UUID) *job.Job {
	t.Helper()
	j, err := job.NewJob(
		kernel.NewUUID(), orderID, studentID, job.TypeStorage, 20, kernel.Money(6000),
		testAddress(t, 40.7128, -74.0060, "12 Dorm Lane"),
		testAddress(t, 40.7306, -73.9866, "Warehouse 1"),
		testPickupTime,
	)
	require.NoError(t, err)
	return j
}

func restoredJob(
	t *testing.T,
	orderID, studentID kernel.UUID,
	moverID *kernel.UUID,
	jobType job.Type,
	status job.Status,
) *job.Job {
	t.Helper()
	j, err := job.RestoreJob(
		kernel.NewUUID(), orderID, studentID, moverID, jobType, status, 20, kernel.Money(6000),
		testAddress(t, 40.7128, -74.0060, "12 Dorm Lane"),
		testAddress(t, 40.7306, -73.9866, "Warehouse 1"),
		testPickupTime,
	)
	require.NoError(t, err)
	return j
}
