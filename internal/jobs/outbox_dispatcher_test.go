package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/outbox"
	"dispatch/internal/core/domain/services"
)

type MockOutboxRepository struct {
	mock.Mock
}

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
	if tasks, ok := args.Get(0).([]*outbox.Task); ok {
		return tasks, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Publish(ctx context.Context, room services.Room, payload []byte) error {
	args := m.Called(ctx, room, payload)
	return args.Error(0)
}

type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreatePaymentIntent(ctx context.Context, amount kernel.Money, currency string) (string, error) {
	args := m.Called(ctx, amount, currency)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentGateway) Refund(ctx context.Context, paymentReference string, amount *kernel.Money) error {
	args := m.Called(ctx, paymentReference, amount)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newDispatcher(t *testing.T) (*OutboxDispatcher, *MockOutboxRepository, *MockNotifier, *MockPaymentGateway) {
	t.Helper()

	tasks := new(MockOutboxRepository)
	notifier := new(MockNotifier)
	payments := new(MockPaymentGateway)

	dispatcher, err := NewOutboxDispatcher(tasks, notifier, payments, discardLogger())
	require.NoError(t, err)

	return dispatcher, tasks, notifier, payments
}

func newNotificationTask(t *testing.T, event string, rooms []string) *outbox.Task {
	t.Helper()

	payload, err := outbox.NewNotificationPayload(event, rooms, map[string]string{"orderId": "o-1"})
	require.NoError(t, err)
	task, err := outbox.NewTask(outbox.KindNotification, payload)
	require.NoError(t, err)
	return task
}

func newRefundTask(t *testing.T, reference string, amountCents *int64) *outbox.Task {
	t.Helper()

	payload, err := outbox.NewRefundPayload(reference, amountCents)
	require.NoError(t, err)
	task, err := outbox.NewTask(outbox.KindRefund, payload)
	require.NoError(t, err)
	return task
}

func TestNewOutboxDispatcher_RequiresAllDependencies(t *testing.T) {
	tasks := new(MockOutboxRepository)
	notifier := new(MockNotifier)
	payments := new(MockPaymentGateway)

	_, err := NewOutboxDispatcher(nil, notifier, payments, discardLogger())
	assert.Error(t, err)

	_, err = NewOutboxDispatcher(tasks, nil, payments, discardLogger())
	assert.Error(t, err)

	_, err = NewOutboxDispatcher(tasks, notifier, nil, discardLogger())
	assert.Error(t, err)

	_, err = NewOutboxDispatcher(tasks, notifier, payments, nil)
	assert.Error(t, err)
}

func TestOutboxDispatcher_NotificationFansOutToAllRooms(t *testing.T) {
	dispatcher, tasks, notifier, _ := newDispatcher(t)

	task := newNotificationTask(t, "job.assigned", []string{"student:s-1", "mover:m-1"})

	tasks.On("GetPending", mock.Anything, 50).Return([]*outbox.Task{task}, nil)
	notifier.On("Publish", mock.Anything, services.Room("student:s-1"), task.Payload()).Return(nil)
	notifier.On("Publish", mock.Anything, services.Room("mover:m-1"), task.Payload()).Return(nil)
	tasks.On("Update", mock.Anything, task).Return(nil)

	err := dispatcher.DispatchPending(t.Context())
	require.NoError(t, err)

	assert.Equal(t, outbox.StatusSent, task.Status())
	assert.Equal(t, 1, task.Attempts())
	tasks.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestOutboxDispatcher_RefundDeliversParsedAmount(t *testing.T) {
	dispatcher, tasks, _, payments := newDispatcher(t)

	amountCents := int64(1500)
	task := newRefundTask(t, "pi_123", &amountCents)

	tasks.On("GetPending", mock.Anything, 50).Return([]*outbox.Task{task}, nil)
	payments.On("Refund", mock.Anything, "pi_123", mock.MatchedBy(func(amount *kernel.Money) bool {
		return amount != nil && amount.Cents() == 1500
	})).Return(nil)
	tasks.On("Update", mock.Anything, task).Return(nil)

	err := dispatcher.DispatchPending(t.Context())
	require.NoError(t, err)

	assert.Equal(t, outbox.StatusSent, task.Status())
	payments.AssertExpectations(t)
}

func TestOutboxDispatcher_FullRefundPassesNilAmount(t *testing.T) {
	dispatcher, tasks, _, payments := newDispatcher(t)

	task := newRefundTask(t, "pi_456", nil)

	tasks.On("GetPending", mock.Anything, 50).Return([]*outbox.Task{task}, nil)
	payments.On("Refund", mock.Anything, "pi_456", (*kernel.Money)(nil)).Return(nil)
	tasks.On("Update", mock.Anything, task).Return(nil)

	err := dispatcher.DispatchPending(t.Context())
	require.NoError(t, err)

	assert.Equal(t, outbox.StatusSent, task.Status())
	payments.AssertExpectations(t)
}

func TestOutboxDispatcher_FailureIsRecordedAndBatchContinues(t *testing.T) {
	dispatcher, tasks, notifier, payments := newDispatcher(t)

	broken := newRefundTask(t, "pi_broken", nil)
	healthy := newNotificationTask(t, "order.cancelled", []string{"student:s-2"})

	tasks.On("GetPending", mock.Anything, 50).Return([]*outbox.Task{broken, healthy}, nil)
	payments.On("Refund", mock.Anything, "pi_broken", (*kernel.Money)(nil)).
		Return(errors.New("gateway down"))
	notifier.On("Publish", mock.Anything, services.Room("student:s-2"), healthy.Payload()).Return(nil)
	tasks.On("Update", mock.Anything, broken).Return(nil)
	tasks.On("Update", mock.Anything, healthy).Return(nil)

	err := dispatcher.DispatchPending(t.Context())
	require.NoError(t, err)

	assert.Equal(t, outbox.StatusPending, broken.Status())
	assert.Equal(t, 1, broken.Attempts())
	assert.Contains(t, broken.LastError(), "gateway down")
	assert.Equal(t, outbox.StatusSent, healthy.Status())
	tasks.AssertExpectations(t)
}

func TestOutboxDispatcher_PartialRoomFailureKeepsTaskPending(t *testing.T) {
	dispatcher, tasks, notifier, _ := newDispatcher(t)

	task := newNotificationTask(t, "job.claimed", []string{"student:s-3", "mover:m-3"})

	tasks.On("GetPending", mock.Anything, 50).Return([]*outbox.Task{task}, nil)
	notifier.On("Publish", mock.Anything, services.Room("student:s-3"), task.Payload()).Return(nil)
	notifier.On("Publish", mock.Anything, services.Room("mover:m-3"), task.Payload()).
		Return(errors.New("room unreachable"))
	tasks.On("Update", mock.Anything, task).Return(nil)

	err := dispatcher.DispatchPending(t.Context())
	require.NoError(t, err)

	assert.Equal(t, outbox.StatusPending, task.Status())
	assert.Contains(t, task.LastError(), "room unreachable")
	notifier.AssertExpectations(t)
}

func TestOutboxDispatcher_ReadFailureStopsRound(t *testing.T) {
	dispatcher, tasks, _, _ := newDispatcher(t)

	tasks.On("GetPending", mock.Anything, 50).Return(nil, errors.New("connection reset"))

	err := dispatcher.DispatchPending(t.Context())
	require.Error(t, err)
	tasks.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
