package outboxrepo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/outboxrepo"
	"dispatch/internal/core/domain/model/outbox"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type OutboxRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *outboxrepo.GormOutboxRepository
}

func (suite *OutboxRepositoryIntegrationTestSuite) SetupSuite() {
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

	db, err := gorm.Open(gorm_postgres.New(gorm_postgres.Config{
		DriverName: "postgres",
		DSN:        dsn,
	}), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&outboxrepo.TaskDTO{})
	suite.Require().NoError(err)

	suite.repo = outboxrepo.NewGormOutboxRepository(db)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *OutboxRepositoryIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE outbox_tasks CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *OutboxRepositoryIntegrationTestSuite) newTask(event string) *outbox.Task {
	payload, err := outbox.NewNotificationPayload(event, []string{"movers"}, nil)
	suite.Require().NoError(err)
	task, err := outbox.NewTask(outbox.KindNotification, payload)
	suite.Require().NoError(err)
	return task
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestGetPending_OldestFirstAndLimited() {
	ctx := context.Background()

	first := suite.newTask("job.created")
	second := suite.newTask("job.updated")
	third := suite.newTask("order.updated")
	for _, task := range []*outbox.Task{first, second, third} {
		suite.Require().NoError(suite.repo.Add(ctx, task))
		time.Sleep(5 * time.Millisecond)
	}

	pending, err := suite.repo.GetPending(ctx, 2)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 2)
	suite.True(pending[0].ID().IsEqual(first.ID()))
	suite.True(pending[1].ID().IsEqual(second.ID()))
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestUpdate_SentTasksLeaveTheQueue() {
	ctx := context.Background()
	task := suite.newTask("job.created")
	suite.Require().NoError(suite.repo.Add(ctx, task))

	task.MarkSent()
	suite.Require().NoError(suite.repo.Update(ctx, task))

	pending, err := suite.repo.GetPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Empty(pending)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestUpdate_FailuresRetryUntilParked() {
	ctx := context.Background()
	task := suite.newTask("job.created")
	suite.Require().NoError(suite.repo.Add(ctx, task))

	// four failures keep it pending
	for range 4 {
		task.RecordFailure(errors.New("redis unreachable"))
	}
	suite.Require().NoError(suite.repo.Update(ctx, task))

	pending, err := suite.repo.GetPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.Equal(4, pending[0].Attempts())
	suite.Equal("redis unreachable", pending[0].LastError())

	// the fifth parks it
	task.RecordFailure(errors.New("redis unreachable"))
	suite.Require().NoError(suite.repo.Update(ctx, task))

	pending, err = suite.repo.GetPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Empty(pending)
}

func TestOutboxRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OutboxRepositoryIntegrationTestSuite))
}
