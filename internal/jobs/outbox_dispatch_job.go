package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// OutboxDispatchJob runs the outbox dispatcher on a fixed schedule.
// Runs every five seconds; the outbox tolerates overlapping rounds because
// a sent task leaves the pending queue before the next round reads it.
type OutboxDispatchJob struct {
	dispatcher *OutboxDispatcher
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewOutboxDispatchJob creates the scheduled wrapper around the dispatcher.
func NewOutboxDispatchJob(dispatcher *OutboxDispatcher, logger *slog.Logger) *OutboxDispatchJob {
	return &OutboxDispatchJob{
		dispatcher: dispatcher,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "outbox_dispatch_job"),
	}
}

// Start begins dispatching every five seconds.
func (j *OutboxDispatchJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * * *", func() {
		ctx := context.Background()
		if err := j.dispatcher.DispatchPending(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Outbox dispatch round failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox dispatch job started (running every five seconds)")
	return nil
}

// Stop stops the job.
func (j *OutboxDispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Outbox dispatch job stopped")
}
