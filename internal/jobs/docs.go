// Package jobs provides scheduled background tasks for the dispatch engine.
//
// The single job here, OutboxDispatchJob, runs every five seconds via
// github.com/robfig/cron/v3 and drains the durable outbox: notification
// tasks fan out to their realtime rooms, refund tasks go to the payment
// gateway. Tasks that fail keep retrying until the attempt cap parks them,
// so a flaky collaborator slows delivery down but never loses it.
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(dispatcher, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
