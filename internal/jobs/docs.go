// Package jobs provides scheduled background tasks for the order system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the order service.
//
// # Available Jobs
//
// 1. OutboxDispatcherJob - Runs every second to publish pending outbox messages to the broker
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(dispatchOutboxHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The dispatcher uses the cron expression "* * * * * *" which means it runs
// every second. This keeps event delivery latency low while the outbox table
// absorbs broker downtime.
//
// # Error Handling
//
// A failed publish leaves the message pending with its attempt counter
// incremented, so the next run retries it. Dispatch run failures are logged
// and never crash the scheduler.
package jobs
