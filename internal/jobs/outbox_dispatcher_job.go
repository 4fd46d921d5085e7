package jobs

import (
	"context"
	"log/slog"

	"orders/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// outboxBatchSize caps how many pending messages one dispatch run publishes.
const outboxBatchSize = 50

// OutboxDispatcherJob manages the scheduled publishing of outbox messages.
// Runs every second to push pending events to the message broker.
type OutboxDispatcherJob struct {
	handler commands.DispatchOutboxCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOutboxDispatcherJob creates a new job for publishing outbox messages.
// Uses DispatchOutboxCommandHandler to drain the outbox every second.
func NewOutboxDispatcherJob(handler commands.DispatchOutboxCommandHandler, logger *slog.Logger) *OutboxDispatcherJob {
	return &OutboxDispatcherJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "outbox_dispatcher_job"),
	}
}

// Start begins the outbox dispatcher job to run every second.
func (j *OutboxDispatcherJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewDispatchOutboxCommand(outboxBatchSize)
		if err != nil {
			j.logger.ErrorContext(ctx, "Outbox dispatch command is invalid", "error", err)
			return
		}

		published, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Outbox dispatch run failed", "error", err)
			return
		}

		if published > 0 {
			j.logger.InfoContext(ctx, "Outbox messages published", "count", published)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox dispatcher job started (running every second)")
	return nil
}

// Stop stops the outbox dispatcher job.
func (j *OutboxDispatcherJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Outbox dispatcher job stopped")
}
