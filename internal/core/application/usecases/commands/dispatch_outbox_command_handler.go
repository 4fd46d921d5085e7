package commands

import (
	"context"
	"log/slog"

	"orders/internal/core/ports"
)

// DispatchOutboxCommandHandler publishes pending outbox messages to the
// broker with at-least-once semantics. A message that fails to publish keeps
// its pending status and is retried on the next run; only its attempt counter
// moves. Messages are published oldest first. The broker round trips happen
// outside any database transaction; only the status writes afterwards share
// one short transaction.
type DispatchOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewDispatchOutboxCommandHandler creates a handler for outbox dispatch runs.
func NewDispatchOutboxCommandHandler(
	uowFactory OutboxUoWFactory, publisher ports.EventPublisher, logger *slog.Logger,
) DispatchOutboxCommandHandler {
	return DispatchOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes one dispatch run and returns how many messages were published.
func (h *DispatchOutboxCommandHandler) Handle(ctx context.Context, cmd DispatchOutboxCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()

	pending, err := uow.OutboxRepository().GetPending(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	published := 0
	for _, message := range pending {
		publishErr := h.publisher.Publish(ctx, message.Exchange(), message.RoutingKey(), message.Payload())
		if publishErr != nil {
			h.logger.Warn("outbox publish failed",
				"messageId", message.ID().String(),
				"exchange", message.Exchange(),
				"routingKey", message.RoutingKey(),
				"attempts", message.Attempts()+1,
				"error", publishErr)
			message.MarkAttemptFailed()
		} else {
			message.MarkPublished()
			published++
		}
	}

	// Persist the new message states after all broker round trips, so the
	// transaction never waits on network I/O. A crash before the commit
	// leaves the rows pending and the next run republishes them.
	if err = uow.Begin(ctx); err != nil {
		return published, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outboxRepo := uow.OutboxRepository()
	for _, message := range pending {
		if err = outboxRepo.Update(ctx, message); err != nil {
			return published, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return published, err
	}

	return published, nil
}
