package ports

import (
	"context"

	"orders/internal/core/domain/model/outbox"
)

// OutboxRepository defines the persistence contract for outbox messages.
// Messages are added inside the same transaction as the order mutation that
// produced them; the dispatcher later reads pending rows and marks them.
type OutboxRepository interface {
	// Add persists a new outbox message in the ambient transaction.
	Add(ctx context.Context, message *outbox.Message) error

	// Update persists delivery-state changes (published marker, attempts).
	Update(ctx context.Context, message *outbox.Message) error

	// GetPending retrieves up to limit pending messages, oldest first.
	GetPending(ctx context.Context, limit int) ([]*outbox.Message, error)
}
