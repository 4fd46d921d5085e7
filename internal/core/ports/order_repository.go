package ports

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order together with its line items in the ambient
	// transaction. The order must be valid and not already exist.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order using a version-checked
	// conditional write. It returns a version-conflict error when a
	// concurrent update won, so exactly one status transition succeeds.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its unique identifier, items included.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
