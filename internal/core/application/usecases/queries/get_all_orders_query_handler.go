package queries

import (
	"context"

	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/core/ports"

	"gorm.io/gorm"
)

// GetAllOrdersQueryHandler retrieves all orders from the database, newest
// first, and decorates each line item with the product's current catalog
// image. The per-item inventory round trips scale with the total item count
// across all orders.
type GetAllOrdersQueryHandler struct {
	db        *gorm.DB
	inventory ports.InventoryClient
}

// NewGetAllOrdersQueryHandler creates a handler for the full order listing.
func NewGetAllOrdersQueryHandler(db *gorm.DB, inventory ports.InventoryClient) GetAllOrdersQueryHandler {
	return GetAllOrdersQueryHandler{db: db, inventory: inventory}
}

// Handle executes the query.
func (h GetAllOrdersQueryHandler) Handle(ctx context.Context, query GetAllOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var dtos []orderrepo.OrderDTO
	err := h.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]OrderResponse, 0, len(dtos))
	for _, dto := range dtos {
		response, convErr := orderResponseFromDTO(dto)
		if convErr != nil {
			return nil, convErr
		}
		orders = append(orders, response)
	}

	if err = annotateImages(ctx, h.inventory, orders); err != nil {
		return nil, err
	}

	return orders, nil
}
