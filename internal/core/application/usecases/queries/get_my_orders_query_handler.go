package queries

import (
	"context"

	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/core/ports"

	"gorm.io/gorm"
)

// GetMyOrdersQueryHandler retrieves the caller's orders, newest first, with
// catalog images resolved per line item.
type GetMyOrdersQueryHandler struct {
	db        *gorm.DB
	inventory ports.InventoryClient
}

// NewGetMyOrdersQueryHandler creates a handler for the per-user order listing.
func NewGetMyOrdersQueryHandler(db *gorm.DB, inventory ports.InventoryClient) GetMyOrdersQueryHandler {
	return GetMyOrdersQueryHandler{db: db, inventory: inventory}
}

// Handle executes the query.
func (h GetMyOrdersQueryHandler) Handle(ctx context.Context, query GetMyOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var dtos []orderrepo.OrderDTO
	err := h.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", query.CallerID()).
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
