package queries

import (
	"context"
	"errors"

	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves a single order from the database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. A missing order yields a not-found error; a
// caller who is neither staff nor the owner gets a not-authorized error.
// The lookup runs before the ownership check so the two cases stay
// distinguishable.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	var dto orderrepo.OrderDTO
	err := h.db.WithContext(ctx).
		Preload("Items").
		First(&dto, "id = ?", query.OrderID().Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return OrderResponse{}, err
	}

	if !query.IsStaff() && dto.UserID != query.CallerID() {
		return OrderResponse{}, errs.NewNotAuthorizedError(
			query.CallerID(), "order "+query.OrderID().String())
	}

	return orderResponseFromDTO(dto)
}
