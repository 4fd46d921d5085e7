package commands

import (
	"context"
	"fmt"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/model/outbox"
	"orders/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for placing an order.
// Prices and names are snapshotted from the inventory service at creation, so
// every line item must resolve before anything is written. The order row, its
// items and the announcing events commit in a single transaction.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	inventory  ports.InventoryClient
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory, inventory ports.InventoryClient,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		inventory:  inventory,
	}
}

// Handle processes the order creation command and returns the created order.
// Any inventory resolution failure aborts the whole request with nothing
// persisted.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	items, err := h.resolveItems(ctx, cmd.Items())
	if err != nil {
		return nil, err
	}

	newOrder, err := order.NewOrder(kernel.NewUUID(), cmd.UserID(), cmd.Address(), items)
	if err != nil {
		return nil, err
	}

	createdMessage, err := outbox.NewMessage(
		order.ExchangeOrderEvents, order.EventOrderCreated, order.NewOrderCreatedData(newOrder))
	if err != nil {
		return nil, err
	}

	purchaseMessage, err := outbox.NewMessage(
		order.ExchangeProductEvents, order.EventPurchaseCreated, order.NewPurchaseCreatedData(newOrder))
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	outboxRepo := uow.OutboxRepository()
	if err = outboxRepo.Add(ctx, createdMessage); err != nil {
		return nil, err
	}

	if err = outboxRepo.Add(ctx, purchaseMessage); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return newOrder, nil
}

// resolveItems snapshots name and price for every requested product.
func (h *CreateOrderCommandHandler) resolveItems(
	ctx context.Context, requests []ItemRequest,
) ([]order.Item, error) {
	items := make([]order.Item, 0, len(requests))
	for _, request := range requests {
		product, err := h.inventory.GetProduct(ctx, request.ProductID)
		if err != nil {
			return nil, fmt.Errorf("resolve product %d: %w", request.ProductID, err)
		}

		item, err := order.NewItem(request.ProductID, product.Name, product.Price, request.Quantity)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, nil
}
