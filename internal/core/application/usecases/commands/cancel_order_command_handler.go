package commands

import (
	"context"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/model/outbox"
	"orders/internal/pkg/errs"
)

// CancelOrderCommandHandler handles the business logic for order cancellation.
// The cancelled status and the order.cancelled event commit atomically; the
// version-checked write ensures a concurrent transition cannot be overwritten.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancellation command. Ownership is strict: a caller
// who is not the owner gets a not-authorized error even if they are staff.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if !aggregate.IsOwnedBy(cmd.CallerID()) {
		return errs.NewNotAuthorizedError(cmd.CallerID(), "order "+cmd.OrderID().String())
	}

	if err = aggregate.Cancel(); err != nil {
		return err
	}

	cancelledMessage, err := outbox.NewMessage(
		order.ExchangeOrderEvents, order.EventOrderCancelled, order.NewOrderCancelledData(aggregate))
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.OutboxRepository().Add(ctx, cancelledMessage); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
