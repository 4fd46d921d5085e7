package commands

import (
	"context"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/model/outbox"
)

// UpdateOrderStatusCommandHandler handles the internal update path used by
// trusted services. Entering Confirm announces shipment.created with the full
// shipping address; entering Delivered announces shipment.confirm. A request
// against an already delivered order is rejected before any field is applied.
// Events and the order write share one transaction, and the version-checked
// update makes exactly one of two racing transitions win.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateOrderStatusCommandHandler creates a handler for internal order updates.
func NewUpdateOrderStatusCommandHandler(uowFactory OrderUoWFactory) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the update command.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
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

	// A delivered order accepts no further change, not even to payment
	// status or tracking number.
	if aggregate.Status() == order.Delivered {
		return order.ErrOrderIsDelivered
	}

	var messages []*outbox.Message

	if cmd.HasStatus() {
		if err = aggregate.ChangeStatus(cmd.Status()); err != nil {
			return err
		}

		messages, err = shipmentMessages(aggregate, cmd.Status())
		if err != nil {
			return err
		}
	}

	if cmd.PaymentStatus() != "" {
		if err = aggregate.SetPaymentStatus(cmd.PaymentStatus()); err != nil {
			return err
		}
	}

	if cmd.TrackingNumber() != "" {
		if err = aggregate.SetTrackingNumber(cmd.TrackingNumber()); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if len(messages) > 0 {
		outboxRepo := uow.OutboxRepository()
		for _, message := range messages {
			if err = outboxRepo.Add(ctx, message); err != nil {
				return err
			}
		}
	}

	return uow.Commit(ctx)
}

// shipmentMessages builds the shipping events announced by a status change.
func shipmentMessages(aggregate *order.Order, status order.Status) ([]*outbox.Message, error) {
	switch status {
	case order.Confirm:
		message, err := outbox.NewMessage(
			order.ExchangeShippingEvents, order.EventShipmentCreated, order.NewShipmentCreatedData(aggregate))
		if err != nil {
			return nil, err
		}
		return []*outbox.Message{message}, nil
	case order.Delivered:
		message, err := outbox.NewMessage(
			order.ExchangeShippingEvents, order.EventShipmentConfirm, order.NewShipmentConfirmData(aggregate))
		if err != nil {
			return nil, err
		}
		return []*outbox.Message{message}, nil
	default:
		return nil, nil
	}
}
