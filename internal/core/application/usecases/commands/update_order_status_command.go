package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/guard"
)

var (
	ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
		"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
	)
	ErrNothingToUpdate = errors.New("at least one of status, payment status or tracking number is required")
)

// UpdateOrderStatusCommand represents an internal update pushed by another
// service: a lifecycle status change, a payment status label, a tracking
// number, or any combination. Absent fields are left untouched.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	status         order.Status
	paymentStatus  string
	trackingNumber string

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a command for the internal update path.
// status may be empty; when present it must name a known lifecycle status.
// At least one field must be provided.
func NewUpdateOrderStatusCommand(
	orderID kernel.UUID, status, paymentStatus, trackingNumber string,
) (UpdateOrderStatusCommand, error) {
	updateCommand := UpdateOrderStatusCommand{
		paymentStatus:  paymentStatus,
		trackingNumber: trackingNumber,
		guard:          guard.NewConstructorGuard(),
	}

	if err := updateCommand.setOrderID(orderID); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	if status != "" {
		parsed, err := order.StatusFromString(status)
		if err != nil {
			return UpdateOrderStatusCommand{}, err
		}
		updateCommand.status = parsed
	}

	if updateCommand.status == order.Unknown && paymentStatus == "" && trackingNumber == "" {
		return UpdateOrderStatusCommand{}, ErrNothingToUpdate
	}

	return updateCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to update.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// HasStatus reports whether a lifecycle status change was requested.
func (c UpdateOrderStatusCommand) HasStatus() bool {
	return c.status != order.Unknown
}

// Status returns the requested lifecycle status. Only meaningful when
// HasStatus reports true.
func (c UpdateOrderStatusCommand) Status() order.Status {
	return c.status
}

// PaymentStatus returns the requested payment label, empty when absent.
func (c UpdateOrderStatusCommand) PaymentStatus() string {
	return c.paymentStatus
}

// TrackingNumber returns the requested tracking number, empty when absent.
func (c UpdateOrderStatusCommand) TrackingNumber() string {
	return c.trackingNumber
}

func (c *UpdateOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
