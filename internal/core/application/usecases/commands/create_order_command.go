package commands

import (
	"errors"
	"fmt"

	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrUserIDIsRequired = errors.New("user id is required")
	ErrItemsAreRequired = errors.New("at least one item is required")
)

// ItemRequest is one requested line item: the product reference and how many.
// Name and price are not part of the request; they are resolved from the
// inventory service so clients cannot set their own prices.
type ItemRequest struct {
	ProductID int
	Quantity  int
}

// CreateOrderCommand represents a request to place a new order for the
// authenticated user, with the shipping destination and requested items.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	userID  string
	address order.Address
	items   []ItemRequest

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates that the user is known, the address is complete, and every
// requested item names a product with a positive quantity.
func NewCreateOrderCommand(userID string, address order.Address, items []ItemRequest) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setUserID(userID),
		orderCommand.setAddress(address),
		orderCommand.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// UserID returns the identity of the ordering user.
func (c CreateOrderCommand) UserID() string {
	return c.userID
}

// Address returns the shipping destination.
func (c CreateOrderCommand) Address() order.Address {
	return c.address
}

// Items returns the requested line items.
func (c CreateOrderCommand) Items() []ItemRequest {
	return c.items
}

func (c *CreateOrderCommand) setUserID(userID string) error {
	if userID == "" {
		return ErrUserIDIsRequired
	}

	c.userID = userID
	return nil
}

func (c *CreateOrderCommand) setAddress(address order.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}

	c.address = address
	return nil
}

func (c *CreateOrderCommand) setItems(items []ItemRequest) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	for _, item := range items {
		if item.ProductID <= 0 {
			return fmt.Errorf("product id %d is invalid", item.ProductID)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("quantity %d is invalid for product %d", item.Quantity, item.ProductID)
		}
	}

	c.items = make([]ItemRequest, len(items))
	copy(c.items, items)
	return nil
}
