package queries

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
	ErrCallerIDIsRequired = errors.New("caller id is required")
)

// GetOrderQuery retrieves a single order for an authenticated caller.
// Staff members may read any order; everyone else only their own.
type GetOrderQuery struct {
	orderID  kernel.UUID
	callerID string
	isStaff  bool

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query to retrieve one order on behalf of the
// given caller.
func NewGetOrderQuery(orderID kernel.UUID, callerID string, isStaff bool) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	if callerID == "" {
		return GetOrderQuery{}, ErrCallerIDIsRequired
	}

	return GetOrderQuery{
		orderID:  orderID,
		callerID: callerID,
		isStaff:  isStaff,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// CallerID returns the identity of the requesting user.
func (q GetOrderQuery) CallerID() string {
	return q.callerID
}

// IsStaff reports whether the caller holds the staff claim.
func (q GetOrderQuery) IsStaff() bool {
	return q.isStaff
}
