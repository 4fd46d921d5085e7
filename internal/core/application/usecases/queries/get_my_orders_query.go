package queries

import (
	"errors"

	"orders/internal/pkg/guard"
)

var ErrGetMyOrdersQueryIsNotConstructed = errors.New(
	"GetMyOrdersQuery must be created via NewGetMyOrdersQuery constructor",
)

// GetMyOrdersQuery retrieves the caller's own orders, newest first.
type GetMyOrdersQuery struct {
	callerID string

	guard guard.ConstructorGuard
}

// NewGetMyOrdersQuery creates a query listing the caller's orders.
func NewGetMyOrdersQuery(callerID string) (GetMyOrdersQuery, error) {
	if callerID == "" {
		return GetMyOrdersQuery{}, ErrCallerIDIsRequired
	}

	return GetMyOrdersQuery{
		callerID: callerID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetMyOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetMyOrdersQueryIsNotConstructed)
}

// CallerID returns the identity of the requesting user.
func (q GetMyOrdersQuery) CallerID() string {
	return q.callerID
}
