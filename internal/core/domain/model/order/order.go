package order

import (
	"errors"
	"fmt"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder. This ensures all orders are
	// properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrOrderIsDelivered is returned when any status change is requested on
	// a delivered order. Delivered is a hard terminal state for the whole
	// status-update operation.
	ErrOrderIsDelivered = fmt.Errorf("%w: order is already delivered", ErrInvalidStatusTransition)
)

// PaymentStatusPending is the payment label every order starts with. The
// label itself is free-form: it is owned by the payment service and written
// through the internal update path without interpretation.
const PaymentStatusPending = "pending"

// Order is the aggregate root for a purchase. It owns its line items
// exclusively and carries the shipping destination, the monetary total
// computed once at creation, and the lifecycle status.
//
// Invariants:
//   - An order always has at least one item.
//   - totalAmount equals the sum of item price x quantity using the prices
//     snapshotted at creation; it is never recomputed.
//   - Status changes follow the Status transition table; once Delivered,
//     no field of the order changes again through ChangeStatus/Cancel.
//   - userID, items and the shipping address are immutable after creation.
//
// The version counter supports optimistic concurrency: the repository only
// writes an order whose stored version still matches, so exactly one of two
// concurrent transitions wins.
type Order struct {
	id             kernel.UUID
	userID         string
	totalAmount    float64
	status         Status
	paymentStatus  string
	address        Address
	trackingNumber string
	items          []Item
	version        int
	createdAt      time.Time
	updatedAt      time.Time

	isConstructed bool
}

// NewOrder creates a new pending order from snapshotted items. The total
// amount is computed here, once, from the item snapshots.
func NewOrder(id kernel.UUID, userID string, address Address, items []Item) (*Order, error) {
	now := time.Now().UTC()
	order := &Order{
		status:        Pending,
		paymentStatus: PaymentStatusPending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setUserID(userID),
		order.setAddress(address),
		order.setItems(items),
	); err != nil {
		return nil, err
	}

	for _, item := range order.items {
		order.totalAmount += item.Subtotal()
	}

	return order, nil
}

// RestoreOrder reconstructs an order from persistence. Unlike NewOrder it
// accepts the stored total, status, payment status, tracking number, version
// and timestamps as-is, validating only structural invariants.
func RestoreOrder(
	id kernel.UUID,
	userID string,
	totalAmount float64,
	status Status,
	paymentStatus string,
	address Address,
	trackingNumber string,
	items []Item,
	version int,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	order := &Order{
		totalAmount:    totalAmount,
		paymentStatus:  paymentStatus,
		trackingNumber: trackingNumber,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		isConstructed:  true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setUserID(userID),
		order.setAddress(address),
		order.setItems(items),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	order.status = status
	return order, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// UserID returns the identity of the order's owner.
func (o *Order) UserID() string {
	return o.userID
}

// TotalAmount returns the monetary total computed at creation.
func (o *Order) TotalAmount() float64 {
	return o.totalAmount
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// PaymentStatus returns the payment label written by the internal path.
func (o *Order) PaymentStatus() string {
	return o.paymentStatus
}

// Address returns the immutable shipping destination.
func (o *Order) Address() Address {
	return o.address
}

// TrackingNumber returns the shipment tracking number, if set.
func (o *Order) TrackingNumber() string {
	return o.trackingNumber
}

// Items returns the order's line items. The returned slice is a copy;
// item snapshots are write-once.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Version returns the optimistic-concurrency counter loaded from storage.
func (o *Order) Version() int {
	return o.version
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the timestamp of the last mutation.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// IsOwnedBy reports whether the given caller identity owns this order.
func (o *Order) IsOwnedBy(userID string) bool {
	return o.userID == userID
}

// Cancel withdraws the order. Cancellation is legal only while the order is
// Pending or Processing; any other state fails with ErrInvalidStatusTransition.
func (o *Order) Cancel() error {
	newStatus, err := o.status.TransitionTo(Cancelled)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// ChangeStatus moves the order to the requested lifecycle status. A delivered
// order rejects every change with ErrOrderIsDelivered; all other requests are
// checked against the status transition table.
func (o *Order) ChangeStatus(next Status) error {
	if o.status == Delivered {
		return ErrOrderIsDelivered
	}

	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// SetPaymentStatus records the payment label reported by the payment service.
// The setter itself does not gate on lifecycle status; the update flow
// rejects requests against delivered orders before any field is touched, so
// the request that delivers an order can still attach its payment label.
func (o *Order) SetPaymentStatus(paymentStatus string) error {
	if paymentStatus == "" {
		return errs.NewValueIsRequiredError("paymentStatus")
	}
	o.paymentStatus = paymentStatus
	o.touch()
	return nil
}

// SetTrackingNumber records the shipment tracking number. Like payment
// status, the setter does not gate on lifecycle status; the update flow
// holds the terminal lock.
func (o *Order) SetTrackingNumber(trackingNumber string) error {
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}
	o.trackingNumber = trackingNumber
	o.touch()
	return nil
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setUserID(userID string) error {
	if userID == "" {
		return errs.NewValueIsRequiredError("userId")
	}
	o.userID = userID
	return nil
}

func (o *Order) setAddress(address Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.address = address
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}
