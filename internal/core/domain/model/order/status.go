package order

import (
	"fmt"

	"orders/internal/pkg/errs"
)

// ErrInvalidStatusTransition is returned when a requested status change is
// not present in the transition table.
var ErrInvalidStatusTransition = fmt.Errorf("status transition is not allowed")

// Status represents the lifecycle state of an order. It implements a closed
// state machine with an explicit transition table, so callers cannot move an
// order into an arbitrary or backwards state.
//
// State transitions:
//
//	Pending ──> Processing ──> Confirm ──> Delivered
//	   │    └───────┼──────────────┘           ▲
//	   │            │ (stages may be skipped forward)
//	   └────────────┴──> Cancelled
//
// Delivered and Cancelled are terminal. Cancelled is reachable only from
// Pending and Processing.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of every newly created order.
	Pending

	// Processing indicates the order has been picked up for fulfillment.
	Processing

	// Confirm indicates the order has been confirmed for shipment.
	// Entering this status announces a shipment.created event.
	Confirm

	// Delivered is the terminal success status. Once delivered, no further
	// status change is accepted. Entering it announces shipment.confirm.
	Delivered

	// Cancelled is the terminal status of an order withdrawn by its owner.
	Cancelled
)

// getStatusStrings returns the wire/storage representation of each status.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		Processing: "processing",
		Confirm:    "confirm",
		Delivered:  "delivered",
		Cancelled:  "cancelled",
	}
}

// getStatusTransitions returns the closed transition table. A status absent
// from the map is terminal. Stages may be skipped forward (an internal caller
// can move pending straight to delivered) but never revisited.
func getStatusTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:    {Processing, Confirm, Delivered, Cancelled},
		Processing: {Confirm, Delivered, Cancelled},
		Confirm:    {Delivered},
	}
}

// StatusFromString parses the wire representation of a status. Unknown
// strings are rejected rather than written verbatim.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a known status", s))
}

// String returns the lowercase wire representation of the status.
// It implements fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the status is one of the five lifecycle values.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no further status transitions are possible.
func (s Status) IsTerminal() bool {
	return len(getStatusTransitions()[s]) == 0
}

// CanTransitionTo reports whether the transition table permits moving from
// the current status to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range getStatusTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo returns next if the transition table permits it, or an error
// wrapping ErrInvalidStatusTransition otherwise.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return Unknown, err
	}

	if !s.CanTransitionTo(next) {
		return Unknown, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, s, next)
	}

	return next, nil
}
