// Package outbox provides the transactional-outbox message model. Domain
// events are stored in the same database transaction as the state change
// that produced them, then delivered asynchronously to the message broker
// with at-least-once semantics. This closes the dual-write gap between
// committing an order mutation and announcing it.
package outbox

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
)

// ErrMessageIsNotConstructed is returned when a Message was not created
// through NewMessage or RestoreMessage.
var ErrMessageIsNotConstructed = errors.New("Message must be created via NewMessage or RestoreMessage")

// Status is the delivery state of an outbox message.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending messages are waiting for the dispatcher to publish them.
	Pending

	// Published messages have been handed to the broker and are kept for audit.
	Published
)

// String returns the storage representation of the status.
func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Published:
		return "published"
	default:
		return "unknown"
	}
}

// Validate checks that the status is Pending or Published.
func (s Status) Validate() error {
	if s != Pending && s != Published {
		return errs.NewValueIsInvalidErrorWithCause(
			"outbox status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// envelope is the wire format consumed by downstream services: the routing
// key repeated as "event" plus the event-specific payload under "data".
type envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Message is one domain event awaiting (or retained after) broker delivery.
// The payload is the fully rendered wire envelope; rendering happens at
// enqueue time so the dispatcher needs no knowledge of event schemas.
type Message struct {
	id          kernel.UUID
	exchange    string
	routingKey  string
	payload     []byte
	status      Status
	attempts    int
	createdAt   time.Time
	publishedAt *time.Time

	isConstructed bool
}

// NewMessage creates a pending outbox message for the given exchange and
// routing key, wrapping data in the standard event envelope.
func NewMessage(exchange, routingKey string, data any) (*Message, error) {
	if exchange == "" {
		return nil, errs.NewValueIsRequiredError("exchange")
	}
	if routingKey == "" {
		return nil, errs.NewValueIsRequiredError("routingKey")
	}

	payload, err := json.Marshal(envelope{Event: routingKey, Data: data})
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("payload", err)
	}

	return &Message{
		id:            kernel.NewUUID(),
		exchange:      exchange,
		routingKey:    routingKey,
		payload:       payload,
		status:        Pending,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreMessage reconstructs a message from persistence.
func RestoreMessage(
	id kernel.UUID,
	exchange, routingKey string,
	payload []byte,
	status Status,
	attempts int,
	createdAt time.Time,
	publishedAt *time.Time,
) (*Message, error) {
	if err := errors.Join(id.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	if exchange == "" {
		return nil, errs.NewValueIsRequiredError("exchange")
	}
	if routingKey == "" {
		return nil, errs.NewValueIsRequiredError("routingKey")
	}

	return &Message{
		id:            id,
		exchange:      exchange,
		routingKey:    routingKey,
		payload:       payload,
		status:        status,
		attempts:      attempts,
		createdAt:     createdAt,
		publishedAt:   publishedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the message was properly constructed.
func (m *Message) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMessageIsNotConstructed
	}
	return nil
}

// ID returns the message's unique identifier.
func (m *Message) ID() kernel.UUID {
	return m.id
}

// Exchange returns the target topic exchange.
func (m *Message) Exchange() string {
	return m.exchange
}

// RoutingKey returns the routing key for publication.
func (m *Message) RoutingKey() string {
	return m.routingKey
}

// Payload returns the rendered wire envelope.
func (m *Message) Payload() []byte {
	return m.payload
}

// Status returns the delivery state.
func (m *Message) Status() Status {
	return m.status
}

// Attempts returns how many publish attempts have been recorded.
func (m *Message) Attempts() int {
	return m.attempts
}

// CreatedAt returns when the message was enqueued.
func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}

// PublishedAt returns when the message was handed to the broker, or nil
// while it is still pending.
func (m *Message) PublishedAt() *time.Time {
	return m.publishedAt
}

// MarkPublished records a successful hand-off to the broker.
func (m *Message) MarkPublished() {
	now := time.Now().UTC()
	m.status = Published
	m.publishedAt = &now
	m.attempts++
}

// MarkAttemptFailed records a failed publish attempt. The message stays
// pending and will be retried by the next dispatcher run.
func (m *Message) MarkAttemptFailed() {
	m.attempts++
}
