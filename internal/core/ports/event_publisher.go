package ports

import "context"

// EventPublisher hands a rendered event payload to the message broker.
// A single Publish call is best effort; durable delivery comes from the
// outbox dispatcher retrying pending messages until Publish succeeds.
type EventPublisher interface {
	Publish(ctx context.Context, exchange, routingKey string, body []byte) error
}
