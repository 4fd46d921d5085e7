// Package rabbitmq implements the event publisher over a RabbitMQ broker.
// Each publication declares its durable topic exchange idempotently, so the
// service works against a fresh broker without out-of-band setup.
package rabbitmq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher delivers rendered event payloads to RabbitMQ topic exchanges.
// A connection and channel are held for the publisher's lifetime; the outbox
// dispatcher retries pending messages, so a broken channel surfaces as a
// failed attempt rather than a lost event.
type Publisher struct {
	url     string
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewPublisher connects to the broker at the given AMQP URL.
func NewPublisher(url string) (*Publisher, error) {
	p := &Publisher{url: url}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Publisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("dial rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	p.conn = conn
	p.channel = channel
	return nil
}

// ensureChannel reconnects after a broker or channel failure.
func (p *Publisher) ensureChannel() error {
	if p.channel != nil && !p.channel.IsClosed() {
		return nil
	}
	if p.conn != nil && !p.conn.IsClosed() {
		channel, err := p.conn.Channel()
		if err == nil {
			p.channel = channel
			return nil
		}
	}
	return p.connect()
}

// Publish sends the payload to the named topic exchange under the routing key.
// The exchange is declared durable before every send; declaration is a no-op
// when it already exists.
func (p *Publisher) Publish(ctx context.Context, exchange, routingKey string, body []byte) error {
	if err := p.ensureChannel(); err != nil {
		return err
	}

	err := p.channel.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	err = p.channel.PublishWithContext(ctx,
		exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s to %s: %w", routingKey, exchange, err)
	}

	return nil
}

// Close releases the channel and connection.
func (p *Publisher) Close() error {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
