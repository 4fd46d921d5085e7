// Package outboxrepo provides persistence for transactional-outbox messages.
// Rows are written in the same transaction as the order mutation that
// produced them and consumed by the outbox dispatcher job.
package outboxrepo

import (
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/outbox"

	"github.com/google/uuid"
)

// MessageDTO is the database representation of an outbox message.
type MessageDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Exchange    string
	RoutingKey  string
	Payload     []byte
	Status      string `gorm:"index"`
	Attempts    int
	CreatedAt   time.Time `gorm:"index"`
	PublishedAt *time.Time
}

// TableName overrides GORM's default naming convention.
func (MessageDTO) TableName() string {
	return "outbox_messages"
}

// fromDomain converts an outbox message to its database representation.
func fromDomain(message *outbox.Message) MessageDTO {
	return MessageDTO{
		ID:          message.ID().Bytes(),
		Exchange:    message.Exchange(),
		RoutingKey:  message.RoutingKey(),
		Payload:     message.Payload(),
		Status:      message.Status().String(),
		Attempts:    message.Attempts(),
		CreatedAt:   message.CreatedAt(),
		PublishedAt: message.PublishedAt(),
	}
}

// toDomain converts a database row back into an outbox message.
func toDomain(dto MessageDTO) (*outbox.Message, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status := outbox.Unknown
	switch dto.Status {
	case outbox.Pending.String():
		status = outbox.Pending
	case outbox.Published.String():
		status = outbox.Published
	}

	return outbox.RestoreMessage(
		id,
		dto.Exchange,
		dto.RoutingKey,
		dto.Payload,
		status,
		dto.Attempts,
		dto.CreatedAt,
		dto.PublishedAt,
	)
}
