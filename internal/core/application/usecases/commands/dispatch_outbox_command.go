package commands

import (
	"errors"

	"orders/internal/pkg/guard"
)

var (
	ErrDispatchOutboxCommandIsNotConstructed = errors.New(
		"DispatchOutboxCommand must be created via NewDispatchOutboxCommand constructor",
	)
	ErrBatchSizeIsInvalid = errors.New("batch size must be greater than 0")
)

// DispatchOutboxCommand represents one dispatcher run over pending outbox
// messages, bounded by a batch size.
type DispatchOutboxCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

// NewDispatchOutboxCommand creates a command for a single dispatch run.
func NewDispatchOutboxCommand(batchSize int) (DispatchOutboxCommand, error) {
	dispatchCommand := DispatchOutboxCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := dispatchCommand.setBatchSize(batchSize); err != nil {
		return DispatchOutboxCommand{}, err
	}

	return dispatchCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchOutboxCommand) Validate() error {
	return c.guard.Validate(ErrDispatchOutboxCommandIsNotConstructed)
}

// BatchSize returns the maximum number of messages to publish in one run.
func (c DispatchOutboxCommand) BatchSize() int {
	return c.batchSize
}

func (c *DispatchOutboxCommand) setBatchSize(batchSize int) error {
	if batchSize <= 0 {
		return ErrBatchSizeIsInvalid
	}

	c.batchSize = batchSize
	return nil
}
