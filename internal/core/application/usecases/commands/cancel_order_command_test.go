package commands_test

import (
	"testing"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCancelOrderCommand_Success(t *testing.T) {
	// Arrange
	orderID := kernel.NewUUID()

	// Act
	cmd, err := commands.NewCancelOrderCommand(orderID, "user-1")

	// Assert
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, "user-1", cmd.CallerID())
}

func TestNewCancelOrderCommand_InvalidOrderID(t *testing.T) {
	// Act
	_, err := commands.NewCancelOrderCommand(kernel.UUID{}, "user-1")

	// Assert
	require.Error(t, err)
}

func TestNewCancelOrderCommand_EmptyCaller(t *testing.T) {
	// Act
	_, err := commands.NewCancelOrderCommand(kernel.NewUUID(), "")

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrUserIDIsRequired)
}

func TestCancelOrderCommand_Validate_ZeroValue(t *testing.T) {
	// Arrange
	var cmd commands.CancelOrderCommand // zero value, not constructed via constructor

	// Act
	err := cmd.Validate()

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCancelOrderCommandIsNotConstructed)
}
