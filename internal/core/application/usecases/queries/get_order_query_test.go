package queries_test

import (
	"testing"

	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery_Success(t *testing.T) {
	// Arrange
	orderID := kernel.NewUUID()

	// Act
	query, err := queries.NewGetOrderQuery(orderID, "user-1", true)

	// Assert
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, orderID, query.OrderID())
	assert.Equal(t, "user-1", query.CallerID())
	assert.True(t, query.IsStaff())
}

func TestNewGetOrderQuery_InvalidOrderID(t *testing.T) {
	// Act
	_, err := queries.NewGetOrderQuery(kernel.UUID{}, "user-1", false)

	// Assert
	require.Error(t, err)
}

func TestNewGetOrderQuery_EmptyCaller(t *testing.T) {
	// Act
	_, err := queries.NewGetOrderQuery(kernel.NewUUID(), "", false)

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, queries.ErrCallerIDIsRequired)
}

func TestGetOrderQuery_Validate_ZeroValue(t *testing.T) {
	// Arrange
	var query queries.GetOrderQuery // zero value, not constructed via constructor

	// Act
	err := query.Validate()

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
}

func TestNewGetMyOrdersQuery_Success(t *testing.T) {
	// Act
	query, err := queries.NewGetMyOrdersQuery("user-1")

	// Assert
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, "user-1", query.CallerID())
}

func TestNewGetMyOrdersQuery_EmptyCaller(t *testing.T) {
	// Act
	_, err := queries.NewGetMyOrdersQuery("")

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, queries.ErrCallerIDIsRequired)
}

func TestNewGetAllOrdersQuery_Success(t *testing.T) {
	// Act
	query := queries.NewGetAllOrdersQuery()

	// Assert
	require.NoError(t, query.Validate())
}

func TestGetAllOrdersQuery_Validate_ZeroValue(t *testing.T) {
	// Arrange
	var query queries.GetAllOrdersQuery // zero value, not constructed via constructor

	// Act
	err := query.Validate()

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, queries.ErrGetAllOrdersQueryIsNotConstructed)
}
