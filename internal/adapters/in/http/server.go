// Package http exposes the order service over a JSON HTTP API. The server
// coordinates between echo handlers and application use cases; the only
// logic here is request decoding, auth plumbing and status mapping.
package http

import (
	"log/slog"
	"net/http"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/auth"

	"github.com/labstack/echo/v4"
)

// Server handles the /order-api HTTP surface.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	cancelOrderHandler       commands.CancelOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler

	// Query handlers
	getOrderHandler     queries.GetOrderQueryHandler
	getAllOrdersHandler queries.GetAllOrdersQueryHandler
	getMyOrdersHandler  queries.GetMyOrdersQueryHandler

	verifier *auth.TokenVerifier
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getAllOrdersHandler queries.GetAllOrdersQueryHandler,
	getMyOrdersHandler queries.GetMyOrdersQueryHandler,
	verifier *auth.TokenVerifier,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		cancelOrderHandler:       cancelOrderHandler,
		updateOrderStatusHandler: updateOrderStatusHandler,
		getOrderHandler:          getOrderHandler,
		getAllOrdersHandler:      getAllOrdersHandler,
		getMyOrdersHandler:       getMyOrdersHandler,
		verifier:                 verifier,
		logger:                   logger,
	}
}

// RegisterRoutes attaches the /order-api routes to the echo instance.
// The internal status endpoint is reachable without a bearer token; it is
// meant to sit behind network-level trust, not end-user auth.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/order-api")
	api.GET("/health", s.Health)

	authed := api.Group("", bearerAuth(s.verifier, s.logger))
	authed.POST("/orders", s.CreateOrder)
	authed.GET("/orders", s.GetAllOrders)
	authed.GET("/my-orders", s.GetMyOrders)
	authed.GET("/orders/:id", s.GetOrder)
	authed.POST("/orders/:id/cancel", s.CancelOrder)

	api.PUT("/internal/orders/:id/status", s.UpdateOrderStatus)
}

// Health handles GET /order-api/health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /order-api/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorBody{Error: "invalid request body"})
	}

	caller := callerFrom(ctx)

	address, err := addressFromBody(request.ShippingAddress)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorBody{Error: err.Error()})
	}

	items := make([]commands.ItemRequest, 0, len(request.Items))
	for _, item := range request.Items {
		items = append(items, commands.ItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	cmd, err := commands.NewCreateOrderCommand(caller.ID, address, items)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorBody{Error: err.Error()})
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderBodyFromAggregate(created))
}

// GetAllOrders handles GET /order-api/orders.
func (s *Server) GetAllOrders(ctx echo.Context) error {
	responses, err := s.getAllOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetAllOrdersQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	bodies := make([]OrderBody, 0, len(responses))
	for _, response := range responses {
		bodies = append(bodies, orderBodyFromResponse(response))
	}

	return ctx.JSON(http.StatusOK, bodies)
}

// GetMyOrders handles GET /order-api/my-orders.
func (s *Server) GetMyOrders(ctx echo.Context) error {
	caller := callerFrom(ctx)

	query, err := queries.NewGetMyOrdersQuery(caller.ID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorBody{Error: err.Error()})
	}

	responses, err := s.getMyOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	bodies := make([]OrderBody, 0, len(responses))
	for _, response := range responses {
		bodies = append(bodies, orderBodyFromResponse(response))
	}

	return ctx.JSON(http.StatusOK, bodies)
}

// GetOrder handles GET /order-api/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusNotFound, ErrorBody{Error: "order not found"})
	}

	caller := callerFrom(ctx)

	query, err := queries.NewGetOrderQuery(orderID, caller.ID, caller.IsStaff)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorBody{Error: err.Error()})
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderBodyFromResponse(response))
}

// CancelOrder handles POST /order-api/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusNotFound, ErrorBody{Error: "order not found"})
	}

	caller := callerFrom(ctx)

	cmd, err := commands.NewCancelOrderCommand(orderID, caller.ID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorBody{Error: err.Error()})
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, SuccessBody{Success: true})
}

// UpdateOrderStatus handles PUT /order-api/internal/orders/:id/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusNotFound, ErrorBody{Error: "order not found"})
	}

	var request UpdateOrderStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorBody{Error: "invalid request body"})
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(
		orderID, request.Status, request.PaymentStatus, request.TrackingNumber)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorBody{Error: err.Error()})
	}

	if err = s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, SuccessBody{Success: true})
}

// fail renders an application error with the mapped status code.
func (s *Server) fail(ctx echo.Context, err error) error {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			"path", ctx.Path(),
			"error", err)
	}
	return ctx.JSON(status, ErrorBody{Error: errorMessage(status, err)})
}

// addressFromBody builds the address value object from the wire shape.
func addressFromBody(body AddressBody) (order.Address, error) {
	return order.NewAddress(
		body.FullName,
		body.AddressLine1,
		body.AddressLine2,
		body.City,
		body.State,
		body.PostalCode,
		body.Country,
	)
}
