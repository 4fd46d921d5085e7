package http_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	inhttp "orders/internal/adapters/in/http"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/model/outbox"
	"orders/internal/core/ports"
	"orders/internal/pkg/auth"
	"orders/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

// fakeOrderRepository is an in-memory order store.
type fakeOrderRepository struct {
	orders    map[string]*order.Order
	updateErr error
}

func newFakeOrderRepository() *fakeOrderRepository {
	return &fakeOrderRepository{orders: make(map[string]*order.Order)}
}

func (f *fakeOrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	f.orders[aggregate.ID().String()] = aggregate
	return nil
}

func (f *fakeOrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.orders[aggregate.ID().String()] = aggregate
	return nil
}

func (f *fakeOrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	aggregate, ok := f.orders[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return aggregate, nil
}

// fakeOutboxRepository records enqueued messages.
type fakeOutboxRepository struct {
	messages []*outbox.Message
}

func (f *fakeOutboxRepository) Add(_ context.Context, message *outbox.Message) error {
	f.messages = append(f.messages, message)
	return nil
}

func (f *fakeOutboxRepository) Update(_ context.Context, _ *outbox.Message) error { return nil }

func (f *fakeOutboxRepository) GetPending(_ context.Context, _ int) ([]*outbox.Message, error) {
	return f.messages, nil
}

// fakeUoW is a no-op transaction wrapper over the fakes.
type fakeUoW struct {
	orderRepo  *fakeOrderRepository
	outboxRepo *fakeOutboxRepository
}

func (f *fakeUoW) Begin(context.Context) error              { return nil }
func (f *fakeUoW) Commit(context.Context) error             { return nil }
func (f *fakeUoW) Rollback(context.Context) error           { return nil }
func (f *fakeUoW) OrderRepository() ports.OrderRepository   { return f.orderRepo }
func (f *fakeUoW) OutboxRepository() ports.OutboxRepository { return f.outboxRepo }

type fakeUoWFactory struct{ uow *fakeUoW }

func (f *fakeUoWFactory) Create() commands.OrderUoW { return f.uow }

// fakeInventory serves a small fixed catalog.
type fakeInventory struct{}

func (fakeInventory) GetProduct(_ context.Context, productID int) (ports.Product, error) {
	catalog := map[int]ports.Product{
		1: {Name: "Book", Price: 9.99, Image: "book.png"},
		2: {Name: "Pen", Price: 1.50, Image: "pen.png"},
	}
	product, ok := catalog[productID]
	if !ok {
		return ports.Product{}, ports.ErrProductNotFound
	}
	return product, nil
}

type testEnv struct {
	echo       *echo.Echo
	orderRepo  *fakeOrderRepository
	outboxRepo *fakeOutboxRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	orderRepo := newFakeOrderRepository()
	outboxRepo := &fakeOutboxRepository{}
	factory := &fakeUoWFactory{uow: &fakeUoW{orderRepo: orderRepo, outboxRepo: outboxRepo}}
	logger := slog.New(slog.DiscardHandler)

	server := inhttp.NewServer(
		commands.NewCreateOrderCommandHandler(factory, fakeInventory{}),
		commands.NewCancelOrderCommandHandler(factory),
		commands.NewUpdateOrderStatusCommandHandler(factory),
		queries.GetOrderQueryHandler{},
		queries.GetAllOrdersQueryHandler{},
		queries.GetMyOrdersQueryHandler{},
		auth.NewTokenVerifier(testSecret),
		logger,
	)

	e := echo.New()
	server.RegisterRoutes(e)

	return &testEnv{echo: e, orderRepo: orderRepo, outboxRepo: outboxRepo}
}

func signToken(t *testing.T, secret, userID string, isStaff bool, expiresIn time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  userID,
		"is_staff": isStaff,
		"exp":      time.Now().Add(expiresIn).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func doRequest(env *testEnv, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.echo.ServeHTTP(rec, req)
	return rec
}

const createOrderBody = `{
	"shippingAddress": {
		"fullName": "Alice Smith",
		"addressLine1": "1 Main St",
		"city": "Springfield",
		"state": "IL",
		"postalCode": "62704",
		"country": "US"
	},
	"items": [
		{"productId": 1, "quantity": 2},
		{"productId": 2, "quantity": 1}
	]
}`

func TestHealth_NoAuthRequired(t *testing.T) {
	env := newTestEnv(t)

	rec := doRequest(env, http.MethodGet, "/order-api/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAuth_MissingToken_Unauthorized(t *testing.T) {
	env := newTestEnv(t)

	rec := doRequest(env, http.MethodGet, "/order-api/my-orders", "", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_MalformedToken_Unauthorized(t *testing.T) {
	env := newTestEnv(t)

	rec := doRequest(env, http.MethodGet, "/order-api/my-orders", "not-a-jwt", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_ExpiredToken_Unauthorized(t *testing.T) {
	env := newTestEnv(t)
	token := signToken(t, testSecret, "user-1", false, -time.Hour)

	rec := doRequest(env, http.MethodGet, "/order-api/my-orders", token, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_WrongSignature_Unauthorized(t *testing.T) {
	env := newTestEnv(t)
	token := signToken(t, "other-secret", "user-1", false, time.Hour)

	rec := doRequest(env, http.MethodGet, "/order-api/my-orders", token, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateOrder_Success(t *testing.T) {
	env := newTestEnv(t)
	token := signToken(t, testSecret, "user-1", false, time.Hour)

	rec := doRequest(env, http.MethodPost, "/order-api/orders", token, createOrderBody)

	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "user-1", body["userId"])
	assert.Equal(t, "pending", body["status"])
	assert.Equal(t, "pending", body["paymentStatus"])
	// 2 x 9.99 + 1 x 1.50 from the inventory snapshot
	assert.InDelta(t, 21.48, body["totalAmount"].(float64), 0.001)
	assert.Len(t, body["items"], 2)

	// Order persisted and both events enqueued
	assert.Len(t, env.orderRepo.orders, 1)
	require.Len(t, env.outboxRepo.messages, 2)
	assert.Equal(t, order.EventOrderCreated, env.outboxRepo.messages[0].RoutingKey())
	assert.Equal(t, order.EventPurchaseCreated, env.outboxRepo.messages[1].RoutingKey())
}

func TestCreateOrder_EmptyItems_BadRequest(t *testing.T) {
	env := newTestEnv(t)
	token := signToken(t, testSecret, "user-1", false, time.Hour)
	body := `{
		"shippingAddress": {
			"fullName": "Alice Smith", "addressLine1": "1 Main St",
			"city": "Springfield", "state": "IL", "postalCode": "62704", "country": "US"
		},
		"items": []
	}`

	rec := doRequest(env, http.MethodPost, "/order-api/orders", token, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, env.orderRepo.orders)
}

func TestCreateOrder_UnknownProduct_BadRequest(t *testing.T) {
	env := newTestEnv(t)
	token := signToken(t, testSecret, "user-1", false, time.Hour)
	body := strings.Replace(createOrderBody, `"productId": 1`, `"productId": 99`, 1)

	rec := doRequest(env, http.MethodPost, "/order-api/orders", token, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, env.orderRepo.orders, "nothing persisted when a product fails to resolve")
	assert.Empty(t, env.outboxRepo.messages)
}

func TestCreateOrder_MissingAddress_BadRequest(t *testing.T) {
	env := newTestEnv(t)
	token := signToken(t, testSecret, "user-1", false, time.Hour)
	body := `{"items": [{"productId": 1, "quantity": 1}]}`

	rec := doRequest(env, http.MethodPost, "/order-api/orders", token, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrder_InvalidID_NotFound(t *testing.T) {
	env := newTestEnv(t)
	token := signToken(t, testSecret, "user-1", false, time.Hour)

	rec := doRequest(env, http.MethodGet, "/order-api/orders/not-a-uuid", token, "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func seedOrder(t *testing.T, env *testEnv, userID string) *order.Order {
	t.Helper()
	address, err := order.NewAddress(
		"Alice Smith", "1 Main St", "", "Springfield", "IL", "62704", "US")
	require.NoError(t, err)
	item, err := order.NewItem(1, "Book", 9.99, 1)
	require.NoError(t, err)
	seeded, err := order.NewOrder(kernel.NewUUID(), userID, address, []order.Item{item})
	require.NoError(t, err)
	require.NoError(t, env.orderRepo.Add(context.Background(), seeded))
	return seeded
}

func TestCancelOrder_Owner_Success(t *testing.T) {
	env := newTestEnv(t)
	seeded := seedOrder(t, env, "user-1")
	token := signToken(t, testSecret, "user-1", false, time.Hour)

	rec := doRequest(env, http.MethodPost, "/order-api/orders/"+seeded.ID().String()+"/cancel", token, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	assert.Equal(t, order.Cancelled, seeded.Status())
	require.Len(t, env.outboxRepo.messages, 1)
	assert.Equal(t, order.EventOrderCancelled, env.outboxRepo.messages[0].RoutingKey())
}

func TestCancelOrder_Stranger_Forbidden(t *testing.T) {
	env := newTestEnv(t)
	seeded := seedOrder(t, env, "user-1")
	token := signToken(t, testSecret, "user-2", false, time.Hour)

	rec := doRequest(env, http.MethodPost, "/order-api/orders/"+seeded.ID().String()+"/cancel", token, "")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, order.Pending, seeded.Status())
}

func TestCancelOrder_Staff_StillForbidden(t *testing.T) {
	env := newTestEnv(t)
	seeded := seedOrder(t, env, "user-1")
	token := signToken(t, testSecret, "staff-user", true, time.Hour)

	rec := doRequest(env, http.MethodPost, "/order-api/orders/"+seeded.ID().String()+"/cancel", token, "")

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCancelOrder_Missing_NotFound(t *testing.T) {
	env := newTestEnv(t)
	token := signToken(t, testSecret, "user-1", false, time.Hour)

	rec := doRequest(env, http.MethodPost, "/order-api/orders/"+kernel.NewUUID().String()+"/cancel", token, "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCancelOrder_ConfirmedOrder_BadRequest(t *testing.T) {
	env := newTestEnv(t)
	seeded := seedOrder(t, env, "user-1")
	require.NoError(t, seeded.ChangeStatus(order.Confirm))
	token := signToken(t, testSecret, "user-1", false, time.Hour)

	rec := doRequest(env, http.MethodPost, "/order-api/orders/"+seeded.ID().String()+"/cancel", token, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateOrderStatus_NoAuthRequired(t *testing.T) {
	env := newTestEnv(t)
	seeded := seedOrder(t, env, "user-1")

	rec := doRequest(env, http.MethodPut,
		"/order-api/internal/orders/"+seeded.ID().String()+"/status", "", `{"status":"processing"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	assert.Equal(t, order.Processing, seeded.Status())
}

func TestUpdateOrderStatus_ConfirmEmitsShipmentCreated(t *testing.T) {
	env := newTestEnv(t)
	seeded := seedOrder(t, env, "user-1")

	rec := doRequest(env, http.MethodPut,
		"/order-api/internal/orders/"+seeded.ID().String()+"/status", "", `{"status":"confirm"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, env.outboxRepo.messages, 1)
	assert.Equal(t, order.EventShipmentCreated, env.outboxRepo.messages[0].RoutingKey())
	assert.Contains(t, string(env.outboxRepo.messages[0].Payload()), `"shipping_city":"Springfield"`)
}

func TestUpdateOrderStatus_UnknownStatus_BadRequest(t *testing.T) {
	env := newTestEnv(t)
	seeded := seedOrder(t, env, "user-1")

	rec := doRequest(env, http.MethodPut,
		"/order-api/internal/orders/"+seeded.ID().String()+"/status", "", `{"status":"shipped"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateOrderStatus_DeliveredOrder_BadRequest(t *testing.T) {
	env := newTestEnv(t)
	seeded := seedOrder(t, env, "user-1")
	require.NoError(t, seeded.ChangeStatus(order.Delivered))

	rec := doRequest(env, http.MethodPut,
		"/order-api/internal/orders/"+seeded.ID().String()+"/status", "", `{"status":"processing"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateOrderStatus_DeliveredOrder_PaymentOnlyPatch_BadRequest(t *testing.T) {
	env := newTestEnv(t)
	seeded := seedOrder(t, env, "user-1")
	require.NoError(t, seeded.ChangeStatus(order.Delivered))

	rec := doRequest(env, http.MethodPut,
		"/order-api/internal/orders/"+seeded.ID().String()+"/status", "",
		`{"paymentStatus":"refunded","trackingNumber":"TRK-99"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEqual(t, "refunded", seeded.PaymentStatus())
}

func TestUpdateOrderStatus_VersionConflict_Conflict(t *testing.T) {
	env := newTestEnv(t)
	seeded := seedOrder(t, env, "user-1")
	env.orderRepo.updateErr = errs.NewVersionConflictError("order", seeded.ID().String())

	rec := doRequest(env, http.MethodPut,
		"/order-api/internal/orders/"+seeded.ID().String()+"/status", "", `{"status":"processing"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUpdateOrderStatus_PaymentAndTracking(t *testing.T) {
	env := newTestEnv(t)
	seeded := seedOrder(t, env, "user-1")

	rec := doRequest(env, http.MethodPut,
		"/order-api/internal/orders/"+seeded.ID().String()+"/status", "",
		`{"paymentStatus":"paid","trackingNumber":"TRK-42"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "paid", seeded.PaymentStatus())
	assert.Equal(t, "TRK-42", seeded.TrackingNumber())
	assert.Empty(t, env.outboxRepo.messages, "no shipping events without a status change")
}
