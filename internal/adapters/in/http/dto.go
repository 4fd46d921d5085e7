package http

import (
	"time"

	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/order"
)

// AddressBody is the shipping address as it travels over the wire.
type AddressBody struct {
	FullName     string `json:"fullName"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`
}

// CreateOrderItemBody is one requested line item in a creation request.
type CreateOrderItemBody struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// CreateOrderRequest is the body of POST /order-api/orders.
type CreateOrderRequest struct {
	ShippingAddress AddressBody           `json:"shippingAddress"`
	Items           []CreateOrderItemBody `json:"items"`
}

// UpdateOrderStatusRequest is the body of the internal status patch. All
// fields are optional; absent ones leave the order untouched.
type UpdateOrderStatusRequest struct {
	Status         string `json:"status"`
	PaymentStatus  string `json:"paymentStatus"`
	TrackingNumber string `json:"trackingNumber"`
}

// OrderItemBody is one line item in an order response.
type OrderItemBody struct {
	ProductID int     `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image,omitempty"`
}

// OrderBody is the full order representation returned to clients.
type OrderBody struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	TotalAmount     float64         `json:"totalAmount"`
	Status          string          `json:"status"`
	PaymentStatus   string          `json:"paymentStatus"`
	TrackingNumber  string          `json:"trackingNumber,omitempty"`
	ShippingAddress AddressBody     `json:"shippingAddress"`
	Items           []OrderItemBody `json:"items"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ErrorBody is the uniform error response shape.
type ErrorBody struct {
	Error string `json:"error"`
}

// SuccessBody acknowledges internal updates.
type SuccessBody struct {
	Success bool `json:"success"`
}

// orderBodyFromAggregate maps a freshly created aggregate to the wire shape.
func orderBodyFromAggregate(aggregate *order.Order) OrderBody {
	address := aggregate.Address()
	items := make([]OrderItemBody, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemBody{
			ProductID: item.ProductID(),
			Name:      item.Name(),
			Price:     item.Price(),
			Quantity:  item.Quantity(),
		})
	}

	return OrderBody{
		ID:            aggregate.ID().String(),
		UserID:        aggregate.UserID(),
		TotalAmount:   aggregate.TotalAmount(),
		Status:        aggregate.Status().String(),
		PaymentStatus: aggregate.PaymentStatus(),
		ShippingAddress: AddressBody{
			FullName:     address.FullName(),
			AddressLine1: address.AddressLine1(),
			AddressLine2: address.AddressLine2(),
			City:         address.City(),
			State:        address.State(),
			PostalCode:   address.PostalCode(),
			Country:      address.Country(),
		},
		TrackingNumber: aggregate.TrackingNumber(),
		Items:          items,
		CreatedAt:      aggregate.CreatedAt(),
		UpdatedAt:      aggregate.UpdatedAt(),
	}
}

// orderBodyFromResponse maps a query read model to the wire shape.
func orderBodyFromResponse(response queries.OrderResponse) OrderBody {
	items := make([]OrderItemBody, 0, len(response.Items))
	for _, item := range response.Items {
		items = append(items, OrderItemBody{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Image:     item.Image,
		})
	}

	return OrderBody{
		ID:            response.ID.String(),
		UserID:        response.UserID,
		TotalAmount:   response.TotalAmount,
		Status:        response.Status,
		PaymentStatus: response.PaymentStatus,
		ShippingAddress: AddressBody{
			FullName:     response.Address.FullName,
			AddressLine1: response.Address.AddressLine1,
			AddressLine2: response.Address.AddressLine2,
			City:         response.Address.City,
			State:        response.Address.State,
			PostalCode:   response.Address.PostalCode,
			Country:      response.Address.Country,
		},
		TrackingNumber: response.TrackingNumber,
		Items:          items,
		CreatedAt:      response.CreatedAt,
		UpdatedAt:      response.UpdatedAt,
	}
}
