package order

// Exchange names for the topic channels other services consume.
const (
	ExchangeOrderEvents    = "order_events"
	ExchangeProductEvents  = "product_events"
	ExchangeShippingEvents = "shipping_events"
)

// Routing keys for order domain events.
const (
	EventOrderCreated     = "order.created"
	EventPurchaseCreated  = "purchase.created"
	EventOrderCancelled   = "order.cancelled"
	EventShipmentCreated  = "shipment.created"
	EventShipmentConfirm  = "shipment.confirm"
)

// OrderCreatedData is the order.created payload on order_events.
type OrderCreatedData struct {
	OrderID     string             `json:"orderId"`
	UserID      string             `json:"userId"`
	TotalAmount float64            `json:"totalAmount"`
	Items       []OrderCreatedItem `json:"items"`
}

// OrderCreatedItem is a line-item reference within order.created.
type OrderCreatedItem struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// PurchaseCreatedItem is one element of the purchase.created payload on
// product_events. The payload is a bare list of these.
type PurchaseCreatedItem struct {
	ProductID int    `json:"productId"`
	Quantity  int    `json:"quantity"`
	UserID    string `json:"userId"`
}

// OrderCancelledData is the order.cancelled payload on order_events.
type OrderCancelledData struct {
	OrderID string `json:"orderId"`
	UserID  string `json:"userId"`
}

// ShipmentCreatedData is the shipment.created payload on shipping_events,
// emitted when an order enters Confirm. Field spellings match what the
// shipping service already consumes.
type ShipmentCreatedData struct {
	OrderID            string  `json:"order_id"`
	TotalAmount        float64 `json:"totalAmount"`
	ShippingName       string  `json:"shipping_name"`
	ShippingAddress1   string  `json:"shipping_address1"`
	ShippingAddress2   string  `json:"shipping_address2"`
	ShippingCity       string  `json:"shipping_city"`
	ShippingState      string  `json:"shipping_state"`
	ShippingPostalCode string  `json:"shipping_postal_code"`
	ShippingCountry    string  `json:"shipping_country"`
}

// ShipmentConfirmData is the shipment.confirm payload on shipping_events,
// emitted when an order enters Delivered.
type ShipmentConfirmData struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// NewOrderCreatedData builds the order.created payload from an order.
func NewOrderCreatedData(o *Order) OrderCreatedData {
	items := make([]OrderCreatedItem, 0, len(o.items))
	for _, item := range o.items {
		items = append(items, OrderCreatedItem{
			ProductID: item.ProductID(),
			Quantity:  item.Quantity(),
		})
	}

	return OrderCreatedData{
		OrderID:     o.ID().String(),
		UserID:      o.UserID(),
		TotalAmount: o.TotalAmount(),
		Items:       items,
	}
}

// NewPurchaseCreatedData builds the purchase.created payload from an order.
func NewPurchaseCreatedData(o *Order) []PurchaseCreatedItem {
	items := make([]PurchaseCreatedItem, 0, len(o.items))
	for _, item := range o.items {
		items = append(items, PurchaseCreatedItem{
			ProductID: item.ProductID(),
			Quantity:  item.Quantity(),
			UserID:    o.UserID(),
		})
	}
	return items
}

// NewOrderCancelledData builds the order.cancelled payload from an order.
func NewOrderCancelledData(o *Order) OrderCancelledData {
	return OrderCancelledData{
		OrderID: o.ID().String(),
		UserID:  o.UserID(),
	}
}

// NewShipmentCreatedData builds the shipment.created payload from an order.
func NewShipmentCreatedData(o *Order) ShipmentCreatedData {
	return ShipmentCreatedData{
		OrderID:            o.ID().String(),
		TotalAmount:        o.TotalAmount(),
		ShippingName:       o.Address().FullName(),
		ShippingAddress1:   o.Address().AddressLine1(),
		ShippingAddress2:   o.Address().AddressLine2(),
		ShippingCity:       o.Address().City(),
		ShippingState:      o.Address().State(),
		ShippingPostalCode: o.Address().PostalCode(),
		ShippingCountry:    o.Address().Country(),
	}
}

// NewShipmentConfirmData builds the shipment.confirm payload from an order.
func NewShipmentConfirmData(o *Order) ShipmentConfirmData {
	return ShipmentConfirmData{
		OrderID: o.ID().String(),
		Status:  Delivered.String(),
	}
}
