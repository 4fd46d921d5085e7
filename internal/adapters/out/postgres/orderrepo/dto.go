// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling the conversion between domain entities and database
// rows, including the owned order_items table.
package orderrepo

import (
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the database representation of an order aggregate. Line items
// live in their own table and are loaded with the order; the shipping
// address is embedded with the column prefix the shipping service already
// expects in events.
type OrderDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID         string     `gorm:"index"`
	TotalAmount    float64
	Status         string     `gorm:"index"`
	PaymentStatus  string
	Shipping       AddressDTO `gorm:"embedded;embeddedPrefix:shipping_"`
	TrackingNumber string
	Version        int
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Items []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming convention.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO holds the embedded shipping destination columns.
type AddressDTO struct {
	Name       string
	Address1   string
	Address2   string
	City       string
	State      string
	PostalCode string
	Country    string
}

// OrderItemDTO is the database representation of one line-item snapshot.
type OrderItemDTO struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	ProductID int
	Name      string
	Price     float64
	Quantity  int
	CreatedAt time.Time
}

// TableName overrides GORM's default naming convention.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	address := aggregate.Address()
	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			OrderID:   aggregate.ID().Bytes(),
			ProductID: item.ProductID(),
			Name:      item.Name(),
			Price:     item.Price(),
			Quantity:  item.Quantity(),
			CreatedAt: aggregate.CreatedAt(),
		})
	}

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		UserID:        aggregate.UserID(),
		TotalAmount:   aggregate.TotalAmount(),
		Status:        aggregate.Status().String(),
		PaymentStatus: aggregate.PaymentStatus(),
		Shipping: AddressDTO{
			Name:       address.FullName(),
			Address1:   address.AddressLine1(),
			Address2:   address.AddressLine2(),
			City:       address.City(),
			State:      address.State(),
			PostalCode: address.PostalCode(),
			Country:    address.Country(),
		},
		TrackingNumber: aggregate.TrackingNumber(),
		Version:        aggregate.Version(),
		CreatedAt:      aggregate.CreatedAt(),
		UpdatedAt:      aggregate.UpdatedAt(),
		Items:          items,
	}
}

// toDomain converts a database row back into an order aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	address, err := order.NewAddress(
		dto.Shipping.Name,
		dto.Shipping.Address1,
		dto.Shipping.Address2,
		dto.Shipping.City,
		dto.Shipping.State,
		dto.Shipping.PostalCode,
		dto.Shipping.Country,
	)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewItem(itemDTO.ProductID, itemDTO.Name, itemDTO.Price, itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		dto.UserID,
		dto.TotalAmount,
		status,
		dto.PaymentStatus,
		address,
		dto.TrackingNumber,
		items,
		dto.Version,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
