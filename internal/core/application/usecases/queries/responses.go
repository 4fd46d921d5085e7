// Package queries contains read operations in the CQRS architecture.
// Query handlers read the order tables directly through GORM and map rows
// into response models; they never load aggregates or mutate state.
package queries

import (
	"context"
	"errors"
	"time"

	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/ports"
)

// AddressResponse is the shipping destination in query responses.
type AddressResponse struct {
	FullName     string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	PostalCode   string
	Country      string
}

// OrderItemResponse is one line item in query responses. Image is resolved
// live from the inventory service for listing queries and empty elsewhere.
type OrderItemResponse struct {
	ProductID int
	Name      string
	Price     float64
	Quantity  int
	Image     string
}

// OrderResponse is the full order read model.
type OrderResponse struct {
	ID             kernel.UUID
	UserID         string
	TotalAmount    float64
	Status         string
	PaymentStatus  string
	TrackingNumber string
	Address        AddressResponse
	Items          []OrderItemResponse
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// orderResponseFromDTO maps a stored order row into the read model.
func orderResponseFromDTO(dto orderrepo.OrderDTO) (OrderResponse, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return OrderResponse{}, err
	}

	items := make([]OrderItemResponse, 0, len(dto.Items))
	for _, item := range dto.Items {
		items = append(items, OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	return OrderResponse{
		ID:             id,
		UserID:         dto.UserID,
		TotalAmount:    dto.TotalAmount,
		Status:         dto.Status,
		PaymentStatus:  dto.PaymentStatus,
		TrackingNumber: dto.TrackingNumber,
		Address: AddressResponse{
			FullName:     dto.Shipping.Name,
			AddressLine1: dto.Shipping.Address1,
			AddressLine2: dto.Shipping.Address2,
			City:         dto.Shipping.City,
			State:        dto.Shipping.State,
			PostalCode:   dto.Shipping.PostalCode,
			Country:      dto.Shipping.Country,
		},
		Items:     items,
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
	}, nil
}

// annotateImages decorates every line item with the product's current catalog
// image. One inventory call per item per order; a product the inventory no
// longer knows gets an empty image, any other failure aborts the query.
func annotateImages(ctx context.Context, inventory ports.InventoryClient, orders []OrderResponse) error {
	for i := range orders {
		for j := range orders[i].Items {
			product, err := inventory.GetProduct(ctx, orders[i].Items[j].ProductID)
			if err != nil {
				if errors.Is(err, ports.ErrProductNotFound) {
					continue
				}
				return err
			}
			orders[i].Items[j].Image = product.Image
		}
	}
	return nil
}
