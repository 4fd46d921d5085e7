package ports

import (
	"context"
	"errors"
)

// ErrProductNotFound indicates the inventory service does not know the
// requested product, or knows it without a price. Order creation treats
// this as bad input and persists nothing.
var ErrProductNotFound = errors.New("product not found in inventory")

// Product is the inventory snapshot for a single product: the authoritative
// name and unit price captured at call time, plus the catalog image used to
// decorate order listings.
type Product struct {
	Name  string
	Price float64
	Image string
}

// InventoryClient is the synchronous contract with the inventory service.
// Every call is a network round-trip on the request's critical path; there
// is no caching, batching or retry, so inventory availability bounds order
// creation and listing availability.
type InventoryClient interface {
	// GetProduct resolves one product. A missing product or absent price
	// fails with ErrProductNotFound; transport failures surface as-is.
	GetProduct(ctx context.Context, productID int) (Product, error)
}
