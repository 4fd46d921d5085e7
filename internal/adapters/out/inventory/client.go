// Package inventory implements the inventory-service client over its
// internal HTTP endpoint. Product name and price are resolved at order
// creation time so stored line items are immune to later catalog changes.
package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"orders/internal/core/ports"
)

const requestTimeout = 10 * time.Second

// Client calls the inventory service's service-to-service product endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an inventory client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// productResponse mirrors the inventory service's wire format. Price is a
// pointer so a product record without a price is distinguishable from a
// free one.
type productResponse struct {
	Name  string   `json:"name"`
	Price *float64 `json:"price"`
	Image string   `json:"image"`
}

// GetProduct resolves one product by its numeric identifier. A non-200
// response or a record without a price yields ports.ErrProductNotFound;
// transport errors are returned as-is.
func (c *Client) GetProduct(ctx context.Context, productID int) (ports.Product, error) {
	url := fmt.Sprintf("%s/products/inter-svc/%d", c.baseURL, productID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ports.Product{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.Product{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.Product{}, fmt.Errorf("%w: product %d (status %d)",
			ports.ErrProductNotFound, productID, resp.StatusCode)
	}

	var payload productResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return ports.Product{}, fmt.Errorf("decode product %d: %w", productID, err)
	}

	if payload.Price == nil {
		return ports.Product{}, fmt.Errorf("%w: product %d has no price",
			ports.ErrProductNotFound, productID)
	}

	return ports.Product{
		Name:  payload.Name,
		Price: *payload.Price,
		Image: payload.Image,
	}, nil
}
