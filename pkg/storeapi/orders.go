package storeapi

import (
	"context"
	"net/http"

	"github.com/avidalh/electrostore-gateway/pkg/enums"
)

// Order mirrors an upstream Orden record. The gateway treats it as an
// opaque result value.
type Order struct {
	ID        string            `json:"uId"`
	UserID    string            `json:"usuarioId"`
	Total     float64           `json:"total"`
	CreatedAt string            `json:"fechaCreacion"`
	Status    enums.OrderStatus `json:"estado"`
}

// OrderItem is one line of an order creation request.
type OrderItem struct {
	ProductID string  `json:"productoId"`
	Quantity  int     `json:"cantidad"`
	Price     float64 `json:"precio"`
}

// OrderRequest is the payload posted to the Orden resource at checkout.
type OrderRequest struct {
	UserID string            `json:"usuarioId"`
	Total  float64           `json:"total"`
	Status enums.OrderStatus `json:"estado"`
	Items  []OrderItem       `json:"items"`
}

// CreateOrder submits the order with a client-generated idempotency key so
// the upstream can dedupe retried submissions.
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest, idempotencyKey string) (*Order, error) {
	headers := map[string]string{}
	if idempotencyKey != "" {
		headers[headerIdempotencyKey] = idempotencyKey
	}
	var out Order
	if err := c.do(ctx, http.MethodPost, "/Orden", req, &out, headers); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListOrders returns every Orden record.
func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := c.do(ctx, http.MethodGet, "/Orden", nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}
