package storeapi

import (
	"context"
	"net/http"
)

// InventoryEntry mirrors an upstream Inventario record. UpdatedAt keeps the
// upstream timestamp string untouched.
type InventoryEntry struct {
	ID        string `json:"uId"`
	ProductID string `json:"productoId"`
	Quantity  int    `json:"cantidad"`
	UpdatedAt string `json:"fechaActualizacion"`
}

// InventoryInput carries the fields accepted by the Inventario write
// endpoints.
type InventoryInput struct {
	ProductID string `json:"productoId"`
	Quantity  int    `json:"cantidad"`
}

// ListInventory returns every Inventario record.
func (c *Client) ListInventory(ctx context.Context) ([]InventoryEntry, error) {
	var out []InventoryEntry
	if err := c.do(ctx, http.MethodGet, "/Inventario", nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateInventory adds an Inventario record.
func (c *Client) CreateInventory(ctx context.Context, input InventoryInput) (*InventoryEntry, error) {
	var out InventoryEntry
	if err := c.do(ctx, http.MethodPost, "/Inventario", input, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateInventory replaces the Inventario record with the given id.
func (c *Client) UpdateInventory(ctx context.Context, id string, input InventoryInput) (*InventoryEntry, error) {
	var out InventoryEntry
	if err := c.do(ctx, http.MethodPut, "/Inventario/"+id, input, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteInventory removes the Inventario record with the given id.
func (c *Client) DeleteInventory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/Inventario/"+id, nil, nil, nil)
}
