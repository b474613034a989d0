package storeapi

import (
	"context"
	"net/http"
)

// Product mirrors an upstream Producto record.
type Product struct {
	ID          string  `json:"uId"`
	Name        string  `json:"nombre"`
	Description string  `json:"descripcion"`
	Price       float64 `json:"precio"`
	Stock       int     `json:"stockActual"`
	ImageURL    string  `json:"imagenUrl"`
	CategoryID  string  `json:"categoriaId"`
}

// ProductInput carries the fields accepted by the Producto write endpoints.
type ProductInput struct {
	Name        string  `json:"nombre"`
	Description string  `json:"descripcion"`
	Price       float64 `json:"precio"`
	Stock       int     `json:"stockActual"`
	CategoryID  string  `json:"categoriaId"`
	ImageURL    string  `json:"imagenUrl"`
}

// ListProducts returns every Producto record.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := c.do(ctx, http.MethodGet, "/Producto", nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// ListProductsByCategory returns the Producto records in one category.
func (c *Client) ListProductsByCategory(ctx context.Context, categoryID string) ([]Product, error) {
	var out []Product
	if err := c.do(ctx, http.MethodGet, "/Producto/Categoria/"+categoryID, nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateProduct adds a Producto record.
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	var out Product
	if err := c.do(ctx, http.MethodPost, "/Producto", input, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProduct replaces the Producto record with the given id.
func (c *Client) UpdateProduct(ctx context.Context, id string, input ProductInput) (*Product, error) {
	var out Product
	if err := c.do(ctx, http.MethodPut, "/Producto/"+id, input, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProduct removes the Producto record with the given id.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/Producto/"+id, nil, nil, nil)
}
