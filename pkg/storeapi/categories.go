package storeapi

import (
	"context"
	"net/http"
)

// Category mirrors an upstream Categoria record.
type Category struct {
	ID          string `json:"uId"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
	Active      bool   `json:"estado"`
}

// CategoryInput carries the fields accepted by the Categoria write endpoints.
type CategoryInput struct {
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
	Active      bool   `json:"estado"`
}

// ListCategories returns every Categoria record.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.do(ctx, http.MethodGet, "/Categoria", nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCategory adds a Categoria record.
func (c *Client) CreateCategory(ctx context.Context, input CategoryInput) (*Category, error) {
	var out Category
	if err := c.do(ctx, http.MethodPost, "/Categoria", input, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCategory replaces the Categoria record with the given id.
func (c *Client) UpdateCategory(ctx context.Context, id string, input CategoryInput) (*Category, error) {
	var out Category
	if err := c.do(ctx, http.MethodPut, "/Categoria/"+id, input, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCategory removes the Categoria record with the given id.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/Categoria/"+id, nil, nil, nil)
}
