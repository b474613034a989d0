package storeapi

import (
	"context"
	"net/http"
)

// Technician mirrors an upstream Tecnico record.
type Technician struct {
	ID        string `json:"uId"`
	Name      string `json:"nombre"`
	Specialty string `json:"especialidad"`
}

// TechnicianInput carries the fields accepted by the Tecnico write endpoints.
type TechnicianInput struct {
	Name      string `json:"nombre"`
	Specialty string `json:"especialidad"`
}

// ListTechnicians returns every Tecnico record.
func (c *Client) ListTechnicians(ctx context.Context) ([]Technician, error) {
	var out []Technician
	if err := c.do(ctx, http.MethodGet, "/Tecnico", nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTechnician adds a Tecnico record.
func (c *Client) CreateTechnician(ctx context.Context, input TechnicianInput) (*Technician, error) {
	var out Technician
	if err := c.do(ctx, http.MethodPost, "/Tecnico", input, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTechnician replaces the Tecnico record with the given id.
func (c *Client) UpdateTechnician(ctx context.Context, id string, input TechnicianInput) (*Technician, error) {
	var out Technician
	if err := c.do(ctx, http.MethodPut, "/Tecnico/"+id, input, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTechnician removes the Tecnico record with the given id.
func (c *Client) DeleteTechnician(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/Tecnico/"+id, nil, nil, nil)
}
