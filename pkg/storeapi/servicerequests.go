package storeapi

import (
	"context"
	"net/http"

	"github.com/avidalh/electrostore-gateway/pkg/enums"
)

// ServiceRequest mirrors an upstream ServicioTecnico record.
type ServiceRequest struct {
	ID           string                     `json:"uId"`
	UserID       string                     `json:"usuarioId"`
	TechnicianID string                     `json:"tecnicoId"`
	Description  string                     `json:"descripcion"`
	Status       enums.ServiceRequestStatus `json:"estado"`
}

// ServiceRequestInput carries the fields accepted by the ServicioTecnico
// write endpoints.
type ServiceRequestInput struct {
	UserID       string                     `json:"usuarioId"`
	TechnicianID string                     `json:"tecnicoId"`
	Description  string                     `json:"descripcion"`
	Status       enums.ServiceRequestStatus `json:"estado"`
}

// ListServiceRequests returns every ServicioTecnico record.
func (c *Client) ListServiceRequests(ctx context.Context) ([]ServiceRequest, error) {
	var out []ServiceRequest
	if err := c.do(ctx, http.MethodGet, "/ServicioTecnico", nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateServiceRequest adds a ServicioTecnico record.
func (c *Client) CreateServiceRequest(ctx context.Context, input ServiceRequestInput) (*ServiceRequest, error) {
	var out ServiceRequest
	if err := c.do(ctx, http.MethodPost, "/ServicioTecnico", input, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateServiceRequest replaces the ServicioTecnico record with the given id.
func (c *Client) UpdateServiceRequest(ctx context.Context, id string, input ServiceRequestInput) (*ServiceRequest, error) {
	var out ServiceRequest
	if err := c.do(ctx, http.MethodPut, "/ServicioTecnico/"+id, input, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteServiceRequest removes the ServicioTecnico record with the given id.
func (c *Client) DeleteServiceRequest(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/ServicioTecnico/"+id, nil, nil, nil)
}
