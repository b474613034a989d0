package technicians

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/avidalh/electrostore-gateway/pkg/errors"
	"github.com/avidalh/electrostore-gateway/pkg/storeapi"
)

type technicianAPI interface {
	ListTechnicians(ctx context.Context) ([]storeapi.Technician, error)
	CreateTechnician(ctx context.Context, input storeapi.TechnicianInput) (*storeapi.Technician, error)
	UpdateTechnician(ctx context.Context, id string, input storeapi.TechnicianInput) (*storeapi.Technician, error)
	DeleteTechnician(ctx context.Context, id string) error
}

// Service wraps the upstream Tecnico resource for the admin screens and the
// service-request form's technician picker.
type Service struct {
	api technicianAPI
}

func NewService(api technicianAPI) (*Service, error) {
	if api == nil {
		return nil, fmt.Errorf("technician api is required")
	}
	return &Service{api: api}, nil
}

func (s *Service) List(ctx context.Context) ([]storeapi.Technician, error) {
	records, err := s.api.ListTechnicians(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "load technicians")
	}
	return records, nil
}

func validate(input storeapi.TechnicianInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "technician name is required")
	}
	if strings.TrimSpace(input.Specialty) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "technician specialty is required")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, input storeapi.TechnicianInput) (*storeapi.Technician, error) {
	if err := validate(input); err != nil {
		return nil, err
	}
	created, err := s.api.CreateTechnician(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "create technician")
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, input storeapi.TechnicianInput) (*storeapi.Technician, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "technician id is required")
	}
	if err := validate(input); err != nil {
		return nil, err
	}
	updated, err := s.api.UpdateTechnician(ctx, id, input)
	if err != nil {
		if storeapi.IsNotFound(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "technician not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "update technician")
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "technician id is required")
	}
	if err := s.api.DeleteTechnician(ctx, id); err != nil {
		if storeapi.IsNotFound(err) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "technician not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "delete technician")
	}
	return nil
}
