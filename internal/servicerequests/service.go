package servicerequests

import (
	"context"
	"fmt"
	"strings"

	"github.com/avidalh/electrostore-gateway/pkg/enums"
	pkgerrors "github.com/avidalh/electrostore-gateway/pkg/errors"
	"github.com/avidalh/electrostore-gateway/pkg/logger"
	"github.com/avidalh/electrostore-gateway/pkg/storeapi"
)

type requestAPI interface {
	ListServiceRequests(ctx context.Context) ([]storeapi.ServiceRequest, error)
	CreateServiceRequest(ctx context.Context, input storeapi.ServiceRequestInput) (*storeapi.ServiceRequest, error)
	UpdateServiceRequest(ctx context.Context, id string, input storeapi.ServiceRequestInput) (*storeapi.ServiceRequest, error)
	DeleteServiceRequest(ctx context.Context, id string) error
}

// Service handles technical-service requests: customers file them, admins
// triage and progress them.
type Service struct {
	api  requestAPI
	logg *logger.Logger
}

func NewService(api requestAPI, logg *logger.Logger) (*Service, error) {
	if api == nil || logg == nil {
		return nil, fmt.Errorf("service request dependencies are required")
	}
	return &Service{api: api, logg: logg}, nil
}

// Submit files a new request for the given user. New requests always start
// pending; the technician is optional and assigned later by an admin when
// absent.
func (s *Service) Submit(ctx context.Context, userID, technicianID, description string) (*storeapi.ServiceRequest, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthenticated, "sign in to request service")
	}
	if strings.TrimSpace(description) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "description is required")
	}

	created, err := s.api.CreateServiceRequest(ctx, storeapi.ServiceRequestInput{
		UserID:       userID,
		TechnicianID: strings.TrimSpace(technicianID),
		Description:  strings.TrimSpace(description),
		Status:       enums.ServiceRequestPending,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "submit service request")
	}
	s.logg.Info(s.logg.WithField(ctx, "request_id", created.ID), "service request filed")
	return created, nil
}

// List returns every request, for the admin board.
func (s *Service) List(ctx context.Context) ([]storeapi.ServiceRequest, error) {
	records, err := s.api.ListServiceRequests(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "load service requests")
	}
	return records, nil
}

// ListForUser returns the requests filed by one user.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]storeapi.ServiceRequest, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthenticated, "sign in to view service requests")
	}
	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	mine := records[:0]
	for _, r := range records {
		if r.UserID == userID {
			mine = append(mine, r)
		}
	}
	return mine, nil
}

// Update rewrites a request's technician assignment and status.
func (s *Service) Update(ctx context.Context, id string, input storeapi.ServiceRequestInput) (*storeapi.ServiceRequest, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "request id is required")
	}
	if !input.Status.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown request status")
	}
	updated, err := s.api.UpdateServiceRequest(ctx, id, input)
	if err != nil {
		if storeapi.IsNotFound(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "service request not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "update service request")
	}
	return updated, nil
}

// Delete removes a request.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "request id is required")
	}
	if err := s.api.DeleteServiceRequest(ctx, id); err != nil {
		if storeapi.IsNotFound(err) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "service request not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "delete service request")
	}
	return nil
}
