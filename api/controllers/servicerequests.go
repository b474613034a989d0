package controllers

import (
	"context"
	"net/http"

	"github.com/avidalh/electrostore-gateway/api/middleware"
	"github.com/avidalh/electrostore-gateway/api/responses"
	"github.com/avidalh/electrostore-gateway/api/validators"
	pkgerrors "github.com/avidalh/electrostore-gateway/pkg/errors"
	"github.com/avidalh/electrostore-gateway/pkg/logger"
	"github.com/avidalh/electrostore-gateway/pkg/storeapi"
)

type requestService interface {
	Submit(ctx context.Context, userID, technicianID, description string) (*storeapi.ServiceRequest, error)
	ListForUser(ctx context.Context, userID string) ([]storeapi.ServiceRequest, error)
}

type technicianLister interface {
	List(ctx context.Context) ([]storeapi.Technician, error)
}

type submitRequestPayload struct {
	TechnicianID string `json:"technicianId"`
	Description  string `json:"description" validate:"required"`
}

// ServiceRequestSubmit files a technical-service request for the signed-in
// user.
func ServiceRequestSubmit(svc requestService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "service requests unavailable"))
			return
		}

		var payload submitRequestPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Submit(r.Context(), middleware.UserIDFromContext(r.Context()), payload.TechnicianID, payload.Description)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// ServiceRequestsMine lists the signed-in user's requests.
func ServiceRequestsMine(svc requestService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "service requests unavailable"))
			return
		}
		records, err := svc.ListForUser(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}

// TechniciansList feeds the technician picker on the request form.
func TechniciansList(svc technicianLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "technicians unavailable"))
			return
		}
		records, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}
