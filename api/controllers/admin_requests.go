package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avidalh/electrostore-gateway/api/responses"
	"github.com/avidalh/electrostore-gateway/api/validators"
	"github.com/avidalh/electrostore-gateway/pkg/enums"
	pkgerrors "github.com/avidalh/electrostore-gateway/pkg/errors"
	"github.com/avidalh/electrostore-gateway/pkg/logger"
	"github.com/avidalh/electrostore-gateway/pkg/storeapi"
)

type adminRequestService interface {
	List(ctx context.Context) ([]storeapi.ServiceRequest, error)
	Update(ctx context.Context, id string, input storeapi.ServiceRequestInput) (*storeapi.ServiceRequest, error)
	Delete(ctx context.Context, id string) error
}

type technicianService interface {
	List(ctx context.Context) ([]storeapi.Technician, error)
	Create(ctx context.Context, input storeapi.TechnicianInput) (*storeapi.Technician, error)
	Update(ctx context.Context, id string, input storeapi.TechnicianInput) (*storeapi.Technician, error)
	Delete(ctx context.Context, id string) error
}

func AdminServiceRequestsList(svc adminRequestService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "service requests unavailable"))
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

type updateRequestPayload struct {
	UserID       string `json:"usuarioId" validate:"required"`
	TechnicianID string `json:"tecnicoId"`
	Description  string `json:"descripcion" validate:"required"`
	Status       string `json:"estado" validate:"required,oneof=Pendiente EnProgreso Completado"`
}

func AdminServiceRequestUpdate(svc adminRequestService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "service requests unavailable"))
			return
		}
		var payload updateRequestPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		updated, err := svc.Update(r.Context(), chi.URLParam(r, "requestId"), storeapi.ServiceRequestInput{
			UserID:       payload.UserID,
			TechnicianID: payload.TechnicianID,
			Description:  payload.Description,
			Status:       enums.ServiceRequestStatus(payload.Status),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func AdminServiceRequestDelete(svc adminRequestService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "service requests unavailable"))
			return
		}
		if err := svc.Delete(r.Context(), chi.URLParam(r, "requestId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type technicianPayload struct {
	Name      string `json:"nombre" validate:"required"`
	Specialty string `json:"especialidad" validate:"required"`
}

func AdminTechnicianCreate(svc technicianService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "technicians unavailable"))
			return
		}
		var payload technicianPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		created, err := svc.Create(r.Context(), storeapi.TechnicianInput{Name: payload.Name, Specialty: payload.Specialty})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func AdminTechnicianUpdate(svc technicianService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "technicians unavailable"))
			return
		}
		var payload technicianPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		updated, err := svc.Update(r.Context(), chi.URLParam(r, "technicianId"), storeapi.TechnicianInput{Name: payload.Name, Specialty: payload.Specialty})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func AdminTechnicianDelete(svc technicianService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "technicians unavailable"))
			return
		}
		if err := svc.Delete(r.Context(), chi.URLParam(r, "technicianId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
