package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avidalh/electrostore-gateway/api/responses"
	"github.com/avidalh/electrostore-gateway/api/validators"
	userssvc "github.com/avidalh/electrostore-gateway/internal/users"
	"github.com/avidalh/electrostore-gateway/pkg/enums"
	pkgerrors "github.com/avidalh/electrostore-gateway/pkg/errors"
	"github.com/avidalh/electrostore-gateway/pkg/logger"
	"github.com/avidalh/electrostore-gateway/pkg/storeapi"
)

type userDirectory interface {
	List(ctx context.Context) ([]storeapi.User, error)
	Create(ctx context.Context, input userssvc.CreateInput) (*storeapi.User, error)
	Delete(ctx context.Context, id string) error
}

func AdminUsersList(svc userDirectory, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user directory unavailable"))
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

type createUserPayload struct {
	Name     string `json:"nombre" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"rol" validate:"required,oneof=cliente admin"`
	Password string `json:"password" validate:"required,min=8"`
}

func AdminUserCreate(svc userDirectory, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user directory unavailable"))
			return
		}
		var payload createUserPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		created, err := svc.Create(r.Context(), userssvc.CreateInput{
			Name:     payload.Name,
			Email:    payload.Email,
			Role:     enums.Role(payload.Role),
			Password: payload.Password,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func AdminUserDelete(svc userDirectory, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user directory unavailable"))
			return
		}
		if err := svc.Delete(r.Context(), chi.URLParam(r, "userId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
