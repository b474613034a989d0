package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avidalh/electrostore-gateway/api/responses"
	"github.com/avidalh/electrostore-gateway/api/validators"
	inventorysvc "github.com/avidalh/electrostore-gateway/internal/inventory"
	pkgerrors "github.com/avidalh/electrostore-gateway/pkg/errors"
	"github.com/avidalh/electrostore-gateway/pkg/logger"
	"github.com/avidalh/electrostore-gateway/pkg/storeapi"
)

type inventoryService interface {
	Overview(ctx context.Context) ([]inventorysvc.Line, error)
	Create(ctx context.Context, input storeapi.InventoryInput) (*storeapi.InventoryEntry, error)
	Update(ctx context.Context, id string, input storeapi.InventoryInput) (*storeapi.InventoryEntry, error)
	Delete(ctx context.Context, id string) error
}

type orderLister interface {
	ListOrders(ctx context.Context) ([]storeapi.Order, error)
}

func AdminInventoryOverview(svc inventoryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory unavailable"))
			return
		}
		lines, err := svc.Overview(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, lines)
	}
}

type inventoryPayload struct {
	ProductID string `json:"productoId" validate:"required"`
	Quantity  int    `json:"cantidad" validate:"min=0"`
}

func AdminInventoryCreate(svc inventoryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory unavailable"))
			return
		}
		var payload inventoryPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		created, err := svc.Create(r.Context(), storeapi.InventoryInput{ProductID: payload.ProductID, Quantity: payload.Quantity})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func AdminInventoryUpdate(svc inventoryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory unavailable"))
			return
		}
		var payload inventoryPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		updated, err := svc.Update(r.Context(), chi.URLParam(r, "entryId"), storeapi.InventoryInput{ProductID: payload.ProductID, Quantity: payload.Quantity})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func AdminInventoryDelete(svc inventoryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory unavailable"))
			return
		}
		if err := svc.Delete(r.Context(), chi.URLParam(r, "entryId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AdminOrdersList shows every order placed through the storefront.
func AdminOrdersList(api orderLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if api == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders unavailable"))
			return
		}
		records, err := api.ListOrders(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "load orders"))
			return
		}
		responses.WriteSuccess(w, records)
	}
}
