package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avidalh/electrostore-gateway/api/responses"
	"github.com/avidalh/electrostore-gateway/api/validators"
	pkgerrors "github.com/avidalh/electrostore-gateway/pkg/errors"
	"github.com/avidalh/electrostore-gateway/pkg/logger"
	"github.com/avidalh/electrostore-gateway/pkg/storeapi"
)

type adminCatalog interface {
	Products(ctx context.Context, categoryID string) ([]storeapi.Product, error)
	AllCategories(ctx context.Context) ([]storeapi.Category, error)
	CreateProduct(ctx context.Context, input storeapi.ProductInput) (*storeapi.Product, error)
	UpdateProduct(ctx context.Context, id string, input storeapi.ProductInput) (*storeapi.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	CreateCategory(ctx context.Context, input storeapi.CategoryInput) (*storeapi.Category, error)
	UpdateCategory(ctx context.Context, id string, input storeapi.CategoryInput) (*storeapi.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type productPayload struct {
	Name        string  `json:"nombre" validate:"required"`
	Description string  `json:"descripcion"`
	Price       float64 `json:"precio" validate:"min=0"`
	Stock       int     `json:"stockActual" validate:"min=0"`
	CategoryID  string  `json:"categoriaId"`
	ImageURL    string  `json:"imagenUrl"`
}

func (p productPayload) toInput() storeapi.ProductInput {
	return storeapi.ProductInput{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		CategoryID:  p.CategoryID,
		ImageURL:    p.ImageURL,
	}
}

// AdminProductsList shows the full catalog, out-of-stock entries included.
func AdminProductsList(svc adminCatalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		records, err := svc.Products(r.Context(), r.URL.Query().Get("category"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}

func AdminProductCreate(svc adminCatalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		var payload productPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		created, err := svc.CreateProduct(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func AdminProductUpdate(svc adminCatalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		var payload productPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		updated, err := svc.UpdateProduct(r.Context(), chi.URLParam(r, "productId"), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func AdminProductDelete(svc adminCatalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		if err := svc.DeleteProduct(r.Context(), chi.URLParam(r, "productId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type categoryPayload struct {
	Name        string `json:"nombre" validate:"required"`
	Description string `json:"descripcion"`
	Active      bool   `json:"estado"`
}

func (p categoryPayload) toInput() storeapi.CategoryInput {
	return storeapi.CategoryInput{Name: p.Name, Description: p.Description, Active: p.Active}
}

func AdminCategoriesList(svc adminCatalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		records, err := svc.AllCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}

func AdminCategoryCreate(svc adminCatalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		var payload categoryPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		created, err := svc.CreateCategory(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func AdminCategoryUpdate(svc adminCatalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		var payload categoryPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		updated, err := svc.UpdateCategory(r.Context(), chi.URLParam(r, "categoryId"), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func AdminCategoryDelete(svc adminCatalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		if err := svc.DeleteCategory(r.Context(), chi.URLParam(r, "categoryId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
