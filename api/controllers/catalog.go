package controllers

import (
	"context"
	"net/http"

	"github.com/avidalh/electrostore-gateway/api/responses"
	pkgerrors "github.com/avidalh/electrostore-gateway/pkg/errors"
	"github.com/avidalh/electrostore-gateway/pkg/logger"
	"github.com/avidalh/electrostore-gateway/pkg/storeapi"
)

type storefrontCatalog interface {
	AvailableProducts(ctx context.Context, categoryID string) ([]storeapi.Product, error)
	Categories(ctx context.Context) ([]storeapi.Category, error)
}

// CatalogProducts lists the purchasable products, optionally filtered by the
// category query parameter. Out-of-stock entries never reach the storefront.
func CatalogProducts(svc storefrontCatalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		records, err := svc.AvailableProducts(r.Context(), r.URL.Query().Get("category"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}

// CatalogCategories lists the active categories for the storefront filter.
func CatalogCategories(svc storefrontCatalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		records, err := svc.Categories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}
