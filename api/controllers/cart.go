package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/avidalh/electrostore-gateway/api/responses"
	"github.com/avidalh/electrostore-gateway/api/validators"
	cartsvc "github.com/avidalh/electrostore-gateway/internal/cart"
	pkgerrors "github.com/avidalh/electrostore-gateway/pkg/errors"
	"github.com/avidalh/electrostore-gateway/pkg/logger"
	"github.com/avidalh/electrostore-gateway/pkg/storeapi"
)

type cartManager interface {
	Add(item cartsvc.Item) error
	Remove(productID string)
	UpdateQuantity(productID string, quantity int)
	Clear()
	Items() []cartsvc.Item
	Total() decimal.Decimal
}

type productFinder interface {
	Product(ctx context.Context, id string) (*storeapi.Product, error)
}

type cartItemView struct {
	ProductID      string  `json:"productId"`
	Name           string  `json:"name"`
	UnitPrice      float64 `json:"unitPrice"`
	Quantity       int     `json:"quantity"`
	AvailableStock int     `json:"availableStock"`
	ImageURL       string  `json:"imageUrl,omitempty"`
	Subtotal       float64 `json:"subtotal"`
}

type cartView struct {
	Items []cartItemView `json:"items"`
	Total float64        `json:"total"`
}

func newCartView(items []cartsvc.Item, total decimal.Decimal) cartView {
	view := cartView{Items: make([]cartItemView, 0, len(items)), Total: total.InexactFloat64()}
	for _, it := range items {
		view.Items = append(view.Items, cartItemView{
			ProductID:      it.ID,
			Name:           it.Name,
			UnitPrice:      it.UnitPrice.InexactFloat64(),
			Quantity:       it.Quantity,
			AvailableStock: it.AvailableStock,
			ImageURL:       it.ImageURL,
			Subtotal:       it.Subtotal().InexactFloat64(),
		})
	}
	return view
}

// CartShow returns the current cart contents.
func CartShow(cart cartManager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cart == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}
		responses.WriteSuccess(w, newCartView(cart.Items(), cart.Total()))
	}
}

type addItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// CartAddItem resolves the product and puts it in the cart. The product's
// current price and stock are captured at add time, as the storefront did.
func CartAddItem(cart cartManager, finder productFinder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cart == nil || finder == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := finder.Product(r.Context(), payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if product.Stock <= 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeConflict, "product is out of stock"))
			return
		}
		if payload.Quantity > product.Stock {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "quantity exceeds available stock"))
			return
		}

		item := cartsvc.Item{
			ID:             product.ID,
			Name:           product.Name,
			UnitPrice:      decimal.NewFromFloat(product.Price),
			Quantity:       payload.Quantity,
			AvailableStock: product.Stock,
			ImageURL:       product.ImageURL,
		}
		if err := cart.Add(item); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newCartView(cart.Items(), cart.Total()))
	}
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}

// CartUpdateItem replaces a line's quantity. Out-of-range values leave the
// cart unchanged rather than erroring, so the response always reflects the
// effective state.
func CartUpdateItem(cart cartManager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cart == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}

		var payload updateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cart.UpdateQuantity(chi.URLParam(r, "productId"), payload.Quantity)
		responses.WriteSuccess(w, newCartView(cart.Items(), cart.Total()))
	}
}

// CartRemoveItem drops a line. Unknown product ids are a no-op.
func CartRemoveItem(cart cartManager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cart == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}
		cart.Remove(chi.URLParam(r, "productId"))
		responses.WriteSuccess(w, newCartView(cart.Items(), cart.Total()))
	}
}

// CartClear empties the cart.
func CartClear(cart cartManager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cart == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}
		cart.Clear()
		responses.WriteSuccess(w, newCartView(cart.Items(), cart.Total()))
	}
}
