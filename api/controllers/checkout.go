package controllers

import (
	"context"
	"net/http"

	"github.com/avidalh/electrostore-gateway/api/responses"
	pkgerrors "github.com/avidalh/electrostore-gateway/pkg/errors"
	"github.com/avidalh/electrostore-gateway/pkg/logger"
	"github.com/avidalh/electrostore-gateway/pkg/metrics"
	"github.com/avidalh/electrostore-gateway/pkg/storeapi"
)

type checkoutManager interface {
	Checkout(ctx context.Context) (*storeapi.Order, error)
}

type checkoutResponse struct {
	OrderID string  `json:"orderId"`
	Total   float64 `json:"total"`
	Status  string  `json:"status"`
}

// Checkout submits the cart as an order. On failure the cart stays intact
// and the upstream's message is surfaced so the client can show it.
func Checkout(cart checkoutManager, m *metrics.HTTPMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cart == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}

		order, err := cart.Checkout(r.Context())
		if err != nil {
			m.IncCheckoutFailure()
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncCheckoutSuccess()
		responses.WriteSuccessStatus(w, http.StatusCreated, checkoutResponse{
			OrderID: order.ID,
			Total:   order.Total,
			Status:  string(order.Status),
		})
	}
}
