package cart

import (
	"context"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avidalh/electrostore-gateway/pkg/config"
	"github.com/avidalh/electrostore-gateway/pkg/enums"
	pkgerrors "github.com/avidalh/electrostore-gateway/pkg/errors"
	"github.com/avidalh/electrostore-gateway/pkg/logger"
	"github.com/avidalh/electrostore-gateway/pkg/storeapi"
)

type mockOrders struct {
	requests []storeapi.OrderRequest
	keys     []string
	err      error
}

func (m *mockOrders) CreateOrder(_ context.Context, req storeapi.OrderRequest, key string) (*storeapi.Order, error) {
	m.requests = append(m.requests, req)
	m.keys = append(m.keys, key)
	if m.err != nil {
		return nil, m.err
	}
	return &storeapi.Order{ID: "ord-1", UserID: req.UserID, Total: req.Total, Status: req.Status}, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func newTestManager(t *testing.T, orders orderPlacer, cfg config.CartConfig) *Manager {
	t.Helper()
	mgr, err := NewManager(orders, testLogger(), cfg)
	require.NoError(t, err)
	return mgr
}

func price(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func laptop() Item {
	return Item{ID: "p-1", Name: "Laptop", UnitPrice: price("999.90"), Quantity: 1, AvailableStock: 5}
}

func mouse() Item {
	return Item{ID: "p-2", Name: "Mouse", UnitPrice: price("25.50"), Quantity: 2, AvailableStock: 10}
}

func TestAddMergesByProductID(t *testing.T) {
	mgr := newTestManager(t, &mockOrders{}, config.CartConfig{})

	require.NoError(t, mgr.Add(laptop()))
	require.NoError(t, mgr.Add(mouse()))
	require.NoError(t, mgr.Add(laptop()))

	items := mgr.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "p-1", items[0].ID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "p-2", items[1].ID)
	assert.Equal(t, 2, items[1].Quantity)
}

func TestAddValidation(t *testing.T) {
	mgr := newTestManager(t, &mockOrders{}, config.CartConfig{})

	cases := []struct {
		name string
		item Item
	}{
		{name: "missing id", item: Item{Quantity: 1}},
		{name: "zero quantity", item: Item{ID: "p-1", Quantity: 0}},
		{name: "negative price", item: Item{ID: "p-1", Quantity: 1, UnitPrice: price("-1")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := mgr.Add(tc.item)
			require.Error(t, err)
			appErr := pkgerrors.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
		})
	}
	assert.Zero(t, mgr.Count())
}

func TestRemoveUnknownIDIsNoop(t *testing.T) {
	mgr := newTestManager(t, &mockOrders{}, config.CartConfig{})
	require.NoError(t, mgr.Add(laptop()))

	mgr.Remove("missing")
	assert.Equal(t, 1, mgr.Count())

	mgr.Remove("p-1")
	assert.Zero(t, mgr.Count())
}

func TestUpdateQuantityBounds(t *testing.T) {
	mgr := newTestManager(t, &mockOrders{}, config.CartConfig{})
	require.NoError(t, mgr.Add(laptop()))

	mgr.UpdateQuantity("p-1", 3)
	assert.Equal(t, 3, mgr.Items()[0].Quantity)

	// out of range requests leave the line untouched
	mgr.UpdateQuantity("p-1", 0)
	assert.Equal(t, 3, mgr.Items()[0].Quantity)
	mgr.UpdateQuantity("p-1", 6)
	assert.Equal(t, 3, mgr.Items()[0].Quantity)

	mgr.UpdateQuantity("missing", 2)
	assert.Equal(t, 1, mgr.Count())
}

func TestTotalUsesExactDecimalMath(t *testing.T) {
	mgr := newTestManager(t, &mockOrders{}, config.CartConfig{})
	require.NoError(t, mgr.Add(Item{ID: "a", UnitPrice: price("0.10"), Quantity: 3, AvailableStock: 10}))
	require.NoError(t, mgr.Add(Item{ID: "b", UnitPrice: price("0.20"), Quantity: 1, AvailableStock: 10}))

	assert.True(t, mgr.Total().Equal(price("0.50")), "got %s", mgr.Total())
}

func TestItemsReturnsSnapshotCopy(t *testing.T) {
	mgr := newTestManager(t, &mockOrders{}, config.CartConfig{})
	require.NoError(t, mgr.Add(laptop()))

	items := mgr.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, mgr.Items()[0].Quantity)
}

func TestCheckoutSubmitsPendingOrderAndClears(t *testing.T) {
	orders := &mockOrders{}
	mgr := newTestManager(t, orders, config.CartConfig{})
	mgr.SetUser("u-42")
	require.NoError(t, mgr.Add(laptop()))
	require.NoError(t, mgr.Add(mouse()))

	order, err := mgr.Checkout(context.Background())
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, "ord-1", order.ID)

	require.Len(t, orders.requests, 1)
	req := orders.requests[0]
	assert.Equal(t, "u-42", req.UserID)
	assert.Equal(t, enums.OrderStatusPending, req.Status)
	assert.InDelta(t, 1050.90, req.Total, 0.0001)
	require.Len(t, req.Items, 2)
	assert.Equal(t, storeapi.OrderItem{ProductID: "p-1", Quantity: 1, Price: 999.90}, req.Items[0])
	assert.Equal(t, storeapi.OrderItem{ProductID: "p-2", Quantity: 2, Price: 25.50}, req.Items[1])

	require.Len(t, orders.keys, 1)
	assert.NotEmpty(t, orders.keys[0])

	assert.Zero(t, mgr.Count())
}

func TestCheckoutRequiresSession(t *testing.T) {
	mgr := newTestManager(t, &mockOrders{}, config.CartConfig{})
	require.NoError(t, mgr.Add(laptop()))

	_, err := mgr.Checkout(context.Background())
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeUnauthenticated, appErr.Code())
	assert.Equal(t, 1, mgr.Count())
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	mgr := newTestManager(t, &mockOrders{}, config.CartConfig{})
	mgr.SetUser("u-42")

	_, err := mgr.Checkout(context.Background())
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestCheckoutFailureKeepsCartAndSurfacesUpstreamMessage(t *testing.T) {
	orders := &mockOrders{err: &storeapi.APIError{Status: 400, Message: "stock insuficiente"}}
	mgr := newTestManager(t, orders, config.CartConfig{})
	mgr.SetUser("u-42")
	require.NoError(t, mgr.Add(laptop()))

	_, err := mgr.Checkout(context.Background())
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeOrderCreation, appErr.Code())
	assert.Equal(t, "stock insuficiente", appErr.Message())

	assert.Equal(t, 1, mgr.Count())
}

func TestCheckoutUsesFreshIdempotencyKeyPerAttempt(t *testing.T) {
	orders := &mockOrders{err: &storeapi.APIError{Status: 502}}
	mgr := newTestManager(t, orders, config.CartConfig{})
	mgr.SetUser("u-42")
	require.NoError(t, mgr.Add(laptop()))

	_, err := mgr.Checkout(context.Background())
	require.Error(t, err)
	orders.err = nil
	_, err = mgr.Checkout(context.Background())
	require.NoError(t, err)

	require.Len(t, orders.keys, 2)
	assert.NotEqual(t, orders.keys[0], orders.keys[1])
}

func TestUserSwitchKeepsCartByDefault(t *testing.T) {
	mgr := newTestManager(t, &mockOrders{}, config.CartConfig{})
	mgr.SetUser("u-1")
	require.NoError(t, mgr.Add(laptop()))

	mgr.SetUser("u-2")
	assert.Equal(t, 1, mgr.Count())
}

func TestUserSwitchClearsCartWhenConfigured(t *testing.T) {
	mgr := newTestManager(t, &mockOrders{}, config.CartConfig{ClearOnUserSwitch: true})
	mgr.SetUser("u-1")
	require.NoError(t, mgr.Add(laptop()))

	mgr.SetUser("u-2")
	assert.Zero(t, mgr.Count())

	// logout then login as the same user is not a switch
	mgr.SetUser("u-2")
	require.NoError(t, mgr.Add(mouse()))
	mgr.SetUser("")
	mgr.SetUser("u-2")
	assert.Equal(t, 1, mgr.Count())
}
