package cart

import (
	"context"
	stdErrors "errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avidalh/electrostore-gateway/pkg/config"
	"github.com/avidalh/electrostore-gateway/pkg/enums"
	pkgerrors "github.com/avidalh/electrostore-gateway/pkg/errors"
	"github.com/avidalh/electrostore-gateway/pkg/logger"
	"github.com/avidalh/electrostore-gateway/pkg/storeapi"
)

// Item is one cart line. AvailableStock is the stock observed when the
// product was added and caps later quantity updates.
type Item struct {
	ID             string
	Name           string
	UnitPrice      decimal.Decimal
	Quantity       int
	AvailableStock int
	ImageURL       string
}

// Subtotal is the line total, unit price times quantity.
func (i Item) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type orderPlacer interface {
	CreateOrder(ctx context.Context, req storeapi.OrderRequest, idempotencyKey string) (*storeapi.Order, error)
}

// Manager holds the in-memory cart and drives checkout against the upstream
// order resource. All methods are safe for concurrent use.
type Manager struct {
	orders            orderPlacer
	logg              *logger.Logger
	clearOnUserSwitch bool
	newKey            func() string

	mu       sync.Mutex
	items    []Item
	userID   string
	lastUser string
}

// NewManager builds the cart manager. The order placer is only needed for
// Checkout; everything else is local state.
func NewManager(orders orderPlacer, logg *logger.Logger, cfg config.CartConfig) (*Manager, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Manager{
		orders:            orders,
		logg:              logg,
		clearOnUserSwitch: cfg.ClearOnUserSwitch,
		newKey:            uuid.NewString,
	}, nil
}

// SetUser tracks the session's user id. Wired to session identity changes at
// startup. By default the cart contents survive a user switch, matching the
// historical behavior; ClearOnUserSwitch opts into dropping them instead.
func (m *Manager) SetUser(userID string) {
	m.mu.Lock()
	m.userID = userID
	// A switch is a change between two signed-in users; logout and a later
	// login as the same user do not count.
	switched := userID != "" && m.lastUser != "" && userID != m.lastUser
	if userID != "" {
		m.lastUser = userID
	}
	hasItems := len(m.items) > 0
	if switched && hasItems && m.clearOnUserSwitch {
		m.items = nil
	}
	m.mu.Unlock()

	if switched && hasItems {
		ctx := m.logg.WithField(context.Background(), "user_id", userID)
		if m.clearOnUserSwitch {
			m.logg.Info(ctx, "cart cleared on user switch")
		} else {
			m.logg.Warn(ctx, "cart retained across user switch")
		}
	}
}

// Add puts a product in the cart. Adding an id that is already present merges
// into the existing line by summing quantities.
func (m *Manager) Add(item Item) error {
	if item.ID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if item.Quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if item.UnitPrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unit price cannot be negative")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == item.ID {
			m.items[i].Quantity += item.Quantity
			return nil
		}
	}
	m.items = append(m.items, item)
	return nil
}

// Remove deletes a line by product id. Unknown ids are ignored.
func (m *Manager) Remove(productID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == productID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity replaces a line's quantity. Requests outside the valid range
// (below one or above the line's available stock) leave the line untouched,
// as do unknown product ids.
func (m *Manager) UpdateQuantity(productID string, quantity int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID != productID {
			continue
		}
		if quantity <= 0 || quantity > m.items[i].AvailableStock {
			return
		}
		m.items[i].Quantity = quantity
		return
	}
}

// Clear empties the cart.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.items = nil
	m.mu.Unlock()
}

// Items returns a snapshot copy of the cart lines in insertion order.
func (m *Manager) Items() []Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Item, len(m.items))
	copy(out, m.items)
	return out
}

// Count returns the number of distinct lines.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Total sums the line subtotals with exact decimal arithmetic.
func (m *Manager) Total() decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return totalOf(m.items)
}

func totalOf(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// Checkout submits the cart as a pending order for the current user. The
// cart is cleared only after the upstream accepts the order; on failure it is
// kept intact so the submission can be retried.
func (m *Manager) Checkout(ctx context.Context) (*storeapi.Order, error) {
	m.mu.Lock()
	userID := m.userID
	items := make([]Item, len(m.items))
	copy(items, m.items)
	m.mu.Unlock()

	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthenticated, "sign in before checking out")
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	req := storeapi.OrderRequest{
		UserID: userID,
		Total:  totalOf(items).InexactFloat64(),
		Status: enums.OrderStatusPending,
		Items:  make([]storeapi.OrderItem, 0, len(items)),
	}
	for _, it := range items {
		req.Items = append(req.Items, storeapi.OrderItem{
			ProductID: it.ID,
			Quantity:  it.Quantity,
			Price:     it.UnitPrice.InexactFloat64(),
		})
	}

	key := m.newKey()
	ctx = m.logg.WithFields(ctx, map[string]any{
		"user_id":         userID,
		"idempotency_key": key,
		"cart_lines":      len(items),
	})

	order, err := m.orders.CreateOrder(ctx, req, key)
	if err != nil {
		m.logg.Error(ctx, "order submission failed", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeOrderCreation, err, checkoutFailureMessage(err))
	}

	m.Clear()
	m.logg.Info(ctx, "order accepted")
	return order, nil
}

// checkoutFailureMessage prefers the upstream's own message when the API
// returned one.
func checkoutFailureMessage(err error) string {
	var apiErr *storeapi.APIError
	if stdErrors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "order could not be created"
}
