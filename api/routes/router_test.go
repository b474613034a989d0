package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartsvc "github.com/avidalh/electrostore-gateway/internal/cart"
	catalogsvc "github.com/avidalh/electrostore-gateway/internal/catalog"
	inventorysvc "github.com/avidalh/electrostore-gateway/internal/inventory"
	requestssvc "github.com/avidalh/electrostore-gateway/internal/servicerequests"
	"github.com/avidalh/electrostore-gateway/internal/session"
	technicianssvc "github.com/avidalh/electrostore-gateway/internal/technicians"
	userssvc "github.com/avidalh/electrostore-gateway/internal/users"
	"github.com/avidalh/electrostore-gateway/pkg/config"
	"github.com/avidalh/electrostore-gateway/pkg/enums"
	"github.com/avidalh/electrostore-gateway/pkg/logger"
	"github.com/avidalh/electrostore-gateway/pkg/storeapi"
)

type memorySessionStore struct {
	values map[string]string
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{values: map[string]string{}}
}

func (s *memorySessionStore) SetGroup(_ context.Context, entries map[string]string, _ time.Duration) error {
	for k, v := range entries {
		s.values[k] = v
	}
	return nil
}

func (s *memorySessionStore) GetGroup(_ context.Context, keys ...string) (map[string]string, bool, error) {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		v, ok := s.values[k]
		if !ok {
			return nil, false, nil
		}
		out[k] = v
	}
	return out, true, nil
}

func (s *memorySessionStore) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(s.values, k)
	}
	return nil
}

func (s *memorySessionStore) SessionKey(field string) string {
	return "es:session:" + field
}

// fakeUpstream serves the upstream list endpoints the smoke tests touch.
func fakeUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/Producto", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]storeapi.Product{
			{ID: "p-1", Name: "Laptop", Price: 999.90, Stock: 4},
			{ID: "p-2", Name: "Cable", Price: 5.50, Stock: 0},
		})
	})
	mux.HandleFunc("/Categoria", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]storeapi.Category{
			{ID: "c-1", Name: "Computadoras", Active: true},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestRouter(t *testing.T) (http.Handler, *session.Manager) {
	t.Helper()

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	upstream, err := storeapi.NewClient(fakeUpstream(t).URL)
	require.NoError(t, err)

	sessions, err := session.NewManager(newMemorySessionStore(), config.SessionConfig{})
	require.NoError(t, err)
	cart, err := cartsvc.NewManager(upstream, logg, config.CartConfig{})
	require.NoError(t, err)
	users, err := userssvc.NewService(upstream, sessions, logg)
	require.NoError(t, err)
	catalog, err := catalogsvc.NewService(upstream, logg)
	require.NoError(t, err)
	technicians, err := technicianssvc.NewService(upstream)
	require.NoError(t, err)
	requests, err := requestssvc.NewService(upstream, logg)
	require.NoError(t, err)
	inventory, err := inventorysvc.NewService(upstream)
	require.NoError(t, err)

	cfg := &config.Config{App: config.AppConfig{Env: "test", Port: "0"}}

	router := NewRouter(Deps{
		Config:      cfg,
		Logger:      logg,
		Upstream:    upstream,
		Sessions:    sessions,
		Cart:        cart,
		Users:       users,
		Catalog:     catalog,
		Technicians: technicians,
		Requests:    requests,
		Inventory:   inventory,
		MetricsHTTP: http.NotFoundHandler(),
	})
	return router, sessions
}

func TestRouterHealthLive(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/health/live", nil))

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "test", rec.Header().Get("X-ElectroStore-Env"))
}

func TestRouterOpenCatalogRoutes(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/products", nil))
	require.Equal(t, 200, rec.Code)

	// The storefront list hides out-of-stock products.
	var envelope struct {
		Data []storeapi.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "p-1", envelope.Data[0].ID)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/categories", nil))
	assert.Equal(t, 200, rec.Code)
}

func TestRouterAnonymousCartRedirectsToLogin(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/cart", nil))

	require.Equal(t, 303, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRouterCustomerCannotReachAdmin(t *testing.T) {
	router, sessions := newTestRouter(t)
	require.NoError(t, sessions.Login(context.Background(), "Ana", enums.RoleCustomer, "u-1"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/admin/products", nil))

	require.Equal(t, 303, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestRouterAdminProductList(t *testing.T) {
	router, sessions := newTestRouter(t)
	require.NoError(t, sessions.Login(context.Background(), "Root", enums.RoleAdmin, "u-admin"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/admin/products", nil))

	require.Equal(t, 200, rec.Code)

	// The admin list is unfiltered, out-of-stock products included.
	var envelope struct {
		Data []storeapi.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data, 2)
}

func TestRouterSignedInCartFlow(t *testing.T) {
	router, sessions := newTestRouter(t)
	require.NoError(t, sessions.Login(context.Background(), "Ana", enums.RoleCustomer, "u-1"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/cart", nil))
	require.Equal(t, 200, rec.Code)

	var envelope struct {
		Data struct {
			Items []any   `json:"items"`
			Total float64 `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Empty(t, envelope.Data.Items)
}
