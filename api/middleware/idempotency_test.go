package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryIdempotencyStore struct {
	values map[string]string
}

func newMemoryStore() *memoryIdempotencyStore {
	return &memoryIdempotencyStore{values: map[string]string{}}
}

func (m *memoryIdempotencyStore) Get(_ context.Context, key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (m *memoryIdempotencyStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, ok := m.values[key]; ok {
		return false, nil
	}
	m.values[key] = value.(string)
	return true, nil
}

func (m *memoryIdempotencyStore) IdempotencyKey(scope, id string) string {
	return "es:idem:" + scope + ":" + id
}

func (m *memoryIdempotencyStore) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

func checkoutRouter(store *memoryIdempotencyStore, hits *int) http.Handler {
	r := chi.NewRouter()
	r.Use(Idempotency(store, time.Hour, nil))
	r.Post("/api/v1/checkout", func(w http.ResponseWriter, req *http.Request) {
		*hits++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data":{"orderId":"ord-1"}}`))
	})
	r.Post("/api/v1/cart/items", func(w http.ResponseWriter, req *http.Request) {
		*hits++
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	store := newMemoryStore()
	hits := 0
	router := checkoutRouter(store, &hits)

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/api/v1/checkout", strings.NewReader(`{}`))
		req.Header.Set("Idempotency-Key", "key-1")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	first := send()
	second := send()

	assert.Equal(t, 1, hits, "handler must run once")
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "application/json", second.Header().Get("Content-Type"))
}

func TestIdempotencyRejectsKeyReuseWithDifferentBody(t *testing.T) {
	store := newMemoryStore()
	hits := 0
	router := checkoutRouter(store, &hits)

	req := httptest.NewRequest("POST", "/api/v1/checkout", strings.NewReader(`{"a":1}`))
	req.Header.Set("Idempotency-Key", "key-1")
	router.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest("POST", "/api/v1/checkout", strings.NewReader(`{"a":2}`))
	req.Header.Set("Idempotency-Key", "key-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, 1, hits)
}

func TestIdempotencyRequiresHeaderOnGuardedRoute(t *testing.T) {
	store := newMemoryStore()
	hits := 0
	router := checkoutRouter(store, &hits)

	req := httptest.NewRequest("POST", "/api/v1/checkout", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, hits)
}

func TestIdempotencyIgnoresUnguardedRoutes(t *testing.T) {
	store := newMemoryStore()
	hits := 0
	router := checkoutRouter(store, &hits)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/api/v1/cart/items", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, 2, hits)
	assert.Empty(t, store.values)
}
