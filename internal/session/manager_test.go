package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avidalh/electrostore-gateway/pkg/config"
	"github.com/avidalh/electrostore-gateway/pkg/enums"
	pkgerrors "github.com/avidalh/electrostore-gateway/pkg/errors"
)

type mockStore struct {
	values map[string]string

	failSetGroup bool
	failGetGroup bool
	failDel      bool

	setGroupTTL time.Duration
}

func newMockStore() *mockStore {
	return &mockStore{values: map[string]string{}}
}

func (m *mockStore) SetGroup(_ context.Context, entries map[string]string, ttl time.Duration) error {
	if m.failSetGroup {
		return fmt.Errorf("store down")
	}
	m.setGroupTTL = ttl
	for k, v := range entries {
		m.values[k] = v
	}
	return nil
}

func (m *mockStore) GetGroup(_ context.Context, keys ...string) (map[string]string, bool, error) {
	if m.failGetGroup {
		return nil, false, fmt.Errorf("store down")
	}
	out := make(map[string]string, len(keys))
	complete := true
	for _, k := range keys {
		v, ok := m.values[k]
		if !ok {
			complete = false
		}
		out[k] = v
	}
	return out, complete, nil
}

func (m *mockStore) Del(_ context.Context, keys ...string) error {
	if m.failDel {
		return fmt.Errorf("store down")
	}
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

func (m *mockStore) SessionKey(field string) string {
	return "es:session:" + field
}

func newTestManager(t *testing.T, store *mockStore) *Manager {
	t.Helper()
	mgr, err := NewManager(store, config.SessionConfig{})
	require.NoError(t, err)
	return mgr
}

func TestLoginPersistsTripleAndPublishes(t *testing.T) {
	store := newMockStore()
	mgr := newTestManager(t, store)

	var published []Identity
	mgr.Subscribe(func(id Identity) { published = append(published, id) })

	err := mgr.Login(context.Background(), "ana", enums.RoleCustomer, "u-42")
	require.NoError(t, err)

	assert.Equal(t, "ana", store.values["es:session:user"])
	assert.Equal(t, "u-42", store.values["es:session:userId"])
	assert.Equal(t, "cliente", store.values["es:session:role"])

	current := mgr.Current()
	assert.Equal(t, Identity{UserName: "ana", UserID: "u-42", Role: enums.RoleCustomer}, current)

	require.Len(t, published, 1)
	assert.Equal(t, current, published[0])
}

func TestLoginValidation(t *testing.T) {
	mgr := newTestManager(t, newMockStore())

	cases := []struct {
		name     string
		userName string
		role     enums.Role
		userID   string
	}{
		{name: "empty user name", userName: "  ", role: enums.RoleCustomer, userID: "u-1"},
		{name: "empty user id", userName: "ana", role: enums.RoleCustomer, userID: ""},
		{name: "unknown role", userName: "ana", role: enums.Role("root"), userID: "u-1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := mgr.Login(context.Background(), tc.userName, tc.role, tc.userID)
			require.Error(t, err)
			appErr := pkgerrors.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
			assert.True(t, mgr.Current().IsZero())
		})
	}
}

func TestLoginStoreFailureLeavesSessionEmpty(t *testing.T) {
	store := newMockStore()
	store.failSetGroup = true
	mgr := newTestManager(t, store)

	err := mgr.Login(context.Background(), "ana", enums.RoleAdmin, "u-1")
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeDependency, appErr.Code())
	assert.True(t, mgr.Current().IsZero())
}

func TestLogoutClearsStateAndStorage(t *testing.T) {
	store := newMockStore()
	mgr := newTestManager(t, store)
	require.NoError(t, mgr.Login(context.Background(), "ana", enums.RoleCustomer, "u-42"))

	var published []Identity
	mgr.Subscribe(func(id Identity) { published = append(published, id) })

	require.NoError(t, mgr.Logout(context.Background()))

	assert.True(t, mgr.Current().IsZero())
	assert.Empty(t, store.values)
	require.Len(t, published, 1)
	assert.True(t, published[0].IsZero())
}

func TestLogoutIsIdempotent(t *testing.T) {
	store := newMockStore()
	mgr := newTestManager(t, store)

	calls := 0
	mgr.Subscribe(func(Identity) { calls++ })

	require.NoError(t, mgr.Logout(context.Background()))
	require.NoError(t, mgr.Logout(context.Background()))
	assert.Zero(t, calls)
}

func TestRestoreAdoptsCompleteTriple(t *testing.T) {
	store := newMockStore()
	store.values["es:session:user"] = "luis"
	store.values["es:session:userId"] = "u-7"
	store.values["es:session:role"] = "admin"
	mgr := newTestManager(t, store)

	var published []Identity
	mgr.Subscribe(func(id Identity) { published = append(published, id) })

	require.NoError(t, mgr.Restore(context.Background()))
	assert.Equal(t, Identity{UserName: "luis", UserID: "u-7", Role: enums.RoleAdmin}, mgr.Current())
	require.Len(t, published, 1)
}

func TestRestoreIgnoresPartialTriple(t *testing.T) {
	store := newMockStore()
	store.values["es:session:user"] = "luis"
	store.values["es:session:role"] = "admin"
	mgr := newTestManager(t, store)

	require.NoError(t, mgr.Restore(context.Background()))
	assert.True(t, mgr.Current().IsZero())
}

func TestRestoreIgnoresUnknownRole(t *testing.T) {
	store := newMockStore()
	store.values["es:session:user"] = "luis"
	store.values["es:session:userId"] = "u-7"
	store.values["es:session:role"] = "root"
	mgr := newTestManager(t, store)

	require.NoError(t, mgr.Restore(context.Background()))
	assert.True(t, mgr.Current().IsZero())
}

func TestRestoreStoreFailure(t *testing.T) {
	store := newMockStore()
	store.failGetGroup = true
	mgr := newTestManager(t, store)

	err := mgr.Restore(context.Background())
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeDependency, appErr.Code())
}
