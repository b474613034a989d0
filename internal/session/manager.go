package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/avidalh/electrostore-gateway/pkg/config"
	"github.com/avidalh/electrostore-gateway/pkg/enums"
	pkgerrors "github.com/avidalh/electrostore-gateway/pkg/errors"
)

// Field names of the persisted session triple. They match the localStorage
// keys used by the legacy web client.
const (
	fieldUser   = "user"
	fieldUserID = "userId"
	fieldRole   = "role"
)

// Identity is the authenticated identity of the current session. Either all
// fields are set (logged in) or all are empty (logged out); the manager never
// exposes a partial state.
type Identity struct {
	UserName string
	UserID   string
	Role     enums.Role
}

// IsZero reports whether the identity represents a logged-out session.
func (i Identity) IsZero() bool {
	return i.UserName == "" && i.UserID == "" && i.Role == ""
}

type sessionStore interface {
	SetGroup(ctx context.Context, entries map[string]string, ttl time.Duration) error
	GetGroup(ctx context.Context, keys ...string) (map[string]string, bool, error)
	Del(ctx context.Context, keys ...string) error
	SessionKey(field string) string
}

// Subscriber receives the new identity after every session change.
type Subscriber func(Identity)

// Manager owns the session identity and its persistence. It is constructed
// once at startup and handed to every consumer; reads are synchronous and
// mutations publish identity-change events to subscribers.
type Manager struct {
	store sessionStore
	ttl   time.Duration

	mu          sync.Mutex
	current     Identity
	subscribers []Subscriber
}

// NewManager builds the session manager backed by the given key-value store.
func NewManager(store sessionStore, cfg config.SessionConfig) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("session store is required")
	}
	return &Manager{store: store, ttl: cfg.TTL}, nil
}

// Subscribe registers a callback invoked synchronously after each identity
// change. Meant to be wired once at startup, before Restore.
func (m *Manager) Subscribe(fn Subscriber) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	m.subscribers = append(m.subscribers, fn)
	m.mu.Unlock()
}

// Current returns a snapshot of the session identity.
func (m *Manager) Current() Identity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Login sets the full identity and persists the triple as a group.
// Credential validation happens before this is called.
func (m *Manager) Login(ctx context.Context, userName string, role enums.Role, userID string) error {
	userName = strings.TrimSpace(userName)
	userID = strings.TrimSpace(userID)
	if userName == "" || userID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "user name and user id are required")
	}
	if !role.Valid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown role")
	}

	entries := map[string]string{
		m.store.SessionKey(fieldUser):   userName,
		m.store.SessionKey(fieldUserID): userID,
		m.store.SessionKey(fieldRole):   string(role),
	}
	if err := m.store.SetGroup(ctx, entries, m.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist session")
	}

	m.set(Identity{UserName: userName, UserID: userID, Role: role})
	return nil
}

// Logout clears the identity and removes the persisted triple. Calling it on
// a logged-out session is a no-op.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	if m.current.IsZero() {
		m.mu.Unlock()
		return nil
	}
	m.mu.Unlock()

	m.set(Identity{})

	keys := []string{
		m.store.SessionKey(fieldUser),
		m.store.SessionKey(fieldUserID),
		m.store.SessionKey(fieldRole),
	}
	if err := m.store.Del(ctx, keys...); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear persisted session")
	}
	return nil
}

// Restore loads the persisted triple at startup. A partial group is never
// adopted; the session stays empty.
func (m *Manager) Restore(ctx context.Context) error {
	keys := []string{
		m.store.SessionKey(fieldUser),
		m.store.SessionKey(fieldUserID),
		m.store.SessionKey(fieldRole),
	}
	values, complete, err := m.store.GetGroup(ctx, keys...)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "restore session")
	}
	if !complete {
		return nil
	}

	identity := Identity{
		UserName: values[keys[0]],
		UserID:   values[keys[1]],
		Role:     enums.Role(values[keys[2]]),
	}
	if identity.UserName == "" || identity.UserID == "" || !identity.Role.Valid() {
		return nil
	}

	m.set(identity)
	return nil
}

func (m *Manager) set(identity Identity) {
	m.mu.Lock()
	m.current = identity
	subs := make([]Subscriber, len(m.subscribers))
	copy(subs, m.subscribers)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(identity)
	}
}
