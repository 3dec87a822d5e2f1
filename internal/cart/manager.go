package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/oakline/storefront-backend/pkg/logger"
)

// Manager hands out one hydrated Store per session id. Caching the store
// keeps all mutations for a session flowing through the same serialized
// state, so a rapid double-add cannot be lost between snapshot writes.
type Manager struct {
	storage Storage
	auth    AuthStatusProvider
	logg    *logger.Logger

	mu     sync.Mutex
	stores map[string]*Store
}

// NewManager builds a cart manager backed by the provided storage and auth signal.
func NewManager(storage Storage, auth AuthStatusProvider, logg *logger.Logger) (*Manager, error) {
	if storage == nil {
		return nil, fmt.Errorf("cart storage required")
	}
	if auth == nil {
		return nil, fmt.Errorf("auth status provider required")
	}
	return &Manager{
		storage: storage,
		auth:    auth,
		logg:    logg,
	}, nil
}

// Store returns the session's cart store, creating and hydrating it on first
// access.
func (m *Manager) Store(ctx context.Context, sessionID string) (*Store, error) {
	m.mu.Lock()
	store, ok := m.stores[sessionID]
	if !ok {
		var err error
		store, err = NewStore(sessionID, m.storage, m.auth, m.logg)
		if err != nil {
			m.mu.Unlock()
			return nil, err
		}
		if m.stores == nil {
			m.stores = make(map[string]*Store)
		}
		m.stores[sessionID] = store
	}
	m.mu.Unlock()

	store.Hydrate(ctx)
	return store, nil
}

// Evict drops the cached store for a session, forcing the next access to
// re-hydrate from storage.
func (m *Manager) Evict(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stores, sessionID)
}
