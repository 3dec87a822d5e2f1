package cart

import (
	"context"
	"fmt"
	"strings"
	"sync"

	pkgerrors "github.com/oakline/storefront-backend/pkg/errors"
	"github.com/oakline/storefront-backend/pkg/logger"
)

// Store holds the authoritative in-session cart state and keeps it
// synchronized with durable storage. All mutations serialize through one
// mutex, so two near-simultaneous adds for the same id always merge
// additively instead of racing the snapshot write.
type Store struct {
	sessionID string
	storage   Storage
	auth      AuthStatusProvider
	logg      *logger.Logger

	hydrateOnce sync.Once

	mu    sync.Mutex
	items []Item
	ready bool
}

// NewStore builds a cart store for one session. The store is not usable for
// mutation until Hydrate has run.
func NewStore(sessionID string, storage Storage, auth AuthStatusProvider, logg *logger.Logger) (*Store, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, fmt.Errorf("session id required")
	}
	if storage == nil {
		return nil, fmt.Errorf("cart storage required")
	}
	if auth == nil {
		return nil, fmt.Errorf("auth status provider required")
	}
	return &Store{
		sessionID: sessionID,
		storage:   storage,
		auth:      auth,
		logg:      logg,
	}, nil
}

// Hydrate loads any persisted snapshot verbatim. It runs at most once; a
// storage read failure is logged and the store starts empty, with memory
// authoritative for the rest of the session.
func (s *Store) Hydrate(ctx context.Context) {
	s.hydrateOnce.Do(func() {
		items, err := s.storage.Load(ctx, s.sessionID)
		s.mu.Lock()
		defer s.mu.Unlock()
		if err != nil {
			s.logError(ctx, "cart.hydrate_failed", err)
			items = nil
		}
		s.items = items
		s.ready = true
	})
}

// Ready reports whether hydration has completed. Dependent logic must not
// treat a not-yet-ready store as an empty cart.
func (s *Store) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Items returns a copy of the current lines in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Add merges the item into the cart. An existing id gains the incoming
// quantity; a new id is appended. Rejected with an authorization error when
// the session is signed out, leaving the cart unchanged.
func (s *Store) Add(ctx context.Context, item Item) error {
	if !s.auth.SignedIn(ctx) {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to add items to the cart")
	}
	if strings.TrimSpace(item.ID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	if item.Quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be at least 1")
	}
	if item.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "item price cannot be negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureReady(); err != nil {
		return err
	}

	merged := false
	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, item)
	}

	s.persistLocked(ctx)
	return nil
}

// Remove deletes the line with the given id. Absent ids are a silent no-op.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureReady(); err != nil {
		return err
	}

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persistLocked(ctx)
			return nil
		}
	}
	return nil
}

// UpdateQuantity sets the quantity for the line with the given id, clamped to
// a minimum of 1. A non-nil stockCeiling additionally clamps the upper bound;
// the ceiling is a caller-supplied constraint, not a store invariant. Absent
// ids are a silent no-op.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int, stockCeiling *int) error {
	if quantity < 1 {
		quantity = 1
	}
	if stockCeiling != nil && *stockCeiling >= 1 && quantity > *stockCeiling {
		quantity = *stockCeiling
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureReady(); err != nil {
		return err
	}

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = quantity
			s.persistLocked(ctx)
			return nil
		}
	}
	return nil
}

// Clear empties the cart and removes the persisted snapshot entirely, so the
// next hydration starts from nothing rather than a stale empty array.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureReady(); err != nil {
		return err
	}

	s.items = nil
	if err := s.storage.Clear(ctx, s.sessionID); err != nil {
		s.logError(ctx, "cart.snapshot_clear_failed", err)
	}
	return nil
}

func (s *Store) ensureReady() error {
	if !s.ready {
		return pkgerrors.New(pkgerrors.CodeInternal, "cart store not hydrated")
	}
	return nil
}

// persistLocked writes the full snapshot after a mutation. Storage failures
// are logged and swallowed; the in-memory cart stays authoritative.
func (s *Store) persistLocked(ctx context.Context) {
	snapshot := make([]Item, len(s.items))
	copy(snapshot, s.items)
	if err := s.storage.Save(ctx, s.sessionID, snapshot); err != nil {
		s.logError(ctx, "cart.snapshot_save_failed", err)
	}
}

func (s *Store) logError(ctx context.Context, msg string, err error) {
	if s.logg == nil {
		return
	}
	ctx = s.logg.WithSessionID(ctx, s.sessionID)
	s.logg.Error(ctx, msg, err)
}
