package cart

import (
	"context"

	"github.com/shopspring/decimal"
)

// Item is one line entry in a session's cart. Name, price, and image are
// captured at add-time and never re-synced with the catalog.
type Item struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	ImageURL string          `json:"imageUrl"`
}

// Storage persists cart snapshots keyed by session. Load returns (nil, nil)
// when no snapshot exists; a missing snapshot and an empty one are equivalent.
type Storage interface {
	Load(ctx context.Context, sessionID string) ([]Item, error)
	Save(ctx context.Context, sessionID string, items []Item) error
	Clear(ctx context.Context, sessionID string) error
}

// AuthStatusProvider reports whether the current request belongs to a
// signed-in user. Only Add consults it.
type AuthStatusProvider interface {
	SignedIn(ctx context.Context) bool
}
