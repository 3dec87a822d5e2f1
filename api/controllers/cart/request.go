package cart

import (
	"github.com/shopspring/decimal"

	cartsvc "github.com/oakline/storefront-backend/internal/cart"
)

// AddItemRequest is the payload for adding a catalog item to the cart. Name,
// price, and image are captured as-is; the store does not re-read the catalog.
type AddItemRequest struct {
	ID       string          `json:"id" validate:"required"`
	Name     string          `json:"name" validate:"required"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity" validate:"required,gte=1"`
	ImageURL string          `json:"imageUrl"`
}

func (r AddItemRequest) toItem() cartsvc.Item {
	return cartsvc.Item{
		ID:       r.ID,
		Name:     r.Name,
		Price:    r.Price,
		Quantity: r.Quantity,
		ImageURL: r.ImageURL,
	}
}

// UpdateQuantityRequest sets a line's quantity. Values below 1 are clamped to
// 1 by the store; an optional stock ceiling clamps the upper bound.
type UpdateQuantityRequest struct {
	Quantity     int  `json:"quantity"`
	StockCeiling *int `json:"stockCeiling"`
}
