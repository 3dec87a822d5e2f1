package cart

import (
	"github.com/shopspring/decimal"

	cartsvc "github.com/oakline/storefront-backend/internal/cart"
)

// View is the cart projection returned to the UI layer.
type View struct {
	Items []cartsvc.Item `json:"items"`
	Total string         `json:"total"`
}

func newView(items []cartsvc.Item) View {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return View{
		Items: items,
		Total: total.Round(2).StringFixed(2),
	}
}
