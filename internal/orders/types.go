package orders

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/oakline/storefront-backend/pkg/enums"
)

// LineRef ties an ordered catalog item to the quantity purchased.
type LineRef struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Record is the durable artifact created on successful checkout. It carries
// only the last 4 digits of the card; the full number never reaches this type.
type Record struct {
	OrderID         string            `json:"orderId"`
	CustomerName    string            `json:"customerName"`
	Address         string            `json:"address"`
	City            string            `json:"city"`
	PostalCode      string            `json:"postalCode"`
	Country         string            `json:"country"`
	CardNumberLast4 string            `json:"cardNumberLast4"`
	TotalPrice      decimal.Decimal   `json:"totalPrice"`
	Items           []LineRef         `json:"items"`
	Status          enums.OrderStatus `json:"status"`
	CreatedAt       time.Time         `json:"createdAt"`
}

// Repository accepts order records for creation. The write is atomic: either
// the whole record is stored or none of it.
type Repository interface {
	Create(ctx context.Context, record Record) error
}
