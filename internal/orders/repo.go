package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oakline/storefront-backend/pkg/contentstore"
	pkgerrors "github.com/oakline/storefront-backend/pkg/errors"
	"github.com/oakline/storefront-backend/pkg/logger"
)

const documentType = "order"

// ContentStoreRepository writes order documents to the headless content store.
type ContentStoreRepository struct {
	store contentstore.Mutator
	logg  *logger.Logger
}

// NewContentStoreRepository builds the repository on the shared content-store client.
func NewContentStoreRepository(store contentstore.Mutator, logg *logger.Logger) (*ContentStoreRepository, error) {
	if store == nil {
		return nil, fmt.Errorf("content store client required")
	}
	return &ContentStoreRepository{store: store, logg: logg}, nil
}

// Create persists the order record as a single create mutation.
func (r *ContentStoreRepository) Create(ctx context.Context, record Record) error {
	if err := validateRecord(record); err != nil {
		return err
	}

	items := make([]map[string]any, 0, len(record.Items))
	for _, line := range record.Items {
		items = append(items, map[string]any{
			"_type": "reference",
			"_ref":  line.ProductID,
			"_key":  fmt.Sprintf("%s-%d", line.ProductID, line.Quantity),
		})
	}

	totalPrice, _ := record.TotalPrice.Round(2).Float64()
	doc := map[string]any{
		"_type":        documentType,
		"orderId":      record.OrderID,
		"customerName": record.CustomerName,
		"address":      record.Address,
		"city":         record.City,
		"postalCode":   record.PostalCode,
		"country":      record.Country,
		"cardNumber":   record.CardNumberLast4,
		"totalPrice":   totalPrice,
		"items":        items,
		"status":       record.Status.String(),
		"createdAt":    record.CreatedAt.UTC().Format(time.RFC3339),
	}

	if err := r.store.Mutate(ctx, []contentstore.Mutation{{Create: doc}}); err != nil {
		if r.logg != nil {
			logCtx := r.logg.WithField(ctx, "order_id", record.OrderID)
			r.logg.Error(logCtx, "orders.create_failed", err)
		}
		return err
	}

	if r.logg != nil {
		logCtx := r.logg.WithField(ctx, "order_id", record.OrderID)
		r.logg.Info(logCtx, "orders.created")
	}
	return nil
}

func validateRecord(record Record) error {
	if strings.TrimSpace(record.OrderID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	if len(record.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}
	if len(record.CardNumberLast4) > 4 {
		return pkgerrors.New(pkgerrors.CodeValidation, "card fragment must be at most 4 digits")
	}
	if !record.Status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}
	return nil
}
