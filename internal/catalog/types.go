package catalog

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Summary is the simplified product projection used on listing pages.
type Summary struct {
	ID           string          `json:"_id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Slug         string          `json:"slug"`
	CategoryName string          `json:"categoryName"`
	ImageURL     string          `json:"imageUrl"`
}

// Product is the full record behind a product detail page.
type Product struct {
	Summary
	Description string `json:"description"`
	Stock       int    `json:"stock"`
}

// SortOption orders listing results. Sorting is a read-only view concern.
type SortOption string

const (
	SortNameAsc   SortOption = "name-asc"
	SortNameDesc  SortOption = "name-desc"
	SortPriceAsc  SortOption = "price-asc"
	SortPriceDesc SortOption = "price-desc"
)

var validSortOptions = []SortOption{
	SortNameAsc,
	SortNameDesc,
	SortPriceAsc,
	SortPriceDesc,
}

// ParseSortOption converts raw input into a SortOption, defaulting to
// name ascending for empty input.
func ParseSortOption(value string) (SortOption, error) {
	if value == "" {
		return SortNameAsc, nil
	}
	for _, candidate := range validSortOptions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort option %q", value)
}

func applySort(items []Summary, option SortOption) {
	sort.SliceStable(items, func(i, j int) bool {
		switch option {
		case SortNameDesc:
			return items[i].Name > items[j].Name
		case SortPriceAsc:
			return items[i].Price.LessThan(items[j].Price)
		case SortPriceDesc:
			return items[j].Price.LessThan(items[i].Price)
		default:
			return items[i].Name < items[j].Name
		}
	})
}
