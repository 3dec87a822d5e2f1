package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/oakline/storefront-backend/pkg/contentstore"
	pkgerrors "github.com/oakline/storefront-backend/pkg/errors"
	"github.com/oakline/storefront-backend/pkg/logger"
)

const (
	summaryProjection = `{_id, price, name, "slug": slug.current, "categoryName": category->name, "imageUrl": image.asset->url}`

	listQuery     = `*[_type == "product"] | order(_createdAt desc) ` + summaryProjection
	categoryQuery = `*[_type == "product" && category->name == $category] ` + summaryProjection
	searchQuery   = `*[_type == "product" && name match $term] ` + summaryProjection
	slugQuery     = `*[_type == "product" && slug.current == $slug][0] {_id, price, name, description, stock, "slug": slug.current, "categoryName": category->name, "imageUrl": image.asset->url}`
)

// Service exposes read-only catalog queries against the content store. The
// storefront core consumes id, name, price, and image for cart construction;
// everything else feeds listing and detail views.
type Service struct {
	store contentstore.Querier
	logg  *logger.Logger
}

// NewService builds a catalog service on the shared content-store client.
func NewService(store contentstore.Querier, logg *logger.Logger) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("content store client required")
	}
	return &Service{store: store, logg: logg}, nil
}

// List returns every product, newest first, then re-sorted by option.
func (s *Service) List(ctx context.Context, option SortOption) ([]Summary, error) {
	return s.listSummaries(ctx, listQuery, nil, option)
}

// ListByCategory returns products whose category matches the given name.
func (s *Service) ListByCategory(ctx context.Context, category string, option SortOption) ([]Summary, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}
	return s.listSummaries(ctx, categoryQuery, map[string]any{"category": category}, option)
}

// Search returns products whose name matches the free-text term.
func (s *Service) Search(ctx context.Context, term string, option SortOption) ([]Summary, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search term is required")
	}
	return s.listSummaries(ctx, searchQuery, map[string]any{"term": term + "*"}, option)
}

// GetBySlug returns the full product record, including stock and description.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug is required")
	}

	raw, err := s.store.Query(ctx, slugQuery, map[string]any{"slug": slug})
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	var product Product
	if err := json.Unmarshal(raw, &product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode product")
	}
	return &product, nil
}

func (s *Service) listSummaries(ctx context.Context, query string, params map[string]any, option SortOption) ([]Summary, error) {
	raw, err := s.store.Query(ctx, query, params)
	if err != nil {
		return nil, err
	}

	summaries := []Summary{}
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &summaries); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode products")
		}
	}

	applySort(summaries, option)
	return summaries, nil
}
