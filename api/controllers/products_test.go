package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/oakline/storefront-backend/internal/catalog"
	"github.com/oakline/storefront-backend/pkg/types"
)

type fakeQuerier struct {
	result json.RawMessage
}

func (f *fakeQuerier) Query(context.Context, string, map[string]any) (json.RawMessage, error) {
	return f.result, nil
}

func newProductRouter(t *testing.T, result string) chi.Router {
	t.Helper()
	svc, err := catalog.NewService(&fakeQuerier{result: json.RawMessage(result)}, nil)
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}

	r := chi.NewRouter()
	r.Get("/products", ProductList(svc, nil))
	r.Get("/products/search", ProductSearch(svc, nil))
	r.Get("/products/category/{name}", ProductsByCategory(svc, nil))
	r.Get("/products/{slug}", ProductBySlug(svc, nil))
	return r
}

const productListJSON = `[
	{"_id": "p1", "name": "Walnut Desk", "price": 450, "slug": "walnut-desk", "categoryName": "Furniture", "imageUrl": ""},
	{"_id": "p2", "name": "Brass Lamp", "price": 89.5, "slug": "brass-lamp", "categoryName": "Lighting", "imageUrl": ""}
]`

func TestProductListSorted(t *testing.T) {
	t.Parallel()

	router := newProductRouter(t, productListJSON)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products?sort=price-desc", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data []catalog.Summary `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(envelope.Data) != 2 || envelope.Data[0].ID != "p1" {
		t.Fatalf("expected price-desc order, got %+v", envelope.Data)
	}
}

func TestProductListRejectsUnknownSort(t *testing.T) {
	t.Parallel()

	router := newProductRouter(t, productListJSON)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products?sort=rating", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestProductSearchRequiresTerm(t *testing.T) {
	t.Parallel()

	router := newProductRouter(t, productListJSON)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/search", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without a term, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/search?q=lamp", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestProductsByCategory(t *testing.T) {
	t.Parallel()

	router := newProductRouter(t, productListJSON)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/category/Lighting", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestProductBySlugNotFound(t *testing.T) {
	t.Parallel()

	router := newProductRouter(t, `null`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/ghost", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var envelope types.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if envelope.Error.Code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %s", envelope.Error.Code)
	}
}

func TestProductBySlugFound(t *testing.T) {
	t.Parallel()

	router := newProductRouter(t, `{"_id": "p2", "name": "Brass Lamp", "price": 89.5, "slug": "brass-lamp", "categoryName": "Lighting", "imageUrl": "", "description": "Solid brass.", "stock": 7}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/brass-lamp", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data catalog.Product `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if envelope.Data.Stock != 7 {
		t.Fatalf("unexpected product %+v", envelope.Data)
	}
}
