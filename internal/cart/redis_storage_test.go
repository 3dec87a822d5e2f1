package cart

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/oakline/storefront-backend/pkg/config"
)

type fakeKV struct {
	values  map[string]string
	lastTTL time.Duration
	getErr  error
	setErr  error
}

func newFakeKV() *fakeKV {
	return &fakeKV{values: map[string]string{}}
}

func (f *fakeKV) Get(_ context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	val, ok := f.values[key]
	if !ok {
		return "", goredis.Nil
	}
	return val, nil
}

func (f *fakeKV) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.values[key] = value.(string)
	f.lastTTL = ttl
	return nil
}

func (f *fakeKV) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func TestRedisStorageLoadMissingSnapshot(t *testing.T) {
	t.Parallel()

	storage, err := NewRedisStorage(newFakeKV(), config.CartConfig{SnapshotTTL: time.Hour})
	if err != nil {
		t.Fatalf("failed to build storage: %v", err)
	}

	items, err := storage.Load(context.Background(), "session-1")
	if err != nil {
		t.Fatalf("missing snapshot must not be an error: %v", err)
	}
	if items != nil {
		t.Fatalf("expected nil items for missing snapshot, got %+v", items)
	}
}

func TestRedisStorageSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	kv := newFakeKV()
	storage, err := NewRedisStorage(kv, config.CartConfig{SnapshotTTL: time.Hour})
	if err != nil {
		t.Fatalf("failed to build storage: %v", err)
	}

	in := []Item{
		{ID: "p1", Name: "Mug", Price: decimal.RequireFromString("12.50"), Quantity: 2, ImageURL: "https://cdn.example.com/mug.jpg"},
		{ID: "p2", Name: "Shirt", Price: decimal.NewFromInt(30), Quantity: 1},
	}
	if err := storage.Save(context.Background(), "session-1", in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kv.lastTTL != time.Hour {
		t.Fatalf("expected configured ttl, got %s", kv.lastTTL)
	}

	out, err := storage.Load(context.Background(), "session-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 items, got %d", len(out))
	}
	if out[0].ID != "p1" || out[0].Quantity != 2 || !out[0].Price.Equal(in[0].Price) {
		t.Fatalf("first item mismatch: %+v", out[0])
	}
	if out[1].ID != "p2" || out[1].Quantity != 1 {
		t.Fatalf("second item mismatch: %+v", out[1])
	}
}

func TestRedisStorageClearRemovesKey(t *testing.T) {
	t.Parallel()

	kv := newFakeKV()
	storage, err := NewRedisStorage(kv, config.CartConfig{SnapshotTTL: time.Hour})
	if err != nil {
		t.Fatalf("failed to build storage: %v", err)
	}

	if err := storage.Save(context.Background(), "session-1", []Item{testItem("p1", 1)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := storage.Clear(context.Background(), "session-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(kv.values) != 0 {
		t.Fatalf("expected key removal, got %v", kv.values)
	}

	items, err := storage.Load(context.Background(), "session-1")
	if err != nil || items != nil {
		t.Fatalf("expected a clean miss after clear, got %+v / %v", items, err)
	}
}

func TestRedisStorageLoadRejectsCorruptSnapshot(t *testing.T) {
	t.Parallel()

	kv := newFakeKV()
	kv.values["storefront:cart:session-1"] = "{not json"
	storage, err := NewRedisStorage(kv, config.CartConfig{SnapshotTTL: time.Hour})
	if err != nil {
		t.Fatalf("failed to build storage: %v", err)
	}

	if _, err := storage.Load(context.Background(), "session-1"); err == nil {
		t.Fatal("expected decode error for corrupt snapshot")
	}
}
