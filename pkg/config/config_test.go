package config

import (
	"os"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("STOREFRONT_APP_ENV", "development")
	t.Setenv("STOREFRONT_APP_PORT", "8080")
	t.Setenv("STOREFRONT_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("STOREFRONT_JWT_SECRET", "test-secret")
	t.Setenv("STOREFRONT_JWT_ISSUER", "storefront-test")
	t.Setenv("STOREFRONT_CONTENT_PROJECT_ID", "abc123")
}

func TestLoadAppliesDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.App.LogLevel != "info" {
		t.Fatalf("expected default log level info, got %s", cfg.App.LogLevel)
	}
	if !cfg.App.IsDev() || cfg.App.IsProd() {
		t.Fatal("development env must report IsDev only")
	}
	if cfg.Redis.PoolSize != 10 || cfg.Redis.DialTimeout != 5*time.Second {
		t.Fatalf("redis defaults mismatch: %+v", cfg.Redis)
	}
	if cfg.JWT.ExpirationMinutes != 60 {
		t.Fatalf("expected default expiration 60, got %d", cfg.JWT.ExpirationMinutes)
	}
	if cfg.ContentStore.Dataset != "production" || cfg.ContentStore.APIVersion != "2023-03-25" {
		t.Fatalf("content store defaults mismatch: %+v", cfg.ContentStore)
	}
	if cfg.ContentStore.Timeout != 10*time.Second {
		t.Fatalf("expected default content timeout 10s, got %s", cfg.ContentStore.Timeout)
	}
	if cfg.Cart.SnapshotTTL != 720*time.Hour {
		t.Fatalf("expected default snapshot ttl 720h, got %s", cfg.Cart.SnapshotTTL)
	}
	if cfg.Session.CookieName != "storefront_session" {
		t.Fatalf("expected default cookie name, got %s", cfg.Session.CookieName)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "http://localhost:3000" {
		t.Fatalf("cors defaults mismatch: %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoadReadsOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("STOREFRONT_APP_ENV", "production")
	t.Setenv("STOREFRONT_LOG_LEVEL", "debug")
	t.Setenv("STOREFRONT_CART_SNAPSHOT_TTL", "24h")
	t.Setenv("STOREFRONT_CONTENT_USE_CDN", "true")
	t.Setenv("STOREFRONT_CORS_ALLOWED_ORIGINS", "https://shop.example.com,https://admin.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.App.IsProd() {
		t.Fatal("production env must report IsProd")
	}
	if cfg.App.LogLevel != "debug" {
		t.Fatalf("expected debug log level, got %s", cfg.App.LogLevel)
	}
	if cfg.Cart.SnapshotTTL != 24*time.Hour {
		t.Fatalf("expected 24h ttl, got %s", cfg.Cart.SnapshotTTL)
	}
	if !cfg.ContentStore.UseCDN {
		t.Fatal("expected cdn flag set")
	}
	if len(cfg.CORS.AllowedOrigins) != 2 {
		t.Fatalf("expected two origins, got %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoadFailsWithoutRequiredValues(t *testing.T) {
	setRequiredEnv(t)
	// t.Setenv registered the restore; drop the variable for this load only.
	if err := os.Unsetenv("STOREFRONT_REDIS_URL"); err != nil {
		t.Fatalf("failed to unset env: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing redis url")
	}
}

func TestLoadFailsWithoutContentProject(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("STOREFRONT_CONTENT_PROJECT_ID", "  ")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for blank content project id")
	}
}
