package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "dev" {
		t.Fatalf("expected App.Env to default to dev, got %q", cfg.App.Env)
	}
	if !cfg.App.IsDev() {
		t.Fatal("expected IsDev for default env")
	}
	if cfg.App.Port != "8080" {
		t.Fatalf("unexpected default port %q", cfg.App.Port)
	}
	if cfg.Session.TTL != 2*time.Hour {
		t.Fatalf("expected session TTL 2h, got %v", cfg.Session.TTL)
	}
	if cfg.Redis.Enabled() {
		t.Fatal("redis should be disabled without a URL or address")
	}

	if cfg.Store.CatalogPath != filepath.Join("shared-data", "catalog.json") {
		t.Fatalf("unexpected catalog path %q", cfg.Store.CatalogPath)
	}
	if cfg.Store.OrdersDir != filepath.Join("shared-data", "orders") {
		t.Fatalf("unexpected orders dir %q", cfg.Store.OrdersDir)
	}
	if cfg.Store.FraudDBPath != filepath.Join("shared-data", "fraud_cases.json") {
		t.Fatalf("unexpected fraud db path %q", cfg.Store.FraudDBPath)
	}
}

func TestLoad_ExplicitPathsWin(t *testing.T) {
	t.Setenv("KIRANA_DATA_DIR", "/var/lib/kirana")
	t.Setenv("KIRANA_CATALOG_PATH", "/etc/kirana/catalog.json")
	t.Setenv("KIRANA_REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.Store.CatalogPath != "/etc/kirana/catalog.json" {
		t.Fatalf("explicit catalog path should win, got %q", cfg.Store.CatalogPath)
	}
	if cfg.Store.OrdersDir != filepath.Join("/var/lib/kirana", "orders") {
		t.Fatalf("orders dir should derive from data dir, got %q", cfg.Store.OrdersDir)
	}
	if !cfg.Redis.Enabled() {
		t.Fatal("redis should be enabled with a URL")
	}
}
