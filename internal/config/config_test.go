package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/api-sage/funds-transfer-engine/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.RateCacheTTL != 2*time.Hour {
		t.Fatalf("expected default ttl of 2h, got %s", cfg.RateCacheTTL)
	}
	if cfg.RateCacheMaxEntries != 100 {
		t.Fatalf("expected default max entries of 100, got %d", cfg.RateCacheMaxEntries)
	}
	if cfg.AccountStore != "postgres" {
		t.Fatalf("expected default account store postgres, got %q", cfg.AccountStore)
	}
	if !strings.Contains(cfg.DatabaseDSN, "sslmode=disable") {
		t.Fatalf("expected normalized dsn with sslmode, got %q", cfg.DatabaseDSN)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("RATE_CACHE_TTL", "30m")
	t.Setenv("RATE_CACHE_MAX_ENTRIES", "10")
	t.Setenv("ACCOUNT_STORE", "memory")
	t.Setenv("DATABASE_DSN", "Host=db;Port=5432;Database=x;Username=u;Password=p")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.RateCacheTTL != 30*time.Minute {
		t.Fatalf("expected ttl 30m, got %s", cfg.RateCacheTTL)
	}
	if cfg.RateCacheMaxEntries != 10 {
		t.Fatalf("expected max entries 10, got %d", cfg.RateCacheMaxEntries)
	}
	if cfg.AccountStore != "memory" {
		t.Fatalf("expected memory store, got %q", cfg.AccountStore)
	}
	if !strings.Contains(cfg.DatabaseDSN, "dbname=x") || !strings.Contains(cfg.DatabaseDSN, "user=u") {
		t.Fatalf("expected normalized dsn, got %q", cfg.DatabaseDSN)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("ACCOUNT_STORE", "cassandra")
	if _, err := config.Load(); err == nil {
		t.Fatal("expected unsupported store to be rejected")
	}
}

func TestLoadRejectsBadTTL(t *testing.T) {
	t.Setenv("RATE_CACHE_TTL", "soon")
	if _, err := config.Load(); err == nil {
		t.Fatal("expected bad ttl to be rejected")
	}
}
