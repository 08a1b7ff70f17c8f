package config_test

import (
	"testing"
	"time"

	"github.com/stridelab/wellness-challenges/internal/config"
)

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		cfg, err := config.Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Server.Port != 8080 {
			t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
		}
		if cfg.Consumer.MaxDeliver != 5 {
			t.Errorf("expected default max deliver 5, got %d", cfg.Consumer.MaxDeliver)
		}
		if cfg.Consumer.CacheTTL != 10*time.Second {
			t.Errorf("expected default cache TTL 10s, got %v", cfg.Consumer.CacheTTL)
		}
		if cfg.NATS.URL != "nats://localhost:4222" {
			t.Errorf("unexpected default NATS URL %q", cfg.NATS.URL)
		}
	})

	t.Run("reads overrides from the environment", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("LEADERBOARD_CACHE_TTL", "30s")
		t.Setenv("CONSUMER_MAX_DELIVER", "3")

		cfg, err := config.Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Server.Port != 9090 {
			t.Errorf("expected port 9090, got %d", cfg.Server.Port)
		}
		if cfg.Consumer.CacheTTL != 30*time.Second {
			t.Errorf("expected cache TTL 30s, got %v", cfg.Consumer.CacheTTL)
		}
		if cfg.Consumer.MaxDeliver != 3 {
			t.Errorf("expected max deliver 3, got %d", cfg.Consumer.MaxDeliver)
		}
	})

	t.Run("rejects malformed durations", func(t *testing.T) {
		t.Setenv("LEADERBOARD_CACHE_TTL", "ten seconds")

		if _, err := config.Load(); err == nil {
			t.Fatal("expected error for malformed duration")
		}
	})
}

func TestDatabaseConfig_ConnectionString(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "svc",
		Password: "secret",
		Database: "wellness",
		SSLMode:  "require",
	}

	want := "host=db.internal port=5433 user=svc password=secret dbname=wellness sslmode=require"
	if got := cfg.ConnectionString(); got != want {
		t.Errorf("ConnectionString mismatch:\n got  %q\n want %q", got, want)
	}
}

func TestRedisConfig_Address(t *testing.T) {
	cfg := config.RedisConfig{Host: "cache.internal", Port: 6380}
	if got := cfg.Address(); got != "cache.internal:6380" {
		t.Errorf("Address mismatch: got %q", got)
	}
}
