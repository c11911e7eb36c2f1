package config

import (
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("POSTGRES_DSN", "postgres://localhost:5432/chargenet")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REDIS_ADDR", "localhost:6379")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddress() != ":8080" {
		t.Fatalf("address = %q", cfg.HTTPAddress())
	}
	if cfg.JWTExpiration() != time.Hour {
		t.Fatalf("expiration = %v", cfg.JWTExpiration())
	}
	if cfg.Tariff.RatePerKWh != 8.5 {
		t.Fatalf("rate = %v", cfg.Tariff.RatePerKWh)
	}
}

func TestLoadRequiresDSN(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("POSTGRES_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected missing DSN to fail")
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET", "  ")

	if _, err := Load(); err == nil {
		t.Fatal("expected missing JWT secret to fail")
	}
}

func TestLoadRequiresRedisAddr(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("REDIS_ADDR", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected missing redis addr to fail")
	}
}

func TestEnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HTTP_PORT", "9191")
	t.Setenv("JWT_EXPIRES_MINUTES", "15")
	t.Setenv("TARIFF_RATE_PER_KWH", "11.25")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddress() != ":9191" {
		t.Fatalf("address = %q", cfg.HTTPAddress())
	}
	if cfg.JWTExpiration() != 15*time.Minute {
		t.Fatalf("expiration = %v", cfg.JWTExpiration())
	}
	if cfg.Tariff.RatePerKWh != 11.25 {
		t.Fatalf("rate = %v", cfg.Tariff.RatePerKWh)
	}
}

func TestNonPositiveRateFallsBack(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TARIFF_RATE_PER_KWH", "-1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Tariff.RatePerKWh != 8.5 {
		t.Fatalf("rate = %v, want default", cfg.Tariff.RatePerKWh)
	}
}
