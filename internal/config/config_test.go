package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("DB_MAX_CONNS", "")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "")

	cfg := FromEnv()

	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("expected default addr :8080, got %q", cfg.HTTPAddr)
	}
	if cfg.DBMaxConns != 0 {
		t.Fatalf("expected pool size left to the driver, got %d", cfg.DBMaxConns)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("expected 10s shutdown timeout, got %s", cfg.ShutdownTimeout)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "3")
	t.Setenv("ALLOWED_ORIGINS", "https://pakety.example, https://admin.pakety.example")

	cfg := FromEnv()

	if cfg.DBMaxConns != 25 {
		t.Fatalf("expected 25 max conns, got %d", cfg.DBMaxConns)
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Fatalf("expected 3s shutdown timeout, got %s", cfg.ShutdownTimeout)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://admin.pakety.example" {
		t.Fatalf("expected two trimmed origins, got %v", cfg.AllowedOrigins)
	}
}

func TestEnvInt32RejectsGarbage(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "not-a-number")
	if got := envInt32("DB_MAX_CONNS", 0); got != 0 {
		t.Fatalf("expected fallback to default, got %d", got)
	}

	t.Setenv("DB_MAX_CONNS", "-4")
	if got := envInt32("DB_MAX_CONNS", 0); got != 0 {
		t.Fatalf("negative pool size must fall back to default, got %d", got)
	}
}
