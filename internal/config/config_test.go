package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "PAYMENT_MODE", "PAYMENT_GATEWAY", "PAYMENT_MOCK_DELAY", "SESSION_TTL", "ADMIN_EMAIL"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr() != ":8080" {
		t.Fatalf("expected :8080, got %s", cfg.Addr())
	}
	if cfg.PaymentMode != PaymentModeMock || cfg.PaymentGateway != GatewayAbacate {
		t.Fatalf("unexpected payment defaults: %s/%s", cfg.PaymentMode, cfg.PaymentGateway)
	}
	if cfg.PaymentMockDelay != 400*time.Millisecond {
		t.Fatalf("expected 400ms mock delay, got %s", cfg.PaymentMockDelay)
	}
	if cfg.AdminEmail != "admin@petmanager.com" {
		t.Fatalf("unexpected admin email %q", cfg.AdminEmail)
	}
}

func TestLoad_DBPool(t *testing.T) {
	t.Setenv("PAYMENT_MODE", "")
	t.Setenv("PAYMENT_GATEWAY", "")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("DB_PING_TIMEOUT", "5s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBMaxOpenConns != 20 || cfg.DBMaxIdleConns != 5 || cfg.DBPingTimeout != 5*time.Second {
		t.Fatalf("unexpected pool config %+v", cfg)
	}

	t.Setenv("DB_MAX_OPEN_CONNS", "many")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid DB_MAX_OPEN_CONNS")
	}
}

func TestLoad_LiveStripeRequiresKey(t *testing.T) {
	t.Setenv("PAYMENT_MODE", "live")
	t.Setenv("PAYMENT_GATEWAY", "stripe")
	t.Setenv("STRIPE_SECRET_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when stripe key is missing")
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("PAYMENT_MODE", "")
	t.Setenv("PAYMENT_GATEWAY", "")
	t.Setenv("SESSION_TTL", "forever")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid SESSION_TTL")
	}
}
