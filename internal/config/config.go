package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	PaymentModeMock = "mock"
	PaymentModeLive = "live"

	GatewayAbacate = "abacate"
	GatewayStripe  = "stripe"
)

type Config struct {
	Port        string
	Environment string

	// Postgres (opcional). Vacío => repos in-memory.
	DBDSN             string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBPingTimeout     time.Duration

	// Redis (opcional). Vacío => KV in-memory.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SessionTTL    time.Duration

	// Límite por minuto para /auth/login y /bookings (solo con Redis). 0 => sin límite.
	RateLimitPerMinute int

	SupabaseURL     string
	SupabaseAnonKey string

	PaymentMode        string
	PaymentGateway     string
	PaymentMockDelay   time.Duration
	StripeSecretKey    string
	CheckoutSuccessURL string
	CheckoutCancelURL  string

	KafkaBrokers string
	KafkaTopic   string

	OTelEnabled     bool
	OTelEndpoint    string
	OTelServiceName string
	OTelSampleRatio float64

	AdminEmail    string
	AdminPassword string
}

// Load lee .env si existe y después el entorno.
// Un .env ausente no es error: en contenedores todo viene por env.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		Port:        getenv("PORT", "8080"),
		Environment: getenv("ENV", "development"),

		DBDSN: strings.TrimSpace(os.Getenv("DB_DSN")),

		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		SupabaseURL:     strings.TrimSpace(os.Getenv("SUPABASE_URL")),
		SupabaseAnonKey: strings.TrimSpace(os.Getenv("SUPABASE_ANON_KEY")),

		PaymentMode:        strings.ToLower(getenv("PAYMENT_MODE", PaymentModeMock)),
		PaymentGateway:     strings.ToLower(getenv("PAYMENT_GATEWAY", GatewayAbacate)),
		StripeSecretKey:    strings.TrimSpace(os.Getenv("STRIPE_SECRET_KEY")),
		CheckoutSuccessURL: getenv("CHECKOUT_SUCCESS_URL", "http://localhost:8080/payments/return?status=success"),
		CheckoutCancelURL:  getenv("CHECKOUT_CANCEL_URL", "http://localhost:8080/payments/return?status=canceled"),

		KafkaBrokers: strings.TrimSpace(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   getenv("KAFKA_TOPIC", "pet-grooming.events"),

		OTelEndpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		OTelServiceName: getenv("OTEL_SERVICE_NAME", "pet-grooming"),

		AdminEmail:    getenv("ADMIN_EMAIL", "admin@petmanager.com"),
		AdminPassword: getenv("ADMIN_PASSWORD", "admin123"),
	}

	var err error
	if cfg.DBMaxOpenConns, err = getInt("DB_MAX_OPEN_CONNS", 10); err != nil {
		return nil, err
	}
	if cfg.DBMaxIdleConns, err = getInt("DB_MAX_IDLE_CONNS", 5); err != nil {
		return nil, err
	}
	if cfg.DBConnMaxLifetime, err = getDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.DBPingTimeout, err = getDuration("DB_PING_TIMEOUT", 3*time.Second); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.RateLimitPerMinute, err = getInt("RATE_LIMIT_PER_MINUTE", 30); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", 12*time.Hour); err != nil {
		return nil, err
	}
	if cfg.PaymentMockDelay, err = getDuration("PAYMENT_MOCK_DELAY", 400*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.OTelEnabled, err = getBool("OTEL_ENABLED", false); err != nil {
		return nil, err
	}
	if cfg.OTelSampleRatio, err = getFloat("OTEL_SAMPLE_RATIO", 1); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.PaymentMode {
	case PaymentModeMock, PaymentModeLive:
	default:
		return fmt.Errorf("PAYMENT_MODE must be mock or live, got %q", c.PaymentMode)
	}
	switch c.PaymentGateway {
	case GatewayAbacate, GatewayStripe:
	default:
		return fmt.Errorf("PAYMENT_GATEWAY must be abacate or stripe, got %q", c.PaymentGateway)
	}
	if c.PaymentMode == PaymentModeLive {
		if c.PaymentGateway == GatewayStripe && c.StripeSecretKey == "" {
			return fmt.Errorf("STRIPE_SECRET_KEY is required for live stripe payments")
		}
		if c.PaymentGateway == GatewayAbacate && !c.SupabaseConfigured() {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_ANON_KEY are required for live abacate payments")
		}
	}
	return nil
}

func (c *Config) SupabaseConfigured() bool {
	return c.SupabaseURL != "" && c.SupabaseAnonKey != ""
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func getenv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func getInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
