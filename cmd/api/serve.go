package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"pet-grooming/internal/adapters/auth/supabase"
	sbstore "pet-grooming/internal/adapters/datastore/supabase"
	"pet-grooming/internal/adapters/events/kafka"
	"pet-grooming/internal/adapters/kv/redis"
	"pet-grooming/internal/adapters/payments/abacate"
	"pet-grooming/internal/adapters/payments/stripe"
	mem "pet-grooming/internal/adapters/storage/memory"
	pg "pet-grooming/internal/adapters/storage/postgres"
	"pet-grooming/internal/config"
	"pet-grooming/internal/domain/payments"
	"pet-grooming/internal/platform/background"
	"pet-grooming/internal/platform/logger"
	"pet-grooming/internal/platform/telemetry"
	"pet-grooming/internal/router"
)

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.NewFromEnv()
	defer func() { _ = log.Sync() }()

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:      cfg.OTelEnabled,
		ServiceName:  cfg.OTelServiceName,
		OTLPEndpoint: cfg.OTelEndpoint,
		SampleRatio:  cfg.OTelSampleRatio,
	})
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	opts := router.Options{
		Log:              log,
		Store:            mem.NewStore(mem.DefaultSeed(time.Now())),
		PaymentMode:      payments.Mode(cfg.PaymentMode),
		PaymentMockDelay: cfg.PaymentMockDelay,
		RateLimit:        cfg.RateLimitPerMinute,
		AdminEmail:       cfg.AdminEmail,
		AdminPassword:    cfg.AdminPassword,
	}

	// Supabase: proveedor de identidad + edge functions + PostgREST
	var functions *sbstore.Store
	if cfg.SupabaseConfigured() {
		opts.Provider = supabase.NewClient(supabase.Config{URL: cfg.SupabaseURL, AnonKey: cfg.SupabaseAnonKey})
		functions, err = sbstore.NewStore(sbstore.Config{URL: cfg.SupabaseURL, AnonKey: cfg.SupabaseAnonKey})
		if err != nil {
			return fmt.Errorf("supabase store: %w", err)
		}
		opts.Remote = functions
	}

	// Postgres propio tiene prioridad como almacén remoto
	var db *sql.DB
	if cfg.DBDSN != "" {
		db, err = pg.Open(ctx, cfg.DBDSN, dbPool(cfg))
		if err != nil {
			return err
		}
		defer db.Close()
		if err := pg.Migrate(ctx, db); err != nil {
			return err
		}
		opts.Remote = pg.NewRemoteStore(db)
		log.Info("remote store: postgres", nil)
	}

	if cfg.RedisAddr != "" {
		rs := redis.New(redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TabTTL:   cfg.SessionTTL,
		})
		defer rs.Close()
		if err := rs.Ping(ctx); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		opts.KV = rs
		opts.Limiter = rs
		log.Info("kv store: redis", map[string]any{"addr": cfg.RedisAddr})
	}

	switch cfg.PaymentGateway {
	case config.GatewayStripe:
		if cfg.StripeSecretKey != "" {
			gw, err := stripe.NewGateway(stripe.Config{
				SecretKey:  cfg.StripeSecretKey,
				SuccessURL: cfg.CheckoutSuccessURL,
				CancelURL:  cfg.CheckoutCancelURL,
			})
			if err != nil {
				return fmt.Errorf("stripe: %w", err)
			}
			opts.Gateway = gw
		}
	default:
		if functions != nil {
			opts.Gateway = abacate.NewGateway(functions)
		}
	}

	if pub := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic); pub != nil {
		defer func() { _ = pub.Close() }()
		opts.Publisher = pub
		log.Info("events: kafka", map[string]any{"brokers": cfg.KafkaBrokers, "topic": cfg.KafkaTopic})
	}

	runner := background.NewRunner(log.With(map[string]any{"module": "background"}), 0)
	opts.Runner = runner

	h, err := router.NewRouter(opts)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      h,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr":            cfg.Addr(),
			"env":             cfg.Environment,
			"payment_mode":    cfg.PaymentMode,
			"payment_gateway": cfg.PaymentGateway,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error("server shutdown", map[string]any{"err": err.Error()})
	}
	// escrituras remotas y eventos pendientes
	runner.Wait()
	return nil
}

func runMigrate(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.DBDSN == "" {
		return errors.New("DB_DSN is required for migrate")
	}
	log := logger.NewFromEnv()
	defer func() { _ = log.Sync() }()

	db, err := pg.Open(ctx, cfg.DBDSN, dbPool(cfg))
	if err != nil {
		return err
	}
	defer db.Close()

	if err := pg.Migrate(ctx, db); err != nil {
		return err
	}
	v, err := pg.Version(ctx, db)
	if err != nil {
		return err
	}
	log.Info("migrations applied", map[string]any{"version": v})
	return nil
}

func dbPool(cfg *config.Config) pg.PoolOptions {
	return pg.PoolOptions{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		PingTimeout:     cfg.DBPingTimeout,
	}
}
