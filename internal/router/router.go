package router

import (
	"errors"
	"net/http"
	"time"

	mem "pet-grooming/internal/adapters/storage/memory"
	"pet-grooming/internal/domain/appointments"
	"pet-grooming/internal/domain/booking"
	"pet-grooming/internal/domain/catalog"
	"pet-grooming/internal/domain/dashboard"
	"pet-grooming/internal/domain/identity"
	"pet-grooming/internal/domain/ledger"
	"pet-grooming/internal/domain/payments"
	"pet-grooming/internal/domain/pets"
	"pet-grooming/internal/domain/tutors"
	"pet-grooming/internal/middleware"
	"pet-grooming/internal/platform/background"
	"pet-grooming/internal/platform/logger"
	"pet-grooming/internal/ports/auth"
	"pet-grooming/internal/ports/datastore"
	"pet-grooming/internal/ports/events"
	"pet-grooming/internal/ports/kv"

	_ "pet-grooming/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Options struct {
	Log logger.Logger

	// Estado local (fuente de verdad). nil => seed por defecto.
	Store   *mem.Store
	Catalog *catalog.Catalog

	// nil => KV in-memory.
	KV kv.Store

	// Todos opcionales: nil deshabilita la integración.
	Remote    datastore.RemoteStore
	Provider  auth.IdentityProvider
	Gateway   payments.CheckoutGateway
	Publisher events.Publisher
	Limiter   middleware.Counter

	PaymentMode      payments.Mode
	PaymentMockDelay time.Duration
	RateLimit        int

	Runner *background.Runner

	AdminEmail    string
	AdminPassword string
}

func NewRouter(opts Options) (http.Handler, error) {
	log := opts.Log
	if log == nil {
		log = logger.NewNop()
	}
	if opts.AdminEmail == "" || opts.AdminPassword == "" {
		return nil, errors.New("router: admin credentials required")
	}

	store := opts.Store
	if store == nil {
		store = mem.NewStore(mem.DefaultSeed(time.Now()))
	}
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.NewCatalog()
	}
	kvStore := opts.KV
	if kvStore == nil {
		kvStore = mem.NewKV()
	}
	runner := opts.Runner
	if runner == nil {
		runner = background.NewRunner(log, 0)
	}

	// Services por módulo
	tutorsSvc := tutors.NewService(mem.NewTutorRepo(store))
	petsSvc := pets.NewService(mem.NewPetRepo(store))
	apptsSvc := appointments.NewService(mem.NewAppointmentRepo(store))

	identitySvc, err := identity.NewService(identity.Options{
		Provider:      opts.Provider,
		Tutors:        tutorsSvc,
		Remote:        opts.Remote,
		KV:            kvStore,
		Log:           log.With(map[string]any{"module": "identity"}),
		AdminEmail:    opts.AdminEmail,
		AdminPassword: opts.AdminPassword,
	})
	if err != nil {
		return nil, err
	}

	txLedger := ledger.New(kvStore, opts.Remote, log.With(map[string]any{"module": "ledger"}))
	paymentsSvc := payments.NewService(payments.Config{Mode: opts.PaymentMode, MockDelay: opts.PaymentMockDelay}, opts.Gateway)
	flows := payments.NewFlows(paymentsSvc, cat, txLedger, log.With(map[string]any{"module": "payments"}))

	orchestrator := booking.NewOrchestrator(booking.Options{
		Store:     store,
		Remote:    opts.Remote,
		Payments:  paymentsSvc,
		Publisher: opts.Publisher,
		Runner:    runner,
		Log:       log.With(map[string]any{"module": "booking"}),
	})

	dashboardSvc := dashboard.NewService(dashboard.Options{
		Appointments: apptsSvc,
		Tutors:       tutorsSvc,
		Pets:         petsSvc,
		Catalog:      cat,
		Transactions: txLedger,
		Remote:       opts.Remote,
		Log:          log.With(map[string]any{"module": "dashboard"}),
	})

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AccessLog(log))
	r.Use(middleware.Recover(log))
	r.Use(middleware.ClientIDs)
	r.Use(middleware.LoadSession(identitySvc, log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	limit := func(name string) func(http.Handler) http.Handler {
		return middleware.RateLimit(opts.Limiter, name, opts.RateLimit, time.Minute, log)
	}

	// Rutas públicas
	catalog.RegisterRoutes(r, cat)
	appointments.RegisterRoutes(r, apptsSvc)
	r.Group(func(lr chi.Router) {
		lr.Use(limit("login"))
		identity.RegisterRoutes(lr, identitySvc)
	})
	r.Group(func(br chi.Router) {
		br.Use(limit("bookings"))
		booking.RegisterRoutes(br, orchestrator, cat)
	})
	payments.RegisterRoutes(r, flows)

	r.Route("/admin", func(ar chi.Router) {
		ar.Use(middleware.RequireRole(auth.RoleAdmin))

		dashboard.RegisterAdminRoutes(ar, dashboardSvc)
		tutors.RegisterAdminRoutes(ar, tutorsSvc, petsSvc)
		pets.RegisterAdminRoutes(ar, petsSvc)
		appointments.RegisterAdminRoutes(ar, apptsSvc)
		booking.RegisterAdminRoutes(ar, orchestrator, cat)
	})

	r.Route("/me", func(cr chi.Router) {
		cr.Use(middleware.RequireRole(auth.RoleClient))

		dashboard.RegisterClientRoutes(cr, dashboardSvc)
		pets.RegisterClientRoutes(cr, petsSvc)
		ledger.RegisterClientRoutes(cr, txLedger)
	})

	return otelhttp.NewHandler(r, "pet-grooming"), nil
}
