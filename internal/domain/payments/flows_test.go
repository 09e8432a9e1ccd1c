package payments

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pet-grooming/internal/adapters/storage/memory"
	"pet-grooming/internal/domain/catalog"
	"pet-grooming/internal/domain/ledger"
	"pet-grooming/internal/middleware"
	"pet-grooming/internal/platform/logger"
	"pet-grooming/internal/ports/auth"
	"pet-grooming/internal/ports/kv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newFlows(t *testing.T, gw CheckoutGateway) (*Flows, *ledger.Ledger, *memory.RemoteStore) {
	t.Helper()
	remote := memory.NewRemoteStore()
	l := ledger.New(memory.NewKV(), remote, nil)
	svc := NewService(Config{Mode: ModeLive}, gw)
	return NewFlows(svc, catalog.NewCatalog(), l, nil), l, remote
}

var client = auth.Session{UserID: "u1", Email: "ana@example.com", Name: "Ana", Role: auth.RoleClient}

func TestSubscribe_RecordsPendingTransaction(t *testing.T) {
	gw := &testGateway{resp: CheckoutResponse{ReferenceID: "bill_1", URL: "https://pay.example/bill_1"}}
	f, l, remote := newFlows(t, gw)
	ctx := context.Background()

	c, err := f.Subscribe(ctx, client, "dev-1", "plano-premium")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if c.RedirectURL != "https://pay.example/bill_1" {
		t.Fatalf("unexpected checkout %+v", c)
	}

	req := gw.got[0]
	if req.AmountCents != 12000 || req.Description != "Assinatura do plano plano-premium" {
		t.Fatalf("unexpected gateway request %+v", req)
	}

	txs, _ := l.List(ctx, "dev-1")
	if len(txs) != 1 {
		t.Fatalf("expected one local transaction, got %d", len(txs))
	}
	tx := txs[0]
	if tx.Type != ledger.TypeSubscription || tx.Status != ledger.StatusPending || tx.Amount != 120 || tx.ReferenceID != "bill_1" {
		t.Fatalf("unexpected transaction %+v", tx)
	}
	if !strings.HasPrefix(tx.ID, "tx_") {
		t.Fatalf("unexpected id %q", tx.ID)
	}
	if rows, _ := remote.ListTransactionsByUser(ctx, "u1"); len(rows) != 1 {
		t.Fatalf("expected remote mirror")
	}
}

func TestPrepay_FailureRecordsNothing(t *testing.T) {
	gw := &testGateway{err: errors.New("gateway down")}
	f, l, _ := newFlows(t, gw)
	ctx := context.Background()

	if _, err := f.Prepay(ctx, client, "dev-1", "service-1"); err == nil {
		t.Fatalf("expected error")
	}
	if txs, _ := l.List(ctx, "dev-1"); len(txs) != 0 {
		t.Fatalf("failed payment must not be recorded")
	}

	if _, err := f.Prepay(ctx, client, "dev-1", "service-99"); !errors.Is(err, ErrUnknownItem) {
		t.Fatalf("expected ErrUnknownItem, got %v", err)
	}
}

// downKV simula el almacenamiento local caído.
type downKV struct{}

func (downKV) Get(ctx context.Context, scope kv.Scope, key string) (string, bool, error) {
	return "", false, errors.New("kv down")
}
func (downKV) Set(ctx context.Context, scope kv.Scope, key, value string) error {
	return errors.New("kv down")
}
func (downKV) Delete(ctx context.Context, scope kv.Scope, key string) error {
	return errors.New("kv down")
}

func TestSubscribe_LocalLedgerFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	gw := &testGateway{resp: CheckoutResponse{ReferenceID: "bill_3", URL: "https://pay.example/bill_3"}}
	svc := NewService(Config{Mode: ModeLive}, gw)
	f := NewFlows(svc, catalog.NewCatalog(), ledger.New(downKV{}, nil, nil), logger.FromZap(zap.New(core)))

	c, err := f.Subscribe(context.Background(), client, "dev-1", "plano-basico")
	if err != nil {
		t.Fatalf("Subscribe must not fail on ledger errors: %v", err)
	}
	if c.RedirectURL != "https://pay.example/bill_3" {
		t.Fatalf("unexpected checkout %+v", c)
	}

	entries := logs.FilterMessage("local transaction write failed").All()
	if len(entries) != 1 {
		t.Fatalf("expected one warning, got %d", len(entries))
	}
	if ref := entries[0].ContextMap()["reference_id"]; ref != "bill_3" {
		t.Fatalf("unexpected reference_id field %v", ref)
	}
}

func TestHandlers_RedirectAndReturn(t *testing.T) {
	gw := &testGateway{resp: CheckoutResponse{ReferenceID: "bill_2", URL: "https://pay.example/bill_2"}}
	f, _, _ := newFlows(t, gw)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := middleware.WithClientIDs(req.Context(), "tab", "dev")
			next.ServeHTTP(w, req.WithContext(middleware.WithSession(ctx, client)))
		})
	})
	RegisterRoutes(r, f)

	req := httptest.NewRequest(http.MethodPost, "/payments/prepaid", strings.NewReader(`{"service_id":"service-1"}`))
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "https://pay.example/bill_2" {
		t.Fatalf("expected 303 to checkout, got %d %q", rec.Code, rec.Header().Get("Location"))
	}

	req = httptest.NewRequest(http.MethodGet, "/payments/return?event=billing.paid&billingId=bill_2&amount=80", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	body := rec.Body.String()
	if rec.Code != http.StatusOK || !strings.Contains(body, `"reference_id":"bill_2"`) || !strings.Contains(body, `"verified":false`) {
		t.Fatalf("unexpected return body %d %s", rec.Code, body)
	}
}
