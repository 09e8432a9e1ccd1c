package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pet-grooming/internal/platform/httpclient"
	"pet-grooming/internal/ports/datastore"
)

func TestNewStore_RequiresConfig(t *testing.T) {
	if _, err := NewStore(Config{}); !errors.Is(err, datastore.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestStore_InvokeAndQueries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("apikey") != "anon" || r.Header.Get("Authorization") != "Bearer anon" {
			t.Errorf("missing auth headers on %s", r.URL.Path)
		}
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/functions/v1/secure-create-appointment-transaction":
			b, _ := io.ReadAll(r.Body)
			var bundle datastore.AppointmentBundle
			if err := json.Unmarshal(b, &bundle); err != nil || bundle.Transaction == nil {
				t.Errorf("unexpected invoke body %s", b)
			}
			_, _ = w.Write([]byte(`{"ok":true}`))
		case r.Method == http.MethodPost && r.URL.Path == "/rest/v1/tutors":
			if !strings.Contains(r.Header.Get("Prefer"), "merge-duplicates") {
				t.Errorf("upsert must merge duplicates")
			}
			w.WriteHeader(http.StatusCreated)
		case r.Method == http.MethodGet && r.URL.Path == "/rest/v1/appointments":
			if r.URL.Query().Get("tutor_id") != "eq.t1" {
				t.Errorf("unexpected filter %s", r.URL.RawQuery)
			}
			_, _ = w.Write([]byte(`[{"id":"a1","pet_id":"p1","tutor_id":"t1","service_id":"service-1","date_time":"2025-03-10T09:30:00.000Z","status":"scheduled","created_at":"2025-03-09T10:00:00Z","updated_at":"2025-03-09T10:00:00Z"}]`))
		case r.Method == http.MethodGet && r.URL.Path == "/rest/v1/transactions":
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"JWT expired"}`))
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	s, err := NewStore(Config{URL: srv.URL, AnonKey: "anon"})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	ctx := context.Background()

	tx := datastore.TransactionRecord{ID: "tx_1", UserID: "u1", Type: "one_time", Amount: 80, Currency: "BRL", Status: "pending", CreatedAt: time.Now()}
	if err := s.Invoke(ctx, datastore.FuncCreateAppointmentTransaction, datastore.AppointmentBundle{Transaction: &tx}, nil); err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if err := s.UpsertTutor(ctx, datastore.TutorRecord{ID: "t1", Name: "Ana"}); err != nil {
		t.Fatalf("UpsertTutor: %v", err)
	}

	apps, err := s.ListAppointmentsByTutor(ctx, "t1")
	if err != nil {
		t.Fatalf("ListAppointmentsByTutor: %v", err)
	}
	if len(apps) != 1 || apps[0].PetID != "p1" || apps[0].DateTime.Hour() != 9 {
		t.Fatalf("unexpected rows %+v", apps)
	}

	_, err = s.ListTransactionsByUser(ctx, "u1")
	if !errors.Is(err, ErrUpstream) || httpclient.ProviderMessage(err) != "JWT expired" {
		t.Fatalf("expected upstream error with provider message, got %v", err)
	}
}
