package booking

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pet-grooming/internal/domain/catalog"
	"pet-grooming/internal/domain/payments"
	"pet-grooming/internal/middleware"
	"pet-grooming/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func newTestRouter(f fixture, sess *auth.Session) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := req.Context()
			if sess != nil {
				ctx = middleware.WithSession(ctx, *sess)
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	RegisterRoutes(r, f.o, catalog.NewCatalog())
	return r
}

const validBody = `{
	"service_id": "service-1",
	"tutor_name": "Ana <b>",
	"tutor_email": "ana@example.com",
	"pet_name": "Bidu",
	"pet_breed": "Poodle",
	"date_time": "2025-03-12T10:00"
}`

func TestCreateBooking_PublicDefaults(t *testing.T) {
	f := newFixture(t, nil)
	h := newTestRouter(f, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(validBody)))
	f.o.Wait()

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"status":"pending"`) || !strings.Contains(body, `"date_time":"2025-03-12T10:00:00.000Z"`) {
		t.Fatalf("unexpected body %s", body)
	}

	tutor, ok, _ := f.store.FindTutorByEmail(t.Context(), "ana@example.com")
	if !ok || tutor.Name != "Ana b" || tutor.Phone != "N/A" {
		t.Fatalf("unexpected tutor %+v", tutor)
	}
	pets := f.store.Pets()
	if last := pets[len(pets)-1]; last.Species != "dog" {
		t.Fatalf("species must default to dog, got %q", last.Species)
	}
}

func TestCreateBooking_Validation(t *testing.T) {
	f := newFixture(t, nil)
	h := newTestRouter(f, nil)

	cases := map[string]string{
		"missing fields": `{"service_id":"service-1","tutor_email":"ana@example.com"}`,
		"bad email":      strings.Replace(validBody, "ana@example.com", "ana@", 1),
		"bad date":       strings.Replace(validBody, "2025-03-12T10:00", "amanhã", 1),
		"unknown svc":    strings.Replace(validBody, "service-1", "service-9", 1),
		"bad species":    strings.Replace(validBody, `"pet_breed"`, `"pet_species":"bird","pet_breed"`, 1),
	}
	for name, body := range cases {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body)))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", name, rec.Code)
		}
	}
	if len(f.store.Appointments()) != 3 {
		t.Fatalf("invalid requests must not touch the store")
	}
}

func TestCreateBooking_ClientBrowserIsRedirected(t *testing.T) {
	f := newFixture(t, payments.NewService(payments.Config{Mode: payments.ModeMock}, nil))
	h := newTestRouter(f, anaClient)

	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(validBody))
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	f.o.Wait()

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "https://example.com/checkout/mock" {
		t.Fatalf("expected 303 to mock checkout, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}
