package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pet-grooming/internal/platform/logger"
	"pet-grooming/internal/ports/auth"
)

type fakeRestorer struct {
	sessions map[string]auth.Session
	err      error
}

func (f fakeRestorer) Restore(ctx context.Context, tabID string) (auth.Session, bool, error) {
	if f.err != nil {
		return auth.Session{}, false, f.err
	}
	s, ok := f.sessions[tabID]
	return s, ok, nil
}

func chain(h http.Handler, store SessionRestorer) http.Handler {
	return ClientIDs(LoadSession(store, logger.NewNop())(h))
}

func TestClientIDs_HeaderWinsAndCookiesAreMinted(t *testing.T) {
	var tab, dev string
	h := ClientIDs(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tab, dev = TabID(r.Context()), DeviceID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderTabID, "tab-from-header")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if tab != "tab-from-header" {
		t.Fatalf("expected header tab id, got %q", tab)
	}
	if dev == "" {
		t.Fatalf("expected minted device id")
	}

	var sawDevice bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieTabID {
			t.Fatalf("tab cookie must not be minted when header is present")
		}
		if c.Name == CookieDeviceID && c.Value == dev && c.MaxAge > 0 {
			sawDevice = true
		}
	}
	if !sawDevice {
		t.Fatalf("expected persistent device cookie")
	}
}

func TestRequireRole(t *testing.T) {
	store := fakeRestorer{sessions: map[string]auth.Session{
		"admin-tab":  {UserID: "u1", Role: auth.RoleAdmin},
		"client-tab": {UserID: "u2", Role: auth.RoleClient},
	}}
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	h := chain(RequireRole(auth.RoleAdmin)(ok), store)

	cases := []struct {
		tab  string
		want int
	}{
		{"", http.StatusUnauthorized},
		{"client-tab", http.StatusForbidden},
		{"admin-tab", http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
		if tc.tab != "" {
			req.Header.Set(HeaderTabID, tc.tab)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Fatalf("tab %q: expected %d, got %d", tc.tab, tc.want, rec.Code)
		}
	}
}

func TestLoadSession_RestoreErrorIsAnonymous(t *testing.T) {
	var has bool
	h := chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, has = GetSession(r.Context())
	}), fakeRestorer{err: errors.New("redis down")})

	req := httptest.NewRequest(http.MethodGet, "/services", nil)
	req.Header.Set(HeaderTabID, "t")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if has {
		t.Fatalf("expected anonymous request on restore error")
	}
}

func TestLoadSession_CSRFTokenIsOnlyEchoed(t *testing.T) {
	store := fakeRestorer{sessions: map[string]auth.Session{
		"t": {UserID: "u", Role: auth.RoleClient, CSRFToken: "1-2-3-4"},
	}}
	var seen string
	h := chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := GetSession(r.Context())
		seen = sess.CSRFToken
		w.WriteHeader(http.StatusNoContent)
	}), store)

	for _, token := range []string{"", "otro-token"} {
		req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
		req.Header.Set(HeaderTabID, "t")
		if token != "" {
			req.Header.Set("X-CSRF-Token", token)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("token %q: POST must pass, got %d", token, rec.Code)
		}
		if seen != "1-2-3-4" {
			t.Fatalf("session must carry the tab token, got %q", seen)
		}
	}
}

func TestRecover_Returns500(t *testing.T) {
	h := Recover(logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

type fakeCounter struct {
	hits map[string]int64
	err  error
}

func (c *fakeCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	if c.err != nil {
		return 0, c.err
	}
	c.hits[key]++
	return c.hits[key], nil
}

func TestRateLimit_PerDevice(t *testing.T) {
	counter := &fakeCounter{hits: map[string]int64{}}
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	h := ClientIDs(RateLimit(counter, "login", 2, time.Minute, logger.NewNop())(ok))

	do := func(device string) int {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.AddCookie(&http.Cookie{Name: CookieDeviceID, Value: device})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 2; i++ {
		if got := do("dev-a"); got != http.StatusOK {
			t.Fatalf("hit %d: expected 200, got %d", i, got)
		}
	}
	if got := do("dev-a"); got != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", got)
	}
	if got := do("dev-b"); got != http.StatusOK {
		t.Fatalf("other device must not be limited, got %d", got)
	}
}

func TestRateLimit_WithoutDeviceCookieUsesIP(t *testing.T) {
	counter := &fakeCounter{hits: map[string]int64{}}
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	h := ClientIDs(RateLimit(counter, "login", 2, time.Minute, logger.NewNop())(ok))

	do := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	var limited int
	for i := 0; i < 10; i++ {
		if do("203.0.113.7:5000") == http.StatusTooManyRequests {
			limited++
		}
	}
	if limited != 8 {
		t.Fatalf("expected 8 limited requests from one ip, got %d", limited)
	}
	if got := do("198.51.100.1:5000"); got != http.StatusOK {
		t.Fatalf("other ip must not be limited, got %d", got)
	}
}

func TestRateLimit_FailsOpen(t *testing.T) {
	counter := &fakeCounter{err: errors.New("redis down")}
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	h := RateLimit(counter, "bookings", 1, time.Minute, logger.NewNop())(ok)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/bookings", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected fail-open 200, got %d", rec.Code)
	}
}
