package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"pet-grooming/internal/platform/httpclient"
)

type callLog struct {
	mu    sync.Mutex
	paths []string
}

func (l *callLog) add(p string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.paths = append(l.paths, p)
}

func (l *callLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.paths...)
}

func newTestServer(t *testing.T) (*httptest.Server, *callLog) {
	t.Helper()
	calls := &callLog{}

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/token", func(w http.ResponseWriter, r *http.Request) {
		calls.add(r.URL.Path + "?" + r.URL.RawQuery)
		if r.Header.Get("apikey") != "anon" {
			t.Errorf("missing apikey header")
		}
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in["password"] != "secret" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid login credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"tok-1","user":{"id":"uid-1","email":"ana@example.com","app_metadata":{"role":"client"}}}`))
	})
	mux.HandleFunc("/rest/v1/rpc/get_my_role", func(w http.ResponseWriter, r *http.Request) {
		calls.add(r.URL.Path)
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			t.Errorf("rpc must use the user token, got %q", r.Header.Get("Authorization"))
		}
		_, _ = w.Write([]byte(`"admin"`))
	})
	mux.HandleFunc("/auth/v1/logout", func(w http.ResponseWriter, r *http.Request) {
		calls.add(r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, calls
}

func TestClient_SignInRPCAndSignOut(t *testing.T) {
	srv, calls := newTestServer(t)
	c := NewClient(Config{URL: srv.URL + "/", AnonKey: "anon"})
	ctx := context.Background()

	sess, err := c.SignInWithPassword(ctx, "ana@example.com", "secret")
	if err != nil {
		t.Fatalf("SignInWithPassword: %v", err)
	}
	if sess.AccessToken != "tok-1" || sess.User.ID != "uid-1" || sess.User.AppMetadata["role"] != "client" {
		t.Fatalf("unexpected session %+v", sess)
	}

	var role *string
	if err := c.RPC(ctx, sess.AccessToken, "get_my_role", &role); err != nil {
		t.Fatalf("RPC: %v", err)
	}
	if role == nil || *role != "admin" {
		t.Fatalf("unexpected role %v", role)
	}

	if err := c.SignOut(ctx, sess.AccessToken); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	got := calls.list()
	if len(got) != 3 || got[0] != "/auth/v1/token?grant_type=password" {
		t.Fatalf("unexpected calls %v", got)
	}
}

func TestClient_InvalidCredentialsKeepsProviderMessage(t *testing.T) {
	srv, _ := newTestServer(t)
	c := NewClient(Config{URL: srv.URL, AnonKey: "anon"})

	_, err := c.SignInWithPassword(context.Background(), "ana@example.com", "wrong")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if msg := httpclient.ProviderMessage(err); msg != "Invalid login credentials" {
		t.Fatalf("unexpected provider message %q", msg)
	}
}

func TestClient_NotConfigured(t *testing.T) {
	c := NewClient(Config{})
	if c.IsConfigured() {
		t.Fatalf("empty config must not be configured")
	}
	if _, err := c.SignInWithPassword(context.Background(), "a@b.co", "x"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
