package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDoJSON_DecodesAndSendsHeaders(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("apikey") != "anon" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"t1"}`))
	}))
	defer ts.Close()

	c, err := NewWithBaseURL(ts.URL, time.Second)
	if err != nil {
		t.Fatalf("NewWithBaseURL: %v", err)
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := c.DoJSON(context.Background(), http.MethodPost, "rest/v1/tutors", map[string]string{"apikey": "anon"}, map[string]string{"a": "b"}, &out); err != nil {
		t.Fatalf("DoJSON: %v", err)
	}
	if out.ID != "t1" {
		t.Fatalf("expected id t1, got %q", out.ID)
	}
}

func TestDoJSON_Non2xxReturnsProviderMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid login credentials"}`))
	}))
	defer ts.Close()

	c := New(time.Second)
	err := c.DoJSON(context.Background(), http.MethodPost, ts.URL+"/auth/v1/token", nil, nil, nil)

	var he *HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *HTTPError, got %v", err)
	}
	if he.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", he.StatusCode)
	}
	if got := ProviderMessage(err); got != "Invalid login credentials" {
		t.Fatalf("unexpected provider message %q", got)
	}
}

func TestDoJSON_RelativePathRequiresBaseURL(t *testing.T) {
	c := New(time.Second)
	if err := c.DoJSON(context.Background(), http.MethodGet, "/x", nil, nil, nil); err == nil {
		t.Fatalf("expected error for relative path without BaseURL")
	}
}
