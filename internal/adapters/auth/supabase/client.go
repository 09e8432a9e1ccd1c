package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pet-grooming/internal/platform/httpclient"
	"pet-grooming/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("supabase auth not configured")
	ErrUpstream      = errors.New("supabase auth upstream error")
)

// Config del cliente GoTrue/PostgREST.
// URL y AnonKey vienen de SUPABASE_URL / SUPABASE_ANON_KEY.
type Config struct {
	URL     string
	AnonKey string

	// Timeout HTTP. <= 0 usa el default del httpclient.
	Timeout time.Duration

	// Transport opcional (tests).
	Transport http.RoundTripper
}

// Client implementa auth.IdentityProvider sobre la API REST de Supabase.
type Client struct {
	baseURL string
	anonKey string
	http    *httpclient.Client
}

var _ auth.IdentityProvider = (*Client)(nil)

func NewClient(cfg Config) *Client {
	hc := httpclient.NewWithTransport(cfg.Timeout, cfg.Transport)
	hc.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	return &Client{
		baseURL: hc.BaseURL,
		anonKey: strings.TrimSpace(cfg.AnonKey),
		http:    hc,
	}
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.baseURL != "" && c.anonKey != ""
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	User        struct {
		ID           string         `json:"id"`
		Email        string         `json:"email"`
		AppMetadata  map[string]any `json:"app_metadata"`
		UserMetadata map[string]any `json:"user_metadata"`
	} `json:"user"`
}

// SignInWithPassword: POST /auth/v1/token?grant_type=password.
// Los errores conservan el *httpclient.HTTPError para leer el mensaje del proveedor.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (auth.ProviderSession, error) {
	if !c.IsConfigured() {
		return auth.ProviderSession{}, ErrNotConfigured
	}

	body := map[string]string{"email": email, "password": password}

	var out tokenResponse
	if err := c.http.DoJSON(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", c.headers(""), body, &out); err != nil {
		return auth.ProviderSession{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	if strings.TrimSpace(out.AccessToken) == "" || strings.TrimSpace(out.User.ID) == "" {
		return auth.ProviderSession{}, fmt.Errorf("%w: response missing access_token or user.id", ErrUpstream)
	}

	return auth.ProviderSession{
		AccessToken: out.AccessToken,
		User: auth.ProviderUser{
			ID:           out.User.ID,
			Email:        out.User.Email,
			AppMetadata:  out.User.AppMetadata,
			UserMetadata: out.User.UserMetadata,
		},
	}, nil
}

// RPC: POST /rest/v1/rpc/{name} con el token del usuario (RLS aplica).
func (c *Client) RPC(ctx context.Context, accessToken, name string, out any) error {
	if !c.IsConfigured() {
		return ErrNotConfigured
	}
	path := "/rest/v1/rpc/" + url.PathEscape(name)
	if err := c.http.DoJSON(ctx, http.MethodPost, path, c.headers(accessToken), map[string]any{}, out); err != nil {
		return fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return nil
}

// SignOut: POST /auth/v1/logout. Invalida el refresh token del lado del proveedor.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	if !c.IsConfigured() {
		return ErrNotConfigured
	}
	if err := c.http.DoJSON(ctx, http.MethodPost, "/auth/v1/logout", c.headers(accessToken), nil, nil); err != nil {
		return fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return nil
}

func (c *Client) headers(accessToken string) map[string]string {
	bearer := c.anonKey
	if strings.TrimSpace(accessToken) != "" {
		bearer = accessToken
	}
	return map[string]string{
		"apikey":        c.anonKey,
		"Authorization": "Bearer " + bearer,
	}
}
