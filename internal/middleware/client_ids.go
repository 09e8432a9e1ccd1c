package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ctxKey string

const (
	tabIDKey    ctxKey = "tab_id"
	deviceIDKey ctxKey = "device_id"
	mintedKey   ctxKey = "device_id_minted"
	sessionKey  ctxKey = "session"
)

const (
	HeaderTabID    = "X-Tab-ID"
	HeaderDeviceID = "X-Device-ID"

	CookieTabID    = "tab_id"
	CookieDeviceID = "device_id"

	deviceCookieMaxAge = 365 * 24 * time.Hour
)

// ClientIDs resuelve el id de pestaña (estado efímero) y de dispositivo (estado durable).
// Orden: header, cookie, y si no hay, se genera y se devuelve como cookie.
// La cookie de pestaña es de sesión; la de dispositivo persiste.
func ClientIDs(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tabID, _ := resolveID(w, r, HeaderTabID, CookieTabID, 0)
		deviceID, minted := resolveID(w, r, HeaderDeviceID, CookieDeviceID, deviceCookieMaxAge)

		ctx := context.WithValue(r.Context(), tabIDKey, tabID)
		ctx = context.WithValue(ctx, deviceIDKey, deviceID)
		ctx = context.WithValue(ctx, mintedKey, minted)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// resolveID devuelve true cuando el id se generó en este request.
func resolveID(w http.ResponseWriter, r *http.Request, header, cookie string, maxAge time.Duration) (string, bool) {
	if v := strings.TrimSpace(r.Header.Get(header)); v != "" {
		return v, false
	}
	if c, err := r.Cookie(cookie); err == nil && strings.TrimSpace(c.Value) != "" {
		return strings.TrimSpace(c.Value), false
	}

	id := uuid.NewString()
	c := &http.Cookie{
		Name:     cookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if maxAge > 0 {
		c.MaxAge = int(maxAge.Seconds())
	}
	http.SetCookie(w, c)
	return id, true
}

func TabID(ctx context.Context) string {
	v, _ := ctx.Value(tabIDKey).(string)
	return v
}

func DeviceID(ctx context.Context) string {
	v, _ := ctx.Value(deviceIDKey).(string)
	return v
}

// deviceIDMinted: el id no vino del cliente, se generó recién.
func deviceIDMinted(ctx context.Context) bool {
	v, _ := ctx.Value(mintedKey).(bool)
	return v
}

// WithClientIDs es para tests de handlers que no pasan por el middleware.
func WithClientIDs(ctx context.Context, tabID, deviceID string) context.Context {
	ctx = context.WithValue(ctx, tabIDKey, tabID)
	return context.WithValue(ctx, deviceIDKey, deviceID)
}
