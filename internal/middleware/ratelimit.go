package middleware

import (
	"context"
	"net"
	"net/http"
	"time"

	"pet-grooming/internal/platform/logger"
)

// Counter cuenta hits por clave dentro de una ventana fija.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimit limita por dispositivo. Sin device id previo (cookie o header)
// se limita por IP: un id recién generado abriría una ventana nueva por request.
// Si el contador falla se deja pasar: un Redis caído no tira el login.
func RateLimit(c Counter, name string, limit int, window time.Duration, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if c == nil || limit <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			n, err := c.Incr(r.Context(), name+":"+clientKey(r), window)
			if err != nil {
				log.Warn("rate limiter error", map[string]any{"limiter": name, "err": err.Error()})
				next.ServeHTTP(w, r)
				return
			}
			if n > int64(limit) {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if id := DeviceID(r.Context()); id != "" && !deviceIDMinted(r.Context()) {
		return "dev:" + id
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "ip:" + r.RemoteAddr
	}
	return "ip:" + host
}
