package middleware

import (
	"context"
	"net/http"
	"strings"

	"pet-grooming/internal/platform/logger"
	"pet-grooming/internal/ports/auth"
)

// SessionRestorer lo implementa el servicio de identidad.
type SessionRestorer interface {
	Restore(ctx context.Context, tabID string) (auth.Session, bool, error)
}

// LoadSession:
// - Si la pestaña tiene sesión guardada => la pone en el contexto.
// - Si no, el request sigue igual; RequireRole decide 401/403.
func LoadSession(store SessionRestorer, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tabID := TabID(r.Context())
			if store == nil || tabID == "" {
				next.ServeHTTP(w, r)
				return
			}

			sess, ok, err := store.Restore(r.Context(), tabID)
			if err != nil {
				// Sin sesión antes que 500: el KV caído no debe tirar las rutas públicas.
				log.Warn("session restore failed", map[string]any{"err": err})
				next.ServeHTTP(w, r)
				return
			}
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		})
	}
}

func GetSession(ctx context.Context) (auth.Session, bool) {
	v := ctx.Value(sessionKey)
	if v == nil {
		return auth.Session{}, false
	}
	s, ok := v.(auth.Session)
	return s, ok
}

func WithSession(ctx context.Context, s auth.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// RequireRole corta con 401 sin sesión y 403 con otro rol.
func RequireRole(role auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := GetSession(r.Context())
			if !ok || strings.TrimSpace(sess.UserID) == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if sess.Role != role {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
