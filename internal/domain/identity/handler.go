package identity

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"pet-grooming/internal/middleware"
	"pet-grooming/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/login", loginHandler(svc))
		ar.Post("/logout", logoutHandler(svc))
		ar.Get("/session", sessionHandler(svc))
		ar.Get("/csrf", csrfHandler(svc))
	})
}

type loginRequest struct {
	Role     string `json:"role"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	UserID        string `json:"user_id,omitempty"`
	Email         string `json:"email,omitempty"`
	Name          string `json:"name,omitempty"`
	Role          string `json:"role,omitempty"`
	CSRFToken     string `json:"csrf_token,omitempty"`
	Home          string `json:"home,omitempty"`
}

// loginHandler godoc
// @Summary Login de admin o cliente
// @Tags auth
// @Accept json
// @Produce json
// @Param X-Tab-ID header string false "id de pestaña"
// @Success 200 {object} sessionResponse
// @Failure 400 {string} string "validation error"
// @Failure 401 {string} string "invalid credentials"
// @Failure 403 {string} string "access denied"
// @Router /auth/login [post]
func loginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		role := auth.Role(strings.ToLower(strings.TrimSpace(req.Role)))
		sess, err := svc.Authenticate(r.Context(), middleware.TabID(r.Context()), role, req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, ErrValidation):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrInvalidCredentials):
				http.Error(w, err.Error(), http.StatusUnauthorized)
			case errors.Is(err, ErrRoleMismatch):
				http.Error(w, err.Error(), http.StatusForbidden)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toSessionResponse(sess))
	}
}

// logoutHandler godoc
// @Summary Cierra la sesión de la pestaña
// @Tags auth
// @Success 204
// @Router /auth/logout [post]
func logoutHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Logout(r.Context(), middleware.TabID(r.Context())); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func sessionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok, err := svc.Restore(r.Context(), middleware.TabID(r.Context()))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if !ok {
			writeJSON(w, http.StatusOK, sessionResponse{Authenticated: false})
			return
		}
		writeJSON(w, http.StatusOK, toSessionResponse(sess))
	}
}

func csrfHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := svc.EnsureCSRFToken(r.Context(), middleware.TabID(r.Context()))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"csrf_token": token})
	}
}

func toSessionResponse(s auth.Session) sessionResponse {
	return sessionResponse{
		Authenticated: true,
		UserID:        s.UserID,
		Email:         s.Email,
		Name:          s.Name,
		Role:          string(s.Role),
		CSRFToken:     s.CSRFToken,
		Home:          HomeRoute(s),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
