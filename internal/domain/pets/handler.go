package pets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"pet-grooming/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAdminRoutes se monta bajo /admin.
func RegisterAdminRoutes(r chi.Router, svc *Service) {
	r.Get("/pets", listPetsHandler(svc))
}

// RegisterClientRoutes se monta bajo /me.
func RegisterClientRoutes(r chi.Router, svc *Service) {
	r.Get("/pets", listMyPetsHandler(svc))
}

type petResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Species   string `json:"species"`
	Breed     string `json:"breed"`
	BirthDate string `json:"birth_date,omitempty"` // YYYY-MM-DD
	TutorID   string `json:"tutor_id"`
	PhotoURL  string `json:"photo_url,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// listPetsHandler godoc
// @Summary Lista mascotas
// @Tags admin
// @Produce json
// @Param species query string false "dog | cat"
// @Param q query string false "busca por nombre o raza"
// @Success 200 {array} petResponse
// @Failure 400 {string} string "invalid species"
// @Router /admin/pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		items, err := svc.List(r.Context(), Filter{
			Species: Species(strings.TrimSpace(q.Get("species"))),
			Query:   q.Get("q"),
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "species must be dog or cat", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponses(items))
	}
}

func listMyPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByTutor(r.Context(), sess.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponses(items))
	}
}

func toPetResponses(items []Pet) []petResponse {
	out := make([]petResponse, 0, len(items))
	for _, p := range items {
		pr := petResponse{
			ID:       p.ID,
			Name:     p.Name,
			Species:  string(p.Species),
			Breed:    p.Breed,
			TutorID:  p.TutorID,
			PhotoURL: p.PhotoURL,
			Notes:    p.Notes,
		}
		if p.BirthDate != nil {
			pr.BirthDate = p.BirthDate.Format("2006-01-02")
		}
		out = append(out, pr)
	}
	return out
}

// writeJSON está duplicado a propósito en cada módulo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
