package tutors

import (
	"context"
	"encoding/json"
	"net/http"

	"pet-grooming/internal/domain/pets"

	"github.com/go-chi/chi/v5"
)

// PetLister evita depender del servicio completo de pets.
type PetLister interface {
	ListByTutor(ctx context.Context, tutorID string) ([]pets.Pet, error)
}

// RegisterAdminRoutes monta las rutas bajo el grupo /admin (ya protegido por rol).
func RegisterAdminRoutes(r chi.Router, svc *Service, petSvc PetLister) {
	r.Get("/clients", listClientsHandler(svc, petSvc))
}

type clientPetResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Species string `json:"species"`
	Breed   string `json:"breed"`
}

type clientResponse struct {
	ID    string              `json:"id"`
	Name  string              `json:"name"`
	Email string              `json:"email"`
	Phone string              `json:"phone"`
	Pets  []clientPetResponse `json:"pets"`
}

// listClientsHandler godoc
// @Summary Lista tutores con sus mascotas
// @Tags admin
// @Produce json
// @Param q query string false "busca por nombre o email"
// @Success 200 {array} clientResponse
// @Router /admin/clients [get]
func listClientsHandler(svc *Service, petSvc PetLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]clientResponse, 0, len(items))
		for _, t := range items {
			owned, err := petSvc.ListByTutor(r.Context(), t.ID)
			if err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			cr := clientResponse{
				ID:    t.ID,
				Name:  t.Name,
				Email: t.Email,
				Phone: t.Phone,
				Pets:  make([]clientPetResponse, 0, len(owned)),
			}
			for _, p := range owned {
				cr.Pets = append(cr.Pets, clientPetResponse{
					ID:      p.ID,
					Name:    p.Name,
					Species: string(p.Species),
					Breed:   p.Breed,
				})
			}
			out = append(out, cr)
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
