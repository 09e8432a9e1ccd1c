package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, c *Catalog) {
	r.Get("/services", listServicesHandler(c))
	r.Get("/plans", listPlansHandler(c))
}

type serviceResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Duration    int     `json:"duration"`
	ImageURL    string  `json:"image_url,omitempty"`
}

type planResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Benefits    []string `json:"benefits"`
}

// listServicesHandler godoc
// @Summary Lista los servicios
// @Tags catalog
// @Produce json
// @Success 200 {array} serviceResponse
// @Router /services [get]
func listServicesHandler(c *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := c.ListServices(r.Context())
		out := make([]serviceResponse, 0, len(items))
		for _, s := range items {
			out = append(out, toServiceResponse(s))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// listPlansHandler godoc
// @Summary Lista los planes de suscripción
// @Tags catalog
// @Produce json
// @Success 200 {array} planResponse
// @Router /plans [get]
func listPlansHandler(c *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := c.ListPlans(r.Context())
		out := make([]planResponse, 0, len(items))
		for _, p := range items {
			out = append(out, planResponse{
				ID:          p.ID,
				Name:        p.Name,
				Description: p.Description,
				Price:       p.Price,
				Benefits:    p.Benefits,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toServiceResponse(s Service) serviceResponse {
	return serviceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Price:       s.Price,
		Duration:    s.Duration,
		ImageURL:    s.ImageURL,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
