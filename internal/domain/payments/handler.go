package payments

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"pet-grooming/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta /payments. Las rutas POST exigen sesión (cualquier rol).
func RegisterRoutes(r chi.Router, f *Flows) {
	r.Route("/payments", func(pr chi.Router) {
		pr.Post("/subscriptions", subscribeHandler(f))
		pr.Post("/prepaid", prepayHandler(f))
		pr.Get("/return", returnHandler())
	})
}

type subscribeRequest struct {
	PlanID string `json:"plan_id"`
}

type prepayRequest struct {
	ServiceID string `json:"service_id"`
}

type CheckoutResponseBody struct {
	ReferenceID string `json:"reference_id"`
	RedirectURL string `json:"redirect_url"`
}

type returnResponse struct {
	Event       string   `json:"event,omitempty"`
	Status      string   `json:"status,omitempty"`
	ReferenceID string   `json:"reference_id,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	Verified    bool     `json:"verified"`
}

// subscribeHandler godoc
// @Summary Inicia la suscripción a un plan
// @Tags payments
// @Accept json
// @Produce json
// @Success 200 {object} CheckoutResponseBody
// @Success 303 {string} string "redirect al checkout"
// @Failure 401 {string} string "unauthorized"
// @Failure 502 {string} string "mensaje del gateway"
// @Router /payments/subscriptions [post]
func subscribeHandler(f *Flows) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req subscribeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.PlanID) == "" {
			http.Error(w, "plan_id is required", http.StatusBadRequest)
			return
		}

		c, err := f.Subscribe(r.Context(), sess, middleware.DeviceID(r.Context()), req.PlanID)
		if err != nil {
			writeFlowError(w, err)
			return
		}
		RespondRedirect(w, r, c.RedirectURL, CheckoutResponseBody{ReferenceID: c.ReferenceID, RedirectURL: c.RedirectURL})
	}
}

// prepayHandler godoc
// @Summary Pago previo de un servicio
// @Tags payments
// @Accept json
// @Produce json
// @Success 200 {object} CheckoutResponseBody
// @Router /payments/prepaid [post]
func prepayHandler(f *Flows) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req prepayRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.ServiceID) == "" {
			http.Error(w, "service_id is required", http.StatusBadRequest)
			return
		}

		c, err := f.Prepay(r.Context(), sess, middleware.DeviceID(r.Context()), req.ServiceID)
		if err != nil {
			writeFlowError(w, err)
			return
		}
		RespondRedirect(w, r, c.RedirectURL, CheckoutResponseBody{ReferenceID: c.ReferenceID, RedirectURL: c.RedirectURL})
	}
}

// returnHandler muestra lo que el gateway manda en la URL de retorno.
// Los parámetros no se verifican: solo sirven para mostrar.
func returnHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		ref := q.Get("referenceId")
		if ref == "" {
			ref = q.Get("id")
		}
		if ref == "" {
			ref = q.Get("billingId")
		}

		resp := returnResponse{
			Event:       q.Get("event"),
			Status:      q.Get("status"),
			ReferenceID: ref,
		}
		if raw := q.Get("amount"); raw != "" {
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				resp.Amount = &v
			}
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// RespondRedirect: 303 para navegadores (Accept text/html), JSON con redirect_url para el resto.
func RespondRedirect(w http.ResponseWriter, r *http.Request, url string, body any) {
	if url != "" && strings.Contains(r.Header.Get("Accept"), "text/html") {
		http.Redirect(w, r, url, http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

func writeFlowError(w http.ResponseWriter, err error) {
	var perr *Error
	switch {
	case errors.Is(err, ErrUnknownItem):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &perr):
		http.Error(w, perr.Message, http.StatusBadGateway)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
