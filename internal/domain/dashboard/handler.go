package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"pet-grooming/internal/domain/appointments"
	"pet-grooming/internal/domain/ledger"
	"pet-grooming/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAdminRoutes se monta bajo /admin.
func RegisterAdminRoutes(r chi.Router, svc *Service) {
	r.Get("/dashboard", kpisHandler(svc))
	r.Get("/schedule", scheduleHandler(svc))
}

// RegisterClientRoutes se monta bajo /me.
func RegisterClientRoutes(r chi.Router, svc *Service) {
	r.Get("/dashboard", clientDashboardHandler(svc))
}

type serviceCountResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type KPIResponse struct {
	Revenue       float64                `json:"revenue"`
	ServicesDone  int                    `json:"services_done"`
	AverageTicket float64                `json:"average_ticket"`
	ActiveClients int                    `json:"active_clients"`
	Today         int                    `json:"today"`
	Upcoming      int                    `json:"upcoming"`
	Completed     int                    `json:"completed"`
	InProgress    int                    `json:"in_progress"`
	ByService     []serviceCountResponse `json:"by_service"`
}

type ScheduleItemResponse struct {
	appointments.AppointmentResponse
	PetName     string `json:"pet_name,omitempty"`
	TutorName   string `json:"tutor_name,omitempty"`
	ServiceName string `json:"service_name,omitempty"`
}

type ScheduleResponse struct {
	Date  string                 `json:"date"`
	Items []ScheduleItemResponse `json:"items"`
}

type ClientDashboardResponse struct {
	Appointments []ScheduleItemResponse       `json:"appointments"`
	Transactions []ledger.TransactionResponse `json:"transactions"`
	CurrentPlan  *ledger.TransactionResponse  `json:"current_plan"`
}

// kpisHandler godoc
// @Summary KPIs del panel de administración
// @Tags admin
// @Produce json
// @Success 200 {object} KPIResponse
// @Router /admin/dashboard [get]
func kpisHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		k, err := svc.KPIs(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		resp := KPIResponse{
			Revenue:       k.Revenue,
			ServicesDone:  k.ServicesDone,
			AverageTicket: k.AverageTicket,
			ActiveClients: k.ActiveClients,
			Today:         k.Today,
			Upcoming:      k.Upcoming,
			Completed:     k.Completed,
			InProgress:    k.InProgress,
			ByService:     make([]serviceCountResponse, 0, len(k.ServiceBreakdown)),
		}
		for _, c := range k.ServiceBreakdown {
			resp.ByService = append(resp.ByService, serviceCountResponse{Name: c.Name, Count: c.Count})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// scheduleHandler godoc
// @Summary Agenda del día
// @Tags admin
// @Produce json
// @Param date query string false "YYYY-MM-DD (UTC), default hoy"
// @Success 200 {object} ScheduleResponse
// @Router /admin/schedule [get]
func scheduleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		day, items, err := svc.Schedule(r.Context(), strings.TrimSpace(r.URL.Query().Get("date")))
		if err != nil {
			if errors.Is(err, appointments.ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, ScheduleResponse{Date: day, Items: toItems(items)})
	}
}

func clientDashboardHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		view, err := svc.Client(r.Context(), middleware.DeviceID(r.Context()), sess.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		resp := ClientDashboardResponse{
			Appointments: toItems(view.Appointments),
			Transactions: ledger.ToResponses(view.Transactions),
		}
		if view.CurrentPlan != nil {
			p := ledger.ToResponse(*view.CurrentPlan)
			resp.CurrentPlan = &p
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func toItems(entries []ScheduleEntry) []ScheduleItemResponse {
	out := make([]ScheduleItemResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ScheduleItemResponse{
			AppointmentResponse: appointments.ToResponse(e.Appointment),
			PetName:             e.PetName,
			TutorName:           e.TutorName,
			ServiceName:         e.ServiceName,
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
