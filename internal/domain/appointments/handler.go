package appointments

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta las rutas públicas.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/slots", listSlotsHandler(svc))
}

// RegisterAdminRoutes se monta bajo /admin.
func RegisterAdminRoutes(r chi.Router, svc *Service) {
	r.Route("/appointments", func(ar chi.Router) {
		ar.Get("/", listAppointmentsHandler(svc))
		ar.Get("/{appointmentID}", getAppointmentHandler(svc))
		ar.Patch("/{appointmentID}", updateAppointmentHandler(svc))
		ar.Delete("/{appointmentID}", deleteAppointmentHandler(svc))
	})
}

type AppointmentResponse struct {
	ID        string `json:"id"`
	PetID     string `json:"pet_id"`
	TutorID   string `json:"tutor_id"`
	ServiceID string `json:"service_id"`
	DateTime  string `json:"date_time"`
	Status    string `json:"status"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type SlotResponse struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type SlotsResponse struct {
	Date  string         `json:"date"`
	Slots []SlotResponse `json:"slots"`
}

type updateAppointmentRequest struct {
	Status   *string `json:"status"`
	Notes    *string `json:"notes"`
	DateTime *string `json:"date_time"` // RFC3339
}

// listAppointmentsHandler godoc
// @Summary Lista turnos
// @Tags admin
// @Produce json
// @Param status query string false "estado"
// @Param date query string false "YYYY-MM-DD (UTC)"
// @Param tutor_id query string false "tutor"
// @Param pet_id query string false "mascota"
// @Success 200 {array} AppointmentResponse
// @Router /admin/appointments [get]
func listAppointmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		items, err := svc.List(r.Context(), Filter{
			Status:  Status(strings.TrimSpace(q.Get("status"))),
			Date:    strings.TrimSpace(q.Get("date")),
			TutorID: strings.TrimSpace(q.Get("tutor_id")),
			PetID:   strings.TrimSpace(q.Get("pet_id")),
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, ToResponses(items))
	}
}

// listSlotsHandler godoc
// @Summary Franjas horarias del día
// @Tags bookings
// @Produce json
// @Param date query string false "YYYY-MM-DD (UTC), default hoy"
// @Success 200 {object} SlotsResponse
// @Router /slots [get]
func listSlotsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		day, slots, err := svc.TimeSlots(r.Context(), strings.TrimSpace(r.URL.Query().Get("date")))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		resp := SlotsResponse{Date: day, Slots: make([]SlotResponse, 0, len(slots))}
		for _, s := range slots {
			resp.Slots = append(resp.Slots, SlotResponse{Time: s.Time, Available: s.Available})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func getAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "appointmentID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(a))
	}
}

// updateAppointmentHandler godoc
// @Summary Actualiza estado, notas o fecha de un turno
// @Tags admin
// @Accept json
// @Produce json
// @Param appointmentID path string true "id"
// @Success 200 {object} AppointmentResponse
// @Failure 400 {string} string "invalid input"
// @Failure 404 {string} string "appointment not found"
// @Router /admin/appointments/{appointmentID} [patch]
func updateAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateAppointmentRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{Notes: req.Notes}
		if req.Status != nil {
			st := Status(strings.TrimSpace(*req.Status))
			in.Status = &st
		}
		if req.DateTime != nil {
			t, err := time.Parse(time.RFC3339, strings.TrimSpace(*req.DateTime))
			if err != nil {
				http.Error(w, "date_time must be RFC3339", http.StatusBadRequest)
				return
			}
			in.DateTime = &t
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "appointmentID"), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, ToResponse(updated))
	}
}

func deleteAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "appointmentID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ToResponse(a Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:        a.ID,
		PetID:     a.PetID,
		TutorID:   a.TutorID,
		ServiceID: a.ServiceID,
		DateTime:  FormatInstant(a.DateTime),
		Status:    string(a.Status),
		Notes:     a.Notes,
		CreatedAt: FormatInstant(a.CreatedAt),
		UpdatedAt: FormatInstant(a.UpdatedAt),
	}
}

func ToResponses(items []Appointment) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(items))
	for _, a := range items {
		out = append(out, ToResponse(a))
	}
	return out
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "appointment not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
