package booking

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-grooming/internal/domain/appointments"
	"pet-grooming/internal/domain/catalog"
	"pet-grooming/internal/domain/pets"
	"pet-grooming/internal/domain/tutors"
	"pet-grooming/internal/middleware"
	"pet-grooming/internal/platform/sanitize"

	"github.com/go-chi/chi/v5"
)

// Sin teléfono en el formulario público.
const phoneNotCollected = "N/A"

// datetime-local de los formularios HTML, sin zona: se toma como UTC.
const localDateTimeLayout = "2006-01-02T15:04"

// RegisterRoutes monta POST /bookings (público).
func RegisterRoutes(r chi.Router, o *Orchestrator, c *catalog.Catalog) {
	r.Post("/bookings", createBookingHandler(o, c, false))
}

// RegisterAdminRoutes se monta bajo /admin: el modal del panel, sin cobro.
func RegisterAdminRoutes(r chi.Router, o *Orchestrator, c *catalog.Catalog) {
	r.Post("/bookings", createBookingHandler(o, c, true))
}

type createBookingRequest struct {
	ServiceID  string `json:"service_id"`
	TutorName  string `json:"tutor_name"`
	TutorEmail string `json:"tutor_email"`
	TutorPhone string `json:"tutor_phone"`
	PetName    string `json:"pet_name"`
	PetBreed   string `json:"pet_breed"`
	PetSpecies string `json:"pet_species"`
	DateTime   string `json:"date_time"`
	Notes      string `json:"notes"`
	Status     string `json:"status"` // solo admin
}

type paymentResponse struct {
	ReferenceID   string `json:"reference_id,omitempty"`
	RedirectURL   string `json:"redirect_url,omitempty"`
	TransactionID string `json:"transaction_id,omitempty"`
	Error         string `json:"error,omitempty"`
}

type BookingResponse struct {
	TutorID      string                           `json:"tutor_id"`
	PetID        string                           `json:"pet_id"`
	TutorCreated bool                             `json:"tutor_created"`
	Appointment  appointments.AppointmentResponse `json:"appointment"`
	Payment      *paymentResponse                 `json:"payment,omitempty"`
	RedirectURL  string                           `json:"redirect_url,omitempty"`
}

// createBookingHandler godoc
// @Summary Crea una reserva (tutor + mascota + turno)
// @Description Si la sesión es de cliente inicia el pago; navegadores reciben 303 al checkout.
// @Tags bookings
// @Accept json
// @Produce json
// @Success 201 {object} BookingResponse
// @Success 303 {string} string "redirect al checkout"
// @Failure 400 {string} string "invalid input"
// @Router /bookings [post]
func createBookingHandler(o *Orchestrator, c *catalog.Catalog, admin bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createBookingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in, err := parseRequest(req, admin)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		svc, err := c.GetService(r.Context(), req.ServiceID)
		if err != nil {
			http.Error(w, "unknown service_id", http.StatusBadRequest)
			return
		}
		in.Service = svc

		if sess, ok := middleware.GetSession(r.Context()); ok {
			in.Session = &sess
		}

		res, err := o.BookAppointment(r.Context(), in)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		resp := BookingResponse{
			TutorID:      res.Tutor.ID,
			PetID:        res.Pet.ID,
			TutorCreated: res.TutorCreated,
			Appointment:  appointments.ToResponse(res.Appointment),
		}
		if p := res.Payment; p != nil {
			resp.Payment = &paymentResponse{
				ReferenceID:   p.ReferenceID,
				RedirectURL:   p.RedirectURL,
				TransactionID: p.TransactionID,
				Error:         p.Error,
			}
			resp.RedirectURL = p.RedirectURL
		}

		if resp.RedirectURL != "" && strings.Contains(r.Header.Get("Accept"), "text/html") {
			http.Redirect(w, r, resp.RedirectURL, http.StatusSeeOther)
			return
		}
		writeJSON(w, http.StatusCreated, resp)
	}
}

func parseRequest(req createBookingRequest, admin bool) (Request, error) {
	name := sanitize.Input(req.TutorName)
	email := strings.TrimSpace(req.TutorEmail)
	petName := sanitize.Input(req.PetName)
	breed := sanitize.Input(req.PetBreed)

	if name == "" || email == "" || petName == "" || breed == "" ||
		strings.TrimSpace(req.DateTime) == "" || strings.TrimSpace(req.ServiceID) == "" {
		return Request{}, errors.New("all fields are required")
	}
	if !sanitize.IsValidEmail(email) {
		return Request{}, errors.New("invalid email")
	}

	when, err := parseDateTime(req.DateTime)
	if err != nil {
		return Request{}, errors.New("date_time must be RFC3339 or YYYY-MM-DDTHH:MM")
	}

	species := pets.SpeciesDog
	if s := strings.TrimSpace(req.PetSpecies); s != "" {
		v, ok := pets.ParseSpecies(s)
		if !ok {
			return Request{}, errors.New("pet_species must be dog or cat")
		}
		species = v
	}

	phone := sanitize.Input(req.TutorPhone)
	if phone == "" {
		phone = phoneNotCollected
	}

	status := appointments.StatusPending
	if admin && strings.TrimSpace(req.Status) != "" {
		v, ok := appointments.ParseStatus(strings.TrimSpace(req.Status))
		if !ok {
			return Request{}, errors.New("invalid status")
		}
		status = v
	}

	return Request{
		Tutor: tutors.Tutor{Name: name, Email: email, Phone: phone},
		Pet:   pets.Pet{Name: petName, Breed: breed, Species: species},
		Appointment: appointments.Appointment{
			DateTime: when,
			Status:   status,
			Notes:    sanitize.Input(req.Notes),
		},
	}, nil
}

func parseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(localDateTimeLayout, s)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
