package booking

import (
	"context"

	"pet-grooming/internal/domain/appointments"
	"pet-grooming/internal/domain/catalog"
	"pet-grooming/internal/domain/pets"
	"pet-grooming/internal/domain/tutors"
	"pet-grooming/internal/ports/auth"
)

// Request es lo capturado en el formulario de reserva.
// Los ids vacíos se generan; Appointment.CreatedAt cero => ahora.
type Request struct {
	Service     catalog.Service
	Tutor       tutors.Tutor
	Pet         pets.Pet
	Appointment appointments.Appointment
	Session     *auth.Session // nil en el modal público y en admin
}

// PaymentOutcome: o hay RedirectURL, o hay Error. Nunca ambos.
type PaymentOutcome struct {
	ReferenceID   string
	RedirectURL   string
	TransactionID string
	Error         string
}

type Result struct {
	Tutor        tutors.Tutor
	Pet          pets.Pet
	Appointment  appointments.Appointment
	TutorCreated bool
	Payment      *PaymentOutcome // nil si no correspondía cobrar
}

// Store es el almacén local de entidades.
type Store interface {
	FindTutorByEmail(ctx context.Context, email string) (tutors.Tutor, bool, error)
	AppendBooking(ctx context.Context, tutor *tutors.Tutor, p pets.Pet, a appointments.Appointment) error
}
