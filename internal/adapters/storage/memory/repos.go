package memory

import (
	"context"

	"pet-grooming/internal/domain/appointments"
	"pet-grooming/internal/domain/pets"
	"pet-grooming/internal/domain/tutors"
)

// Repos de dominio sobre el Store compartido.

type tutorRepo struct{ s *Store }

func NewTutorRepo(s *Store) tutors.Repository { return &tutorRepo{s: s} }

func (r *tutorRepo) List(ctx context.Context) ([]tutors.Tutor, error) {
	return r.s.Tutors(), nil
}

func (r *tutorRepo) GetByID(ctx context.Context, id string) (tutors.Tutor, error) {
	for _, t := range r.s.load().tutors {
		if t.ID == id {
			return t, nil
		}
	}
	return tutors.Tutor{}, tutors.ErrNotFound
}

func (r *tutorRepo) FindByEmail(ctx context.Context, email string) (tutors.Tutor, bool, error) {
	return r.s.FindTutorByEmail(ctx, email)
}

type petRepo struct{ s *Store }

func NewPetRepo(s *Store) pets.Repository { return &petRepo{s: s} }

func (r *petRepo) List(ctx context.Context) ([]pets.Pet, error) {
	return r.s.Pets(), nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	for _, p := range r.s.load().pets {
		if p.ID == id {
			return p, nil
		}
	}
	return pets.Pet{}, pets.ErrNotFound
}

func (r *petRepo) ListByTutor(ctx context.Context, tutorID string) ([]pets.Pet, error) {
	out := make([]pets.Pet, 0)
	for _, p := range r.s.load().pets {
		if p.TutorID == tutorID {
			out = append(out, p)
		}
	}
	return out, nil
}

type appointmentRepo struct{ s *Store }

func NewAppointmentRepo(s *Store) appointments.Repository { return &appointmentRepo{s: s} }

func (r *appointmentRepo) List(ctx context.Context) ([]appointments.Appointment, error) {
	return r.s.Appointments(), nil
}

func (r *appointmentRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	for _, a := range r.s.load().appointments {
		if a.ID == id {
			return a, nil
		}
	}
	return appointments.Appointment{}, appointments.ErrNotFound
}

func (r *appointmentRepo) Update(ctx context.Context, a appointments.Appointment) error {
	return r.s.updateAppointment(a)
}

func (r *appointmentRepo) Delete(ctx context.Context, id string) error {
	return r.s.deleteAppointment(id)
}
