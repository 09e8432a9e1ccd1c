package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"pet-grooming/internal/domain/appointments"
	"pet-grooming/internal/domain/pets"
	"pet-grooming/internal/domain/tutors"
)

var (
	ErrDuplicateID     = errors.New("duplicate id")
	ErrDanglingRef     = errors.New("reference to unknown entity")
	ErrInconsistentRef = errors.New("pet and appointment disagree on tutor")
)

// snapshot es inmutable una vez publicado: los escritores arman uno nuevo.
type snapshot struct {
	tutors       []tutors.Tutor
	pets         []pets.Pet
	appointments []appointments.Appointment
}

// Store guarda tutores, mascotas y turnos en memoria.
// Lectores toman el snapshot actual sin lock; escritores se serializan con mu
// y publican una copia nueva (copy-on-write).
type Store struct {
	mu  sync.Mutex
	cur atomic.Pointer[snapshot]
}

type Seed struct {
	Tutors       []tutors.Tutor
	Pets         []pets.Pet
	Appointments []appointments.Appointment
}

func NewStore(seed Seed) *Store {
	s := &Store{}
	s.cur.Store(&snapshot{
		tutors:       append([]tutors.Tutor(nil), seed.Tutors...),
		pets:         append([]pets.Pet(nil), seed.Pets...),
		appointments: append([]appointments.Appointment(nil), seed.Appointments...),
	})
	return s
}

func (s *Store) load() *snapshot {
	return s.cur.Load()
}

// Los slices devueltos son copias; el caller puede mutarlos.

func (s *Store) Tutors() []tutors.Tutor {
	return append([]tutors.Tutor(nil), s.load().tutors...)
}

func (s *Store) Pets() []pets.Pet {
	return append([]pets.Pet(nil), s.load().pets...)
}

func (s *Store) Appointments() []appointments.Appointment {
	return append([]appointments.Appointment(nil), s.load().appointments...)
}

// FindTutorByEmail compara el email exacto (sin normalizar).
func (s *Store) FindTutorByEmail(ctx context.Context, email string) (tutors.Tutor, bool, error) {
	for _, t := range s.load().tutors {
		if t.Email == email {
			return t, true, nil
		}
	}
	return tutors.Tutor{}, false, nil
}

// AppendBooking agrega tutor (si viene), mascota y turno en un único paso.
// O entran los tres o ninguno.
func (s *Store) AppendBooking(ctx context.Context, tutor *tutors.Tutor, p pets.Pet, a appointments.Appointment) error {
	if strings.TrimSpace(p.ID) == "" || strings.TrimSpace(a.ID) == "" {
		return errors.New("pet and appointment ids required")
	}
	if p.TutorID != a.TutorID || a.PetID != p.ID {
		return ErrInconsistentRef
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.load()

	tutorKnown := false
	for _, t := range cur.tutors {
		if tutor != nil && t.ID == tutor.ID {
			return ErrDuplicateID
		}
		if t.ID == p.TutorID {
			tutorKnown = true
		}
	}
	if tutor != nil {
		if tutor.ID != p.TutorID {
			return ErrInconsistentRef
		}
		tutorKnown = true
	}
	if !tutorKnown {
		return ErrDanglingRef
	}
	for _, x := range cur.pets {
		if x.ID == p.ID {
			return ErrDuplicateID
		}
	}
	for _, x := range cur.appointments {
		if x.ID == a.ID {
			return ErrDuplicateID
		}
	}

	next := &snapshot{
		tutors:       cur.tutors,
		pets:         append(cloneSlice(cur.pets, 1), p),
		appointments: append(cloneSlice(cur.appointments, 1), a),
	}
	if tutor != nil {
		next.tutors = append(cloneSlice(cur.tutors, 1), *tutor)
	}
	s.cur.Store(next)
	return nil
}

func (s *Store) updateAppointment(a appointments.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.load()
	idx := -1
	for i, x := range cur.appointments {
		if x.ID == a.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return appointments.ErrNotFound
	}

	list := cloneSlice(cur.appointments, 0)
	list[idx] = a
	s.cur.Store(&snapshot{tutors: cur.tutors, pets: cur.pets, appointments: list})
	return nil
}

func (s *Store) deleteAppointment(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.load()
	list := make([]appointments.Appointment, 0, len(cur.appointments))
	found := false
	for _, x := range cur.appointments {
		if x.ID == id {
			found = true
			continue
		}
		list = append(list, x)
	}
	if !found {
		return appointments.ErrNotFound
	}
	s.cur.Store(&snapshot{tutors: cur.tutors, pets: cur.pets, appointments: list})
	return nil
}

// cloneSlice copia src dejando lugar para extra elementos más.
func cloneSlice[T any](src []T, extra int) []T {
	out := make([]T, len(src), len(src)+extra)
	copy(out, src)
	return out
}
