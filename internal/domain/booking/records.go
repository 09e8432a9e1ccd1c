package booking

import (
	"pet-grooming/internal/domain/appointments"
	"pet-grooming/internal/domain/pets"
	"pet-grooming/internal/domain/tutors"
	"pet-grooming/internal/ports/datastore"
)

func tutorRecord(t tutors.Tutor) *datastore.TutorRecord {
	return &datastore.TutorRecord{ID: t.ID, Name: t.Name, Email: t.Email, Phone: t.Phone}
}

func petRecord(p pets.Pet) *datastore.PetRecord {
	rec := &datastore.PetRecord{
		ID:       p.ID,
		Name:     p.Name,
		Species:  string(p.Species),
		Breed:    p.Breed,
		TutorID:  p.TutorID,
		PhotoURL: p.PhotoURL,
		Notes:    p.Notes,
	}
	if p.BirthDate != nil {
		d := p.BirthDate.Format("2006-01-02")
		rec.BirthDate = &d
	}
	return rec
}

func appointmentRecord(a appointments.Appointment) *datastore.AppointmentRecord {
	return &datastore.AppointmentRecord{
		ID:        a.ID,
		PetID:     a.PetID,
		TutorID:   a.TutorID,
		ServiceID: a.ServiceID,
		DateTime:  a.DateTime,
		Status:    string(a.Status),
		Notes:     a.Notes,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
