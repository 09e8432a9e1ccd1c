package memory

import (
	"time"

	"pet-grooming/internal/domain/appointments"
	"pet-grooming/internal/domain/pets"
	"pet-grooming/internal/domain/tutors"
)

// DefaultSeed arma los datos de demo. Los turnos caen "hoy" en la zona de now.
func DefaultSeed(now time.Time) Seed {
	at := func(h, m int) time.Time {
		y, mo, d := now.Date()
		return appointments.Canonical(time.Date(y, mo, d, h, m, 0, 0, now.Location()))
	}
	date := func(s string) *time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return &t
	}
	stamp := appointments.Canonical(now)

	return Seed{
		Tutors: []tutors.Tutor{
			{ID: "tutor-1", Name: "Carlos Silva", Email: "carlos.silva@example.com", Phone: "(11) 98765-4321"},
			{ID: "tutor-2", Name: "Mariana Costa", Email: "mariana.costa@example.com", Phone: "(21) 91234-5678"},
		},
		Pets: []pets.Pet{
			{
				ID: "pet-1", Name: "Thor", Species: pets.SpeciesDog, Breed: "Golden Retriever",
				BirthDate: date("2021-05-10"), TutorID: "tutor-1",
				PhotoURL: "https://images.unsplash.com/photo-1600804340584-c7db2eacf0bf?q=80&w=300&auto=format&fit=crop",
			},
			{ID: "pet-2", Name: "Mia", Species: pets.SpeciesCat, Breed: "Siamês", BirthDate: date("2022-01-15"), TutorID: "tutor-2"},
			{ID: "pet-3", Name: "Loki", Species: pets.SpeciesDog, Breed: "Vira-lata", BirthDate: date("2020-11-20"), TutorID: "tutor-1"},
		},
		Appointments: []appointments.Appointment{
			{ID: "app-1", PetID: "pet-1", TutorID: "tutor-1", ServiceID: "service-1", DateTime: at(9, 30), Status: appointments.StatusScheduled, CreatedAt: stamp, UpdatedAt: stamp},
			{ID: "app-2", PetID: "pet-2", TutorID: "tutor-2", ServiceID: "service-3", DateTime: at(11, 0), Status: appointments.StatusInProgress, CreatedAt: stamp, UpdatedAt: stamp},
			{ID: "app-3", PetID: "pet-3", TutorID: "tutor-1", ServiceID: "service-2", DateTime: at(14, 0), Status: appointments.StatusScheduled, CreatedAt: stamp, UpdatedAt: stamp},
		},
	}
}
