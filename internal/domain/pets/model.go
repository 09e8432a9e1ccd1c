package pets

import "time"

// Species define las especies soportadas.
// @Enum dog, cat
type Species string

const (
	SpeciesDog Species = "dog"
	SpeciesCat Species = "cat"
)

func ParseSpecies(s string) (Species, bool) {
	switch Species(s) {
	case SpeciesDog, SpeciesCat:
		return Species(s), true
	default:
		return "", false
	}
}

// Pet pertenece siempre a un tutor existente.
type Pet struct {
	ID      string
	Name    string
	Species Species
	Breed   string

	BirthDate *time.Time // solo fecha
	TutorID   string

	PhotoURL string
	Notes    string
}
