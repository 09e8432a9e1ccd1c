package tutors

// Tutor es el dueño de una o más mascotas.
// La identidad lógica es el email: se busca por email antes de crear.
type Tutor struct {
	ID    string
	Name  string
	Email string
	Phone string
}
