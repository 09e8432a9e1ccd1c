package appointments

import "time"

// Status del turno. No se validan transiciones: cualquier valor del enum es asignable.
// @Enum scheduled, pending, paid, in_progress, completed, canceled
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusPending    Status = "pending"
	StatusPaid       Status = "paid"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCanceled   Status = "canceled"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusScheduled, StatusPending, StatusPaid, StatusInProgress, StatusCompleted, StatusCanceled:
		return Status(s), true
	default:
		return "", false
	}
}

// InstantLayout es la forma canónica de los instantes: UTC con milisegundos.
const InstantLayout = "2006-01-02T15:04:05.000Z"

// FormatInstant normaliza a UTC y trunca a milisegundos.
func FormatInstant(t time.Time) string {
	return t.UTC().Format(InstantLayout)
}

// Canonical devuelve el instante tal como se persiste (UTC, ms).
func Canonical(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// Appointment reserva un servicio para una mascota en un instante.
// Invariante: UpdatedAt >= CreatedAt.
type Appointment struct {
	ID        string
	PetID     string
	TutorID   string
	ServiceID string

	DateTime time.Time
	Status   Status
	Notes    string

	CreatedAt time.Time
	UpdatedAt time.Time
}
