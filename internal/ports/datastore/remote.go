package datastore

import (
	"context"
	"errors"
	"time"
)

// Nombre de la función remota que escribe tutor+pet+turno (o una transacción) en una sola llamada.
const FuncCreateAppointmentTransaction = "secure-create-appointment-transaction"

var ErrNotConfigured = errors.New("remote store not configured")

// Filas tal como viven en el almacén remoto (snake_case).

type TutorRecord struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type PetRecord struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Species   string  `json:"species"`
	Breed     string  `json:"breed"`
	BirthDate *string `json:"birth_date,omitempty"` // YYYY-MM-DD
	TutorID   string  `json:"tutor_id"`
	PhotoURL  string  `json:"photo_url,omitempty"`
	Notes     string  `json:"notes,omitempty"`
}

type AppointmentRecord struct {
	ID        string    `json:"id"`
	PetID     string    `json:"pet_id"`
	TutorID   string    `json:"tutor_id"`
	ServiceID string    `json:"service_id"`
	DateTime  time.Time `json:"date_time"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TransactionRecord struct {
	ID          string         `json:"id"`
	ReferenceID string         `json:"reference_id,omitempty"`
	UserID      string         `json:"user_id"`
	Type        string         `json:"type"`
	Amount      float64        `json:"amount"`
	Currency    string         `json:"currency"`
	Status      string         `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   *time.Time     `json:"updated_at,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// AppointmentBundle es el payload de FuncCreateAppointmentTransaction.
// Se manda tutor+pet+appointment, o solo transaction.
type AppointmentBundle struct {
	Tutor       *TutorRecord       `json:"tutor,omitempty"`
	Pet         *PetRecord         `json:"pet,omitempty"`
	Appointment *AppointmentRecord `json:"appointment,omitempty"`
	Transaction *TransactionRecord `json:"transaction,omitempty"`
}

// RemoteStore es el almacén de datos externo.
// Todas las escrituras son best-effort para quien las llama.
type RemoteStore interface {
	Invoke(ctx context.Context, name string, in any, out any) error
	UpsertTutor(ctx context.Context, t TutorRecord) error
	InsertTransaction(ctx context.Context, tx TransactionRecord) error
	ListAppointmentsByTutor(ctx context.Context, tutorID string) ([]AppointmentRecord, error)
	ListTransactionsByUser(ctx context.Context, userID string) ([]TransactionRecord, error)
}
