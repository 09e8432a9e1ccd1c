package ledger

import "time"

type Type string

const (
	TypeOneTime      Type = "one_time"
	TypeSubscription Type = "subscription"
)

// Status: se crea pending y acá nunca cambia; la confirmación llega por webhook externo.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Transaction registra un intento de pago. Amount en unidades mayores (BRL).
type Transaction struct {
	ID          string
	ReferenceID string
	UserID      string
	Type        Type
	Amount      float64
	Currency    string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	Metadata    map[string]any
}
