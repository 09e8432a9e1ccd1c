package events

import (
	"context"
	"time"
)

const (
	TypeBookingCreated   = "booking.created"
	TypePaymentInitiated = "payment.initiated"
)

// Event es un hecho de dominio publicado hacia afuera.
type Event struct {
	ID          string
	Type        string
	AggregateID string
	OccurredAt  time.Time
	Payload     map[string]any
}

// Publisher publica eventos. Un Publisher nil significa deshabilitado.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}
