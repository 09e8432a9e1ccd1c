package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pet-grooming/internal/domain/appointments"
	"pet-grooming/internal/domain/ledger"
	"pet-grooming/internal/domain/payments"
	"pet-grooming/internal/domain/tutors"
	"pet-grooming/internal/platform/background"
	"pet-grooming/internal/platform/logger"
	"pet-grooming/internal/ports/auth"
	"pet-grooming/internal/ports/datastore"
	"pet-grooming/internal/ports/events"

	"github.com/google/uuid"
)

const defaultPaymentError = "failed to start payment"

var ErrStore = errors.New("booking store failure")

type Options struct {
	Store     Store
	Remote    datastore.RemoteStore // nil => sin escritura remota
	Payments  *payments.Service
	Publisher events.Publisher // nil => sin eventos
	Runner    *background.Runner
	Log       logger.Logger
}

// Orchestrator registra reservas: primero el estado local (fuente de verdad),
// después la escritura remota en segundo plano y, si es un cliente, el pago.
type Orchestrator struct {
	store     Store
	remote    datastore.RemoteStore
	payments  *payments.Service
	publisher events.Publisher
	runner    *background.Runner
	log       logger.Logger

	now   func() time.Time
	newID func() string
}

func NewOrchestrator(opts Options) *Orchestrator {
	log := opts.Log
	if log == nil {
		log = logger.NewNop()
	}
	runner := opts.Runner
	if runner == nil {
		runner = background.NewRunner(log, 0)
	}
	return &Orchestrator{
		store:     opts.Store,
		remote:    opts.Remote,
		payments:  opts.Payments,
		publisher: opts.Publisher,
		runner:    runner,
		log:       log,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// BookAppointment solo devuelve error si falla el store local.
// Fallos remotos se loguean; fallos de pago vuelven en Result.Payment.Error.
func (o *Orchestrator) BookAppointment(ctx context.Context, req Request) (Result, error) {
	now := o.now().UTC()

	existing, found, err := o.store.FindTutorByEmail(ctx, req.Tutor.Email)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrStore, err)
	}

	tutor := existing
	var newTutor *tutors.Tutor
	if !found {
		tutor = req.Tutor
		if tutor.ID == "" {
			tutor.ID = "tutor-" + o.newID()
		}
		newTutor = &tutor
	}

	pet := req.Pet
	if pet.ID == "" {
		pet.ID = "pet-" + o.newID()
	}
	pet.TutorID = tutor.ID

	appt := req.Appointment
	if appt.ID == "" {
		appt.ID = "app-" + o.newID()
	}
	appt.PetID = pet.ID
	appt.TutorID = tutor.ID
	appt.ServiceID = req.Service.ID
	appt.DateTime = appointments.Canonical(appt.DateTime)
	if appt.Status == "" {
		appt.Status = appointments.StatusPending
	}
	if appt.CreatedAt.IsZero() {
		appt.CreatedAt = now
	}
	appt.CreatedAt = appointments.Canonical(appt.CreatedAt)
	appt.UpdatedAt = appointments.Canonical(now)
	if appt.UpdatedAt.Before(appt.CreatedAt) {
		appt.UpdatedAt = appt.CreatedAt
	}

	if err := o.store.AppendBooking(ctx, newTutor, pet, appt); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrStore, err)
	}

	res := Result{Tutor: tutor, Pet: pet, Appointment: appt, TutorCreated: !found}

	// Escritura remota: no se espera ni se revierte lo local.
	if o.remote != nil {
		bundle := datastore.AppointmentBundle{
			Tutor:       tutorRecord(tutor),
			Pet:         petRecord(pet),
			Appointment: appointmentRecord(appt),
		}
		o.runner.Go(ctx, "remote-create-appointment", func(ctx context.Context) error {
			return o.remote.Invoke(ctx, datastore.FuncCreateAppointmentTransaction, bundle, nil)
		})
	}
	o.publish(ctx, events.TypeBookingCreated, appt.ID, map[string]any{
		"tutor_id":      tutor.ID,
		"pet_id":        pet.ID,
		"service_id":    appt.ServiceID,
		"date_time":     appointments.FormatInstant(appt.DateTime),
		"tutor_created": !found,
	})

	if s := req.Session; s != nil && s.Role == auth.RoleClient && s.Email != "" {
		res.Payment = o.startPayment(ctx, *s, req, appt)
	}
	return res, nil
}

func (o *Orchestrator) startPayment(ctx context.Context, s auth.Session, req Request, appt appointments.Appointment) *PaymentOutcome {
	if o.payments == nil {
		return &PaymentOutcome{Error: defaultPaymentError}
	}

	checkout, err := o.payments.CreateOneTimePayment(ctx, payments.Params{
		AmountCents:   req.Service.PriceCents(),
		Currency:      payments.CurrencyBRL,
		Description:   "Pagamento do agendamento: " + req.Service.Name,
		CustomerEmail: s.Email,
		Metadata: map[string]any{
			"userId":        s.UserID,
			"appointmentId": appt.ID,
			"serviceId":     req.Service.ID,
		},
	})
	if err != nil {
		msg := defaultPaymentError
		var perr *payments.Error
		if errors.As(err, &perr) && perr.Message != "" {
			msg = perr.Message
		}
		o.log.Warn("payment initiation failed", map[string]any{"appointment_id": appt.ID, "err": err})
		return &PaymentOutcome{Error: msg}
	}

	tx := ledger.Transaction{
		ID:          ledger.NewTransactionID(),
		ReferenceID: checkout.ReferenceID,
		UserID:      s.UserID,
		Type:        ledger.TypeOneTime,
		Amount:      req.Service.Price,
		Currency:    payments.CurrencyBRL,
		Status:      ledger.StatusPending,
		CreatedAt:   o.now().UTC(),
		Metadata:    map[string]any{"appointmentId": appt.ID},
	}

	// Se espera, pero el fallo no corta el redirect.
	if o.remote != nil {
		rec := ledger.ToRecord(tx)
		if err := o.remote.Invoke(ctx, datastore.FuncCreateAppointmentTransaction, datastore.AppointmentBundle{Transaction: &rec}, nil); err != nil {
			o.log.Warn("remote transaction write failed", map[string]any{"tx_id": tx.ID, "err": err})
		}
	}
	o.publish(ctx, events.TypePaymentInitiated, appt.ID, map[string]any{
		"transaction_id": tx.ID,
		"reference_id":   tx.ReferenceID,
		"amount_cents":   req.Service.PriceCents(),
		"currency":       tx.Currency,
	})

	return &PaymentOutcome{
		ReferenceID:   checkout.ReferenceID,
		RedirectURL:   checkout.RedirectURL,
		TransactionID: tx.ID,
	}
}

func (o *Orchestrator) publish(ctx context.Context, typ, aggregateID string, payload map[string]any) {
	if o.publisher == nil {
		return
	}
	e := events.Event{
		ID:          o.newID(),
		Type:        typ,
		AggregateID: aggregateID,
		OccurredAt:  o.now().UTC(),
		Payload:     payload,
	}
	o.runner.Go(ctx, "publish-"+typ, func(ctx context.Context) error {
		return o.publisher.Publish(ctx, e)
	})
}

// Wait espera las tareas en segundo plano (shutdown y tests).
func (o *Orchestrator) Wait() { o.runner.Wait() }
