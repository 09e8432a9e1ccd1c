package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-grooming/internal/domain/catalog"
	"pet-grooming/internal/domain/ledger"
	"pet-grooming/internal/platform/logger"
	"pet-grooming/internal/ports/auth"
)

const CurrencyBRL = "BRL"

var ErrUnknownItem = errors.New("unknown plan or service")

// Flows son los pagos que el cliente inicia fuera de una reserva:
// suscripción a un plan o pago previo de un servicio.
type Flows struct {
	svc     *Service
	catalog *catalog.Catalog
	ledger  *ledger.Ledger
	log     logger.Logger
	now     func() time.Time
}

func NewFlows(svc *Service, c *catalog.Catalog, l *ledger.Ledger, log logger.Logger) *Flows {
	if log == nil {
		log = logger.NewNop()
	}
	return &Flows{svc: svc, catalog: c, ledger: l, log: log, now: time.Now}
}

// Subscribe cobra el precio mensual del plan como suscripción.
func (f *Flows) Subscribe(ctx context.Context, sess auth.Session, deviceID, planID string) (Checkout, error) {
	plan, err := f.catalog.GetPlan(ctx, planID)
	if err != nil {
		return Checkout{}, fmt.Errorf("%w: %s", ErrUnknownItem, planID)
	}

	meta := map[string]any{"userId": sess.UserID, "planId": plan.ID}
	c, err := f.svc.CreateSubscription(ctx, Params{
		AmountCents:   plan.PriceCents(),
		Currency:      CurrencyBRL,
		Description:   "Assinatura do plano " + plan.ID,
		CustomerEmail: sess.Email,
		Metadata:      meta,
	}, plan.ID)
	if err != nil {
		return Checkout{}, err
	}

	f.record(ctx, sess, deviceID, c, ledger.TypeSubscription, plan.Price, meta)
	return c, nil
}

// Prepay cobra un servicio antes de reservar.
func (f *Flows) Prepay(ctx context.Context, sess auth.Session, deviceID, serviceID string) (Checkout, error) {
	svc, err := f.catalog.GetService(ctx, serviceID)
	if err != nil {
		return Checkout{}, fmt.Errorf("%w: %s", ErrUnknownItem, serviceID)
	}

	meta := map[string]any{"userId": sess.UserID, "serviceId": svc.ID}
	c, err := f.svc.CreateOneTimePayment(ctx, Params{
		AmountCents:   svc.PriceCents(),
		Currency:      CurrencyBRL,
		Description:   "Pagamento prévio do serviço: " + svc.Name,
		CustomerEmail: sess.Email,
		Metadata:      meta,
	})
	if err != nil {
		return Checkout{}, err
	}

	f.record(ctx, sess, deviceID, c, ledger.TypeOneTime, svc.Price, meta)
	return c, nil
}

// record no falla el flujo: el usuario ya tiene URL de pago.
func (f *Flows) record(ctx context.Context, sess auth.Session, deviceID string, c Checkout, typ ledger.Type, amount float64, meta map[string]any) {
	if f.ledger == nil || strings.TrimSpace(deviceID) == "" {
		return
	}
	tx := ledger.Transaction{
		ID:          ledger.NewTransactionID(),
		ReferenceID: c.ReferenceID,
		UserID:      sess.UserID,
		Type:        typ,
		Amount:      amount,
		Currency:    CurrencyBRL,
		Status:      ledger.StatusPending,
		CreatedAt:   f.now().UTC(),
		Metadata:    meta,
	}
	if err := f.ledger.Record(ctx, deviceID, tx); err != nil {
		f.log.Warn("local transaction write failed", map[string]any{
			"tx_id":        tx.ID,
			"reference_id": tx.ReferenceID,
			"err":          err,
		})
	}
}
