package payments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pet-grooming/internal/platform/httpclient"
)

type Mode string

const (
	ModeMock Mode = "mock"
	ModeLive Mode = "live"
)

const (
	DefaultMockDelay = 400 * time.Millisecond

	mockCheckoutURL     = "https://example.com/checkout/mock"
	mockSubscriptionURL = "https://example.com/checkout/subscription/mock"

	msgMissingURL = "Checkout URL not returned by gateway"
)

type Config struct {
	Mode      Mode
	MockDelay time.Duration
}

// Service inicia pagos. Sin reintentos ni idempotency keys:
// cada llamada en modo live es un intento nuevo.
type Service struct {
	gateway CheckoutGateway
	mode    Mode
	delay   time.Duration
	now     func() time.Time
}

func NewService(cfg Config, gateway CheckoutGateway) *Service {
	mode := cfg.Mode
	if mode != ModeLive {
		mode = ModeMock
	}
	delay := cfg.MockDelay
	if delay < 0 {
		delay = DefaultMockDelay
	}
	return &Service{
		gateway: gateway,
		mode:    mode,
		delay:   delay,
		now:     time.Now,
	}
}

func (s *Service) Mode() Mode { return s.mode }

func (s *Service) CreateOneTimePayment(ctx context.Context, p Params) (Checkout, error) {
	if s.mode == ModeMock {
		if err := s.wait(ctx); err != nil {
			return Checkout{}, err
		}
		return Checkout{
			ReferenceID: fmt.Sprintf("abacate_%d", s.now().UnixMilli()),
			RedirectURL: mockCheckoutURL,
		}, nil
	}

	return s.live(ctx, CheckoutRequest{
		Type:          CheckoutOneTime,
		AmountCents:   p.AmountCents,
		Currency:      p.Currency,
		Description:   p.Description,
		CustomerEmail: p.CustomerEmail,
		Metadata:      copyMeta(p.Metadata),
	})
}

func (s *Service) CreateSubscription(ctx context.Context, p Params, planID string) (Checkout, error) {
	if s.mode == ModeMock {
		if err := s.wait(ctx); err != nil {
			return Checkout{}, err
		}
		return Checkout{
			ReferenceID: fmt.Sprintf("abacate_sub_%d", s.now().UnixMilli()),
			RedirectURL: mockSubscriptionURL,
		}, nil
	}

	meta := copyMeta(p.Metadata)
	meta["planId"] = planID

	return s.live(ctx, CheckoutRequest{
		Type:          CheckoutSubscription,
		AmountCents:   p.AmountCents,
		Currency:      p.Currency,
		Description:   p.Description,
		CustomerEmail: p.CustomerEmail,
		Metadata:      meta,
		PlanID:        planID,
	})
}

func (s *Service) live(ctx context.Context, req CheckoutRequest) (Checkout, error) {
	if s.gateway == nil {
		return Checkout{}, &Error{Message: "payment gateway not configured"}
	}

	resp, err := s.gateway.CreateCheckout(ctx, req)
	if err != nil {
		return Checkout{}, &Error{Message: httpclient.ProviderMessage(err), Err: err}
	}
	// Sin URL no hay a dónde redirigir, aunque haya referencia.
	if strings.TrimSpace(resp.URL) == "" {
		return Checkout{}, &Error{Message: msgMissingURL}
	}
	return Checkout{ReferenceID: resp.ReferenceID, RedirectURL: resp.URL}, nil
}

func (s *Service) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return &Error{Message: "payment canceled", Err: ctx.Err()}
	}
}

func copyMeta(m map[string]any) map[string]any {
	out := make(map[string]any, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}
