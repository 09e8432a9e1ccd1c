package stripe

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"pet-grooming/internal/domain/payments"

	stripeapi "github.com/stripe/stripe-go/v79"
	checkoutsession "github.com/stripe/stripe-go/v79/checkout/session"
)

var ErrNotConfigured = errors.New("stripe gateway not configured")

type Config struct {
	SecretKey  string
	SuccessURL string
	CancelURL  string
}

// Gateway crea Checkout Sessions de Stripe con precio inline (sin Price ids en el catálogo).
type Gateway struct {
	successURL string
	cancelURL  string

	newSession func(*stripeapi.CheckoutSessionParams) (*stripeapi.CheckoutSession, error)
}

var _ payments.CheckoutGateway = (*Gateway)(nil)

func NewGateway(cfg Config) (*Gateway, error) {
	if strings.TrimSpace(cfg.SecretKey) == "" {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(cfg.SuccessURL) == "" || strings.TrimSpace(cfg.CancelURL) == "" {
		return nil, fmt.Errorf("%w: success and cancel urls required", ErrNotConfigured)
	}
	stripeapi.Key = cfg.SecretKey

	return &Gateway{
		successURL: cfg.SuccessURL,
		cancelURL:  cfg.CancelURL,
		newSession: checkoutsession.New,
	}, nil
}

// providerError expone el mensaje de Stripe tal cual.
type providerError struct {
	msg string
	err error
}

func (e *providerError) Error() string { return e.msg }
func (e *providerError) Unwrap() error { return e.err }

func (g *Gateway) CreateCheckout(ctx context.Context, req payments.CheckoutRequest) (payments.CheckoutResponse, error) {
	price := &stripeapi.CheckoutSessionLineItemPriceDataParams{
		Currency:   stripeapi.String(strings.ToLower(req.Currency)),
		UnitAmount: stripeapi.Int64(req.AmountCents),
		ProductData: &stripeapi.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripeapi.String(req.Description),
		},
	}

	mode := stripeapi.CheckoutSessionModePayment
	if req.Type == payments.CheckoutSubscription {
		mode = stripeapi.CheckoutSessionModeSubscription
		price.Recurring = &stripeapi.CheckoutSessionLineItemPriceDataRecurringParams{
			Interval: stripeapi.String(string(stripeapi.PriceRecurringIntervalMonth)),
		}
	}

	params := &stripeapi.CheckoutSessionParams{
		Mode:       stripeapi.String(string(mode)),
		SuccessURL: stripeapi.String(g.successURL),
		CancelURL:  stripeapi.String(g.cancelURL),
		LineItems: []*stripeapi.CheckoutSessionLineItemParams{
			{PriceData: price, Quantity: stripeapi.Int64(1)},
		},
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripeapi.String(req.CustomerEmail)
	}
	if uid, ok := req.Metadata["userId"].(string); ok && uid != "" {
		params.ClientReferenceID = stripeapi.String(uid)
	}
	for _, k := range sortedKeys(req.Metadata) {
		params.AddMetadata(k, fmt.Sprint(req.Metadata[k]))
	}
	params.Context = ctx

	sess, err := g.newSession(params)
	if err != nil {
		var se *stripeapi.Error
		if errors.As(err, &se) && se.Msg != "" {
			return payments.CheckoutResponse{}, &providerError{msg: se.Msg, err: err}
		}
		return payments.CheckoutResponse{}, err
	}

	return payments.CheckoutResponse{ReferenceID: sess.ID, URL: sess.URL}, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
