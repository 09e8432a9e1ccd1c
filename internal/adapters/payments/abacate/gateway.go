package abacate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pet-grooming/internal/domain/payments"
)

// FunctionName es la edge function que crea la cobrança en Abacate Pay.
const FunctionName = "abacate-create-checkout"

var ErrGateway = errors.New("abacate checkout failed")

// FunctionInvoker lo cumple el datastore de Supabase (edge functions).
type FunctionInvoker interface {
	Invoke(ctx context.Context, name string, in any, out any) error
}

// Gateway crea checkouts de Abacate Pay a través de la edge function.
// Las credenciales de Abacate viven en la función, no en este proceso.
type Gateway struct {
	fn FunctionInvoker
}

var _ payments.CheckoutGateway = (*Gateway)(nil)

func NewGateway(fn FunctionInvoker) *Gateway {
	return &Gateway{fn: fn}
}

type checkoutBody struct {
	Type          string         `json:"type"`
	Amount        int64          `json:"amount"`
	Currency      string         `json:"currency"`
	Description   string         `json:"description"`
	CustomerEmail string         `json:"customerEmail"`
	Metadata      map[string]any `json:"metadata"`
}

// La función devolvió ambos nombres según la versión.
type checkoutResult struct {
	ReferenceID string `json:"referenceId"`
	ID          string `json:"id"`
	URL         string `json:"url"`
	RedirectURL string `json:"redirectUrl"`
}

func (g *Gateway) CreateCheckout(ctx context.Context, req payments.CheckoutRequest) (payments.CheckoutResponse, error) {
	if g == nil || g.fn == nil {
		return payments.CheckoutResponse{}, fmt.Errorf("%w: no function invoker", ErrGateway)
	}

	meta := req.Metadata
	if meta == nil {
		meta = map[string]any{}
	}

	var out checkoutResult
	err := g.fn.Invoke(ctx, FunctionName, checkoutBody{
		Type:          string(req.Type),
		Amount:        req.AmountCents,
		Currency:      req.Currency,
		Description:   req.Description,
		CustomerEmail: req.CustomerEmail,
		Metadata:      meta,
	}, &out)
	if err != nil {
		return payments.CheckoutResponse{}, fmt.Errorf("%w: %w", ErrGateway, err)
	}

	return payments.CheckoutResponse{
		ReferenceID: firstNonEmpty(out.ReferenceID, out.ID),
		URL:         firstNonEmpty(out.URL, out.RedirectURL),
	}, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
