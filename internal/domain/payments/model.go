package payments

import "context"

// Params de un pago. Amount siempre en centavos.
type Params struct {
	AmountCents   int64
	Currency      string
	Description   string
	CustomerEmail string
	Metadata      map[string]any
}

// Checkout es lo que necesita el cliente para ir a pagar.
type Checkout struct {
	ReferenceID string
	RedirectURL string
}

type CheckoutType string

const (
	CheckoutOneTime      CheckoutType = "ONE_TIME"
	CheckoutSubscription CheckoutType = "SUBSCRIPTION"
)

type CheckoutRequest struct {
	Type          CheckoutType
	AmountCents   int64
	Currency      string
	Description   string
	CustomerEmail string
	Metadata      map[string]any
	PlanID        string // solo SUBSCRIPTION
}

type CheckoutResponse struct {
	ReferenceID string
	URL         string
}

// CheckoutGateway crea la sesión de pago en el proveedor (Abacate, Stripe).
type CheckoutGateway interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (CheckoutResponse, error)
}

// Error es el fallo de inicio de pago. Message es lo que ve el usuario.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Err }
