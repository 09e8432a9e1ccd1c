package abacate

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"pet-grooming/internal/domain/payments"
	"pet-grooming/internal/platform/httpclient"
)

type fakeInvoker struct {
	name string
	body map[string]any
	resp string
	err  error
}

func (f *fakeInvoker) Invoke(ctx context.Context, name string, in any, out any) error {
	f.name = name
	b, _ := json.Marshal(in)
	_ = json.Unmarshal(b, &f.body)
	if f.err != nil {
		return f.err
	}
	return json.Unmarshal([]byte(f.resp), out)
}

func TestCreateCheckout_BodyAndFallbackFields(t *testing.T) {
	fn := &fakeInvoker{resp: `{"id":"bill_9","redirectUrl":"https://abacatepay.example/pay/bill_9"}`}
	g := NewGateway(fn)

	resp, err := g.CreateCheckout(context.Background(), payments.CheckoutRequest{
		Type:          payments.CheckoutSubscription,
		AmountCents:   12000,
		Currency:      "BRL",
		Description:   "Assinatura do plano plano-premium",
		CustomerEmail: "ana@example.com",
		Metadata:      map[string]any{"userId": "u1", "planId": "plano-premium"},
		PlanID:        "plano-premium",
	})
	if err != nil {
		t.Fatalf("CreateCheckout: %v", err)
	}
	if resp.ReferenceID != "bill_9" || resp.URL != "https://abacatepay.example/pay/bill_9" {
		t.Fatalf("unexpected response %+v", resp)
	}

	if fn.name != FunctionName {
		t.Fatalf("unexpected function %q", fn.name)
	}
	if fn.body["type"] != "SUBSCRIPTION" || fn.body["amount"] != float64(12000) || fn.body["customerEmail"] != "ana@example.com" {
		t.Fatalf("unexpected body %+v", fn.body)
	}
	meta, _ := fn.body["metadata"].(map[string]any)
	if meta["planId"] != "plano-premium" {
		t.Fatalf("planId must travel in metadata, got %+v", meta)
	}
}

func TestCreateCheckout_MissingURLIsNotAnError(t *testing.T) {
	// la regla "sin URL => fallo" la aplica payments.Service
	g := NewGateway(&fakeInvoker{resp: `{"referenceId":"bill_1"}`})
	resp, err := g.CreateCheckout(context.Background(), payments.CheckoutRequest{Type: payments.CheckoutOneTime})
	if err != nil || resp.ReferenceID != "bill_1" || resp.URL != "" {
		t.Fatalf("unexpected %+v err=%v", resp, err)
	}
}

func TestCreateCheckout_ProviderError(t *testing.T) {
	g := NewGateway(&fakeInvoker{err: &httpclient.HTTPError{StatusCode: 400, Body: `{"error":"Invalid amount"}`}})
	_, err := g.CreateCheckout(context.Background(), payments.CheckoutRequest{Type: payments.CheckoutOneTime})
	if !errors.Is(err, ErrGateway) || httpclient.ProviderMessage(err) != "Invalid amount" {
		t.Fatalf("unexpected error %v", err)
	}
}
