package catalog

import (
	"context"
	"errors"
	"testing"
)

func TestPriceCents_Rounds(t *testing.T) {
	cases := []struct {
		price float64
		want  int64
	}{
		{80, 8000},
		{19.99, 1999},
		{49.9, 4990},
	}
	for _, tc := range cases {
		if got := (Service{Price: tc.price}).PriceCents(); got != tc.want {
			t.Fatalf("PriceCents(%v) = %d, want %d", tc.price, got, tc.want)
		}
	}
}

func TestCatalog_LookupsAndCopies(t *testing.T) {
	c := NewCatalogWith(
		[]Service{{ID: "s1", Name: "Banho", Price: 50}},
		[]Plan{{ID: "p1", Name: "Básico", Price: 80, Benefits: []string{"2 banhos"}}},
	)
	ctx := context.Background()

	if s, err := c.GetService(ctx, " s1 "); err != nil || s.Name != "Banho" {
		t.Fatalf("GetService: %+v err=%v", s, err)
	}
	if _, err := c.GetService(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	plans := c.ListPlans(ctx)
	plans[0].Benefits[0] = "mutated"
	p, _ := c.GetPlan(ctx, "p1")
	if p.Benefits[0] != "2 banhos" {
		t.Fatalf("caller mutation leaked into catalog")
	}

	if len(NewCatalog().ListServices(ctx)) == 0 {
		t.Fatalf("default catalog must not be empty")
	}
}
