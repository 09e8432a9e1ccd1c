package catalog

import (
	"context"
	"errors"
	"strings"
)

var ErrNotFound = errors.New("not found")

// Catalog expone servicios y planes. Los datos son fijos y se copian al leer.
type Catalog struct {
	services []Service
	plans    []Plan
}

func NewCatalog() *Catalog {
	return NewCatalogWith(seedServices, seedPlans)
}

func NewCatalogWith(services []Service, plans []Plan) *Catalog {
	return &Catalog{
		services: append([]Service(nil), services...),
		plans:    append([]Plan(nil), plans...),
	}
}

func (c *Catalog) ListServices(ctx context.Context) []Service {
	return append([]Service(nil), c.services...)
}

func (c *Catalog) GetService(ctx context.Context, id string) (Service, error) {
	id = strings.TrimSpace(id)
	for _, s := range c.services {
		if s.ID == id {
			return s, nil
		}
	}
	return Service{}, ErrNotFound
}

func (c *Catalog) ListPlans(ctx context.Context) []Plan {
	out := make([]Plan, 0, len(c.plans))
	for _, p := range c.plans {
		p.Benefits = append([]string(nil), p.Benefits...)
		out = append(out, p)
	}
	return out
}

func (c *Catalog) GetPlan(ctx context.Context, id string) (Plan, error) {
	id = strings.TrimSpace(id)
	for _, p := range c.plans {
		if p.ID == id {
			p.Benefits = append([]string(nil), p.Benefits...)
			return p, nil
		}
	}
	return Plan{}, ErrNotFound
}
