package pets

import (
	"context"
	"errors"
	"testing"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	items []Pet
}

func (r *testRepo) List(ctx context.Context) ([]Pet, error) {
	return append([]Pet(nil), r.items...), nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Pet, error) {
	for _, p := range r.items {
		if p.ID == id {
			return p, nil
		}
	}
	return Pet{}, ErrNotFound
}

func (r *testRepo) ListByTutor(ctx context.Context, tutorID string) ([]Pet, error) {
	var out []Pet
	for _, p := range r.items {
		if p.TutorID == tutorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func TestList_SpeciesAndQuery(t *testing.T) {
	svc := NewService(&testRepo{items: []Pet{
		{ID: "p1", Name: "Thor", Species: SpeciesDog, Breed: "Golden Retriever", TutorID: "t1"},
		{ID: "p2", Name: "Mia", Species: SpeciesCat, Breed: "Siamês", TutorID: "t2"},
		{ID: "p3", Name: "Loki", Species: SpeciesDog, Breed: "Vira-lata", TutorID: "t1"},
	}})
	ctx := context.Background()

	dogs, _ := svc.List(ctx, Filter{Species: SpeciesDog})
	if len(dogs) != 2 {
		t.Fatalf("expected 2 dogs, got %d", len(dogs))
	}

	byBreed, _ := svc.List(ctx, Filter{Query: "  GOLDEN "})
	if len(byBreed) != 1 || byBreed[0].ID != "p1" {
		t.Fatalf("unexpected breed match %+v", byBreed)
	}

	if _, err := svc.List(ctx, Filter{Species: "bird"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	mine, _ := svc.ListByTutor(ctx, "t1")
	if len(mine) != 2 {
		t.Fatalf("expected 2 pets for t1, got %d", len(mine))
	}
}
