package tutors

import (
	"context"
	"testing"
)

type testRepo []Tutor

func (r testRepo) List(ctx context.Context) ([]Tutor, error) { return append([]Tutor(nil), r...), nil }

func (r testRepo) GetByID(ctx context.Context, id string) (Tutor, error) {
	for _, t := range r {
		if t.ID == id {
			return t, nil
		}
	}
	return Tutor{}, ErrNotFound
}

func (r testRepo) FindByEmail(ctx context.Context, email string) (Tutor, bool, error) {
	for _, t := range r {
		if t.Email == email {
			return t, true, nil
		}
	}
	return Tutor{}, false, nil
}

func TestList_MatchesNameOrEmail(t *testing.T) {
	svc := NewService(testRepo{
		{ID: "t1", Name: "Carlos Silva", Email: "carlos.silva@example.com"},
		{ID: "t2", Name: "Mariana Costa", Email: "mariana.costa@example.com"},
	})
	ctx := context.Background()

	all, _ := svc.List(ctx, "")
	if len(all) != 2 {
		t.Fatalf("expected all tutors, got %d", len(all))
	}
	byName, _ := svc.List(ctx, "mariana")
	if len(byName) != 1 || byName[0].ID != "t2" {
		t.Fatalf("unexpected name match %+v", byName)
	}
	byEmail, _ := svc.List(ctx, "CARLOS.SILVA@")
	if len(byEmail) != 1 || byEmail[0].ID != "t1" {
		t.Fatalf("unexpected email match %+v", byEmail)
	}
	if _, ok, _ := svc.FindByEmail(ctx, "nobody@example.com"); ok {
		t.Fatalf("unexpected tutor for unknown email")
	}
}
