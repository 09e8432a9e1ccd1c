package pets

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type Filter struct {
	Species Species // vacío = todas
	Query   string  // nombre o raza
}

func (s *Service) List(ctx context.Context, f Filter) ([]Pet, error) {
	if f.Species != "" {
		if _, ok := ParseSpecies(string(f.Species)); !ok {
			return nil, ErrInvalidInput
		}
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]Pet, 0, len(items))
	for _, p := range items {
		if f.Species != "" && p.Species != f.Species {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.Breed), q) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByTutor(ctx context.Context, tutorID string) ([]Pet, error) {
	return s.repo.ListByTutor(ctx, tutorID)
}
