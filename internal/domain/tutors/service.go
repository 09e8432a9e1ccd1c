package tutors

import (
	"context"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List filtra por nombre o email (sin distinguir mayúsculas). q vacío => todos.
func (s *Service) List(ctx context.Context, q string) ([]Tutor, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return items, nil
	}

	out := make([]Tutor, 0, len(items))
	for _, t := range items {
		if strings.Contains(strings.ToLower(t.Name), q) || strings.Contains(strings.ToLower(t.Email), q) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Tutor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) FindByEmail(ctx context.Context, email string) (Tutor, bool, error) {
	return s.repo.FindByEmail(ctx, email)
}
