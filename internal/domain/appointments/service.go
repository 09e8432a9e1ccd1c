package appointments

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("appointment not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Filter: campos vacíos no filtran. Date es YYYY-MM-DD en UTC.
type Filter struct {
	Status  Status
	Date    string
	TutorID string
	PetID   string
}

// List devuelve los turnos ordenados por fecha ascendente.
func (s *Service) List(ctx context.Context, f Filter) ([]Appointment, error) {
	if f.Status != "" {
		if _, ok := ParseStatus(string(f.Status)); !ok {
			return nil, ErrInvalidInput
		}
	}
	if f.Date != "" {
		if _, err := time.Parse("2006-01-02", f.Date); err != nil {
			return nil, ErrInvalidInput
		}
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Appointment, 0, len(items))
	for _, a := range items {
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if f.Date != "" && a.DateTime.UTC().Format("2006-01-02") != f.Date {
			continue
		}
		if f.TutorID != "" && a.TutorID != f.TutorID {
			continue
		}
		if f.PetID != "" && a.PetID != f.PetID {
			continue
		}
		out = append(out, a)
	}

	SortByDateTime(out)
	return out, nil
}

// Schedule es la agenda de un día. date vacío => hoy (UTC).
func (s *Service) Schedule(ctx context.Context, date string) (string, []Appointment, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		date = s.now().UTC().Format("2006-01-02")
	}
	items, err := s.List(ctx, Filter{Date: date})
	if err != nil {
		return "", nil, err
	}
	return date, items, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateInput usa punteros para PATCH: nil = no tocar.
type UpdateInput struct {
	Status   *Status
	Notes    *string
	DateTime *time.Time
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Appointment, error) {
	if strings.TrimSpace(id) == "" {
		return Appointment{}, ErrInvalidInput
	}
	if in.Status != nil {
		if _, ok := ParseStatus(string(*in.Status)); !ok {
			return Appointment{}, ErrInvalidInput
		}
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Appointment{}, err
	}

	if in.Status != nil {
		a.Status = *in.Status
	}
	if in.Notes != nil {
		a.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.DateTime != nil {
		a.DateTime = Canonical(*in.DateTime)
	}

	a.UpdatedAt = Canonical(s.now())
	if a.UpdatedAt.Before(a.CreatedAt) {
		a.UpdatedAt = a.CreatedAt
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

// SortByDateTime ordena in-place; empates por id para orden estable.
func SortByDateTime(items []Appointment) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].DateTime.Equal(items[j].DateTime) {
			return items[i].ID < items[j].ID
		}
		return items[i].DateTime.Before(items[j].DateTime)
	})
}
