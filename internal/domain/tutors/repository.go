package tutors

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("tutor not found")

type Repository interface {
	List(ctx context.Context) ([]Tutor, error)
	GetByID(ctx context.Context, id string) (Tutor, error)
	// FindByEmail devuelve ok=false si no hay tutor con ese email exacto.
	FindByEmail(ctx context.Context, email string) (Tutor, bool, error)
}
