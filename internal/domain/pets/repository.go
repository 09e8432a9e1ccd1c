package pets

import "context"

type Repository interface {
	List(ctx context.Context) ([]Pet, error)
	GetByID(ctx context.Context, id string) (Pet, error)
	ListByTutor(ctx context.Context, tutorID string) ([]Pet, error)
}
