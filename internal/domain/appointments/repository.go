package appointments

import "context"

type Repository interface {
	List(ctx context.Context) ([]Appointment, error)
	GetByID(ctx context.Context, id string) (Appointment, error)
	Update(ctx context.Context, a Appointment) error
	Delete(ctx context.Context, id string) error
}
