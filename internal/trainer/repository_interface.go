package trainer

import "context"

type Repository interface {
	Create(ctx context.Context, name, email, specialty string) (*Trainer, error)
	GetByID(ctx context.Context, id int) (*Trainer, error)
	List(ctx context.Context) ([]Trainer, error)
	SetStatus(ctx context.Context, id int, status Status) error
}
