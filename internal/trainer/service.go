package trainer

import (
	"context"
	"errors"
)

var ErrInvalidStatus = errors.New("invalid trainer status")

type Service interface {
	Create(ctx context.Context, req CreateTrainerRequest) (*Trainer, error)
	GetByID(ctx context.Context, id int) (*Trainer, error)
	List(ctx context.Context) ([]Trainer, error)
	Approve(ctx context.Context, id int) error
	Reject(ctx context.Context, id int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateTrainerRequest) (*Trainer, error) {
	return s.repo.Create(ctx, req.Name, req.Email, req.Specialty)
}

func (s *service) GetByID(ctx context.Context, id int) (*Trainer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]Trainer, error) {
	return s.repo.List(ctx)
}

func (s *service) Approve(ctx context.Context, id int) error {
	return s.repo.SetStatus(ctx, id, StatusApproved)
}

func (s *service) Reject(ctx context.Context, id int) error {
	return s.repo.SetStatus(ctx, id, StatusRejected)
}
