package freeclass

import (
	"context"
	"errors"
)

var ErrInvalidQuantity = errors.New("quantity must be positive")

type Service interface {
	Grant(ctx context.Context, memberID, quantity int) (*Allocation, error)
	Remaining(ctx context.Context, memberID int) (int, error)
	Consume(ctx context.Context, memberID int) (int, error)
	ListForMember(ctx context.Context, memberID int) ([]Allocation, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Grant(ctx context.Context, memberID, quantity int) (*Allocation, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	return s.repo.Grant(ctx, memberID, quantity)
}

func (s *service) Remaining(ctx context.Context, memberID int) (int, error) {
	return s.repo.RemainingForMember(ctx, memberID)
}

func (s *service) Consume(ctx context.Context, memberID int) (int, error) {
	return s.repo.ConsumeOne(ctx, memberID)
}

func (s *service) ListForMember(ctx context.Context, memberID int) ([]Allocation, error) {
	return s.repo.ListForMember(ctx, memberID)
}
