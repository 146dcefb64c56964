package payment

import (
	"context"
	"errors"

	"fitstudio/internal/metrics"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("payment amount must be positive")

type Service interface {
	Record(ctx context.Context, memberID int, amount decimal.Decimal, method, description string) (*Payment, error)
	ListForMember(ctx context.Context, memberID int, limit, offset int) ([]Payment, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Record(ctx context.Context, memberID int, amount decimal.Decimal, method, description string) (*Payment, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	p, err := s.repo.Create(ctx, memberID, amount, method, uuid.NewString(), description)
	if err != nil {
		return nil, err
	}

	metrics.RecordPayment(method)
	return p, nil
}

func (s *service) ListForMember(ctx context.Context, memberID int, limit, offset int) ([]Payment, error) {
	return s.repo.ListForMember(ctx, memberID, limit, offset)
}
