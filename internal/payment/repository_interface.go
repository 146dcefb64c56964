package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, memberID int, amount decimal.Decimal, method, reference, description string) (*Payment, error)
	ListForMember(ctx context.Context, memberID int, limit, offset int) ([]Payment, error)
}
