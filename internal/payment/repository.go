package payment

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, memberID int, amount decimal.Decimal, method, reference, description string) (*Payment, error) {
	query := `
		INSERT INTO payments (member_id, amount, method, reference, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, member_id, amount, method, reference, description, recorded_at
	`

	var p Payment
	err := r.db.GetContext(ctx, &p, query, memberID, amount, method, reference, description)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) ListForMember(ctx context.Context, memberID int, limit, offset int) ([]Payment, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, member_id, amount, method, reference, description, recorded_at
		FROM payments
		WHERE member_id = $1
		ORDER BY recorded_at DESC
		LIMIT $2 OFFSET $3
	`

	var payments []Payment
	err := r.db.SelectContext(ctx, &payments, query, memberID, limit, offset)
	if err != nil {
		return nil, err
	}

	return payments, nil
}
