package freeclass

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrNoFreeClassesAvailable = errors.New("no free classes available")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Grant(ctx context.Context, memberID, quantity int) (*Allocation, error) {
	query := `
		INSERT INTO free_class_allocations (member_id, quantity)
		VALUES ($1, $2)
		RETURNING id, member_id, quantity, created_at
	`

	var a Allocation
	err := r.db.GetContext(ctx, &a, query, memberID, quantity)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

func (r *repository) RemainingForMember(ctx context.Context, memberID int) (int, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM free_class_allocations
		WHERE member_id = $1
	`

	var total int
	err := r.db.GetContext(ctx, &total, query, memberID)
	if err != nil {
		return 0, err
	}

	return total, nil
}

// ConsumeOne takes one class from any allocation row with quantity > 0. The
// row is locked for the duration of the transaction so two concurrent
// consumers cannot drain the same unit. A row reaching zero is deleted.
// Returns the new pool total.
func (r *repository) ConsumeOne(ctx context.Context, memberID int) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var a Allocation
	err = tx.QueryRowxContext(ctx, `
		UPDATE free_class_allocations
		SET quantity = quantity - 1
		WHERE id = (
			SELECT id FROM free_class_allocations
			WHERE member_id = $1 AND quantity > 0
			LIMIT 1
			FOR UPDATE
		)
		RETURNING id, member_id, quantity, created_at
	`, memberID).StructScan(&a)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNoFreeClassesAvailable
		}
		return 0, err
	}

	if a.Quantity == 0 {
		if _, err := tx.ExecContext(ctx, `DELETE FROM free_class_allocations WHERE id = $1`, a.ID); err != nil {
			return 0, err
		}
	}

	var total int
	err = tx.GetContext(ctx, &total, `
		SELECT COALESCE(SUM(quantity), 0)
		FROM free_class_allocations
		WHERE member_id = $1
	`, memberID)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return total, nil
}

func (r *repository) ListForMember(ctx context.Context, memberID int) ([]Allocation, error) {
	query := `
		SELECT id, member_id, quantity, created_at
		FROM free_class_allocations
		WHERE member_id = $1
		ORDER BY created_at DESC
	`

	var allocations []Allocation
	err := r.db.SelectContext(ctx, &allocations, query, memberID)
	if err != nil {
		return nil, err
	}

	return allocations, nil
}
