package member

import (
	"context"
	"database/sql"
	"errors"

	"fitstudio/internal/db"

	"github.com/jmoiron/sqlx"
)

var ErrMemberNotFound = errors.New("member not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name, email, passwordHash, role string) (*Member, error) {
	query := `
		INSERT INTO members (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, password_hash, role, is_active, created_at
	`

	var m Member
	err := r.db.GetContext(ctx, &m, query, name, email, passwordHash, role)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Member, error) {
	query := `
		SELECT id, name, email, password_hash, role, is_active, created_at
		FROM members
		WHERE email = $1
	`

	var m Member
	err := r.db.GetContext(ctx, &m, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	return &m, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Member, error) {
	query := `
		SELECT id, name, email, password_hash, role, is_active, created_at
		FROM members
		WHERE id = $1
	`

	var m Member
	err := r.db.GetContext(ctx, &m, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	return &m, nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	return db.Exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM members WHERE email = $1)`, email)
}

func (r *repository) SetActive(ctx context.Context, id int, active bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE members SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrMemberNotFound
	}

	return nil
}
