package trainer

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrTrainerNotFound = errors.New("trainer not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name, email, specialty string) (*Trainer, error) {
	query := `
		INSERT INTO trainers (name, email, specialty, status)
		VALUES ($1, $2, $3, 'pending')
		RETURNING id, name, email, specialty, status, created_at
	`

	var t Trainer
	err := r.db.GetContext(ctx, &t, query, name, email, specialty)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Trainer, error) {
	query := `
		SELECT id, name, email, specialty, status, created_at
		FROM trainers
		WHERE id = $1
	`

	var t Trainer
	err := r.db.GetContext(ctx, &t, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}

	return &t, nil
}

func (r *repository) List(ctx context.Context) ([]Trainer, error) {
	query := `
		SELECT id, name, email, specialty, status, created_at
		FROM trainers
		ORDER BY created_at DESC
	`

	var trainers []Trainer
	err := r.db.SelectContext(ctx, &trainers, query)
	if err != nil {
		return nil, err
	}

	return trainers, nil
}

func (r *repository) SetStatus(ctx context.Context, id int, status Status) error {
	result, err := r.db.ExecContext(ctx, `UPDATE trainers SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrTrainerNotFound
	}

	return nil
}
