package schedule

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fitstudio/internal/db"

	"github.com/jmoiron/sqlx"
)

var ErrSessionNotFound = errors.New("class session not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, trainerID int, date time.Time, startTime, endTime string, capacity int) (*ClassSession, error) {
	query := `
		INSERT INTO class_sessions (trainer_id, date, start_time, end_time, capacity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, trainer_id, date, start_time, end_time, capacity, is_cancelled, created_at
	`

	var s ClassSession
	err := r.db.GetContext(ctx, &s, query, trainerID, date, startTime, endTime, capacity)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*ClassSession, error) {
	query := `
		SELECT id, trainer_id, date, start_time, end_time, capacity, is_cancelled, created_at
		FROM class_sessions
		WHERE id = $1
	`

	var s ClassSession
	err := r.db.GetContext(ctx, &s, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	return &s, nil
}

func (r *repository) Update(ctx context.Context, s *ClassSession) error {
	query := `
		UPDATE class_sessions
		SET trainer_id = $1, date = $2, start_time = $3, end_time = $4, capacity = $5
		WHERE id = $6
	`

	result, err := r.db.ExecContext(ctx, query, s.TrainerID, s.Date, s.StartTime, s.EndTime, s.Capacity, s.ID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

func (r *repository) SetCancelled(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE class_sessions
		SET is_cancelled = TRUE
		WHERE id = $1 AND is_cancelled = FALSE
	`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

func (r *repository) ListByDate(ctx context.Context, date time.Time) ([]ClassSession, error) {
	query := `
		SELECT id, trainer_id, date, start_time, end_time, capacity, is_cancelled, created_at
		FROM class_sessions
		WHERE date = $1
		ORDER BY start_time ASC
	`

	var sessions []ClassSession
	err := r.db.SelectContext(ctx, &sessions, query, date)
	if err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *repository) ListUpcomingWithAvailability(ctx context.Context) ([]SessionWithAvailability, error) {
	query := `
		SELECT
			s.id,
			s.trainer_id,
			s.date,
			s.start_time,
			s.end_time,
			s.capacity,
			s.is_cancelled,
			s.created_at,
			COUNT(b.id) AS booked_count
		FROM class_sessions s
		LEFT JOIN bookings b ON b.schedule_id = s.id
		WHERE s.is_cancelled = FALSE
		  AND (s.date + s.start_time) > NOW()
		GROUP BY s.id
		ORDER BY s.date ASC, s.start_time ASC
	`

	var sessions []SessionWithAvailability
	err := r.db.SelectContext(ctx, &sessions, query)
	if err != nil {
		return nil, err
	}

	for i := range sessions {
		sessions[i].Available = sessions[i].Capacity - sessions[i].BookedCount
		sessions[i].IsFull = sessions[i].Available <= 0
	}

	return sessions, nil
}

// HasOverlap runs the open-interval test: an existing session conflicts when
// existing.start_time < new.end_time AND existing.end_time > new.start_time.
func (r *repository) HasOverlap(ctx context.Context, trainerID int, date time.Time, startTime, endTime string, excludeID int) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM class_sessions
			WHERE trainer_id = $1
			  AND date = $2
			  AND is_cancelled = FALSE
			  AND id <> $3
			  AND start_time < $4
			  AND end_time > $5
		)
	`

	return db.Exists(ctx, r.db, query, trainerID, date, excludeID, endTime, startTime)
}
