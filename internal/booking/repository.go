package booking

import (
	"context"
	"database/sql"
	"errors"

	"fitstudio/internal/db"
	"fitstudio/internal/freeclass"
	"fitstudio/internal/subscription"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrScheduleFull     = errors.New("class session is full")
	ErrDuplicateBooking = errors.New("member already booked this session")
	ErrScheduleNotFound = errors.New("class session not found")
)

const pqUniqueViolation = "23505"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateWithCredit(ctx context.Context, memberID, scheduleID int, source CreditSource) (*Booking, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Locking the session row serializes concurrent capacity checks for the
	// same schedule.
	var capacity int
	err = tx.GetContext(ctx, &capacity, `
		SELECT capacity FROM class_sessions WHERE id = $1 FOR UPDATE
	`, scheduleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}

	var booked int
	err = tx.GetContext(ctx, &booked, `
		SELECT COUNT(*) FROM bookings WHERE schedule_id = $1
	`, scheduleID)
	if err != nil {
		return nil, err
	}

	if booked >= capacity {
		return nil, ErrScheduleFull
	}

	if source.UseFreePool {
		if err := consumeFreeClass(ctx, tx, memberID); err != nil {
			return nil, err
		}
	} else {
		if err := decrementSubscription(ctx, tx, source.SubscriptionID); err != nil {
			return nil, err
		}
	}

	var b Booking
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO bookings (member_id, schedule_id, used_free_class)
		VALUES ($1, $2, $3)
		RETURNING id, member_id, schedule_id, booked_at, is_attended, used_free_class
	`, memberID, scheduleID, source.UseFreePool).StructScan(&b)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, ErrDuplicateBooking
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &b, nil
}

// consumeFreeClass debits one unit from any allocation row with quantity > 0,
// deleting the row once drained. The subselect lock keeps two concurrent
// bookings from draining the same unit.
func consumeFreeClass(ctx context.Context, tx *sqlx.Tx, memberID int) error {
	var (
		allocationID int
		quantity     int
	)
	err := tx.QueryRowxContext(ctx, `
		UPDATE free_class_allocations
		SET quantity = quantity - 1
		WHERE id = (
			SELECT id FROM free_class_allocations
			WHERE member_id = $1 AND quantity > 0
			LIMIT 1
			FOR UPDATE
		)
		RETURNING id, quantity
	`, memberID).Scan(&allocationID, &quantity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return freeclass.ErrNoFreeClassesAvailable
		}
		return err
	}

	if quantity == 0 {
		if _, err := tx.ExecContext(ctx, `DELETE FROM free_class_allocations WHERE id = $1`, allocationID); err != nil {
			return err
		}
	}

	return nil
}

func decrementSubscription(ctx context.Context, tx *sqlx.Tx, subscriptionID int) error {
	result, err := tx.ExecContext(ctx, `
		UPDATE subscriptions
		SET remaining_classes = remaining_classes - 1, updated_at = NOW()
		WHERE id = $1 AND remaining_classes > 0
	`, subscriptionID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return subscription.ErrNoRemainingClasses
	}

	return nil
}

func (r *repository) CancelWithRestore(ctx context.Context, bookingID, memberID int, usedFreeClass bool, subscriptionID *int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if usedFreeClass {
		// Restoration is a fresh allocation row, never merged into an
		// existing one.
		_, err = tx.ExecContext(ctx, `
			INSERT INTO free_class_allocations (member_id, quantity)
			VALUES ($1, 1)
		`, memberID)
		if err != nil {
			return err
		}
	} else if subscriptionID != nil {
		_, err = tx.ExecContext(ctx, `
			UPDATE subscriptions
			SET remaining_classes = remaining_classes + 1, updated_at = NOW()
			WHERE id = $1
		`, *subscriptionID)
		if err != nil {
			return err
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, bookingID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return tx.Commit()
}

func (r *repository) GetByID(ctx context.Context, id int) (*Booking, error) {
	query := `
		SELECT id, member_id, schedule_id, booked_at, is_attended, used_free_class
		FROM bookings
		WHERE id = $1
	`

	var b Booking
	err := r.db.GetContext(ctx, &b, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	return &b, nil
}

func (r *repository) Update(ctx context.Context, b *Booking) error {
	query := `
		UPDATE bookings
		SET member_id = $1, schedule_id = $2
		WHERE id = $3
	`

	result, err := r.db.ExecContext(ctx, query, b.MemberID, b.ScheduleID, b.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return ErrDuplicateBooking
		}
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (r *repository) SetAttended(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE bookings SET is_attended = TRUE WHERE id = $1
	`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (r *repository) CountForSchedule(ctx context.Context, scheduleID int) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM bookings WHERE schedule_id = $1
	`, scheduleID)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *repository) MemberHasBooking(ctx context.Context, memberID, scheduleID, excludeID int) (bool, error) {
	return db.Exists(ctx, r.db, `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE member_id = $1 AND schedule_id = $2 AND id <> $3
		)
	`, memberID, scheduleID, excludeID)
}

func (r *repository) ListForMember(ctx context.Context, memberID int) ([]Booking, error) {
	query := `
		SELECT id, member_id, schedule_id, booked_at, is_attended, used_free_class
		FROM bookings
		WHERE member_id = $1
		ORDER BY booked_at DESC
	`

	var bookings []Booking
	err := r.db.SelectContext(ctx, &bookings, query, memberID)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) ListForSchedule(ctx context.Context, scheduleID int) ([]BookingWithDetails, error) {
	query := `
		SELECT
			b.id,
			b.member_id,
			b.schedule_id,
			b.booked_at,
			b.is_attended,
			b.used_free_class,
			s.date AS session_date,
			s.start_time AS session_start,
			s.end_time AS session_end,
			t.name AS trainer_name,
			m.name AS member_name,
			m.email AS member_email
		FROM bookings b
		JOIN class_sessions s ON b.schedule_id = s.id
		JOIN trainers t ON s.trainer_id = t.id
		JOIN members m ON b.member_id = m.id
		WHERE b.schedule_id = $1
		ORDER BY b.booked_at DESC
	`

	var bookings []BookingWithDetails
	err := r.db.SelectContext(ctx, &bookings, query, scheduleID)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) ListUpcomingForMember(ctx context.Context, memberID int) ([]BookingWithDetails, error) {
	query := `
		SELECT
			b.id,
			b.member_id,
			b.schedule_id,
			b.booked_at,
			b.is_attended,
			b.used_free_class,
			s.date AS session_date,
			s.start_time AS session_start,
			s.end_time AS session_end,
			t.name AS trainer_name,
			m.name AS member_name,
			m.email AS member_email
		FROM bookings b
		JOIN class_sessions s ON b.schedule_id = s.id
		JOIN trainers t ON s.trainer_id = t.id
		JOIN members m ON b.member_id = m.id
		WHERE b.member_id = $1
		  AND s.is_cancelled = FALSE
		  AND (s.date + s.start_time) > NOW()
		ORDER BY s.date ASC, s.start_time ASC
	`

	var bookings []BookingWithDetails
	err := r.db.SelectContext(ctx, &bookings, query, memberID)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}
