package subscription

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var (
	ErrSubscriptionNotFound   = errors.New("subscription not found")
	ErrNoRemainingClasses     = errors.New("no remaining classes on subscription")
	ErrMembershipTypeNotFound = errors.New("membership type not found")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, memberID, membershipTypeID int, startDate, endDate time.Time, remainingClasses int, autoRenew bool) (*Subscription, error) {
	query := `
		INSERT INTO subscriptions (member_id, membership_type_id, start_date, end_date, remaining_classes, status, auto_renew)
		VALUES ($1, $2, $3, $4, $5, 'active', $6)
		RETURNING id, member_id, membership_type_id, start_date, end_date, remaining_classes, status, auto_renew, created_at, updated_at
	`

	var s Subscription
	err := r.db.GetContext(ctx, &s, query, memberID, membershipTypeID, startDate, endDate, remainingClasses, autoRenew)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Subscription, error) {
	query := `
		SELECT id, member_id, membership_type_id, start_date, end_date, remaining_classes, status, auto_renew, created_at, updated_at
		FROM subscriptions
		WHERE id = $1
	`

	var s Subscription
	err := r.db.GetContext(ctx, &s, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}

	return &s, nil
}

// FindCurrent selects the subscription whose date range covers today and
// whose status still permits credit use. With overlapping subscriptions the
// store's first match wins; the engine does not impose a tie-break.
func (r *repository) FindCurrent(ctx context.Context, memberID int) (*Subscription, error) {
	query := `
		SELECT id, member_id, membership_type_id, start_date, end_date, remaining_classes, status, auto_renew, created_at, updated_at
		FROM subscriptions
		WHERE member_id = $1
		  AND start_date <= CURRENT_DATE
		  AND end_date >= CURRENT_DATE
		  AND status IN ('active', 'canceled')
		LIMIT 1
	`

	var s Subscription
	err := r.db.GetContext(ctx, &s, query, memberID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &s, nil
}

// DecrementRemaining is a conditional update; it never drives the counter
// below zero, even under concurrent callers.
func (r *repository) DecrementRemaining(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE subscriptions
		SET remaining_classes = remaining_classes - 1, updated_at = NOW()
		WHERE id = $1 AND remaining_classes > 0
	`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNoRemainingClasses
	}

	return nil
}

func (r *repository) IncrementRemaining(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE subscriptions
		SET remaining_classes = remaining_classes + 1, updated_at = NOW()
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrSubscriptionNotFound
	}

	return nil
}

func (r *repository) CancelSubscription(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE subscriptions
		SET status = 'canceled', auto_renew = FALSE, updated_at = NOW()
		WHERE id = $1 AND status = 'active'
	`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrSubscriptionNotFound
	}

	return nil
}

// ExpireDue flips active subscriptions past their end date to expired.
// Canceled rows are left alone; the date check in FindCurrent already
// excludes them once lapsed.
func (r *repository) ExpireDue(ctx context.Context) (int, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE subscriptions
		SET status = 'expired', updated_at = NOW()
		WHERE status = 'active' AND end_date <= CURRENT_DATE
	`)
	if err != nil {
		return 0, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	return int(rowsAffected), nil
}

func (r *repository) ListForMember(ctx context.Context, memberID int) ([]Subscription, error) {
	query := `
		SELECT id, member_id, membership_type_id, start_date, end_date, remaining_classes, status, auto_renew, created_at, updated_at
		FROM subscriptions
		WHERE member_id = $1
		ORDER BY created_at DESC
	`

	var subs []Subscription
	err := r.db.SelectContext(ctx, &subs, query, memberID)
	if err != nil {
		return nil, err
	}

	return subs, nil
}

func (r *repository) GetMembershipType(ctx context.Context, id int) (*MembershipType, error) {
	query := `
		SELECT id, name, description, price, class_count, duration_days
		FROM membership_types
		WHERE id = $1
	`

	var mt MembershipType
	err := r.db.GetContext(ctx, &mt, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMembershipTypeNotFound
		}
		return nil, err
	}

	return &mt, nil
}

func (r *repository) ListMembershipTypes(ctx context.Context) ([]MembershipType, error) {
	query := `
		SELECT id, name, description, price, class_count, duration_days
		FROM membership_types
		ORDER BY price ASC
	`

	var types []MembershipType
	err := r.db.SelectContext(ctx, &types, query)
	if err != nil {
		return nil, err
	}

	return types, nil
}
