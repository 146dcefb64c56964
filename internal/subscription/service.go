package subscription

import (
	"context"
	"time"

	"fitstudio/internal/logger"
	"fitstudio/internal/metrics"
	"fitstudio/internal/payment"
)

type Service interface {
	Purchase(ctx context.Context, memberID int, req PurchaseRequest) (*Subscription, *payment.Payment, error)
	Current(ctx context.Context, memberID int) (*Subscription, error)
	Cancel(ctx context.Context, id int) error
	ListForMember(ctx context.Context, memberID int) ([]Subscription, error)
	ListPlans(ctx context.Context) ([]MembershipType, error)
	ExpireDue(ctx context.Context) (int, error)
}

type service struct {
	repo     Repository
	payments payment.Service
}

func NewService(repo Repository, payments payment.Service) Service {
	return &service{
		repo:     repo,
		payments: payments,
	}
}

// Purchase records the payment for the plan and opens the subscription. The
// subscription starts today and carries the plan's class count as its
// allowance.
func (s *service) Purchase(ctx context.Context, memberID int, req PurchaseRequest) (*Subscription, *payment.Payment, error) {
	mt, err := s.repo.GetMembershipType(ctx, req.MembershipTypeID)
	if err != nil {
		return nil, nil, err
	}

	p, err := s.payments.Record(ctx, memberID, mt.Price, "card", "membership: "+mt.Name)
	if err != nil {
		return nil, nil, err
	}

	startDate := time.Now().Truncate(24 * time.Hour)
	endDate := startDate.AddDate(0, 0, mt.DurationDays)

	sub, err := s.repo.Create(ctx, memberID, mt.ID, startDate, endDate, mt.ClassCount, req.AutoRenew)
	if err != nil {
		return nil, nil, err
	}

	metrics.RecordSubscription(mt.Name)
	logger.Info("Subscription created", "member_id", memberID, "plan", mt.Name, "classes", mt.ClassCount)

	return sub, p, nil
}

func (s *service) Current(ctx context.Context, memberID int) (*Subscription, error) {
	return s.repo.FindCurrent(ctx, memberID)
}

func (s *service) Cancel(ctx context.Context, id int) error {
	return s.repo.CancelSubscription(ctx, id)
}

func (s *service) ListForMember(ctx context.Context, memberID int) ([]Subscription, error) {
	return s.repo.ListForMember(ctx, memberID)
}

func (s *service) ListPlans(ctx context.Context) ([]MembershipType, error) {
	return s.repo.ListMembershipTypes(ctx)
}

// ExpireDue is the idempotent sweep: active subscriptions whose end date has
// passed become expired. Running it twice in a row is a no-op.
func (s *service) ExpireDue(ctx context.Context) (int, error) {
	expired, err := s.repo.ExpireDue(ctx)
	if err != nil {
		return 0, err
	}

	metrics.RecordSweep(expired)
	if expired > 0 {
		logger.Info("Expiration sweep completed", "expired", expired)
	}

	return expired, nil
}
