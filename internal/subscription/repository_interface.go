package subscription

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, memberID, membershipTypeID int, startDate, endDate time.Time, remainingClasses int, autoRenew bool) (*Subscription, error)
	GetByID(ctx context.Context, id int) (*Subscription, error)
	// FindCurrent returns nil without error when the member has no
	// subscription covering today with status active or canceled.
	FindCurrent(ctx context.Context, memberID int) (*Subscription, error)
	DecrementRemaining(ctx context.Context, id int) error
	IncrementRemaining(ctx context.Context, id int) error
	CancelSubscription(ctx context.Context, id int) error
	ExpireDue(ctx context.Context) (int, error)
	ListForMember(ctx context.Context, memberID int) ([]Subscription, error)
	GetMembershipType(ctx context.Context, id int) (*MembershipType, error)
	ListMembershipTypes(ctx context.Context) ([]MembershipType, error)
}
