package booking

import "context"

type Repository interface {
	// CreateWithCredit re-validates capacity under a schedule row lock,
	// debits the credit source conditionally, and inserts the booking, all
	// in one transaction.
	CreateWithCredit(ctx context.Context, memberID, scheduleID int, source CreditSource) (*Booking, error)
	// CancelWithRestore restores the credit and deletes the booking row in
	// one transaction. A nil subscriptionID with usedFreeClass false means
	// the credit has no restoration target and is dropped.
	CancelWithRestore(ctx context.Context, bookingID, memberID int, usedFreeClass bool, subscriptionID *int) error
	GetByID(ctx context.Context, id int) (*Booking, error)
	Update(ctx context.Context, b *Booking) error
	SetAttended(ctx context.Context, id int) error
	CountForSchedule(ctx context.Context, scheduleID int) (int, error)
	MemberHasBooking(ctx context.Context, memberID, scheduleID, excludeID int) (bool, error)
	ListForMember(ctx context.Context, memberID int) ([]Booking, error)
	ListForSchedule(ctx context.Context, scheduleID int) ([]BookingWithDetails, error)
	ListUpcomingForMember(ctx context.Context, memberID int) ([]BookingWithDetails, error)
}
