package booking

import "time"

type Booking struct {
	ID            int       `db:"id" json:"id"`
	MemberID      int       `db:"member_id" json:"member_id"`
	ScheduleID    int       `db:"schedule_id" json:"schedule_id"`
	BookedAt      time.Time `db:"booked_at" json:"booked_at"`
	IsAttended    bool      `db:"is_attended" json:"is_attended"`
	UsedFreeClass bool      `db:"used_free_class" json:"used_free_class"`
}

type BookingWithDetails struct {
	Booking
	SessionDate  time.Time `db:"session_date" json:"session_date"`
	SessionStart string    `db:"session_start" json:"session_start"`
	SessionEnd   string    `db:"session_end" json:"session_end"`
	TrainerName  string    `db:"trainer_name" json:"trainer_name"`
	MemberName   string    `db:"member_name" json:"member_name"`
	MemberEmail  string    `db:"member_email" json:"member_email"`
}

// CreditSource is the tagged choice of what pays for a booking, decided once
// at creation and recorded immutably as used_free_class on the row.
type CreditSource struct {
	UseFreePool    bool
	SubscriptionID int
}

func SubscriptionSource(subscriptionID int) CreditSource {
	return CreditSource{SubscriptionID: subscriptionID}
}

func FreePoolSource() CreditSource {
	return CreditSource{UseFreePool: true}
}

func (cs CreditSource) Label() string {
	if cs.UseFreePool {
		return "free_class"
	}
	return "subscription"
}

type CreateBookingRequest struct {
	MemberID     int   `json:"member_id"`
	ScheduleID   int   `json:"schedule_id" binding:"required"`
	UseFreeClass *bool `json:"use_free_class,omitempty"`
}

// UpdateBookingRequest is the admin re-assignment patch. Credit state is
// never touched on a move.
type UpdateBookingRequest struct {
	MemberID   *int `json:"member_id,omitempty"`
	ScheduleID *int `json:"schedule_id,omitempty"`
}
