package subscription

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusExpired  Status = "expired"
	StatusCanceled Status = "canceled"
)

// Subscription grants a member RemainingClasses bookings between StartDate and
// EndDate. A canceled subscription keeps granting credit until its end date;
// only the expiration sweep (or the date check) retires it.
type Subscription struct {
	ID               int       `db:"id" json:"id"`
	MemberID         int       `db:"member_id" json:"member_id"`
	MembershipTypeID int       `db:"membership_type_id" json:"membership_type_id"`
	StartDate        time.Time `db:"start_date" json:"start_date"`
	EndDate          time.Time `db:"end_date" json:"end_date"`
	RemainingClasses int       `db:"remaining_classes" json:"remaining_classes"`
	Status           Status    `db:"status" json:"status"`
	AutoRenew        bool      `db:"auto_renew" json:"auto_renew"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

type MembershipType struct {
	ID           int             `db:"id" json:"id"`
	Name         string          `db:"name" json:"name"`
	Description  string          `db:"description" json:"description"`
	Price        decimal.Decimal `db:"price" json:"price"`
	ClassCount   int             `db:"class_count" json:"class_count"`
	DurationDays int             `db:"duration_days" json:"duration_days"`
}

type PurchaseRequest struct {
	MembershipTypeID int  `json:"membership_type_id" binding:"required"`
	AutoRenew        bool `json:"auto_renew"`
}

type PurchaseResponse struct {
	Subscription *Subscription `json:"subscription"`
	PaymentRef   string        `json:"payment_ref"`
	Amount       string        `json:"amount"`
}
