package schedule

import (
	"time"
)

// ClassSession is one scheduled occurrence of a class. Date is a calendar day,
// StartTime and EndTime are same-day clock values in "15:04:05" form as
// returned by the TIME columns.
type ClassSession struct {
	ID          int       `db:"id" json:"id"`
	TrainerID   int       `db:"trainer_id" json:"trainer_id"`
	Date        time.Time `db:"date" json:"date"`
	StartTime   string    `db:"start_time" json:"start_time"`
	EndTime     string    `db:"end_time" json:"end_time"`
	Capacity    int       `db:"capacity" json:"capacity"`
	IsCancelled bool      `db:"is_cancelled" json:"is_cancelled"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type SessionWithAvailability struct {
	ClassSession
	BookedCount int  `db:"booked_count" json:"booked_count"`
	Available   int  `json:"available"`
	IsFull      bool `json:"is_full"`
}

type CreateSessionRequest struct {
	TrainerID int    `json:"trainer_id" binding:"required"`
	Date      string `json:"date" binding:"required"`       // 2006-01-02
	StartTime string `json:"start_time" binding:"required"` // 15:04
	EndTime   string `json:"end_time" binding:"required"`   // 15:04
	Capacity  int    `json:"capacity" binding:"required,min=1"`
}

type UpdateSessionRequest struct {
	TrainerID *int    `json:"trainer_id,omitempty"`
	Date      *string `json:"date,omitempty"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
	Capacity  *int    `json:"capacity,omitempty"`
}

// ParseClock accepts "15:04" and "15:04:05".
func ParseClock(s string) (time.Time, error) {
	if t, err := time.Parse("15:04:05", s); err == nil {
		return t, nil
	}
	return time.Parse("15:04", s)
}

// StartsAt combines the calendar date with the start clock time. Sessions are
// validated at creation, so a malformed clock value yields the date itself.
func (s *ClassSession) StartsAt() time.Time {
	return combine(s.Date, s.StartTime)
}

func (s *ClassSession) EndsAt() time.Time {
	return combine(s.Date, s.EndTime)
}

func combine(date time.Time, clock string) time.Time {
	t, err := ParseClock(clock)
	if err != nil {
		return date
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, date.Location())
}
