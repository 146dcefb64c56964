package schedule

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, trainerID int, date time.Time, startTime, endTime string, capacity int) (*ClassSession, error)
	GetByID(ctx context.Context, id int) (*ClassSession, error)
	Update(ctx context.Context, s *ClassSession) error
	SetCancelled(ctx context.Context, id int) error
	ListByDate(ctx context.Context, date time.Time) ([]ClassSession, error)
	ListUpcomingWithAvailability(ctx context.Context) ([]SessionWithAvailability, error)
	HasOverlap(ctx context.Context, trainerID int, date time.Time, startTime, endTime string, excludeID int) (bool, error)
}
