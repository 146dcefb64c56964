package schedule

import (
	"context"
	"errors"
	"time"

	"fitstudio/internal/trainer"
)

var (
	ErrTrainerNotApproved  = errors.New("trainer is not approved")
	ErrConflictingSchedule = errors.New("trainer already has a session in this time range")
	ErrInvalidSession      = errors.New("invalid session time range")
	ErrSessionInPast       = errors.New("session must start in the future")
)

type Service interface {
	Create(ctx context.Context, req CreateSessionRequest) (*ClassSession, error)
	Update(ctx context.Context, id int, req UpdateSessionRequest) (*ClassSession, error)
	Cancel(ctx context.Context, id int) error
	GetByID(ctx context.Context, id int) (*ClassSession, error)
	ListUpcoming(ctx context.Context) ([]SessionWithAvailability, error)
}

type service struct {
	repo        Repository
	trainerRepo trainer.Repository
}

func NewService(repo Repository, trainerRepo trainer.Repository) Service {
	return &service{
		repo:        repo,
		trainerRepo: trainerRepo,
	}
}

func (s *service) Create(ctx context.Context, req CreateSessionRequest) (*ClassSession, error) {
	date, start, end, err := parseSessionTimes(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	if req.Capacity <= 0 {
		return nil, ErrInvalidSession
	}

	if err := s.checkTrainer(ctx, req.TrainerID); err != nil {
		return nil, err
	}

	if !startsInFuture(date, start) {
		return nil, ErrSessionInPast
	}

	if err := s.checkOverlap(ctx, req.TrainerID, date, start, end, 0); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, req.TrainerID, date, start, end, req.Capacity)
}

func (s *service) Update(ctx context.Context, id int, req UpdateSessionRequest) (*ClassSession, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.TrainerID != nil {
		updated.TrainerID = *req.TrainerID
	}
	if req.Capacity != nil {
		updated.Capacity = *req.Capacity
	}

	dateStr := updated.Date.Format("2006-01-02")
	if req.Date != nil {
		dateStr = *req.Date
	}
	startStr := updated.StartTime
	if req.StartTime != nil {
		startStr = *req.StartTime
	}
	endStr := updated.EndTime
	if req.EndTime != nil {
		endStr = *req.EndTime
	}

	date, start, end, err := parseSessionTimes(dateStr, startStr, endStr)
	if err != nil {
		return nil, err
	}

	if updated.Capacity <= 0 {
		return nil, ErrInvalidSession
	}

	if req.TrainerID != nil {
		if err := s.checkTrainer(ctx, updated.TrainerID); err != nil {
			return nil, err
		}
	}

	if err := s.checkOverlap(ctx, updated.TrainerID, date, start, end, id); err != nil {
		return nil, err
	}

	updated.Date = date
	updated.StartTime = start
	updated.EndTime = end

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *service) Cancel(ctx context.Context, id int) error {
	return s.repo.SetCancelled(ctx, id)
}

func (s *service) GetByID(ctx context.Context, id int) (*ClassSession, error) {
	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *service) ListUpcoming(ctx context.Context) ([]SessionWithAvailability, error) {
	return s.repo.ListUpcomingWithAvailability(ctx)
}

func (s *service) checkTrainer(ctx context.Context, trainerID int) error {
	t, err := s.trainerRepo.GetByID(ctx, trainerID)
	if err != nil {
		return err
	}
	if t.Status != trainer.StatusApproved {
		return ErrTrainerNotApproved
	}
	return nil
}

func (s *service) checkOverlap(ctx context.Context, trainerID int, date time.Time, start, end string, excludeID int) error {
	overlap, err := s.repo.HasOverlap(ctx, trainerID, date, start, end, excludeID)
	if err != nil {
		return err
	}
	if overlap {
		return ErrConflictingSchedule
	}
	return nil
}

// parseSessionTimes validates the wire formats and the end-after-start rule.
// Clock values are normalized to "15:04:05".
func parseSessionTimes(dateStr, startStr, endStr string) (time.Time, string, string, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, "", "", ErrInvalidSession
	}

	start, err := ParseClock(startStr)
	if err != nil {
		return time.Time{}, "", "", ErrInvalidSession
	}

	end, err := ParseClock(endStr)
	if err != nil {
		return time.Time{}, "", "", ErrInvalidSession
	}

	if !end.After(start) {
		return time.Time{}, "", "", ErrInvalidSession
	}

	return date, start.Format("15:04:05"), end.Format("15:04:05"), nil
}

func startsInFuture(date time.Time, start string) bool {
	s := combine(date, start)
	return s.After(time.Now())
}
