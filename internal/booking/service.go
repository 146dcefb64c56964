package booking

import (
	"context"
	"errors"
	"time"

	"fitstudio/internal/freeclass"
	"fitstudio/internal/logger"
	"fitstudio/internal/member"
	"fitstudio/internal/metrics"
	"fitstudio/internal/schedule"
	"fitstudio/internal/subscription"
)

var (
	ErrMemberNotFound         = errors.New("member not found")
	ErrMemberInactive         = errors.New("member account is deactivated")
	ErrScheduleCancelled      = errors.New("class session is cancelled")
	ErrScheduleAlreadyStarted = errors.New("class session has already started")
	ErrNoCreditAvailable      = errors.New("no subscription allowance or free classes available")
	ErrCancellationTooLate    = errors.New("cannot cancel a class that has already started")
)

// Notifier sends best-effort booking notifications; failures never block the
// booking flow.
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, to, name, sessionLabel string, startsAt time.Time) error
	SendBookingCancellation(ctx context.Context, to, name, sessionLabel string) error
}

type Service interface {
	Create(ctx context.Context, req CreateBookingRequest) (*Booking, error)
	Update(ctx context.Context, id int, req UpdateBookingRequest) (*Booking, error)
	MarkAttended(ctx context.Context, id int) (*Booking, error)
	Cancel(ctx context.Context, id int) error
	GetByID(ctx context.Context, id int) (*Booking, error)
	ListForMember(ctx context.Context, memberID int) ([]Booking, error)
	ListForSchedule(ctx context.Context, scheduleID int) ([]BookingWithDetails, error)
	ListUpcomingForMember(ctx context.Context, memberID int) ([]BookingWithDetails, error)
}

type service struct {
	repo         Repository
	memberRepo   member.Repository
	scheduleRepo schedule.Repository
	subRepo      subscription.Repository
	freeRepo     freeclass.Repository
	notifier     Notifier
}

func NewService(
	repo Repository,
	memberRepo member.Repository,
	scheduleRepo schedule.Repository,
	subRepo subscription.Repository,
	freeRepo freeclass.Repository,
	notifier Notifier,
) Service {
	return &service{
		repo:         repo,
		memberRepo:   memberRepo,
		scheduleRepo: scheduleRepo,
		subRepo:      subRepo,
		freeRepo:     freeRepo,
		notifier:     notifier,
	}
}

// Create validates the request in precondition order, picks the credit
// source, and delegates the atomic debit-and-insert to the repository. The
// preconditions here are advisory reads; capacity and credit are re-validated
// inside the transaction, and the unique index backs the duplicate check.
func (s *service) Create(ctx context.Context, req CreateBookingRequest) (*Booking, error) {
	m, err := s.memberRepo.FindByID(ctx, req.MemberID)
	if err != nil {
		if errors.Is(err, member.ErrMemberNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	if !m.IsActive {
		metrics.RecordBookingRejection("member_inactive")
		return nil, ErrMemberInactive
	}

	sched, err := s.scheduleRepo.GetByID(ctx, req.ScheduleID)
	if err != nil {
		if errors.Is(err, schedule.ErrSessionNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	if sched.IsCancelled {
		metrics.RecordBookingRejection("schedule_cancelled")
		return nil, ErrScheduleCancelled
	}
	if !sched.StartsAt().After(time.Now()) {
		metrics.RecordBookingRejection("schedule_started")
		return nil, ErrScheduleAlreadyStarted
	}

	booked, err := s.repo.CountForSchedule(ctx, req.ScheduleID)
	if err != nil {
		return nil, err
	}
	if booked >= sched.Capacity {
		metrics.RecordBookingRejection("schedule_full")
		return nil, ErrScheduleFull
	}

	has, err := s.repo.MemberHasBooking(ctx, req.MemberID, req.ScheduleID, 0)
	if err != nil {
		return nil, err
	}
	if has {
		metrics.RecordBookingRejection("duplicate")
		return nil, ErrDuplicateBooking
	}

	source, err := s.chooseCreditSource(ctx, req)
	if err != nil {
		return nil, err
	}

	b, err := s.repo.CreateWithCredit(ctx, req.MemberID, req.ScheduleID, source)
	if err != nil {
		return nil, err
	}

	metrics.RecordBooking(source.Label())
	logger.Info("Booking created",
		"booking_id", b.ID,
		"member_id", b.MemberID,
		"schedule_id", b.ScheduleID,
		"credit_source", source.Label(),
	)

	if s.notifier != nil {
		if err := s.notifier.SendBookingConfirmation(ctx, m.Email, m.Name, sessionLabel(sched), sched.StartsAt()); err != nil {
			logger.Errorf("Failed to queue booking confirmation for member %d: %v", m.ID, err)
		}
	}

	return b, nil
}

// chooseCreditSource implements subscription-first selection. An explicit
// free-class request is honored only when the pool is non-empty; otherwise
// the normal priority applies.
func (s *service) chooseCreditSource(ctx context.Context, req CreateBookingRequest) (CreditSource, error) {
	sub, err := s.subRepo.FindCurrent(ctx, req.MemberID)
	if err != nil {
		return CreditSource{}, err
	}

	explicit := req.UseFreeClass != nil && *req.UseFreeClass

	pool := -1
	if explicit {
		pool, err = s.freeRepo.RemainingForMember(ctx, req.MemberID)
		if err != nil {
			return CreditSource{}, err
		}
		if pool > 0 {
			return FreePoolSource(), nil
		}
	}

	if sub != nil && sub.RemainingClasses > 0 {
		return SubscriptionSource(sub.ID), nil
	}

	if pool < 0 {
		pool, err = s.freeRepo.RemainingForMember(ctx, req.MemberID)
		if err != nil {
			return CreditSource{}, err
		}
	}
	if pool > 0 {
		return FreePoolSource(), nil
	}

	metrics.RecordBookingRejection("no_credit")
	return CreditSource{}, ErrNoCreditAvailable
}

// Update is the administrative re-assignment. Credit consumption state is
// left untouched on a move.
func (s *service) Update(ctx context.Context, id int, req UpdateBookingRequest) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	target := *b

	if req.MemberID != nil && *req.MemberID != b.MemberID {
		m, err := s.memberRepo.FindByID(ctx, *req.MemberID)
		if err != nil {
			if errors.Is(err, member.ErrMemberNotFound) {
				return nil, ErrMemberNotFound
			}
			return nil, err
		}
		if !m.IsActive {
			return nil, ErrMemberInactive
		}
		target.MemberID = *req.MemberID
	}

	if req.ScheduleID != nil && *req.ScheduleID != b.ScheduleID {
		sched, err := s.scheduleRepo.GetByID(ctx, *req.ScheduleID)
		if err != nil {
			if errors.Is(err, schedule.ErrSessionNotFound) {
				return nil, ErrScheduleNotFound
			}
			return nil, err
		}
		if sched.IsCancelled {
			return nil, ErrScheduleCancelled
		}

		booked, err := s.repo.CountForSchedule(ctx, *req.ScheduleID)
		if err != nil {
			return nil, err
		}
		if booked >= sched.Capacity {
			return nil, ErrScheduleFull
		}

		target.ScheduleID = *req.ScheduleID
	}

	has, err := s.repo.MemberHasBooking(ctx, target.MemberID, target.ScheduleID, b.ID)
	if err != nil {
		return nil, err
	}
	if has {
		return nil, ErrDuplicateBooking
	}

	if err := s.repo.Update(ctx, &target); err != nil {
		return nil, err
	}

	return &target, nil
}

// MarkAttended sets the flag unconditionally; setting it twice is a no-op.
func (s *service) MarkAttended(ctx context.Context, id int) (*Booking, error) {
	if err := s.repo.SetAttended(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Cancel restores the credit source and removes the booking. The restore
// target for subscription-paid bookings is the member's current subscription
// at cancellation time; if none is current the credit is dropped.
func (s *service) Cancel(ctx context.Context, id int) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	sched, err := s.scheduleRepo.GetByID(ctx, b.ScheduleID)
	if err != nil {
		if errors.Is(err, schedule.ErrSessionNotFound) {
			return ErrScheduleNotFound
		}
		return err
	}
	if !sched.StartsAt().After(time.Now()) {
		return ErrCancellationTooLate
	}

	var subscriptionID *int
	if !b.UsedFreeClass {
		sub, err := s.subRepo.FindCurrent(ctx, b.MemberID)
		if err != nil {
			return err
		}
		if sub != nil {
			subscriptionID = &sub.ID
		} else {
			logger.Info("Cancellation credit dropped: no current subscription",
				"booking_id", b.ID, "member_id", b.MemberID)
		}
	}

	if err := s.repo.CancelWithRestore(ctx, b.ID, b.MemberID, b.UsedFreeClass, subscriptionID); err != nil {
		return err
	}

	metrics.RecordBookingCancellation()
	logger.Info("Booking cancelled", "booking_id", b.ID, "member_id", b.MemberID)

	if s.notifier != nil {
		if m, err := s.memberRepo.FindByID(ctx, b.MemberID); err == nil {
			if err := s.notifier.SendBookingCancellation(ctx, m.Email, m.Name, sessionLabel(sched)); err != nil {
				logger.Errorf("Failed to queue cancellation notice for member %d: %v", m.ID, err)
			}
		}
	}

	return nil
}

func (s *service) GetByID(ctx context.Context, id int) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListForMember(ctx context.Context, memberID int) ([]Booking, error) {
	return s.repo.ListForMember(ctx, memberID)
}

func (s *service) ListForSchedule(ctx context.Context, scheduleID int) ([]BookingWithDetails, error) {
	return s.repo.ListForSchedule(ctx, scheduleID)
}

func (s *service) ListUpcomingForMember(ctx context.Context, memberID int) ([]BookingWithDetails, error) {
	return s.repo.ListUpcomingForMember(ctx, memberID)
}

func sessionLabel(sched *schedule.ClassSession) string {
	return sched.Date.Format("Jan 2, 2006") + " " + sched.StartTime
}
