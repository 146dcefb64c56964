package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"fitstudio/internal/trainer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockScheduleRepo struct{ mock.Mock }
type MockTrainerRepo struct{ mock.Mock }

func (m *MockScheduleRepo) Create(ctx context.Context, trainerID int, date time.Time, startTime, endTime string, capacity int) (*ClassSession, error) {
	args := m.Called(ctx, trainerID, date, startTime, endTime, capacity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ClassSession), args.Error(1)
}

func (m *MockScheduleRepo) GetByID(ctx context.Context, id int) (*ClassSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ClassSession), args.Error(1)
}

func (m *MockScheduleRepo) Update(ctx context.Context, s *ClassSession) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockScheduleRepo) SetCancelled(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockScheduleRepo) ListByDate(ctx context.Context, date time.Time) ([]ClassSession, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ClassSession), args.Error(1)
}

func (m *MockScheduleRepo) ListUpcomingWithAvailability(ctx context.Context) ([]SessionWithAvailability, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]SessionWithAvailability), args.Error(1)
}

func (m *MockScheduleRepo) HasOverlap(ctx context.Context, trainerID int, date time.Time, startTime, endTime string, excludeID int) (bool, error) {
	args := m.Called(ctx, trainerID, date, startTime, endTime, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTrainerRepo) Create(ctx context.Context, name, email, specialty string) (*trainer.Trainer, error) {
	args := m.Called(ctx, name, email, specialty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trainer.Trainer), args.Error(1)
}

func (m *MockTrainerRepo) GetByID(ctx context.Context, id int) (*trainer.Trainer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trainer.Trainer), args.Error(1)
}

func (m *MockTrainerRepo) List(ctx context.Context) ([]trainer.Trainer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trainer.Trainer), args.Error(1)
}

func (m *MockTrainerRepo) SetStatus(ctx context.Context, id int, status trainer.Status) error {
	return m.Called(ctx, id, status).Error(0)
}

func approvedTrainer(id int) *trainer.Trainer {
	return &trainer.Trainer{ID: id, Name: "Coach", Email: "coach@example.com", Status: trainer.StatusApproved}
}

func futureDateStr() string {
	return time.Now().Add(72 * time.Hour).Format("2006-01-02")
}

var errStorageDown = errors.New("connection refused")

func TestService_Create(t *testing.T) {
	dateStr := futureDateStr()
	date, _ := time.Parse("2006-01-02", dateStr)

	tests := []struct {
		name       string
		req        CreateSessionRequest
		setupMocks func(*MockScheduleRepo, *MockTrainerRepo)
		wantErr    error
	}{
		{
			name: "valid session",
			req:  CreateSessionRequest{TrainerID: 1, Date: dateStr, StartTime: "18:00", EndTime: "19:00", Capacity: 12},
			setupMocks: func(sr *MockScheduleRepo, tr *MockTrainerRepo) {
				tr.On("GetByID", mock.Anything, 1).Return(approvedTrainer(1), nil)
				sr.On("HasOverlap", mock.Anything, 1, date, "18:00:00", "19:00:00", 0).Return(false, nil)
				sr.On("Create", mock.Anything, 1, date, "18:00:00", "19:00:00", 12).
					Return(&ClassSession{ID: 5, TrainerID: 1, Date: date, StartTime: "18:00:00", EndTime: "19:00:00", Capacity: 12}, nil)
			},
		},
		{
			name: "end not after start",
			req:  CreateSessionRequest{TrainerID: 1, Date: dateStr, StartTime: "18:00", EndTime: "18:00", Capacity: 12},
			setupMocks: func(sr *MockScheduleRepo, tr *MockTrainerRepo) {},
			wantErr:    ErrInvalidSession,
		},
		{
			name: "malformed clock value",
			req:  CreateSessionRequest{TrainerID: 1, Date: dateStr, StartTime: "6pm", EndTime: "19:00", Capacity: 12},
			setupMocks: func(sr *MockScheduleRepo, tr *MockTrainerRepo) {},
			wantErr:    ErrInvalidSession,
		},
		{
			name: "trainer not approved",
			req:  CreateSessionRequest{TrainerID: 2, Date: dateStr, StartTime: "18:00", EndTime: "19:00", Capacity: 12},
			setupMocks: func(sr *MockScheduleRepo, tr *MockTrainerRepo) {
				tr.On("GetByID", mock.Anything, 2).Return(&trainer.Trainer{ID: 2, Status: trainer.StatusPending}, nil)
			},
			wantErr: ErrTrainerNotApproved,
		},
		{
			name: "unknown trainer",
			req:  CreateSessionRequest{TrainerID: 9, Date: dateStr, StartTime: "18:00", EndTime: "19:00", Capacity: 12},
			setupMocks: func(sr *MockScheduleRepo, tr *MockTrainerRepo) {
				tr.On("GetByID", mock.Anything, 9).Return(nil, trainer.ErrTrainerNotFound)
			},
			wantErr: trainer.ErrTrainerNotFound,
		},
		{
			name: "trainer lookup failure propagates",
			req:  CreateSessionRequest{TrainerID: 1, Date: dateStr, StartTime: "18:00", EndTime: "19:00", Capacity: 12},
			setupMocks: func(sr *MockScheduleRepo, tr *MockTrainerRepo) {
				tr.On("GetByID", mock.Anything, 1).Return(nil, errStorageDown)
			},
			wantErr: errStorageDown,
		},
		{
			name: "session in the past",
			req:  CreateSessionRequest{TrainerID: 1, Date: "2020-01-01", StartTime: "18:00", EndTime: "19:00", Capacity: 12},
			setupMocks: func(sr *MockScheduleRepo, tr *MockTrainerRepo) {
				tr.On("GetByID", mock.Anything, 1).Return(approvedTrainer(1), nil)
			},
			wantErr: ErrSessionInPast,
		},
		{
			name: "overlapping session for trainer",
			req:  CreateSessionRequest{TrainerID: 1, Date: dateStr, StartTime: "18:30", EndTime: "19:30", Capacity: 12},
			setupMocks: func(sr *MockScheduleRepo, tr *MockTrainerRepo) {
				tr.On("GetByID", mock.Anything, 1).Return(approvedTrainer(1), nil)
				sr.On("HasOverlap", mock.Anything, 1, date, "18:30:00", "19:30:00", 0).Return(true, nil)
			},
			wantErr: ErrConflictingSchedule,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sr := new(MockScheduleRepo)
			tr := new(MockTrainerRepo)
			tt.setupMocks(sr, tr)

			service := NewService(sr, tr)
			sess, err := service.Create(context.Background(), tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, sess)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, sess)
			}
			sr.AssertExpectations(t)
		})
	}
}

func TestService_Update(t *testing.T) {
	dateStr := futureDateStr()
	date, _ := time.Parse("2006-01-02", dateStr)

	sr := new(MockScheduleRepo)
	tr := new(MockTrainerRepo)

	existing := &ClassSession{ID: 5, TrainerID: 1, Date: date, StartTime: "18:00:00", EndTime: "19:00:00", Capacity: 12}
	sr.On("GetByID", mock.Anything, 5).Return(existing, nil)
	sr.On("HasOverlap", mock.Anything, 1, date, "17:00:00", "18:00:00", 5).Return(false, nil)
	sr.On("Update", mock.Anything, mock.MatchedBy(func(s *ClassSession) bool {
		return s.ID == 5 && s.StartTime == "17:00:00" && s.EndTime == "18:00:00" && s.Capacity == 12
	})).Return(nil)

	service := NewService(sr, tr)

	start := "17:00"
	end := "18:00"
	sess, err := service.Update(context.Background(), 5, UpdateSessionRequest{StartTime: &start, EndTime: &end})

	assert.NoError(t, err)
	assert.Equal(t, "17:00:00", sess.StartTime)
	sr.AssertExpectations(t)
}

func TestParseClock(t *testing.T) {
	for _, s := range []string{"18:00", "18:00:00", "06:15"} {
		_, err := ParseClock(s)
		assert.NoError(t, err, s)
	}
	for _, s := range []string{"6pm", "25:00", ""} {
		_, err := ParseClock(s)
		assert.Error(t, err, s)
	}
}
