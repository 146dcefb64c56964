package trainer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockTrainerRepo struct{ mock.Mock }

func (m *MockTrainerRepo) Create(ctx context.Context, name, email, specialty string) (*Trainer, error) {
	args := m.Called(ctx, name, email, specialty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Trainer), args.Error(1)
}

func (m *MockTrainerRepo) GetByID(ctx context.Context, id int) (*Trainer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Trainer), args.Error(1)
}

func (m *MockTrainerRepo) List(ctx context.Context) ([]Trainer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Trainer), args.Error(1)
}

func (m *MockTrainerRepo) SetStatus(ctx context.Context, id int, status Status) error {
	return m.Called(ctx, id, status).Error(0)
}

func TestService_ApproveAndReject(t *testing.T) {
	repo := new(MockTrainerRepo)
	repo.On("SetStatus", mock.Anything, 1, StatusApproved).Return(nil)
	repo.On("SetStatus", mock.Anything, 2, StatusRejected).Return(nil)

	service := NewService(repo)

	assert.NoError(t, service.Approve(context.Background(), 1))
	assert.NoError(t, service.Reject(context.Background(), 2))
	repo.AssertExpectations(t)
}

func TestService_Create(t *testing.T) {
	repo := new(MockTrainerRepo)
	repo.On("Create", mock.Anything, "Coach", "coach@example.com", "yoga").
		Return(&Trainer{ID: 1, Name: "Coach", Email: "coach@example.com", Specialty: "yoga", Status: StatusPending}, nil)

	service := NewService(repo)
	tr, err := service.Create(context.Background(), CreateTrainerRequest{Name: "Coach", Email: "coach@example.com", Specialty: "yoga"})

	assert.NoError(t, err)
	assert.Equal(t, StatusPending, tr.Status)
	repo.AssertExpectations(t)
}
