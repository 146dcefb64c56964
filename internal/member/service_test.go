package member

import (
	"context"
	"errors"
	"testing"

	"fitstudio/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockMemberRepo struct{ mock.Mock }

func (m *MockMemberRepo) Create(ctx context.Context, name, email, passwordHash, role string) (*Member, error) {
	args := m.Called(ctx, name, email, passwordHash, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Member), args.Error(1)
}

func (m *MockMemberRepo) FindByEmail(ctx context.Context, email string) (*Member, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Member), args.Error(1)
}

func (m *MockMemberRepo) FindByID(ctx context.Context, id int) (*Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Member), args.Error(1)
}

func (m *MockMemberRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockMemberRepo) SetActive(ctx context.Context, id int, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

const testSecret = "test-secret"

func TestService_Register(t *testing.T) {
	repo := new(MockMemberRepo)

	repo.On("EmailExists", mock.Anything, "new@example.com").Return(false, nil)
	repo.On("Create", mock.Anything, "New Member", "new@example.com", mock.Anything, "member").
		Return(&Member{ID: 1, Name: "New Member", Email: "new@example.com", Role: "member", IsActive: true}, nil)

	service := NewService(repo, testSecret)
	m, access, refresh, err := service.Register(context.Background(), RegisterRequest{
		Name: "New Member", Email: "new@example.com", Password: "password123",
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, m.ID)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)

	claims, err := auth.ValidateToken(access, testSecret)
	assert.NoError(t, err)
	assert.Equal(t, 1, claims.MemberID)
	assert.Equal(t, "member", claims.Role)
	repo.AssertExpectations(t)
}

func TestService_Register_EmailTaken(t *testing.T) {
	repo := new(MockMemberRepo)
	repo.On("EmailExists", mock.Anything, "taken@example.com").Return(true, nil)

	service := NewService(repo, testSecret)
	_, _, _, err := service.Register(context.Background(), RegisterRequest{
		Name: "Someone", Email: "taken@example.com", Password: "password123",
	})

	assert.ErrorIs(t, err, ErrEmailExists)
	repo.AssertNotCalled(t, "Create")
}

func TestService_Login(t *testing.T) {
	hash, err := auth.HashPassword("password123")
	assert.NoError(t, err)

	stored := &Member{ID: 1, Name: "Member", Email: "m@example.com", PasswordHash: hash, Role: "member", IsActive: true}

	tests := []struct {
		name       string
		req        LoginRequest
		setupMocks func(*MockMemberRepo)
		wantErr    error
		wantErrMsg string
	}{
		{
			name: "valid credentials",
			req:  LoginRequest{Email: "m@example.com", Password: "password123"},
			setupMocks: func(r *MockMemberRepo) {
				r.On("FindByEmail", mock.Anything, "m@example.com").Return(stored, nil)
			},
		},
		{
			name: "wrong password",
			req:  LoginRequest{Email: "m@example.com", Password: "nope"},
			setupMocks: func(r *MockMemberRepo) {
				r.On("FindByEmail", mock.Anything, "m@example.com").Return(stored, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name: "unknown email",
			req:  LoginRequest{Email: "ghost@example.com", Password: "password123"},
			setupMocks: func(r *MockMemberRepo) {
				r.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, ErrMemberNotFound)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name: "lookup failure is not an auth failure",
			req:  LoginRequest{Email: "m@example.com", Password: "password123"},
			setupMocks: func(r *MockMemberRepo) {
				r.On("FindByEmail", mock.Anything, "m@example.com").Return(nil, errors.New("connection refused"))
			},
			wantErrMsg: "connection refused",
		},
		{
			name: "deactivated account",
			req:  LoginRequest{Email: "off@example.com", Password: "password123"},
			setupMocks: func(r *MockMemberRepo) {
				inactive := *stored
				inactive.Email = "off@example.com"
				inactive.IsActive = false
				r.On("FindByEmail", mock.Anything, "off@example.com").Return(&inactive, nil)
			},
			wantErr: ErrMemberInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockMemberRepo)
			tt.setupMocks(repo)

			service := NewService(repo, testSecret)
			m, access, _, err := service.Login(context.Background(), tt.req)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, m)
			case tt.wantErrMsg != "":
				assert.EqualError(t, err, tt.wantErrMsg)
				assert.NotErrorIs(t, err, ErrInvalidCredentials)
				assert.Nil(t, m)
			default:
				assert.NoError(t, err)
				assert.NotEmpty(t, access)
			}
		})
	}
}

func TestService_RefreshToken(t *testing.T) {
	repo := new(MockMemberRepo)
	repo.On("FindByID", mock.Anything, 1).
		Return(&Member{ID: 1, Email: "m@example.com", Role: "member", IsActive: true}, nil)

	_, refresh, err := auth.GenerateTokens(1, "m@example.com", "member", testSecret, testSecret)
	assert.NoError(t, err)

	service := NewService(repo, testSecret)
	access, m, err := service.RefreshToken(context.Background(), refresh)

	assert.NoError(t, err)
	assert.Equal(t, 1, m.ID)

	claims, err := auth.ValidateToken(access, testSecret)
	assert.NoError(t, err)
	assert.Equal(t, "access", claims.TokenType)
}
