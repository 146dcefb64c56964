package member

import (
	"context"
	"errors"

	"fitstudio/internal/auth"
)

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMemberInactive     = errors.New("member account is deactivated")
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Member, string, string, error)
	Login(ctx context.Context, req LoginRequest) (*Member, string, string, error)
	GetByID(ctx context.Context, memberID int) (*Member, error)
	RefreshToken(ctx context.Context, refreshToken string) (string, *Member, error)
	SetActive(ctx context.Context, memberID int, active bool) error
}

type service struct {
	repo      Repository
	jwtSecret string
}

func NewService(repo Repository, jwtSecret string) Service {
	return &service{
		repo:      repo,
		jwtSecret: jwtSecret,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Member, string, string, error) {
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, "", "", err
	}
	if exists {
		return nil, "", "", ErrEmailExists
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", "", err
	}

	m, err := s.repo.Create(ctx, req.Name, req.Email, passwordHash, "member")
	if err != nil {
		return nil, "", "", err
	}

	accessToken, refreshToken, err := auth.GenerateTokens(
		m.ID,
		m.Email,
		m.Role,
		s.jwtSecret,
		s.jwtSecret,
	)
	if err != nil {
		return nil, "", "", err
	}

	return m, accessToken, refreshToken, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*Member, string, string, error) {
	m, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		// An unknown email is indistinguishable from a wrong password.
		if errors.Is(err, ErrMemberNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", err
	}

	if !auth.CheckPassword(m.PasswordHash, req.Password) {
		return nil, "", "", ErrInvalidCredentials
	}

	if !m.IsActive {
		return nil, "", "", ErrMemberInactive
	}

	accessToken, refreshToken, err := auth.GenerateTokens(
		m.ID,
		m.Email,
		m.Role,
		s.jwtSecret,
		s.jwtSecret,
	)
	if err != nil {
		return nil, "", "", err
	}

	return m, accessToken, refreshToken, nil
}

func (s *service) GetByID(ctx context.Context, memberID int) (*Member, error) {
	return s.repo.FindByID(ctx, memberID)
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, *Member, error) {
	_, claims, err := auth.RefreshAccessToken(refreshToken, s.jwtSecret, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	m, err := s.repo.FindByID(ctx, claims.MemberID)
	if err != nil {
		return "", nil, err
	}

	newAccessToken, err := auth.GenerateAccessToken(m.ID, m.Email, m.Role, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	return newAccessToken, m, nil
}

func (s *service) SetActive(ctx context.Context, memberID int, active bool) error {
	return s.repo.SetActive(ctx, memberID, active)
}
