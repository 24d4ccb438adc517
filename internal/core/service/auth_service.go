package service

import (
	"context"

	"github.com/cadastroweb/portal/internal/core/domain"
	"github.com/cadastroweb/portal/internal/core/ports"
	"github.com/cadastroweb/portal/internal/hashing"
)

// AuthService implements registration, login and user lookup.
type AuthService struct {
	repo   ports.UserRepository
	hasher hashing.Hasher
}

func NewAuthService(repo ports.UserRepository, hasher hashing.Hasher) *AuthService {
	return &AuthService{repo: repo, hasher: hasher}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	hash, err := s.hasher.Make(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:     name,
		Email:    email,
		Password: hash,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Login looks the user up by email and verifies the password against the
// stored hash. The lookup completes before verification; verification
// completes before the caller may bind the user to a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	ok, err := s.hasher.Check(password, user.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

func (s *AuthService) UserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}
