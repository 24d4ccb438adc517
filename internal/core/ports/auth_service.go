package ports

import (
	"context"

	"github.com/cadastroweb/portal/internal/core/domain"
)

type AuthService interface {
	// Register hashes the password and stores a new user.
	Register(ctx context.Context, name, email, password string) (*domain.User, error)

	// Login verifies the credentials against the stored hash and returns the
	// matching user. Returns domain.ErrUserNotFound for an unknown email and
	// domain.ErrInvalidCredentials for a password mismatch.
	Login(ctx context.Context, email, password string) (*domain.User, error)

	// UserByID re-fetches a user by primary key; used by the dashboard so the
	// rendered data reflects the row, not the session snapshot.
	UserByID(ctx context.Context, id int64) (*domain.User, error)
}
