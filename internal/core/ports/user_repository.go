package ports

import (
	"context"

	"github.com/cadastroweb/portal/internal/core/domain"
)

// UserRepository defines the persistence boundary for the Usuario table.
type UserRepository interface {
	// Create inserts a new user and returns it with the assigned ID.
	// Returns domain.ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// FindByEmail returns the user with the given email, or
	// domain.ErrUserNotFound. Absence is a normal negative result.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindByID returns the user with the given primary key, or
	// domain.ErrUserNotFound.
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}
