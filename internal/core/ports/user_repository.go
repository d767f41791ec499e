package ports

import (
	"context"

	"github.com/FatimaZahraMH/blog-backend/internal/core/domain"
)

// UserRepository defines the persistence interface for user accounts. It is
// the credential store consumed by the authenticator and by the per-request
// identity middleware.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
