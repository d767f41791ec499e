package ports

import (
	"context"

	"github.com/FatimaZahraMH/blog-backend/internal/core/domain"
)

// AuthResult is returned by both registration and login: the account plus a
// freshly issued bearer token.
type AuthResult struct {
	User        *domain.User
	AccessToken string
	ExpiresIn   int64
}

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*AuthResult, error)
	Login(ctx context.Context, usernameOrEmail, password string) (*AuthResult, error)
}
