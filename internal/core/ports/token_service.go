package ports

import (
	"github.com/FatimaZahraMH/blog-backend/internal/core/domain"
)

// TokenService encodes and decodes signed identity tokens. Verify collapses
// every failure mode into domain.ErrInvalidToken.
type TokenService interface {
	// Issue signs a token for the user and returns it with its lifetime in
	// seconds.
	Issue(user *domain.User) (token string, expiresIn int64, err error)
	Verify(token string) (*domain.TokenClaims, error)
}
