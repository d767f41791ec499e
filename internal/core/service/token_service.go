package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/FatimaZahraMH/blog-backend/internal/core/domain"
)

// tokenClaims is the wire shape of an identity token.
type tokenClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
	Role   string `json:"role"`
}

// TokenService issues and verifies HS256-signed identity tokens. Verification
// is stateless: there is no revocation store, a token stays valid until its
// expiry. The signing secret is read-only after construction and safe for
// concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token carrying the user's username, id and role, expiring
// after the configured TTL. The lifetime is also returned in seconds for the
// auth response body.
func (s *TokenService) Issue(user *domain.User) (string, int64, error) {
	now := time.Now().UTC()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		UserID: user.ID,
		Role:   string(user.Role),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", 0, err
	}
	return signed, int64(s.ttl.Seconds()), nil
}

// Verify parses and validates a token. Any failure — bad signature, expiry,
// malformed payload, unexpected algorithm, missing claims — is reported as
// the single domain.ErrInvalidToken so callers cannot distinguish tampering
// from expiry.
func (s *TokenService) Verify(token string) (*domain.TokenClaims, error) {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	role := domain.Role(claims.Role)
	if claims.Subject == "" || !role.Valid() {
		return nil, domain.ErrInvalidToken
	}

	out := &domain.TokenClaims{
		Subject:   claims.Subject,
		UserID:    claims.UserID,
		Role:      role,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	return out, nil
}
