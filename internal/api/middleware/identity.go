package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/FatimaZahraMH/blog-backend/internal/api/metrics"
	"github.com/FatimaZahraMH/blog-backend/internal/core/domain"
	"github.com/FatimaZahraMH/blog-backend/internal/core/ports"
)

const identityKey = "identity"

// Identity resolves the bearer token once per inbound request and stores the
// resulting domain.Identity in the request context. It never rejects a
// request itself: a missing, malformed or invalid token leaves the context
// unauthenticated and rejection is deferred to the route policy, which keeps
// public-but-optionally-authenticated routes reachable.
//
// Tokens are stateless and stay cryptographically valid until expiry (there
// is no revocation list). The subject is however re-read from the user store
// on every request, so a deleted or disabled account stops resolving at once
// even while its tokens are unexpired.
func Identity(tokens ports.TokenService, users ports.UserRepository, policy *Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			// Public routes are served without any resolution attempt.
			if policy.IsPublic(req.Method, req.URL.Path) {
				return next(c)
			}

			token, ok := bearerToken(req.Header.Get("Authorization"))
			if !ok {
				return next(c)
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				return next(c)
			}
			metrics.TokenVerificationsTotal.WithLabelValues("valid").Inc()

			user, err := users.FindByUsername(req.Context(), claims.Subject)
			if err != nil || !user.Enabled {
				return next(c)
			}

			c.Set(identityKey, domain.Identity{
				UserID:   user.ID,
				Username: user.Username,
				Role:     user.Role,
			})
			return next(c)
		}
	}
}

// CurrentIdentity returns the identity resolved for this request, or the zero
// Identity when the request is unauthenticated.
func CurrentIdentity(c echo.Context) domain.Identity {
	id, _ := c.Get(identityKey).(domain.Identity)
	return id
}

// SetIdentity injects an identity directly. Intended for tests.
func SetIdentity(c echo.Context, id domain.Identity) {
	c.Set(identityKey, id)
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
