package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/FatimaZahraMH/blog-backend/internal/api/metrics"
	"github.com/FatimaZahraMH/blog-backend/internal/core/domain"
)

// Authorize enforces the route tier of the policy. It runs after Identity in
// the chain: by the time it executes, the request either carries a resolved
// identity or none, and any rejection happens here rather than in the
// resolver. Route-tier denials are converted to HTTP errors on the spot;
// a domain.ErrForbidden reaching the error handler therefore always comes
// from the ownership tier inside a service.
func Authorize(policy *Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			err := policy.Evaluate(req.Method, req.URL.Path, CurrentIdentity(c))
			switch {
			case errors.Is(err, domain.ErrAuthenticationRequired):
				metrics.AuthzDenialsTotal.WithLabelValues("route").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			case errors.Is(err, domain.ErrForbidden):
				metrics.AuthzDenialsTotal.WithLabelValues("route").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
			case err != nil:
				return err
			}
			return next(c)
		}
	}
}
