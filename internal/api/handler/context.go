package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/FatimaZahraMH/blog-backend/internal/api/middleware"
	"github.com/FatimaZahraMH/blog-backend/internal/core/domain"
)

// currentIdentity extracts the identity resolved by the middleware and
// performs a fast-fail check before any service call: the route policy has
// already admitted the request, so an empty identity here means the chain is
// misconfigured — reject with 401 rather than calling a service with a zero
// actor.
func currentIdentity(c echo.Context) (domain.Identity, error) {
	id := middleware.CurrentIdentity(c)
	if id.IsZero() {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return id, nil
}
