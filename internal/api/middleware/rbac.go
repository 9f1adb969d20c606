package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/companycore/management-system/internal/core/domain"
)

// RequireRole gates a route group to the given roles. It runs after
// Identity, so a missing identity here means the route was wired without
// the resolver and the request is rejected rather than let through.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return domain.ErrUnauthenticated
			}
			if _, ok := allowed[id.Role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
