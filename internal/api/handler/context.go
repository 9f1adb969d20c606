package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/companycore/management-system/internal/api/middleware"
	"github.com/companycore/management-system/internal/auth"
	"github.com/companycore/management-system/internal/core/domain"
)

// actorFrom extracts the identity resolved by the Identity middleware. A
// miss means the route was mounted outside the authenticated group, which
// is a wiring bug; the request is rejected rather than served anonymously.
func actorFrom(c echo.Context) (auth.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return auth.Identity{}, domain.ErrUnauthenticated
	}
	return id, nil
}
