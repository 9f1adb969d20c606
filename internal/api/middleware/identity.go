package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/companycore/management-system/internal/auth"
	"github.com/companycore/management-system/internal/core/domain"
)

const identityContextKey = "identity"

// Identity resolves the caller's identity for every request behind it.
//
// The primary source is the x-user-* header set injected by the gateway
// after it verified the caller's token; the service trusts them because
// the gateway strips any client-supplied copies before proxying. When the
// headers are absent (the service is being addressed directly, as in
// tests or local development), the middleware falls back to verifying an
// Authorization bearer token itself. A request with neither is rejected.
func Identity(verifier *auth.Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if id, ok := identityFromHeaders(c); ok {
				c.Set(identityContextKey, id)
				return next(c)
			}

			token := bearerToken(c)
			if token == "" || verifier == nil {
				return domain.ErrUnauthenticated
			}
			id, err := verifier.Verify(c.Request().Context(), token)
			if err != nil {
				return err
			}
			c.Set(identityContextKey, id)
			return next(c)
		}
	}
}

// IdentityFrom returns the identity resolved for the request, if any.
func IdentityFrom(c echo.Context) (auth.Identity, bool) {
	id, ok := c.Get(identityContextKey).(auth.Identity)
	return id, ok
}

// WithIdentity stores an already verified identity on the request context.
func WithIdentity(c echo.Context, id auth.Identity) {
	c.Set(identityContextKey, id)
}

func identityFromHeaders(c echo.Context) (auth.Identity, bool) {
	h := c.Request().Header
	id := auth.Identity{
		SubjectID: h.Get(auth.HeaderUserID),
		Role:      h.Get(auth.HeaderUserRole),
		Name:      h.Get(auth.HeaderUserName),
	}
	if id.SubjectID == "" {
		return auth.Identity{}, false
	}
	return id, true
}

func bearerToken(c echo.Context) string {
	raw := c.Request().Header.Get(echo.HeaderAuthorization)
	if raw == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(raw, prefix) {
		return ""
	}
	return strings.TrimSpace(raw[len(prefix):])
}
