package gateway

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/companycore/management-system/internal/auth"
)

// Upstreams maps route prefixes to backend base URLs. In the single-binary
// deployment every entry points at the same server; splitting a service out
// later is a config change, not a code change.
type Upstreams struct {
	Auth     *url.URL
	Users    *url.URL
	Projects *url.URL
	Catalog  *url.URL
	Requests *url.URL
	Messages *url.URL
	Realtime *url.URL
}

// New builds the edge proxy. Every request has client-supplied identity
// headers stripped before anything else runs; protected prefixes then
// verify the bearer token and re-inject the headers from the verified
// claims. Upstreams never see an x-user-* value the gateway did not write.
func New(verifier *auth.Verifier, up Upstreams, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(stripIdentityHeaders())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "Gateway OK"})
	})

	verify := verifyToken(verifier, log)

	// Login is the only anonymous API route; everything else under the
	// auth prefix still needs a valid token.
	mount(e, "/api/auth/login", up.Auth)

	protected := []struct {
		prefix   string
		upstream *url.URL
	}{
		{"/api/auth", up.Auth},
		{"/api/users", up.Users},
		{"/api/projects", up.Projects},
		{"/api/services", up.Catalog},
		{"/api/companies", up.Catalog},
		{"/api/service-requests", up.Requests},
		{"/api/messages", up.Messages},
	}
	for _, p := range protected {
		g := e.Group(p.prefix, verify)
		g.Use(proxy(p.upstream))
	}

	// The websocket endpoint authenticates itself at the handshake via the
	// token query parameter, so the gateway forwards it unverified.
	ws := e.Group("/ws")
	ws.Use(proxy(up.Realtime))

	return e
}

// mount registers an unauthenticated passthrough for a single path.
func mount(e *echo.Echo, path string, upstream *url.URL) {
	g := e.Group(path)
	g.Use(proxy(upstream))
}

func proxy(upstream *url.URL) echo.MiddlewareFunc {
	return echomiddleware.Proxy(echomiddleware.NewRoundRobinBalancer(
		[]*echomiddleware.ProxyTarget{{URL: upstream}},
	))
}

// stripIdentityHeaders drops any client-supplied identity headers. Applied
// globally, including on public routes, so the only party that can set
// them is the gateway itself.
func stripIdentityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Request().Header
			h.Del(auth.HeaderUserID)
			h.Del(auth.HeaderUserRole)
			h.Del(auth.HeaderUserName)
			return next(c)
		}
	}
}

// verifyToken authenticates the bearer token and writes the verified
// identity into the propagation headers for the upstream.
func verifyToken(verifier *auth.Verifier, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request())
			id, err := verifier.Verify(c.Request().Context(), token)
			if err != nil {
				log.Debug().Str("path", c.Request().URL.Path).Msg("token rejected at the edge")
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "authentication required"})
			}

			h := c.Request().Header
			h.Set(auth.HeaderUserID, id.SubjectID)
			h.Set(auth.HeaderUserRole, id.Role)
			h.Set(auth.HeaderUserName, id.Name)
			return next(c)
		}
	}
}

func bearerToken(r *http.Request) string {
	raw := r.Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if len(raw) > len(prefix) && raw[:len(prefix)] == prefix {
		return raw[len(prefix):]
	}
	return ""
}
