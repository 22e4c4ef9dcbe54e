package auth

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// publicPaths are served without authentication: login, the disabled
// registration stub, and the health probes.
var publicPaths = map[string]bool{
	"/api/auth/login":    true,
	"/api/auth/register": true,
	"/health":            true,
	"/health/db":         true,
}

// PublicRouteSkipper reports whether the request targets a route that does not
// require a bearer token.
func PublicRouteSkipper(c echo.Context) bool {
	path := c.Request().URL.Path
	if publicPaths[path] {
		return true
	}
	// Trailing-slash variants of the public paths.
	return publicPaths[strings.TrimSuffix(path, "/")]
}
