package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RBAC enforces role-based access control. It must run after Auth; a valid
// session whose role is outside the allow-list is rejected with 403, distinct
// from the 401 of a missing or invalid session.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFrom(c)
			if claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}
			if _, ok := allowed[claims.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
			}
			return next(c)
		}
	}
}
