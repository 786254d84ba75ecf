package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/adrianguereque/accounts-api/internal/auth"
)

// claimsKey is the echo context key the verified session claims are stored
// under.
const claimsKey = "session_claims"

// Auth reads the session token from the Auth cookie, verifies it and injects
// the decoded claims into the request context. Any valid, unexpired token
// passes; layer RBAC on top for role restrictions. A missing cookie and an
// invalid or expired token both reject with 401.
func Auth(codec *auth.Codec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(auth.TokenCookie)
			if err != nil || ck.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}

			claims, err := codec.Verify(ck.Value)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// ClaimsFrom returns the session claims injected by Auth, or nil when the
// middleware did not run.
func ClaimsFrom(c echo.Context) *auth.Claims {
	claims, _ := c.Get(claimsKey).(*auth.Claims)
	return claims
}
