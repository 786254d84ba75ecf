package auth

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/adrianguereque/accounts-api/internal/core/domain"
)

// Cookie names are part of the public contract with the frontend.
const (
	TokenCookie    = "Auth"     // signed session token, httpOnly
	UserDataCookie = "UserData" // URL-escaped JSON {email,name,role}, script-readable
)

// CookieManager writes and clears the session cookie pair. Attributes are
// resolved once at construction and reused verbatim by Issue and Clear:
// browsers silently ignore a deletion whose path/secure/samesite do not match
// the original Set-Cookie.
type CookieManager struct {
	ttl      time.Duration
	secure   bool
	sameSite http.SameSite
	path     string
}

// NewCookieManager resolves cookie attributes from the deployment shape.
// A cross-site frontend requires SameSite=None, which browsers only accept
// over secure transport; same-site deployments use Lax with the configured
// secure flag.
func NewCookieManager(ttl time.Duration, crossSite, secure bool) *CookieManager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m := &CookieManager{ttl: ttl, secure: secure, sameSite: http.SameSiteLaxMode, path: "/"}
	if crossSite {
		m.sameSite = http.SameSiteNoneMode
		m.secure = true
	}
	return m
}

type userData struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
}

// Issue sets both session cookies on the outgoing response. The display
// cookie is URL-escaped because raw JSON is not a valid cookie value.
func (m *CookieManager) Issue(c echo.Context, token string, acct *domain.Account) error {
	c.SetCookie(m.cookie(TokenCookie, token, true, m.ttl))

	data, err := json.Marshal(userData{Email: acct.Email, Name: acct.Name, Role: acct.Role})
	if err != nil {
		return err
	}
	c.SetCookie(m.cookie(UserDataCookie, url.QueryEscape(string(data)), false, m.ttl))
	return nil
}

// Clear expires both cookies immediately using the same attributes as Issue.
func (m *CookieManager) Clear(c echo.Context) {
	c.SetCookie(m.cookie(TokenCookie, "", true, -time.Second))
	c.SetCookie(m.cookie(UserDataCookie, "", false, -time.Second))
}

// Token reads the signed session token from the request, or
// ErrNotAuthenticated when the cookie is absent.
func (m *CookieManager) Token(c echo.Context) (string, error) {
	ck, err := c.Cookie(TokenCookie)
	if err != nil || ck.Value == "" {
		return "", domain.ErrNotAuthenticated
	}
	return ck.Value, nil
}

func (m *CookieManager) cookie(name, value string, httpOnly bool, ttl time.Duration) *http.Cookie {
	maxAge := int(ttl / time.Second)
	if ttl < 0 {
		maxAge = -1
	}
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     m.path,
		MaxAge:   maxAge,
		HttpOnly: httpOnly,
		Secure:   m.secure,
		SameSite: m.sameSite,
	}
}
