package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/adrianguereque/accounts-api/internal/core/domain"
)

func issueContext(t *testing.T, m *CookieManager) *http.Response {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/users/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	acct := &domain.Account{ID: 1, Email: "a@b.com", Name: "A", Role: domain.RoleUser}
	if err := m.Issue(c, "token123", acct); err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	return rec.Result()
}

func cookieByName(t *testing.T, cookies []*http.Cookie, name string) *http.Cookie {
	t.Helper()
	for _, ck := range cookies {
		if ck.Name == name {
			return ck
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func TestCookieManager_Issue(t *testing.T) {
	m := NewCookieManager(time.Hour, false, false)
	res := issueContext(t, m)
	cookies := res.Cookies()

	authCk := cookieByName(t, cookies, TokenCookie)
	if authCk.Value != "token123" {
		t.Fatalf("unexpected token value: %q", authCk.Value)
	}
	if !authCk.HttpOnly {
		t.Fatalf("Auth cookie must be httpOnly")
	}
	if authCk.MaxAge != 3600 {
		t.Fatalf("expected maxAge 3600, got %d", authCk.MaxAge)
	}
	if authCk.SameSite != http.SameSiteLaxMode {
		t.Fatalf("expected SameSite=Lax, got %v", authCk.SameSite)
	}

	dataCk := cookieByName(t, cookies, UserDataCookie)
	if dataCk.HttpOnly {
		t.Fatalf("UserData cookie must be readable by scripts")
	}
	if dataCk.MaxAge != authCk.MaxAge {
		t.Fatalf("cookie maxAges must match: %d vs %d", dataCk.MaxAge, authCk.MaxAge)
	}

	raw, err := url.QueryUnescape(dataCk.Value)
	if err != nil {
		t.Fatalf("unescape user data: %v", err)
	}
	var data map[string]string
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		t.Fatalf("user data is not JSON: %v", err)
	}
	if data["email"] != "a@b.com" || data["name"] != "A" || data["role"] != domain.RoleUser {
		t.Fatalf("unexpected user data: %v", data)
	}
}

func TestCookieManager_CrossSiteForcesSecureNone(t *testing.T) {
	m := NewCookieManager(time.Hour, true, false)
	res := issueContext(t, m)

	for _, ck := range res.Cookies() {
		if ck.SameSite != http.SameSiteNoneMode {
			t.Fatalf("cookie %s: expected SameSite=None, got %v", ck.Name, ck.SameSite)
		}
		if !ck.Secure {
			t.Fatalf("cookie %s: SameSite=None requires Secure", ck.Name)
		}
	}
}

// Browsers only honour a deletion whose path, secure flag and same-site
// policy match the original Set-Cookie. Clear must reuse the attributes
// Issue resolved at startup.
func TestCookieManager_ClearMatchesIssueAttributes(t *testing.T) {
	m := NewCookieManager(time.Hour, true, false)
	issued := issueContext(t, m).Cookies()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/users/logoutUser", nil)
	rec := httptest.NewRecorder()
	m.Clear(e.NewContext(req, rec))
	cleared := rec.Result().Cookies()

	if len(cleared) != 2 {
		t.Fatalf("expected both cookies cleared, got %d", len(cleared))
	}
	for _, name := range []string{TokenCookie, UserDataCookie} {
		set := cookieByName(t, issued, name)
		del := cookieByName(t, cleared, name)

		if del.MaxAge >= 0 {
			t.Fatalf("cookie %s: expected negative maxAge, got %d", name, del.MaxAge)
		}
		if del.Value != "" {
			t.Fatalf("cookie %s: expected empty value on clear", name)
		}
		if del.Path != set.Path || del.Secure != set.Secure || del.SameSite != set.SameSite || del.HttpOnly != set.HttpOnly {
			t.Fatalf("cookie %s: clear attributes diverge from issue attributes", name)
		}
	}
}

func TestCookieManager_Token(t *testing.T) {
	m := NewCookieManager(time.Hour, false, false)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/users/getSession", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: "token123"})
	c := e.NewContext(req, httptest.NewRecorder())

	token, err := m.Token(c)
	if err != nil {
		t.Fatalf("token read failed: %v", err)
	}
	if token != "token123" {
		t.Fatalf("unexpected token: %q", token)
	}

	bare := e.NewContext(httptest.NewRequest(http.MethodGet, "/users/getSession", nil), httptest.NewRecorder())
	if _, err := m.Token(bare); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated without cookie, got %v", err)
	}
}
