package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/adrianguereque/accounts-api/internal/auth"
	"github.com/adrianguereque/accounts-api/internal/core/domain"
)

func contextWithRole(t *testing.T, e *echo.Echo, rec *httptest.ResponseRecorder, role string) echo.Context {
	t.Helper()

	codec := auth.NewCodec("secret", time.Hour)
	token, err := codec.Issue(&domain.Account{ID: 1, Email: "x@y.com", Role: role})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	claims, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.Set(claimsKey, claims)
	return c
}

func TestRBAC_Allows(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := contextWithRole(t, e, rec, domain.RoleAdmin)

	called := false
	handler := RBAC(domain.RoleAdmin, domain.RoleOwner)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRBAC_ForbidsWrongRole(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := contextWithRole(t, e, rec, domain.RoleUser)

	handler := RBAC(domain.RoleAdmin, domain.RoleOwner)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRBAC_RejectsWithoutClaims(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	handler := RBAC(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
