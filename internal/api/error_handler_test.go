package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/adrianguereque/accounts-api/internal/core/domain"
)

func TestHTTPErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"unknown email", domain.ErrUnknownEmail, http.StatusNotFound, "email or password incorrect"},
		{"wrong password", domain.ErrInvalidCredentials, http.StatusUnauthorized, "email or password incorrect"},
		{"not authenticated", domain.ErrNotAuthenticated, http.StatusUnauthorized, "not authenticated"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{"not found", domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{"duplicate", domain.ErrUserExists, http.StatusConflict, "user already exists"},
		{"no fields", domain.ErrNoFields, http.StatusBadRequest, "no fields to update"},
		{"http error", echo.NewHTTPError(http.StatusBadRequest, "email is required"), http.StatusBadRequest, "email is required"},
		{"unexpected", errors.New("pq: connection refused"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			handler := NewHTTPErrorHandler(zerolog.New(io.Discard))
			handler(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var resp map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp["error"] != tc.msg {
				t.Fatalf("expected message %q, got %q", tc.msg, resp["error"])
			}
		})
	}
}

// Login failures intentionally keep distinct status codes (404 unknown email,
// 401 wrong password) but must share one body so responses do not confirm
// that an email is registered.
func TestHTTPErrorHandler_LoginMessagesMatch(t *testing.T) {
	handler := NewHTTPErrorHandler(zerolog.New(io.Discard))

	render := func(err error) (int, string) {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodPost, "/users/login", nil), rec)
		handler(err, c)
		var resp map[string]string
		_ = json.Unmarshal(rec.Body.Bytes(), &resp)
		return rec.Code, resp["error"]
	}

	codeUnknown, msgUnknown := render(domain.ErrUnknownEmail)
	codeWrong, msgWrong := render(domain.ErrInvalidCredentials)

	if codeUnknown != http.StatusNotFound || codeWrong != http.StatusUnauthorized {
		t.Fatalf("unexpected codes: %d %d", codeUnknown, codeWrong)
	}
	if msgUnknown != msgWrong {
		t.Fatalf("login failure messages differ: %q vs %q", msgUnknown, msgWrong)
	}
}
