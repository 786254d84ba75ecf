package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/adrianguereque/accounts-api/internal/core/domain"
)

func testAccount() *domain.Account {
	return &domain.Account{
		ID:    42,
		Email: "a@b.com",
		Name:  "A",
		Role:  domain.RoleAdmin,
	}
}

func TestCodec_IssueAndVerify(t *testing.T) {
	codec := NewCodec("secret", time.Hour)

	token, err := codec.Issue(testAccount())
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	claims, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.Subject != "42" || claims.Email != "a@b.com" || claims.Role != domain.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	id, err := claims.AccountID()
	if err != nil {
		t.Fatalf("account id: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected subject 42, got %d", id)
	}
}

func TestCodec_Expired(t *testing.T) {
	codec := NewCodec("secret", time.Millisecond)

	token, err := codec.Issue(testAccount())
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	if _, err := codec.Verify(token); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated for expired token, got %v", err)
	}
}

func TestCodec_WrongSecret(t *testing.T) {
	issuer := NewCodec("secret", time.Hour)
	verifier := NewCodec("other-secret", time.Hour)

	token, err := issuer.Issue(testAccount())
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated for wrong secret, got %v", err)
	}
}

func TestCodec_Malformed(t *testing.T) {
	codec := NewCodec("secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		if _, err := codec.Verify(token); !errors.Is(err, domain.ErrNotAuthenticated) {
			t.Fatalf("expected ErrNotAuthenticated for %q, got %v", token, err)
		}
	}
}

func TestCodec_DefaultTTL(t *testing.T) {
	codec := NewCodec("secret", 0)
	if codec.TTL() != DefaultTTL {
		t.Fatalf("expected default ttl %v, got %v", DefaultTTL, codec.TTL())
	}
}

func TestClaims_BadSubject(t *testing.T) {
	c := &Claims{}
	c.Subject = "not-a-number"
	if _, err := c.AccountID(); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}
