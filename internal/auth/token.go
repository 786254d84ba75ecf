package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/adrianguereque/accounts-api/internal/core/domain"
)

// DefaultTTL is the session lifetime applied when none is configured.
const DefaultTTL = time.Hour

// Claims is the decoded payload of a session token. Subject carries the
// account id as a decimal string; Email, Name and Role ride along so the
// display cookie can be rebuilt without a directory lookup.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// AccountID parses the token subject back into the account id.
func (c *Claims) AccountID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, domain.ErrNotAuthenticated
	}
	return id, nil
}

// Codec signs and verifies session tokens with a symmetric secret (HS256).
// Tokens are tamper-evident but not encrypted; expiry is the only server-side
// invalidation mechanism.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured session lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue produces a signed token for the account with exp = now + ttl.
func (c *Codec) Issue(acct *domain.Account) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: acct.Email,
		Name:  acct.Name,
		Role:  acct.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(acct.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Verify checks signature integrity first, then expiry. Malformed structure,
// bad signature and expiry all collapse to ErrNotAuthenticated so callers
// cannot leak which part failed.
func (c *Codec) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrNotAuthenticated
	}
	return claims, nil
}
