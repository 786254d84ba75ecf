package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used for new hashes.
const DefaultCost = 10

// Hasher produces and verifies salted one-way password hashes. The bcrypt
// output encodes algorithm, cost and salt, so verification needs no extra
// stored fields.
type Hasher struct {
	cost int
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt hash of plaintext. Failure here is fatal for the
// caller: without the OS entropy source no account can be created.
func (h *Hasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches the stored hash. Malformed stored
// values yield false, never an error; the comparison is constant-time.
func (h *Hasher) Verify(plaintext, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plaintext)) == nil
}
