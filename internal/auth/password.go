// Package auth holds the two pieces of identity this API has: hashing of the
// users' credential secrets, and the stand-in that decides who the current
// user is (see current_user.go).
//
// Credentials are stored as bcrypt hashes. A bcrypt hash embeds its own salt
// and cost, so one string column is all the users table needs:
//
//	$2a$12$<22-char salt><31-char hash>
//	 ^   ^
//	 |   cost (12 rounds → 2^12 = 4096 iterations)
//	 version
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when none is configured.
// Hashing takes roughly 250ms at cost 12 on a modern server.
const DefaultCost = 12

// maxPasswordBytes is bcrypt's input limit. Longer secrets would be silently
// truncated, so they are rejected instead.
const maxPasswordBytes = 72

// PasswordService hashes credential secrets.
//
// It's a struct (not free functions) so that the cost can be injected: the
// seed loader reads it from configuration and tests use bcrypt.MinCost.
type PasswordService struct {
	cost int
}

// NewPasswordService returns a PasswordService with the given bcrypt cost.
// A cost of 0 selects DefaultCost.
func NewPasswordService(cost int) (*PasswordService, error) {
	if cost == 0 {
		cost = DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("auth: bcrypt cost %d outside [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &PasswordService{cost: cost}, nil
}

// NewPasswordServiceForTest returns a PasswordService with bcrypt.MinCost.
// Never use it in production: cost 4 is far too weak.
func NewPasswordServiceForTest() *PasswordService {
	return &PasswordService{cost: bcrypt.MinCost}
}

// Hash returns the bcrypt hash of plaintext, ready to be stored as
// model.User.PasswordHash.
func (p *PasswordService) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", fmt.Errorf("auth: password must not be empty")
	}
	if len(plaintext) > maxPasswordBytes {
		return "", fmt.Errorf("auth: password must be %d bytes or fewer", maxPasswordBytes)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}

	return string(hashed), nil
}

// IsHash reports whether s already is a bcrypt hash. The seed loader uses it
// to accept datasets that carry pre-hashed secrets.
func IsHash(s string) bool {
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}
