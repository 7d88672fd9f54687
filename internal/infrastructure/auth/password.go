// Package auth handles customer credential storage.
package auth

import (
	"errors"
	"fmt"

	"github.com/pieshop/admin/internal/infrastructure/config"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher turns a submitted password into the value stored on the
// customer row and checks candidates against it.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(stored, candidate string) bool
}

// NewPasswordHasher returns the hasher selected by the security config
func NewPasswordHasher(cfg config.SecurityConfig) (PasswordHasher, error) {
	switch cfg.PasswordHashing {
	case config.PasswordPlaintext, "":
		return PlaintextHasher{}, nil
	case config.PasswordBcrypt:
		return NewBcryptHasher(cfg.BcryptCost), nil
	default:
		return nil, fmt.Errorf("unknown password hashing mode %q", cfg.PasswordHashing)
	}
}

// PlaintextHasher stores passwords as submitted. Development only.
type PlaintextHasher struct{}

// Hash returns the password unchanged
func (PlaintextHasher) Hash(password string) (string, error) {
	return password, nil
}

// Verify compares the stored and candidate values
func (PlaintextHasher) Verify(stored, candidate string) bool {
	return stored == candidate
}

// BcryptHasher stores bcrypt digests
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a bcrypt hasher; out of range costs fall back to bcrypt.DefaultCost
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash generates a bcrypt digest of password
func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("password exceeds 72 bytes: %w", err)
		}
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether candidate matches the stored digest
func (h *BcryptHasher) Verify(stored, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
}
