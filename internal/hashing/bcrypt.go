// Package hashing provides one-way password hashing for stored credentials.
package hashing

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used for all stored hashes.
const DefaultCost = 10

// Hasher is the credential-hashing contract consumed by the auth service.
// Implementations must be safe for concurrent use.
type Hasher interface {
	// Make hashes a plaintext password. A fresh random salt is generated on
	// every call, so two calls with the same input produce different outputs.
	Make(password string) (string, error)

	// Check reports whether password matches the stored hash. A mismatch is
	// (false, nil); only primitive or structural failures return an error.
	Check(password, hash string) (bool, error)
}

// Bcrypt hashes passwords with the bcrypt algorithm at a fixed cost.
type Bcrypt struct {
	cost int
}

// NewBcrypt returns a Bcrypt hasher with the given work factor.
// Costs outside bcrypt's valid range fall back to DefaultCost.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Bcrypt{cost: cost}
}

func (h *Bcrypt) Make(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (h *Bcrypt) Check(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("compare password: %w", err)
	}
	return true, nil
}
