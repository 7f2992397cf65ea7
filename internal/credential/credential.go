// Package credential abstracts password verification behind a pluggable
// interface. The contract is "(principal identifier, secret) → verified or
// rejected"; implementations must use a salted, slow hash comparison.
package credential

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch is returned when the secret does not match the stored hash.
var ErrMismatch = errors.New("credential mismatch")

// Verifier checks a plaintext secret against a stored hash.
type Verifier interface {
	Verify(hash, secret string) error
}

// Hasher derives a storable hash from a plaintext secret.
type Hasher interface {
	Hash(secret string) (string, error)
}

// Bcrypt implements Verifier and Hasher with bcrypt. The zero value uses
// bcrypt.DefaultCost.
type Bcrypt struct {
	Cost int
}

// Hash derives a bcrypt hash from the secret.
func (b Bcrypt) Hash(secret string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", fmt.Errorf("hash credential: %w", err)
	}
	return string(hashed), nil
}

// Verify compares the secret against the stored bcrypt hash.
func (b Bcrypt) Verify(hash, secret string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)); err != nil {
		return ErrMismatch
	}
	return nil
}
