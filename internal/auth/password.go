package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher is a one-way password comparison plus a cost-parameterised hash.
type PasswordHasher interface {
	Compare(plain, hash string) (bool, error)
	Hash(plain string) (string, error)
}

// BcryptHasher hashes with bcrypt at a fixed work factor.
type BcryptHasher struct {
	Cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = 10
	}
	return &BcryptHasher{Cost: cost}
}

func (h *BcryptHasher) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.Cost)
	return string(hash), err
}

// Compare reports a mismatch as (false, nil); any other failure, such as a
// malformed stored hash, is returned as an error.
func (h *BcryptHasher) Compare(plain, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
