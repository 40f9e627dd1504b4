package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the work factor the account base was hashed with.
// Raising it only affects new hashes; existing ones keep their embedded cost.
const bcryptCost = 12

// HashPassword hashes a plaintext password with a per-call random salt.
func HashPassword(plain string) (string, error) {
	if plain == "" {
		return "", errors.New("password must not be empty")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// CheckPassword reports whether plain matches the stored hash. It returns
// false for any mismatch, empty input, or malformed hash — the caller never
// learns which, so a login failure cannot be used to enumerate accounts.
func CheckPassword(plain, hash string) bool {
	if plain == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
