package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a salted bcrypt hash from the given plaintext
// password. The cost is bcrypt's default, keeping verification deliberately
// slow relative to a brute-force attempt.
//
// Returns an error if the plaintext is empty or exceeds bcrypt's 72-byte
// input limit.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("empty password cannot be hashed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(hash), nil
}

// VerifyPassword reports whether the plaintext password matches the stored
// bcrypt hash.
//
// Any failure, whether a mismatch or a malformed stored hash, yields false;
// no error ever escapes this boundary.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
