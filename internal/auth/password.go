package auth

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// MinPassphraseLength is enforced when hashing a new operator passphrase.
const MinPassphraseLength = 8

// ErrWeakPassphrase is returned by HashPassphrase for short passphrases.
var ErrWeakPassphrase = errors.New("passphrase must be at least 8 characters")

// HashPassphrase hashes a plaintext passphrase with the configured cost.
func HashPassphrase(passphrase string, cost int) (string, error) {
	if len(strings.TrimSpace(passphrase)) < MinPassphraseLength {
		return "", ErrWeakPassphrase
	}
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(passphrase), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassphrase verifies a passphrase against its hashed value.
func ComparePassphrase(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
