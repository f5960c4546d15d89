package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"
)

// NewVerificationCode returns a 6-digit numeric code uniformly distributed
// over [100000, 999999].
func NewVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// DeriveVerificationToken derives the opaque token handed out after a
// successful code check: sha256 over email, issue time and a server secret.
func DeriveVerificationToken(email string, at time.Time, secret string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%d:%s", email, at.UnixMilli(), secret)))
	return hex.EncodeToString(sum[:])
}

// NewAdminToken generates a cryptographically random 32-character
// alphanumeric admin credential.
func NewAdminToken() (string, error) {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, 32)
	for i := range b {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
		if err != nil {
			return "", fmt.Errorf("generate admin token: %w", err)
		}
		b[i] = letters[idx.Int64()]
	}
	return string(b), nil
}
