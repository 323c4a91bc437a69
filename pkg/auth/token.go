// Package auth holds the primitives behind personal access tokens. A token is
// presented as "<id>|<secret>"; only the SHA-256 of the secret is persisted.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"math/big"
	"strconv"
	"strings"
)

const (
	secretLength = 40
	alphabet     = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var ErrMalformedToken = errors.New("malformed token")

// NewSecret returns a random alphanumeric secret.
func NewSecret() (string, error) {
	var sb strings.Builder
	sb.Grow(secretLength)
	max := big.NewInt(int64(len(alphabet)))
	for i := 0; i < secretLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(alphabet[n.Int64()])
	}
	return sb.String(), nil
}

// HashSecret is the value stored in personal_access_tokens.token_hash.
func HashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// Matches compares a presented secret against a stored hash in constant time.
func Matches(secret, storedHash string) bool {
	return subtle.ConstantTimeCompare([]byte(HashSecret(secret)), []byte(storedHash)) == 1
}

// PlainText formats the value handed to the client exactly once.
func PlainText(id int64, secret string) string {
	return strconv.FormatInt(id, 10) + "|" + secret
}

// Parse splits a presented bearer value. A value without the id prefix is
// accepted and returns id 0, meaning "look up by hash".
func Parse(presented string) (int64, string, error) {
	presented = strings.TrimSpace(presented)
	if presented == "" {
		return 0, "", ErrMalformedToken
	}

	idPart, secret, found := strings.Cut(presented, "|")
	if !found {
		return 0, presented, nil
	}

	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil || id <= 0 || secret == "" {
		return 0, "", ErrMalformedToken
	}
	return id, secret, nil
}
