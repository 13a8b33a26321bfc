package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Bearer tokens are opaque two-part strings: "<id>|<secret>". The id half is
// the access_tokens primary key, the secret half is random and stored only as
// a SHA-256 hash. Tokens never expire; they are invalidated by logout or
// superseded when a new token is issued for the same member.
const tokenSeparator = "|"

var (
	ErrMalformedToken = errors.New("malformed token")
	ErrInvalidToken   = errors.New("invalid token")
)

func formatToken(id uint, secret string) string {
	return fmt.Sprintf("%d%s%s", id, tokenSeparator, secret)
}

// parseToken splits a raw bearer string into its id and plaintext secret.
// Anything that is not exactly two separator-delimited parts is malformed;
// a non-numeric id is indistinguishable from an unknown one.
func parseToken(raw string) (uint, string, error) {
	parts := strings.Split(raw, tokenSeparator)
	if len(parts) != 2 {
		return 0, "", ErrMalformedToken
	}
	id, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return 0, "", ErrInvalidToken
	}
	return uint(id), parts[1], nil
}

func hashTokenSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
