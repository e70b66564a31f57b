package domain

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
	"time"
)

// MaxAssertionAge bounds how old a login assertion may be
const MaxAssertionAge = 24 * time.Hour

// CheckString builds the canonical check string for a login assertion:
// non empty fields as key=value lines, sorted by key, joined with newlines.
// The hash field is never part of the check string
func CheckString(fields map[string]string) string {
	lines := make([]string, 0, len(fields))
	for k, v := range fields {
		if k == "hash" || v == "" {
			continue
		}
		lines = append(lines, k+"="+v)
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n")
}

// Verify checks a login widget assertion against the shared bot secret.
// The signing key is SHA-256 of the secret, the signature is hex encoded
// HMAC-SHA-256 of the check string, compared in constant time. Assertions
// older than MaxAssertionAge or dated in the future are rejected. An empty
// secret always fails
func Verify(fields map[string]string, hash, secret string, now time.Time) bool {
	if secret == "" || hash == "" {
		return false
	}

	authDate, err := strconv.ParseInt(fields["auth_date"], 10, 64)
	if err != nil {
		return false
	}
	age := now.Sub(time.Unix(authDate, 0))
	if age < 0 || age > MaxAssertionAge {
		return false
	}

	key := sha256.Sum256([]byte(secret))
	mac := hmac.New(sha256.New, key[:])
	mac.Write([]byte(CheckString(fields)))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(hash))
}
