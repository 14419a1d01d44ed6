package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
)

// PseudonymousIDLength is the number of hex characters kept from the digest.
const PseudonymousIDLength = 32

var userIDPattern = regexp.MustCompile(`^[0-9a-z]+$`)

// PseudonymousID derives the storage key for a remote user. The same remote id
// always maps to the same key and the key cannot be reversed without it.
func PseudonymousID(remoteUserID string) string {
	sum := sha256.Sum256([]byte(remoteUserID))
	return hex.EncodeToString(sum[:])[:PseudonymousIDLength]
}

// ValidPseudonymousID reports whether id is safe to use as a lookup key.
// Dashboard links may carry hand-picked ids (e.g. "example"), so only the
// character set is enforced, not the length.
func ValidPseudonymousID(id string) bool {
	return userIDPattern.MatchString(id)
}

// Credential is a bearer token for the remote platform together with the
// remote user id read from its unverified claims. It is never persisted.
type Credential struct {
	Token        string
	RemoteUserID string
}

// PseudonymousID returns the storage key for the credential's owner.
func (c Credential) PseudonymousID() string {
	return PseudonymousID(c.RemoteUserID)
}
