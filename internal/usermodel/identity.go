package usermodel

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ResolveUserID derives the storage partition from a session email:
// trimmed and lower-cased, or AnonymousUser when empty.
func ResolveUserID(email string) string {
	id := cases.Lower(language.Und).String(strings.TrimSpace(email))
	if id == "" {
		return AnonymousUser
	}
	return id
}

// HashUserID returns the anonymised identifier written to telemetry.
func HashUserID(userID string) string {
	if userID == "" {
		userID = AnonymousUser
	}
	sum := blake2b.Sum256([]byte(userID))
	return "u_" + hex.EncodeToString(sum[:8])
}
